package scoring

// noChild marks a node position whose child index falls outside the interior
// of the tree, i.e. traversal terminates there.
const noChild = -1

// Node is one interior decision node of a tree, stored in a flat
// breadth-first array.  Left and Right are indices into Tree.Nodes, or
// noChild when the child position lies beyond the interior node count.
type Node struct {
	Feature   string  `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
}

// Tree is a randomly constructed decision tree.  A tree of depth d has
// 2^d - 1 interior nodes and 2^d leaf values.  The structure is generated
// once at model initialisation and only replaced by loading a snapshot.
type Tree struct {
	Depth      int       `json:"depth"`
	Nodes      []Node    `json:"nodes"`
	LeafValues []float64 `json:"leaf_values"`
}

// newTree builds a random tree of the given depth.  Each node tests a
// feature drawn uniformly from features against a uniform threshold; leaf
// values are uniform in [0, 1).
func newTree(depth int, features []string, rng RNG) Tree {
	interior := 1<<depth - 1
	leaves := 1 << depth

	t := Tree{
		Depth:      depth,
		Nodes:      make([]Node, interior),
		LeafValues: make([]float64, leaves),
	}

	for i := 0; i < interior; i++ {
		left, right := 2*i+1, 2*i+2
		if left >= interior {
			left = noChild
		}
		if right >= interior {
			right = noChild
		}
		t.Nodes[i] = Node{
			Feature:   features[rng.IntN(len(features))],
			Threshold: rng.Float64(),
			Left:      left,
			Right:     right,
		}
	}
	for i := 0; i < leaves; i++ {
		t.LeafValues[i] = rng.Float64()
	}
	return t
}

// score walks the tree from the root following feature comparisons (missing
// features branch left) until it falls off the interior, then returns a leaf
// value drawn uniformly at random.  The draw is independent of the path
// taken; the walk only validates the sample against the node structure.
// Replacing the draw with a path-determined leaf changes model behaviour and
// must be treated as a model version change.
func (t *Tree) score(sample map[string]float64, rng RNG) float64 {
	idx := 0
	for idx != noChild {
		node := &t.Nodes[idx]
		if v, ok := sample[node.Feature]; ok && v >= node.Threshold {
			idx = node.Right
		} else {
			idx = node.Left
		}
	}
	return t.LeafValues[rng.IntN(len(t.LeafValues))]
}
