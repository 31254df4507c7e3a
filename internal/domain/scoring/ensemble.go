// Package scoring implements the randomized tree ensemble that converts
// feature vectors extracted from processed content into risk scores in
// [0, 1).  The ensemble's tree structures are generated randomly at
// initialisation and refined only through importance re-normalisation; leaf
// selection is a uniform draw per tree, so individual scores are stochastic
// and callers must aggregate (the forecast pipeline averages per country).
package scoring

import (
	"sort"
	"sync"

	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
)

// DefaultFeatureImportance is the initial importance assignment used when no
// snapshot is loaded.
func DefaultFeatureImportance() map[string]float64 {
	return map[string]float64{
		"text_sentiment":      0.3,
		"entity_presence":     0.2,
		"historical_patterns": 0.4,
		"temporal_factors":    0.1,
	}
}

// Params are the ensemble hyperparameters.
type Params struct {
	NumTrees     int
	MaxDepth     int
	LearningRate float64
}

// ModelInfo is the introspection summary exposed over the API and CLI.
type ModelInfo struct {
	NumTrees          int                `json:"num_trees"`
	MaxDepth          int                `json:"max_depth"`
	LearningRate      float64            `json:"learning_rate"`
	FeatureImportance map[string]float64 `json:"feature_importance"`
}

// Ensemble is the scoring model.  All methods are safe for concurrent use.
type Ensemble struct {
	mu sync.Mutex

	params     Params
	trees      []Tree
	importance map[string]float64
	rng        RNG
	logger     logging.Logger
}

// NewEnsemble builds an ensemble of params.NumTrees random trees using rng
// as the randomness source for both construction and scoring.
func NewEnsemble(params Params, rng RNG, logger logging.Logger) (*Ensemble, error) {
	if params.NumTrees < 1 {
		return nil, apperrors.New(apperrors.ErrCodeModelParamInvalid, "num_trees must be at least 1")
	}
	if params.MaxDepth < 1 {
		return nil, apperrors.New(apperrors.ErrCodeModelParamInvalid, "max_depth must be at least 1")
	}

	e := &Ensemble{
		params:     params,
		importance: DefaultFeatureImportance(),
		rng:        rng,
		logger:     logger.Named("ensemble"),
	}

	features := e.featureNames()
	e.trees = make([]Tree, params.NumTrees)
	for i := range e.trees {
		e.trees[i] = newTree(params.MaxDepth, features, rng)
	}

	e.logger.Info("ensemble initialized",
		logging.Int("num_trees", params.NumTrees),
		logging.Int("max_depth", params.MaxDepth))
	return e, nil
}

// featureNames returns the importance keys in sorted order so that tree
// construction is reproducible under a fixed seed.  Callers must hold mu or
// be inside construction.
func (e *Ensemble) featureNames() []string {
	names := make([]string, 0, len(e.importance))
	for name := range e.importance {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Score returns one risk score per sample, each the mean of one stochastic
// leaf draw per tree.
func (e *Ensemble) Score(samples []FeatureVector) []float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	scores := make([]float64, len(samples))
	for i := range samples {
		scores[i] = e.scoreSample(samples[i].Values)
	}
	return scores
}

func (e *Ensemble) scoreSample(values map[string]float64) float64 {
	sum := 0.0
	for i := range e.trees {
		sum += e.trees[i].score(values, e.rng)
	}
	return sum / float64(len(e.trees))
}

// Train refines the model from labelled samples.  The tree structures are
// kept; training re-normalises the feature-importance distribution so it
// sums to one.  Labels are accepted for interface stability but do not
// currently influence the trees.
func (e *Ensemble) Train(samples []FeatureVector, labels []float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := 0.0
	for _, v := range e.importance {
		total += v
	}
	if total == 0 {
		return apperrors.New(apperrors.ErrCodeModelEmptyImportance,
			"feature-importance map is empty")
	}
	for k, v := range e.importance {
		e.importance[k] = v / total
	}

	e.logger.Info("ensemble trained",
		logging.Int("samples", len(samples)),
		logging.Int("labels", len(labels)))
	return nil
}

// FeatureImportance returns a copy of the current importance assignment.
func (e *Ensemble) FeatureImportance() map[string]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[string]float64, len(e.importance))
	for k, v := range e.importance {
		out[k] = v
	}
	return out
}

// Info returns the model's hyperparameters and importance assignment.
func (e *Ensemble) Info() ModelInfo {
	e.mu.Lock()
	defer e.mu.Unlock()

	imp := make(map[string]float64, len(e.importance))
	for k, v := range e.importance {
		imp[k] = v
	}
	return ModelInfo{
		NumTrees:          e.params.NumTrees,
		MaxDepth:          e.params.MaxDepth,
		LearningRate:      e.params.LearningRate,
		FeatureImportance: imp,
	}
}
