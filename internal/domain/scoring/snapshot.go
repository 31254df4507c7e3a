package scoring

import (
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/storage/jsonstore"
	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
	"github.com/turtacn/GeoRisk-Intelligence/pkg/types/common"
)

// Snapshot is the persisted form of an ensemble: hyperparameters, the full
// tree structures, and the importance assignment.  Loading a snapshot
// replaces the model wholesale.
type Snapshot struct {
	NumTrees          int                `json:"num_trees"`
	MaxDepth          int                `json:"max_depth"`
	LearningRate      float64            `json:"learning_rate"`
	Trees             []Tree             `json:"trees"`
	FeatureImportance map[string]float64 `json:"feature_importance"`
	Timestamp         common.Timestamp   `json:"timestamp"`
}

// Save atomically writes the current model state to path.
func (e *Ensemble) Save(path string) error {
	e.mu.Lock()
	snap := Snapshot{
		NumTrees:          e.params.NumTrees,
		MaxDepth:          e.params.MaxDepth,
		LearningRate:      e.params.LearningRate,
		Trees:             e.trees,
		FeatureImportance: e.importance,
		Timestamp:         common.NewTimestamp(),
	}
	e.mu.Unlock()

	if err := jsonstore.Save(path, snap); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeModelSaveFailed, "failed to save model snapshot").
			WithDetail(path)
	}
	e.logger.Info("model snapshot saved", logging.String("path", path))
	return nil
}

// Load replaces the model state with the snapshot at path.  The snapshot
// must contain at least one tree and a non-empty importance map; a snapshot
// failing these checks leaves the current model untouched.
func (e *Ensemble) Load(path string) error {
	var snap Snapshot
	if err := jsonstore.Load(path, &snap); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeModelLoadFailed, "failed to load model snapshot").
			WithDetail(path)
	}
	if len(snap.Trees) == 0 || len(snap.FeatureImportance) == 0 {
		return apperrors.New(apperrors.ErrCodeModelSnapshotInvalid,
			"snapshot has no trees or no feature importance").WithDetail(path)
	}

	e.mu.Lock()
	e.params.NumTrees = snap.NumTrees
	e.params.MaxDepth = snap.MaxDepth
	e.params.LearningRate = snap.LearningRate
	e.trees = snap.Trees
	e.importance = snap.FeatureImportance
	e.mu.Unlock()

	e.logger.Info("model snapshot loaded", logging.String("path", path))
	return nil
}
