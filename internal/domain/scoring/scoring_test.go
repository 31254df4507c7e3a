package scoring_test

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/content"
	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/scoring"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
	"github.com/turtacn/GeoRisk-Intelligence/pkg/types/common"
)

func jsonRead(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func jsonWrite(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func newTestEnsemble(t *testing.T, params scoring.Params, seed int64) *scoring.Ensemble {
	t.Helper()
	e, err := scoring.NewEnsemble(params, scoring.NewRand(seed), logging.NewNopLogger())
	require.NoError(t, err)
	return e
}

func TestNewEnsemble_RejectsBadParams(t *testing.T) {
	t.Parallel()
	_, err := scoring.NewEnsemble(scoring.Params{NumTrees: 0, MaxDepth: 5},
		scoring.NewRand(1), logging.NewNopLogger())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeModelParamInvalid))

	_, err = scoring.NewEnsemble(scoring.Params{NumTrees: 5, MaxDepth: 0},
		scoring.NewRand(1), logging.NewNopLogger())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeModelParamInvalid))
}

func TestScore_WithinUnitInterval(t *testing.T) {
	t.Parallel()
	e := newTestEnsemble(t, scoring.Params{NumTrees: 20, MaxDepth: 4, LearningRate: 0.1}, 7)

	samples := []scoring.FeatureVector{
		{Values: map[string]float64{"text_sentiment": 0.8, "historical_patterns": 0.7}},
		{Values: map[string]float64{}},
		{Values: map[string]float64{"unknown_feature": 99}},
	}
	scores := e.Score(samples)
	require.Len(t, scores, 3)
	for _, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.Less(t, s, 1.0)
	}
}

// With a single depth-1 tree the score is always one of the two leaf values,
// whatever the sample looks like.
func TestScore_DrawsFromLeafValues(t *testing.T) {
	t.Parallel()
	e := newTestEnsemble(t, scoring.Params{NumTrees: 1, MaxDepth: 1, LearningRate: 0.1}, 11)

	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	require.NoError(t, e.Save(path))

	var snap scoring.Snapshot
	raw, err := jsonRead(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &snap))
	require.Len(t, snap.Trees, 1)
	require.Len(t, snap.Trees[0].LeafValues, 2)
	leaves := snap.Trees[0].LeafValues

	sample := []scoring.FeatureVector{{Values: map[string]float64{"text_sentiment": 0.9}}}
	for i := 0; i < 50; i++ {
		score := e.Score(sample)[0]
		assert.Contains(t, leaves, score)
	}
}

// Averaging across trees narrows the score distribution: repeated scores on a
// fixed sample spread with stddev roughly proportional to 1/sqrt(num_trees).
func TestScore_SpreadShrinksWithMoreTrees(t *testing.T) {
	t.Parallel()

	spread := func(numTrees int) float64 {
		e := newTestEnsemble(t,
			scoring.Params{NumTrees: numTrees, MaxDepth: 3, LearningRate: 0.1}, 19)
		sample := []scoring.FeatureVector{{Values: map[string]float64{"text_sentiment": 0.6}}}

		const draws = 2000
		var sum, sumSq float64
		for i := 0; i < draws; i++ {
			s := e.Score(sample)[0]
			sum += s
			sumSq += s * s
		}
		mean := sum / draws
		return math.Sqrt(sumSq/draws - mean*mean)
	}

	single := spread(1)
	many := spread(100)

	require.Greater(t, single, 0.01)
	// Expected ratio is ~1/sqrt(100); assert a loose 3x bound.
	assert.Less(t, many, single/3)
}

func TestTrain_RenormalisesImportance(t *testing.T) {
	t.Parallel()
	e := newTestEnsemble(t, scoring.Params{NumTrees: 2, MaxDepth: 2, LearningRate: 0.1}, 3)

	require.NoError(t, e.Train(nil, nil))

	total := 0.0
	for _, v := range e.FeatureImportance() {
		total += v
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestFeatureImportance_ReturnsCopy(t *testing.T) {
	t.Parallel()
	e := newTestEnsemble(t, scoring.Params{NumTrees: 2, MaxDepth: 2, LearningRate: 0.1}, 3)

	imp := e.FeatureImportance()
	imp["text_sentiment"] = 99

	assert.Equal(t, 0.3, e.FeatureImportance()["text_sentiment"])
}

func TestSnapshot_RoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "models", "ensemble.json")

	src := newTestEnsemble(t, scoring.Params{NumTrees: 5, MaxDepth: 3, LearningRate: 0.2}, 17)
	require.NoError(t, src.Save(path))

	dst := newTestEnsemble(t, scoring.Params{NumTrees: 2, MaxDepth: 2, LearningRate: 0.1}, 1)
	require.NoError(t, dst.Load(path))

	info := dst.Info()
	assert.Equal(t, 5, info.NumTrees)
	assert.Equal(t, 3, info.MaxDepth)
	assert.Equal(t, 0.2, info.LearningRate)
	assert.Equal(t, src.FeatureImportance(), dst.FeatureImportance())
}

func TestLoad_MissingAndInvalidSnapshots(t *testing.T) {
	t.Parallel()
	e := newTestEnsemble(t, scoring.Params{NumTrees: 2, MaxDepth: 2, LearningRate: 0.1}, 5)

	err := e.Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeModelLoadFailed))

	// A structurally valid JSON file with no trees must be rejected and must
	// not disturb the current model.
	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, jsonWrite(empty, map[string]interface{}{
		"num_trees": 0, "max_depth": 0, "learning_rate": 0,
		"trees": []interface{}{}, "feature_importance": map[string]float64{},
	}))
	err = e.Load(empty)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeModelSnapshotInvalid))
	assert.Equal(t, 2, e.Info().NumTrees)
}

func TestExtractFeatures_PerSourceBaselines(t *testing.T) {
	t.Parallel()
	docs := []content.Document{
		{
			Type: common.SourceSocialMedia, Source: "feedx",
			Posts: []content.Record{{
				Sentiment: content.Sentiment{Compound: -0.4},
				Entities: []content.Entity{
					{Text: "Acme Militia", Type: common.EntityOrganization},
					{Text: "J. Doe", Type: common.EntityPerson},
					{Text: "Acme Militia", Type: common.EntityOrganization},
				},
				Countries: []string{"Latvia", "Estonia"},
			}},
		},
		{
			Type: common.SourceBook, Source: "library",
			Books: []content.Record{{Sentiment: content.Sentiment{Compound: 0.1}}},
		},
	}

	vectors := scoring.ExtractFeatures(docs)
	require.Len(t, vectors, 2)

	social := vectors[0]
	assert.Equal(t, "feedx", social.SourceName)
	assert.Equal(t, []string{"Latvia", "Estonia"}, social.Countries)
	assert.Equal(t, -0.4, social.Values["text_sentiment"])
	assert.Equal(t, 1.0, social.Values["entity_presence"])
	assert.Equal(t, 3.0, social.Values["entity_count"])
	assert.Equal(t, 2.0, social.Values["country_count"])
	assert.Equal(t, 0.5, social.Values["historical_patterns"])
	assert.Equal(t, 0.5, social.Values["temporal_factors"])
	assert.Equal(t, 2.0, social.Values["entity_org_count"])
	assert.Equal(t, 1.0, social.Values["entity_person_count"])

	book := vectors[1]
	assert.Equal(t, 0.7, book.Values["historical_patterns"])
	assert.Equal(t, 0.3, book.Values["temporal_factors"])
	assert.Equal(t, 0.0, book.Values["entity_presence"])
}

func TestExtractFeatures_CustomDocument(t *testing.T) {
	t.Parallel()
	docs := []content.Document{{
		Type: common.SourceCustom, Source: "osint",
		Data: map[string]json.RawMessage{
			"report_sentiment": json.RawMessage(`{"compound": 0.55}`),
			"report_entities":  json.RawMessage(`[{"text":"X","type":"ORG","confidence":0.9}]`),
			"report_countries": json.RawMessage(`["Latvia"]`),
		},
	}}

	vectors := scoring.ExtractFeatures(docs)
	require.Len(t, vectors, 1)

	custom := vectors[0]
	assert.Equal(t, 0.55, custom.Values["text_sentiment"])
	assert.Equal(t, 1.0, custom.Values["entity_presence"])
	assert.Equal(t, []string{"Latvia"}, custom.Countries)
	assert.Equal(t, 0.5, custom.Values["historical_patterns"])
	assert.Equal(t, 1.0, custom.Values["entity_org_count"])
}
