package forecast_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/forecast"
	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/scoring"
	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
	"github.com/turtacn/GeoRisk-Intelligence/pkg/types/common"
)

func TestParseTimeframe(t *testing.T) {
	t.Parallel()
	for _, tf := range forecast.AllTimeframes {
		parsed, err := forecast.ParseTimeframe(string(tf))
		require.NoError(t, err)
		assert.Equal(t, tf, parsed)
	}

	_, err := forecast.ParseTimeframe("decade")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeForecastTimeframeUnknown))
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFilterByConfidence(t *testing.T) {
	t.Parallel()
	in := []forecast.Forecast{
		{Country: "A", Confidence: 0.9},
		{Country: "B", Confidence: 0.6},
		{Country: "C", Confidence: 0.7},
	}
	out := forecast.FilterByConfidence(in, 0.7)
	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].Country)
	assert.Equal(t, "C", out[1].Country)

	assert.Empty(t, forecast.FilterByConfidence(nil, 0.5))
}

func vector(source string, countries ...string) scoring.FeatureVector {
	return scoring.FeatureVector{SourceName: source, Countries: countries}
}

func TestSynthesize_MeanScoreGating(t *testing.T) {
	t.Parallel()
	s := forecast.NewSynthesizer(scoring.NewRand(42))

	vectors := []scoring.FeatureVector{
		vector("feedx", "Latvia"),
		vector("wire", "Latvia"),
		vector("feedx", "Andorra"),
	}
	// Latvia mean = (0.58+0.66)/2 = 0.62 > 0.5 → forecast.
	// Andorra mean = 0.30 → no forecast.
	scores := []float64{0.58, 0.66, 0.30}

	forecasts := s.Synthesize(vectors, scores, 30)
	require.Len(t, forecasts, 1)

	f := forecasts[0]
	assert.Equal(t, "Latvia", f.Country)
	assert.Equal(t, 0.62, f.Confidence)
	assert.Equal(t, []string{"feedx", "wire"}, f.Sources)
	assert.Contains(t, f.Description, "Latvia")
	assert.True(t, contains(common.AllThreatTypes, f.Type))

	date, err := time.Parse("2006-01-02", f.Date)
	require.NoError(t, err)
	assert.True(t, date.After(time.Now().Add(-48*time.Hour)))
	assert.True(t, date.Before(time.Now().AddDate(0, 0, 31)))
}

func TestSynthesize_MultiCountrySampleContributesToEach(t *testing.T) {
	t.Parallel()
	s := forecast.NewSynthesizer(scoring.NewRand(7))

	vectors := []scoring.FeatureVector{vector("feedx", "Latvia", "Estonia")}
	scores := []float64{0.8}

	forecasts := s.Synthesize(vectors, scores, 7)
	require.Len(t, forecasts, 2)
	assert.Equal(t, "Latvia", forecasts[0].Country)
	assert.Equal(t, "Estonia", forecasts[1].Country)
	assert.Equal(t, 0.8, forecasts[0].Confidence)
	assert.Equal(t, 0.8, forecasts[1].Confidence)
}

func TestSynthesize_SourceListIsDistinctAndCapped(t *testing.T) {
	t.Parallel()
	s := forecast.NewSynthesizer(scoring.NewRand(7))

	vectors := []scoring.FeatureVector{
		vector("a", "X"), vector("a", "X"), vector("b", "X"),
		vector("c", "X"), vector("d", "X"),
	}
	scores := []float64{0.9, 0.9, 0.9, 0.9, 0.9}

	forecasts := s.Synthesize(vectors, scores, 7)
	require.Len(t, forecasts, 1)
	assert.Equal(t, []string{"a", "b", "c"}, forecasts[0].Sources)
}

func TestSynthesize_NoCountriesNoForecasts(t *testing.T) {
	t.Parallel()
	s := forecast.NewSynthesizer(scoring.NewRand(7))
	forecasts := s.Synthesize([]scoring.FeatureVector{vector("a")}, []float64{0.99}, 7)
	assert.Empty(t, forecasts)
}

func contains(set []common.ThreatType, v common.ThreatType) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}
