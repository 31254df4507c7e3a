// Package forecast defines the forecast model: the three prediction
// horizons, the forecast record itself, and the synthesis step that turns
// per-country risk scores into forecast records.
package forecast

import (
	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
	"github.com/turtacn/GeoRisk-Intelligence/pkg/types/common"
)

// Timeframe identifies one of the three forecast horizons.
type Timeframe string

const (
	TimeframeShort  Timeframe = "short"
	TimeframeMedium Timeframe = "medium"
	TimeframeLong   Timeframe = "long"
)

// AllTimeframes lists the horizons in ascending window order.  Cycles
// iterate this slice so all horizons are refreshed in a fixed order.
var AllTimeframes = []Timeframe{TimeframeShort, TimeframeMedium, TimeframeLong}

// ParseTimeframe validates a user-supplied horizon name.
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(s) {
	case TimeframeShort, TimeframeMedium, TimeframeLong:
		return Timeframe(s), nil
	}
	return "", apperrors.New(apperrors.ErrCodeForecastTimeframeUnknown,
		"unknown timeframe").WithDetail(s)
}

// Forecast is one synthesized risk forecast for a country.  Date is the
// projected event date in YYYY-MM-DD form; Confidence is the mean risk score
// of the country's samples, rounded to three decimals.
type Forecast struct {
	Country     string            `json:"country"`
	Type        common.ThreatType `json:"type"`
	Description string            `json:"description"`
	Date        string            `json:"date"`
	Confidence  float64           `json:"confidence"`
	Sources     []string          `json:"sources"`
	GeneratedAt common.Timestamp  `json:"generated_at"`
}

// FilterByConfidence returns the forecasts whose confidence meets threshold.
// Order is preserved; the input is not modified.
func FilterByConfidence(forecasts []Forecast, threshold float64) []Forecast {
	out := make([]Forecast, 0, len(forecasts))
	for _, f := range forecasts {
		if f.Confidence >= threshold {
			out = append(out, f)
		}
	}
	return out
}
