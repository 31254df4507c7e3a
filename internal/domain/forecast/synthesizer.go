package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/scoring"
	"github.com/turtacn/GeoRisk-Intelligence/pkg/types/common"
)

// synthesisFloor is the mean risk score a country must exceed before any
// forecast is synthesized for it, independent of the per-horizon confidence
// threshold applied afterwards.
const synthesisFloor = 0.5

// maxSources caps how many contributing source names are attached to a
// forecast.
const maxSources = 3

// descriptions maps each threat type to its forecast description template.
var descriptions = map[common.ThreatType]string{
	common.ThreatTerroristAttack:      "Potential terrorist attack in %s",
	common.ThreatCivilUnrest:          "Risk of civil unrest in %s",
	common.ThreatPoliticalInstability: "Political instability in %s",
	common.ThreatMilitaryConflict:     "Military conflict in %s",
	common.ThreatCyberAttack:          "Cyber attack targeting infrastructure in %s",
	common.ThreatInfrastructureAttack: "Infrastructure attack in %s",
	common.ThreatAssassination:        "Assassination attempt in %s",
	common.ThreatHostageSituation:     "Hostage situation in %s",
	common.ThreatMassShooting:         "Mass shooting in %s",
	common.ThreatBombing:              "Bombing in %s",
}

// Synthesizer turns scored feature vectors into per-country forecasts.
type Synthesizer struct {
	rng scoring.RNG
	now func() time.Time
}

// NewSynthesizer constructs a Synthesizer drawing threat types and event
// dates from rng.
func NewSynthesizer(rng scoring.RNG) *Synthesizer {
	return &Synthesizer{rng: rng, now: time.Now}
}

type countryGroup struct {
	scoreSum float64
	count    int
	sources  []string
}

// Synthesize groups the scored samples by country tag, computes each
// country's mean risk score, and emits one forecast per country whose mean
// exceeds the synthesis floor.  A sample tagged with several countries
// contributes its score to each of them.  The projected date falls within
// windowDays of now; the attached sources are the first distinct source
// names among the country's samples.
//
// scores must be parallel to vectors (scores[i] belongs to vectors[i]).
func (s *Synthesizer) Synthesize(vectors []scoring.FeatureVector, scores []float64, windowDays int) []Forecast {
	groups := make(map[string]*countryGroup)
	order := make([]string, 0)

	for i := range vectors {
		for _, country := range vectors[i].Countries {
			g, ok := groups[country]
			if !ok {
				g = &countryGroup{}
				groups[country] = g
				order = append(order, country)
			}
			g.scoreSum += scores[i]
			g.count++
			g.sources = appendDistinct(g.sources, vectors[i].SourceName, maxSources)
		}
	}

	var forecasts []Forecast
	for _, country := range order {
		g := groups[country]
		mean := g.scoreSum / float64(g.count)
		if mean <= synthesisFloor {
			continue
		}

		offset := int(s.rng.Float64() * float64(windowDays))
		date := s.now().AddDate(0, 0, offset)
		threatType := common.AllThreatTypes[s.rng.IntN(len(common.AllThreatTypes))]

		forecasts = append(forecasts, Forecast{
			Country:     country,
			Type:        threatType,
			Description: fmt.Sprintf(descriptions[threatType], country),
			Date:        date.Format("2006-01-02"),
			Confidence:  math.Round(mean*1000) / 1000,
			Sources:     g.sources,
			GeneratedAt: common.NewTimestamp(),
		})
	}
	return forecasts
}

func appendDistinct(list []string, v string, limit int) []string {
	if len(list) >= limit {
		return list
	}
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
