package scoring

import (
	"strings"

	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/content"
	"github.com/turtacn/GeoRisk-Intelligence/pkg/types/common"
)

// FeatureVector is one scoring sample: the numeric features extracted from a
// single content sub-record (or a whole custom document), plus the country
// tags used for per-country aggregation downstream.
type FeatureVector struct {
	SourceType common.SourceType
	SourceName string
	Countries  []string
	Values     map[string]float64
}

// Per-source base priors.  Mainstream media weighs history and recency
// highest; books carry strong historical signal but little temporal signal.
var sourceBaselines = map[common.SourceType]struct{ historical, temporal float64 }{
	common.SourceSocialMedia:     {0.5, 0.5},
	common.SourceMainstreamMedia: {0.6, 0.6},
	common.SourceBook:            {0.7, 0.3},
	common.SourceCustom:          {0.5, 0.5},
}

// ExtractFeatures converts documents into scoring samples.  Non-custom
// documents yield one sample per sub-record; a custom document yields exactly
// one sample built from its suffix-matched data fields.  Documents with an
// unknown source type are skipped.
func ExtractFeatures(docs []content.Document) []FeatureVector {
	var out []FeatureVector
	for i := range docs {
		doc := &docs[i]
		switch doc.Type {
		case common.SourceSocialMedia, common.SourceMainstreamMedia, common.SourceBook:
			recs := doc.Records()
			for j := range recs {
				out = append(out, recordFeatures(doc, &recs[j]))
			}
		case common.SourceCustom:
			out = append(out, customFeatures(doc))
		}
	}
	return out
}

func recordFeatures(doc *content.Document, rec *content.Record) FeatureVector {
	base := sourceBaselines[doc.Type]
	values := map[string]float64{
		"text_sentiment":      rec.Sentiment.Compound,
		"entity_presence":     boolFeature(len(rec.Entities) > 0),
		"entity_count":        float64(len(rec.Entities)),
		"country_count":       float64(len(rec.Countries)),
		"historical_patterns": base.historical,
		"temporal_factors":    base.temporal,
	}
	addEntityTypeCounts(values, rec.Entities)

	return FeatureVector{
		SourceType: doc.Type,
		SourceName: doc.Source,
		Countries:  rec.Countries,
		Values:     values,
	}
}

func customFeatures(doc *content.Document) FeatureVector {
	base := sourceBaselines[common.SourceCustom]
	fields := doc.CustomFields()

	values := map[string]float64{
		"text_sentiment":      fields.Sentiment.Compound,
		"entity_presence":     boolFeature(len(fields.Entities) > 0),
		"entity_count":        float64(len(fields.Entities)),
		"country_count":       float64(len(fields.Countries)),
		"historical_patterns": base.historical,
		"temporal_factors":    base.temporal,
	}
	addEntityTypeCounts(values, fields.Entities)

	return FeatureVector{
		SourceType: common.SourceCustom,
		SourceName: doc.Source,
		Countries:  fields.Countries,
		Values:     values,
	}
}

// addEntityTypeCounts records one "entity_<type>_count" feature per entity
// type present, e.g. "entity_org_count".
func addEntityTypeCounts(values map[string]float64, entities []content.Entity) {
	for _, e := range entities {
		typ := e.Type
		if typ == "" {
			typ = common.EntityUnknown
		}
		values["entity_"+strings.ToLower(string(typ))+"_count"]++
	}
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
