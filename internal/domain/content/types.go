// Package content defines the processed-content document model and the
// filesystem store the analysis pipelines read from.  Documents are produced
// by upstream ingestion and dropped as JSON files under
// <content_dir>/<source_type>/<source_name>/; this package never writes them.
package content

import (
	"encoding/json"
	"strings"

	"github.com/turtacn/GeoRisk-Intelligence/pkg/types/common"
)

// Sentiment is the sentiment annotation attached to a sub-record.  Compound
// is the only field the scoring pipeline consumes; the component scores are
// retained for API consumers.
type Sentiment struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive,omitempty"`
	Negative float64 `json:"negative,omitempty"`
	Neutral  float64 `json:"neutral,omitempty"`
}

// Entity is a named entity tagged on a sub-record by upstream NLP.
type Entity struct {
	Text       string            `json:"text"`
	Type       common.EntityType `json:"type"`
	Confidence float64           `json:"confidence"`
}

// Record is one unit of analysed content: a social-media post, a news
// article, or a book excerpt.  All fields are optional; upstream producers
// vary in what they annotate.
type Record struct {
	Text      string    `json:"text,omitempty"`
	Sentiment Sentiment `json:"sentiment"`
	Entities  []Entity  `json:"entities"`
	Countries []string  `json:"countries"`
}

// Document is one processed-content file.  Exactly one of Posts, Articles,
// or Books is populated depending on Type; custom documents instead carry a
// free-form Data object whose fields are recognised by suffix (see
// CustomFields).
type Document struct {
	Type     common.SourceType          `json:"type"`
	Source   string                     `json:"source"`
	Posts    []Record                   `json:"posts,omitempty"`
	Articles []Record                   `json:"articles,omitempty"`
	Books    []Record                   `json:"books,omitempty"`
	Data     map[string]json.RawMessage `json:"data,omitempty"`
}

// Records returns the sub-records of a non-custom document in file order.
// Custom documents have no sub-records; their payload is accessed through
// CustomFields.
func (d *Document) Records() []Record {
	switch d.Type {
	case common.SourceSocialMedia:
		return d.Posts
	case common.SourceMainstreamMedia:
		return d.Articles
	case common.SourceBook:
		return d.Books
	}
	return nil
}

// CustomFields is the decoded payload of a custom document.  Field names in
// Data are matched by suffix: "*_sentiment" (object), "*_entities" (array),
// "*_countries" (array).  When several fields share a suffix the last one
// decoded wins, mirroring how the ingestion contract is defined.
type CustomFields struct {
	Sentiment Sentiment
	Entities  []Entity
	Countries []string
}

// CustomFields decodes the suffix-matched fields of a custom document.
// Fields that fail to decode are skipped; a custom document with no
// recognisable fields yields the zero value.
func (d *Document) CustomFields() CustomFields {
	var out CustomFields
	for field, raw := range d.Data {
		switch {
		case strings.HasSuffix(field, "_sentiment"):
			var s Sentiment
			if err := json.Unmarshal(raw, &s); err == nil {
				out.Sentiment = s
			}
		case strings.HasSuffix(field, "_entities"):
			var es []Entity
			if err := json.Unmarshal(raw, &es); err == nil {
				out.Entities = es
			}
		case strings.HasSuffix(field, "_countries"):
			var cs []string
			if err := json.Unmarshal(raw, &cs); err == nil {
				out.Countries = cs
			}
		}
	}
	return out
}

// AllEntities returns every entity tagged anywhere on the document,
// regardless of source type.
func (d *Document) AllEntities() []Entity {
	if d.Type == common.SourceCustom {
		return d.CustomFields().Entities
	}
	var out []Entity
	for _, rec := range d.Records() {
		out = append(out, rec.Entities...)
	}
	return out
}
