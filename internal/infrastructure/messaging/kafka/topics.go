// Package kafka publishes platform events to Apache Kafka.  Downstream
// consumers (alerting, archival, dashboards) subscribe to the topics defined
// here; this service is producer-only.
package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
	"github.com/turtacn/GeoRisk-Intelligence/pkg/types/common"
)

// Topic constants.  The configured topic prefix is prepended at publish
// time, e.g. "georisk.forecast.updated".
const (
	TopicForecastUpdated     = "forecast.updated"
	TopicWatchlistUpdated    = "watchlist.updated"
	TopicWatchlistDiscovered = "watchlist.discovered"
	TopicModelSnapshotSaved  = "model.snapshot_saved"
)

// EventEnvelope standardizes event messages.
type EventEnvelope struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	Source        string            `json:"source"`
	Timestamp     time.Time         `json:"timestamp"`
	SchemaVersion string            `json:"schema_version"`
	TraceID       string            `json:"trace_id,omitempty"`
	Payload       json.RawMessage   `json:"payload"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// ForecastUpdatedPayload announces that a horizon's forecast set was
// replaced.
type ForecastUpdatedPayload struct {
	Timeframe     string    `json:"timeframe"`
	ForecastCount int       `json:"forecast_count"`
	Countries     []string  `json:"countries"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// WatchlistUpdatedPayload announces that a tracking cycle recomputed the
// structured lists.
type WatchlistUpdatedPayload struct {
	Organizations int       `json:"organizations"`
	Individuals   int       `json:"individuals"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// WatchlistDiscoveredPayload announces one automatically discovered entry.
type WatchlistDiscoveredPayload struct {
	List         string    `json:"list"` // "dangerous_organizations" | "flagged_individuals"
	Name         string    `json:"name"`
	ThreatLevel  string    `json:"threat_level"`
	DiscoveredAt time.Time `json:"discovered_at"`
}

// ModelSnapshotSavedPayload announces a persisted model snapshot.
type ModelSnapshotSavedPayload struct {
	Path     string    `json:"path"`
	NumTrees int       `json:"num_trees"`
	SavedAt  time.Time `json:"saved_at"`
}

// NewEventEnvelope wraps payload in a versioned envelope with a fresh event ID.
func NewEventEnvelope(eventType string, source string, payload interface{}) (*EventEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to marshal payload")
	}
	return &EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: "v1",
		Payload:       data,
	}, nil
}

// DecodePayload unmarshals the envelope payload into target.  A null or
// empty payload is a no-op.
func (e *EventEnvelope) DecodePayload(target interface{}) error {
	if len(e.Payload) == 0 || string(e.Payload) == "null" {
		return nil
	}
	return json.Unmarshal(e.Payload, target)
}

// ToMessage serializes the envelope into a ProducerMessage for topic.
func (e *EventEnvelope) ToMessage(topic string) (*common.ProducerMessage, error) {
	val, err := json.Marshal(e)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to marshal envelope")
	}
	headers := map[string]string{
		"event_type":     e.EventType,
		"source_service": e.Source,
		"schema_version": e.SchemaVersion,
	}
	if e.TraceID != "" {
		headers["trace_id"] = e.TraceID
	}
	return &common.ProducerMessage{
		Topic:     topic,
		Key:       []byte(e.EventID),
		Value:     val,
		Headers:   headers,
		Timestamp: e.Timestamp,
	}, nil
}
