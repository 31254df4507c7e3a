// Package common defines the shared vocabulary types used across the
// GeoRisk-Intelligence platform: threat levels, source and entity kinds,
// the closed set of forecastable threat types, and the generic API
// response envelopes.
package common

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ID is a string alias for UUID v4.
type ID string

// NewID generates a new UUID v4.
func NewID() ID {
	return ID(uuid.New().String())
}

// Validate checks if the ID is a valid UUID.
func (id ID) Validate() error {
	if id == "" {
		return fmt.Errorf("ID cannot be empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return fmt.Errorf("invalid ID format: %w", err)
	}
	return nil
}

// ThreatLevel is the ordinal severity assigned to a watchlist entry.
// It is recomputed from mention counts on every tracking cycle, never
// incremented or decremented relative to its previous value.
type ThreatLevel string

const (
	ThreatLow    ThreatLevel = "Low"
	ThreatMedium ThreatLevel = "Medium"
	ThreatHigh   ThreatLevel = "High"
)

// Rank returns the ordinal position of the level (Low=0, Medium=1, High=2).
// Unknown levels rank below Low.
func (l ThreatLevel) Rank() int {
	switch l {
	case ThreatLow:
		return 0
	case ThreatMedium:
		return 1
	case ThreatHigh:
		return 2
	default:
		return -1
	}
}

// Valid reports whether l is one of the three defined levels.
func (l ThreatLevel) Valid() bool {
	return l.Rank() >= 0
}

// SourceType classifies a processed-content document.
type SourceType string

const (
	SourceSocialMedia     SourceType = "social_media"
	SourceMainstreamMedia SourceType = "mainstream_media"
	SourceBook            SourceType = "book"
	SourceCustom          SourceType = "custom"
)

// AllSourceTypes is the fixed scan order for content-store buckets.
var AllSourceTypes = []SourceType{
	SourceSocialMedia,
	SourceMainstreamMedia,
	SourceBook,
	SourceCustom,
}

// Valid reports whether s is a known source type.
func (s SourceType) Valid() bool {
	switch s {
	case SourceSocialMedia, SourceMainstreamMedia, SourceBook, SourceCustom:
		return true
	}
	return false
}

// EntityType classifies a tagged named entity on a content sub-record.
type EntityType string

const (
	EntityOrganization EntityType = "ORG"
	EntityPerson       EntityType = "PERSON"
	EntityLocation     EntityType = "GPE"
	EntityUnknown      EntityType = "UNKNOWN"
)

// ThreatType is one of the closed set of forecastable event categories.
type ThreatType string

const (
	ThreatTerroristAttack      ThreatType = "terrorist_attack"
	ThreatCivilUnrest          ThreatType = "civil_unrest"
	ThreatPoliticalInstability ThreatType = "political_instability"
	ThreatMilitaryConflict     ThreatType = "military_conflict"
	ThreatCyberAttack          ThreatType = "cyber_attack"
	ThreatInfrastructureAttack ThreatType = "infrastructure_attack"
	ThreatAssassination        ThreatType = "assassination"
	ThreatHostageSituation     ThreatType = "hostage_situation"
	ThreatMassShooting         ThreatType = "mass_shooting"
	ThreatBombing              ThreatType = "bombing"
)

// AllThreatTypes is the closed set forecasts draw from. Order is fixed so
// that a seeded randomness source produces reproducible type selection.
var AllThreatTypes = []ThreatType{
	ThreatTerroristAttack,
	ThreatCivilUnrest,
	ThreatPoliticalInstability,
	ThreatMilitaryConflict,
	ThreatCyberAttack,
	ThreatInfrastructureAttack,
	ThreatAssassination,
	ThreatHostageSituation,
	ThreatMassShooting,
	ThreatBombing,
}

// Timestamp is a time.Time alias serialized as RFC 3339.
type Timestamp time.Time

// NewTimestamp returns the current UTC time as a Timestamp.
func NewTimestamp() Timestamp {
	return Timestamp(time.Now().UTC())
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(time.RFC3339Nano))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	*t = Timestamp(parsed.UTC())
	return nil
}

// ErrorDetail provides structured error information for API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the generic wrapper for all API responses.
type APIResponse[T any] struct {
	Success   bool         `json:"success"`
	Data      T            `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp Timestamp    `json:"timestamp"`
}

// NewSuccessResponse creates a successful APIResponse.
func NewSuccessResponse[T any](data T) APIResponse[T] {
	return APIResponse[T]{
		Success:   true,
		Data:      data,
		Timestamp: NewTimestamp(),
	}
}

// NewErrorResponse creates an error APIResponse.
func NewErrorResponse(code string, message string) APIResponse[any] {
	return APIResponse[any]{
		Success: false,
		Error: &ErrorDetail{
			Code:    code,
			Message: message,
		},
		Timestamp: NewTimestamp(),
	}
}

// HealthStatus indicates the health of a component or service.
type HealthStatus string

const (
	HealthUp       HealthStatus = "up"
	HealthDown     HealthStatus = "down"
	HealthDegraded HealthStatus = "degraded"
)

// ComponentHealth provides health information for a specific component.
type ComponentHealth struct {
	Name    string        `json:"name"`
	Status  HealthStatus  `json:"status"`
	Latency time.Duration `json:"latency"`
	Message string        `json:"message,omitempty"`
}

// ProducerMessage is the transport-agnostic outbound message shape used by
// the messaging layer.
type ProducerMessage struct {
	Topic     string
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}
