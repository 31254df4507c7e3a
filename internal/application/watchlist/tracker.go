// Package watchlist runs the entity-tracking pipeline: a periodic cycle that
// recomputes threat levels from entity mentions in recent content, discovers
// new entries, and persists the lists; plus operator add/remove operations on
// all four lists.
package watchlist

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/turtacn/GeoRisk-Intelligence/internal/config"
	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/content"
	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/watchlist"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/storage/jsonstore"
	"github.com/turtacn/GeoRisk-Intelligence/internal/scheduler"
	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
	"github.com/turtacn/GeoRisk-Intelligence/pkg/types/common"
)

// Persisted list file names under the watchlist directory.
const (
	supportedFile     = "supported_groups.json"
	opposedFile       = "opposed_groups.json"
	organizationsFile = "dangerous_organizations.json"
	individualsFile   = "flagged_individuals.json"
)

// EventPublisher is the slice of the messaging producer the tracker uses.
// A nil publisher disables event publishing.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, eventType string, payload interface{}) error
}

// Status is the tracker's introspection snapshot.
type Status struct {
	Running   bool           `json:"running"`
	LastCycle time.Time      `json:"last_cycle"`
	LastError string         `json:"last_error,omitempty"`
	Counts    map[string]int `json:"counts"`
}

// Lists is the full watchlist state returned to API and CLI readers.
type Lists struct {
	SupportedGroups        []string                 `json:"supported_groups"`
	OpposedGroups          []string                 `json:"opposed_groups"`
	DangerousOrganizations []watchlist.Organization `json:"dangerous_organizations"`
	FlaggedIndividuals     []watchlist.Individual   `json:"flagged_individuals"`
}

// Tracker owns the four watchlists and the background tracking cycle.
// All methods are safe for concurrent use.
type Tracker struct {
	cfg       config.WatchlistConfig
	dir       string
	store     *content.Store
	publisher EventPublisher
	metrics   *prometheus.AppMetrics
	logger    logging.Logger

	mu            sync.RWMutex
	supported     []string
	opposed       []string
	organizations []watchlist.Organization
	individuals   []watchlist.Individual
	lastCycle     time.Time
	lastError     string

	runner *scheduler.Runner
}

// NewTracker constructs the tracker, loading each persisted list or seeding
// it when absent.  Seeded lists are persisted immediately so a restart picks
// up the same state.  Load failures fall back to the seeds, logged.
func NewTracker(
	cfg config.WatchlistConfig,
	watchlistDir string,
	store *content.Store,
	publisher EventPublisher,
	metrics *prometheus.AppMetrics,
	logger logging.Logger,
) *Tracker {
	if metrics == nil {
		metrics = prometheus.NewAppMetrics(prometheus.NopCollector{})
	}
	t := &Tracker{
		cfg:       cfg,
		dir:       watchlistDir,
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger.Named("watchlist"),
	}
	t.loadOrSeed()
	t.runner = scheduler.NewRunner("watchlist", cfg.Interval, cfg.ErrorBackoff, t.RunCycle, logger)
	return t
}

func (t *Tracker) loadOrSeed() {
	loadList(t, supportedFile, &t.supported, func() []string { return cloneStrings(t.cfg.SupportedGroups) })
	loadList(t, opposedFile, &t.opposed, func() []string { return cloneStrings(t.cfg.OpposedGroups) })
	loadList(t, organizationsFile, &t.organizations, watchlist.SeedOrganizations)
	loadList(t, individualsFile, &t.individuals, watchlist.SeedIndividuals)
	t.updateSizeMetrics()
}

// loadList fills dest from the persisted file, falling back to seed() when
// the file is absent or unreadable.  A seeded list is persisted right away.
func loadList[T any](t *Tracker, file string, dest *[]T, seed func() []T) {
	path := filepath.Join(t.dir, file)
	var list []T
	err := jsonstore.Load(path, &list)
	switch {
	case err == nil:
		*dest = list
		t.logger.Info("loaded persisted watchlist",
			logging.String("file", file), logging.Int("count", len(list)))
		return
	case apperrors.IsNotFound(err):
	default:
		t.logger.Warn("discarding unreadable watchlist file",
			logging.String("file", file), logging.Err(err))
	}

	*dest = seed()
	if err := jsonstore.Save(path, *dest); err != nil {
		t.logger.Warn("failed to persist seeded watchlist",
			logging.String("file", file), logging.Err(err))
	}
}

// RunCycle executes one tracking cycle: recompute all threat levels from
// recent entity mentions, apply discovery, persist the structured lists.
func (t *Tracker) RunCycle(ctx context.Context) error {
	start := time.Now()

	docs, err := t.store.Recent(t.cfg.ContentWindow, t.cfg.MaxDocuments)
	if err != nil {
		t.recordCycle(start, err)
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "content scan failed")
	}
	t.metrics.DocumentsScanned.WithLabelValues("watchlist").Add(float64(len(docs)))

	var entities []content.Entity
	for i := range docs {
		entities = append(entities, docs[i].AllEntities()...)
	}

	rules := watchlist.DiscoveryRules{
		Confidence: t.cfg.DiscoveryConfidence,
		Mentions:   t.cfg.DiscoveryMentions,
	}

	t.mu.Lock()
	orgs, orgDiscovered := watchlist.UpdateOrganizations(t.organizations, entities, rules)
	inds, indDiscovered := watchlist.UpdateIndividuals(t.individuals, entities, rules)
	t.organizations = orgs
	t.individuals = inds
	t.updateSizeMetrics()
	t.mu.Unlock()

	if err := t.persistStructured(); err != nil {
		t.recordCycle(start, err)
		return err
	}

	t.metrics.Discoveries.WithLabelValues("organization").Add(float64(len(orgDiscovered)))
	t.metrics.Discoveries.WithLabelValues("individual").Add(float64(len(indDiscovered)))

	t.publishUpdated(ctx, len(orgs), len(inds))
	for _, name := range orgDiscovered {
		t.publishDiscovered(ctx, "dangerous_organizations", name)
	}
	for _, name := range indDiscovered {
		t.publishDiscovered(ctx, "flagged_individuals", name)
	}

	t.recordCycle(start, nil)
	t.logger.Info("watchlist cycle complete",
		logging.Int("documents", len(docs)),
		logging.Int("entities", len(entities)),
		logging.Int("discovered", len(orgDiscovered)+len(indDiscovered)),
		logging.Duration("elapsed", time.Since(start)))
	return nil
}

func (t *Tracker) persistStructured() error {
	t.mu.RLock()
	orgs := cloneOrganizations(t.organizations)
	inds := cloneIndividuals(t.individuals)
	t.mu.RUnlock()

	if err := jsonstore.Save(filepath.Join(t.dir, organizationsFile), orgs); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeWatchlistStoreFailed, "failed to persist organizations")
	}
	if err := jsonstore.Save(filepath.Join(t.dir, individualsFile), inds); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeWatchlistStoreFailed, "failed to persist individuals")
	}
	return nil
}

func (t *Tracker) persistFlat(file string, list []string) error {
	if err := jsonstore.Save(filepath.Join(t.dir, file), list); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeWatchlistStoreFailed, "failed to persist watchlist").
			WithDetail(file)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Operator add/remove on the flat label lists
// ─────────────────────────────────────────────────────────────────────────────

// AddSupported appends name to the supported-groups list.
func (t *Tracker) AddSupported(name string) error {
	return t.addFlat(supportedFile, &t.supported, name)
}

// RemoveSupported removes name from the supported-groups list.
func (t *Tracker) RemoveSupported(name string) error {
	return t.removeFlat(supportedFile, &t.supported, name)
}

// AddOpposed appends name to the opposed-groups list.
func (t *Tracker) AddOpposed(name string) error {
	return t.addFlat(opposedFile, &t.opposed, name)
}

// RemoveOpposed removes name from the opposed-groups list.
func (t *Tracker) RemoveOpposed(name string) error {
	return t.removeFlat(opposedFile, &t.opposed, name)
}

func (t *Tracker) addFlat(file string, list *[]string, name string) error {
	if name == "" {
		return apperrors.New(apperrors.ErrCodeValidation, "name required")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, existing := range *list {
		if existing == name {
			t.logger.Warn("duplicate watchlist entry rejected",
				logging.String("file", file), logging.String("name", name))
			return apperrors.New(apperrors.ErrCodeWatchlistDuplicateEntry,
				"entry already present in watchlist").WithDetail(name)
		}
	}
	*list = append(*list, name)
	t.updateSizeMetrics()
	return t.persistFlat(file, *list)
}

func (t *Tracker) removeFlat(file string, list *[]string, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, existing := range *list {
		if existing == name {
			*list = append((*list)[:i], (*list)[i+1:]...)
			t.updateSizeMetrics()
			return t.persistFlat(file, *list)
		}
	}
	t.logger.Warn("missing watchlist entry rejected",
		logging.String("file", file), logging.String("name", name))
	return apperrors.New(apperrors.ErrCodeWatchlistEntryNotFound,
		"entry not present in watchlist").WithDetail(name)
}

// ─────────────────────────────────────────────────────────────────────────────
// Operator add/remove on the structured lists
// ─────────────────────────────────────────────────────────────────────────────

// AddOrganization appends org to the dangerous-organizations list.  An empty
// threat level defaults to Low.
func (t *Tracker) AddOrganization(org watchlist.Organization) error {
	if org.Name == "" {
		return apperrors.New(apperrors.ErrCodeValidation, "name required")
	}
	if org.ThreatLevel == "" {
		org.ThreatLevel = common.ThreatLow
	}
	if !org.ThreatLevel.Valid() {
		return apperrors.New(apperrors.ErrCodeValidation, "invalid threat level").
			WithDetail(string(org.ThreatLevel))
	}
	org.LastUpdated = common.NewTimestamp()

	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.organizations {
		if t.organizations[i].Name == org.Name {
			t.logger.Warn("duplicate organization rejected", logging.String("name", org.Name))
			return apperrors.New(apperrors.ErrCodeWatchlistDuplicateEntry,
				"entry already present in watchlist").WithDetail(org.Name)
		}
	}
	t.organizations = append(t.organizations, org)
	t.updateSizeMetrics()
	return jsonstore.Save(filepath.Join(t.dir, organizationsFile), t.organizations)
}

// RemoveOrganization removes the named organization.
func (t *Tracker) RemoveOrganization(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.organizations {
		if t.organizations[i].Name == name {
			t.organizations = append(t.organizations[:i], t.organizations[i+1:]...)
			t.updateSizeMetrics()
			return jsonstore.Save(filepath.Join(t.dir, organizationsFile), t.organizations)
		}
	}
	t.logger.Warn("missing organization rejected", logging.String("name", name))
	return apperrors.New(apperrors.ErrCodeWatchlistEntryNotFound,
		"entry not present in watchlist").WithDetail(name)
}

// AddIndividual appends ind to the flagged-individuals list.  An empty threat
// level defaults to Low.
func (t *Tracker) AddIndividual(ind watchlist.Individual) error {
	if ind.Name == "" {
		return apperrors.New(apperrors.ErrCodeValidation, "name required")
	}
	if ind.ThreatLevel == "" {
		ind.ThreatLevel = common.ThreatLow
	}
	if !ind.ThreatLevel.Valid() {
		return apperrors.New(apperrors.ErrCodeValidation, "invalid threat level").
			WithDetail(string(ind.ThreatLevel))
	}
	ind.LastUpdated = common.NewTimestamp()

	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.individuals {
		if t.individuals[i].Name == ind.Name {
			t.logger.Warn("duplicate individual rejected", logging.String("name", ind.Name))
			return apperrors.New(apperrors.ErrCodeWatchlistDuplicateEntry,
				"entry already present in watchlist").WithDetail(ind.Name)
		}
	}
	t.individuals = append(t.individuals, ind)
	t.updateSizeMetrics()
	return jsonstore.Save(filepath.Join(t.dir, individualsFile), t.individuals)
}

// RemoveIndividual removes the named individual.
func (t *Tracker) RemoveIndividual(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.individuals {
		if t.individuals[i].Name == name {
			t.individuals = append(t.individuals[:i], t.individuals[i+1:]...)
			t.updateSizeMetrics()
			return jsonstore.Save(filepath.Join(t.dir, individualsFile), t.individuals)
		}
	}
	t.logger.Warn("missing individual rejected", logging.String("name", name))
	return apperrors.New(apperrors.ErrCodeWatchlistEntryNotFound,
		"entry not present in watchlist").WithDetail(name)
}

// ─────────────────────────────────────────────────────────────────────────────
// Readers
// ─────────────────────────────────────────────────────────────────────────────

// Supported returns a copy of the supported-groups list.
func (t *Tracker) Supported() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return cloneStrings(t.supported)
}

// Opposed returns a copy of the opposed-groups list.
func (t *Tracker) Opposed() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return cloneStrings(t.opposed)
}

// Organizations returns a copy of the dangerous-organizations list.
func (t *Tracker) Organizations() []watchlist.Organization {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return cloneOrganizations(t.organizations)
}

// Individuals returns a copy of the flagged-individuals list.
func (t *Tracker) Individuals() []watchlist.Individual {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return cloneIndividuals(t.individuals)
}

// AllLists returns the full watchlist state.
func (t *Tracker) AllLists() Lists {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Lists{
		SupportedGroups:        cloneStrings(t.supported),
		OpposedGroups:          cloneStrings(t.opposed),
		DangerousOrganizations: cloneOrganizations(t.organizations),
		FlaggedIndividuals:     cloneIndividuals(t.individuals),
	}
}

// Status reports the tracker's run state and per-list sizes.
func (t *Tracker) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Status{
		Running:   t.runner.Running(),
		LastCycle: t.lastCycle,
		LastError: t.lastError,
		Counts: map[string]int{
			"supported_groups":        len(t.supported),
			"opposed_groups":          len(t.opposed),
			"dangerous_organizations": len(t.organizations),
			"flagged_individuals":     len(t.individuals),
		},
	}
}

// Start launches the background tracking loop.
func (t *Tracker) Start() { t.runner.Start() }

// Stop halts the background tracking loop.
func (t *Tracker) Stop() { t.runner.Stop() }

// Kick requests an immediate cycle.
func (t *Tracker) Kick() { t.runner.Kick() }

// ─────────────────────────────────────────────────────────────────────────────
// Internals
// ─────────────────────────────────────────────────────────────────────────────

func (t *Tracker) publishUpdated(ctx context.Context, orgs, inds int) {
	if t.publisher == nil {
		return
	}
	payload := kafka.WatchlistUpdatedPayload{
		Organizations: orgs,
		Individuals:   inds,
		UpdatedAt:     time.Now().UTC(),
	}
	if err := t.publisher.PublishEvent(ctx, kafka.TopicWatchlistUpdated, "watchlist.updated", payload); err != nil {
		t.metrics.EventsPublished.WithLabelValues(kafka.TopicWatchlistUpdated, "error").Inc()
		t.logger.Warn("failed to publish watchlist event", logging.Err(err))
		return
	}
	t.metrics.EventsPublished.WithLabelValues(kafka.TopicWatchlistUpdated, "ok").Inc()
}

func (t *Tracker) publishDiscovered(ctx context.Context, list, name string) {
	if t.publisher == nil {
		return
	}
	payload := kafka.WatchlistDiscoveredPayload{
		List:         list,
		Name:         name,
		ThreatLevel:  string(common.ThreatLow),
		DiscoveredAt: time.Now().UTC(),
	}
	if err := t.publisher.PublishEvent(ctx, kafka.TopicWatchlistDiscovered, "watchlist.discovered", payload); err != nil {
		t.metrics.EventsPublished.WithLabelValues(kafka.TopicWatchlistDiscovered, "error").Inc()
		t.logger.Warn("failed to publish discovery event",
			logging.String("name", name), logging.Err(err))
		return
	}
	t.metrics.EventsPublished.WithLabelValues(kafka.TopicWatchlistDiscovered, "ok").Inc()
}

func (t *Tracker) recordCycle(start time.Time, err error) {
	status := "ok"
	msg := ""
	if err != nil {
		status = "error"
		msg = err.Error()
	}
	t.metrics.CycleTotal.WithLabelValues("watchlist", status).Inc()
	t.metrics.CycleDuration.WithLabelValues("watchlist").Observe(time.Since(start).Seconds())

	t.mu.Lock()
	t.lastCycle = time.Now().UTC()
	t.lastError = msg
	t.mu.Unlock()
}

// updateSizeMetrics reads the list lengths; callers hold the write lock or
// run during construction.
func (t *Tracker) updateSizeMetrics() {
	t.metrics.WatchlistSize.WithLabelValues("supported_groups").Set(float64(len(t.supported)))
	t.metrics.WatchlistSize.WithLabelValues("opposed_groups").Set(float64(len(t.opposed)))
	t.metrics.WatchlistSize.WithLabelValues("dangerous_organizations").Set(float64(len(t.organizations)))
	t.metrics.WatchlistSize.WithLabelValues("flagged_individuals").Set(float64(len(t.individuals)))
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneOrganizations(in []watchlist.Organization) []watchlist.Organization {
	out := make([]watchlist.Organization, len(in))
	copy(out, in)
	return out
}

func cloneIndividuals(in []watchlist.Individual) []watchlist.Individual {
	out := make([]watchlist.Individual, len(in))
	copy(out, in)
	return out
}
