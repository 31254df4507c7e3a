package handlers

import (
	"github.com/gin-gonic/gin"

	appwatchlist "github.com/turtacn/GeoRisk-Intelligence/internal/application/watchlist"
	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/watchlist"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/turtacn/GeoRisk-Intelligence/pkg/errors"
)

// WatchlistHandler serves the four watchlists and the operator add/remove
// operations on them.
type WatchlistHandler struct {
	tracker *appwatchlist.Tracker
	logger  logging.Logger
}

// NewWatchlistHandler constructs the handler.
func NewWatchlistHandler(tracker *appwatchlist.Tracker, logger logging.Logger) *WatchlistHandler {
	return &WatchlistHandler{tracker: tracker, logger: logger.Named("http")}
}

// GetAll returns all four lists.
func (h *WatchlistHandler) GetAll(c *gin.Context) {
	respondOK(c, h.tracker.AllLists())
}

// GetSupported returns the supported-groups list.
func (h *WatchlistHandler) GetSupported(c *gin.Context) {
	respondOK(c, h.tracker.Supported())
}

// AddSupported appends a name to the supported-groups list.
func (h *WatchlistHandler) AddSupported(c *gin.Context) {
	h.addFlat(c, h.tracker.AddSupported)
}

// RemoveSupported removes a name from the supported-groups list.
func (h *WatchlistHandler) RemoveSupported(c *gin.Context) {
	h.removeByName(c, h.tracker.RemoveSupported)
}

// GetOpposed returns the opposed-groups list.
func (h *WatchlistHandler) GetOpposed(c *gin.Context) {
	respondOK(c, h.tracker.Opposed())
}

// AddOpposed appends a name to the opposed-groups list.
func (h *WatchlistHandler) AddOpposed(c *gin.Context) {
	h.addFlat(c, h.tracker.AddOpposed)
}

// RemoveOpposed removes a name from the opposed-groups list.
func (h *WatchlistHandler) RemoveOpposed(c *gin.Context) {
	h.removeByName(c, h.tracker.RemoveOpposed)
}

// GetOrganizations returns the dangerous-organizations list.
func (h *WatchlistHandler) GetOrganizations(c *gin.Context) {
	respondOK(c, h.tracker.Organizations())
}

// AddOrganization appends an organization entry.
func (h *WatchlistHandler) AddOrganization(c *gin.Context) {
	var org watchlist.Organization
	if err := c.ShouldBindJSON(&org); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid organization body"))
		return
	}
	if err := h.tracker.AddOrganization(org); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, org.Name)
}

// RemoveOrganization removes the named organization.
func (h *WatchlistHandler) RemoveOrganization(c *gin.Context) {
	h.removeByName(c, h.tracker.RemoveOrganization)
}

// GetIndividuals returns the flagged-individuals list.
func (h *WatchlistHandler) GetIndividuals(c *gin.Context) {
	respondOK(c, h.tracker.Individuals())
}

// AddIndividual appends an individual entry.
func (h *WatchlistHandler) AddIndividual(c *gin.Context) {
	var ind watchlist.Individual
	if err := c.ShouldBindJSON(&ind); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid individual body"))
		return
	}
	if err := h.tracker.AddIndividual(ind); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, ind.Name)
}

// RemoveIndividual removes the named individual.
func (h *WatchlistHandler) RemoveIndividual(c *gin.Context) {
	h.removeByName(c, h.tracker.RemoveIndividual)
}

func (h *WatchlistHandler) addFlat(c *gin.Context, add func(string) error) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}
	if err := add(req.Name); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, req.Name)
}

func (h *WatchlistHandler) removeByName(c *gin.Context, remove func(string) error) {
	name := c.Param("name")
	if err := remove(name); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, name)
}
