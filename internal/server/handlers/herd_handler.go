package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/growtlabs/growt/internal/domain/models"
	"github.com/growtlabs/growt/internal/repository/mongodb"
	"github.com/growtlabs/growt/internal/service/herd"
)

// userIDHeader carries the authenticated user id, set by the upstream
// identity layer. The service trusts it; authentication itself lives there.
const userIDHeader = "X-User-ID"

// HerdHandler serves the owner-scoped and public herd views.
type HerdHandler struct {
	svc    *herd.Service
	logger *zap.Logger
}

// NewHerdHandler constructs the HTTP handler adapter.
func NewHerdHandler(svc *herd.Service, logger *zap.Logger) *HerdHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HerdHandler{svc: svc, logger: logger}
}

func ownerID(c *gin.Context) (string, bool) {
	id := c.GetHeader(userIDHeader)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return "", false
	}
	return id, true
}

// RegisterAnimal stores a new animal for the calling owner.
func (h *HerdHandler) RegisterAnimal(c *gin.Context) {
	id, ok := ownerID(c)
	if !ok {
		return
	}

	var animal models.Animal
	if err := c.ShouldBindJSON(&animal); err != nil {
		h.logger.Warn("invalid animal payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	animal.OwnerID = id

	if err := h.svc.RegisterAnimal(c.Request.Context(), animal); err != nil {
		if errors.Is(err, mongodb.ErrDuplicateRFID) {
			c.JSON(http.StatusConflict, gin.H{"error": "rfid already registered"})
			return
		}
		h.logger.Error("failed registering animal", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register animal"})
		return
	}

	c.Status(http.StatusCreated)
}

// ListAnimals returns the caller's registered animals.
func (h *HerdHandler) ListAnimals(c *gin.Context) {
	id, ok := ownerID(c)
	if !ok {
		return
	}

	animals, err := h.svc.Animals(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed listing animals", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list animals"})
		return
	}

	c.JSON(http.StatusOK, animals)
}

// History returns the caller's annotated readings, newest first.
func (h *HerdHandler) History(c *gin.Context) {
	id, ok := ownerID(c)
	if !ok {
		return
	}

	readings, err := h.svc.History(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed loading history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, readings)
}

// Snapshot returns the latest reading per animal in the caller's herd.
func (h *HerdHandler) Snapshot(c *gin.Context) {
	id, ok := ownerID(c)
	if !ok {
		return
	}

	snapshots, err := h.svc.Snapshot(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed loading snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load snapshot"})
		return
	}

	c.JSON(http.StatusOK, snapshots)
}

// Monthly returns the caller's monthly KPI series.
func (h *HerdHandler) Monthly(c *gin.Context) {
	id, ok := ownerID(c)
	if !ok {
		return
	}

	series, err := h.svc.Monthly(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed loading monthly series", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load monthly series"})
		return
	}

	c.JSON(http.StatusOK, series)
}

// PublicSnapshot returns the latest reading per publicly-shared animal.
func (h *HerdHandler) PublicSnapshot(c *gin.Context) {
	snapshots, err := h.svc.PublicSnapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading public snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load public herd"})
		return
	}

	c.JSON(http.StatusOK, snapshots)
}
