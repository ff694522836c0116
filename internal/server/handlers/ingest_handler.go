package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/growtlabs/growt/internal/domain/models"
	"github.com/growtlabs/growt/internal/service/devices"
	"github.com/growtlabs/growt/internal/service/herd"
)

// IngestHandler accepts weighing events from IoT scales.
type IngestHandler struct {
	devices *devices.Service
	herd    *herd.Service
	logger  *zap.Logger
}

// NewIngestHandler constructs the ingest adapter.
func NewIngestHandler(deviceSvc *devices.Service, herdSvc *herd.Service, logger *zap.Logger) *IngestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngestHandler{devices: deviceSvc, herd: herdSvc, logger: logger}
}

// Receive validates the posting device and stores one weighing event.
func (h *IngestHandler) Receive(c *gin.Context) {
	var req models.WeighingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid weighing payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.devices.Authorize(c.Request.Context(), req.DeviceID); err != nil {
		if errors.Is(err, devices.ErrNotApproved) {
			c.JSON(http.StatusForbidden, gin.H{"error": "device not approved"})
			return
		}
		h.logger.Error("failed authorizing device", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to authorize device"})
		return
	}

	if err := h.herd.RecordWeighing(c.Request.Context(), req); err != nil {
		if errors.Is(err, herd.ErrBadRecordedAt) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed recording weighing", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record weighing"})
		return
	}

	c.Status(http.StatusCreated)
}
