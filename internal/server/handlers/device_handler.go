package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/growtlabs/growt/internal/domain/models"
	"github.com/growtlabs/growt/internal/service/devices"
)

// DeviceHandler serves the admin device-approval console.
type DeviceHandler struct {
	svc    *devices.Service
	logger *zap.Logger
}

// NewDeviceHandler constructs the console adapter.
func NewDeviceHandler(svc *devices.Service, logger *zap.Logger) *DeviceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeviceHandler{svc: svc, logger: logger}
}

// List returns devices, optionally filtered with ?status=pending|approved|rejected.
func (h *DeviceHandler) List(c *gin.Context) {
	status := models.DeviceStatus(c.Query("status"))
	switch status {
	case "", models.DevicePending, models.DeviceApproved, models.DeviceRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter"})
		return
	}

	list, err := h.svc.List(c.Request.Context(), status)
	if err != nil {
		h.logger.Error("failed listing devices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list devices"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// Approve marks the device as allowed to post readings.
func (h *DeviceHandler) Approve(c *gin.Context) {
	if err := h.svc.Approve(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("failed approving device", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to approve device"})
		return
	}
	c.Status(http.StatusOK)
}

// Reject bars the device from posting readings.
func (h *DeviceHandler) Reject(c *gin.Context) {
	if err := h.svc.Reject(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("failed rejecting device", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reject device"})
		return
	}
	c.Status(http.StatusOK)
}
