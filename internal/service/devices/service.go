package devices

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/growtlabs/growt/internal/domain/models"
	repo "github.com/growtlabs/growt/internal/repository/mongodb"
)

// ErrNotApproved indicates a device that has not passed the approval console.
var ErrNotApproved = errors.New("device not approved")

// Service implements the device approval flow. Devices register implicitly
// as pending on first sighting and only approved devices may post readings.
type Service struct {
	repo   repo.Repository
	logger *zap.Logger
}

// NewService wires a new device service instance.
func NewService(repository repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger}
}

// Authorize registers the device if unseen and rejects anything not approved.
func (s *Service) Authorize(ctx context.Context, deviceID string) error {
	device, err := s.repo.EnsureDevice(ctx, deviceID)
	if err != nil {
		return err
	}
	if device.Status != models.DeviceApproved {
		s.logger.Warn("reading from unapproved device rejected",
			zap.String("device_id", deviceID),
			zap.String("status", string(device.Status)))
		return ErrNotApproved
	}
	return nil
}

// List returns devices, optionally filtered by approval status.
func (s *Service) List(ctx context.Context, status models.DeviceStatus) ([]models.Device, error) {
	return s.repo.ListDevices(ctx, status)
}

// Approve marks a device as allowed to post readings.
func (s *Service) Approve(ctx context.Context, deviceID string) error {
	if err := s.repo.SetDeviceStatus(ctx, deviceID, models.DeviceApproved); err != nil {
		return err
	}
	s.logger.Info("device approved", zap.String("device_id", deviceID))
	return nil
}

// Reject bars a device from posting readings.
func (s *Service) Reject(ctx context.Context, deviceID string) error {
	if err := s.repo.SetDeviceStatus(ctx, deviceID, models.DeviceRejected); err != nil {
		return err
	}
	s.logger.Info("device rejected", zap.String("device_id", deviceID))
	return nil
}
