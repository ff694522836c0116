package herd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/growtlabs/growt/internal/domain/models"
	repo "github.com/growtlabs/growt/internal/repository/mongodb"
	"github.com/growtlabs/growt/internal/service/analytics"
)

// Validation errors surfaced to the HTTP layer as client faults.
var (
	ErrMissingOwner  = errors.New("owner id is required")
	ErrBadRecordedAt = errors.New("recorded_at must be an RFC 3339 timestamp")
)

// Service orchestrates the herd views: it fetches raw joined rows for a
// visibility scope and runs the analytics pipeline over them. It holds no
// state between calls; every request recomputes from the raw readings.
type Service struct {
	repo     repo.Repository
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new herd service. loc is the reporting timezone used
// for monthly bucketing; nil falls back to UTC inside the pipeline.
func NewService(repository repo.Repository, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repository,
		location: loc,
		logger:   logger,
		now:      time.Now,
	}
}

// RegisterAnimal stores a new head of livestock keyed by its RFID tag.
func (s *Service) RegisterAnimal(ctx context.Context, animal models.Animal) error {
	if animal.OwnerID == "" {
		return ErrMissingOwner
	}
	if animal.DOB != "" {
		if _, err := time.Parse("2006-01-02", animal.DOB); err != nil {
			return fmt.Errorf("dob must be YYYY-MM-DD: %w", err)
		}
	}
	animal.CreatedAt = s.now().UTC()

	if err := s.repo.InsertAnimal(ctx, animal); err != nil {
		return err
	}

	s.logger.Info("animal registered",
		zap.String("rfid", animal.RFID),
		zap.String("owner_id", animal.OwnerID))
	return nil
}

// Animals lists the caller's registered animals.
func (s *Service) Animals(ctx context.Context, ownerID string) ([]models.Animal, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}
	return s.repo.AnimalsByOwner(ctx, ownerID)
}

// RecordWeighing persists one immutable weighing event posted by a device.
func (s *Service) RecordWeighing(ctx context.Context, req models.WeighingRequest) error {
	if _, err := time.Parse(time.RFC3339, req.RecordedAt); err != nil {
		return fmt.Errorf("%w: %q", ErrBadRecordedAt, req.RecordedAt)
	}

	event := models.WeighingEvent{
		RFID:       req.RFID,
		DeviceID:   req.DeviceID,
		WeightKg:   req.WeightKg,
		RecordedAt: req.RecordedAt,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.InsertWeighing(ctx, event); err != nil {
		return err
	}

	s.logger.Debug("weighing recorded",
		zap.String("rfid", req.RFID),
		zap.String("device_id", req.DeviceID))
	return nil
}

// History returns the owner's annotated readings, newest first.
func (s *Service) History(ctx context.Context, ownerID string) ([]models.AnnotatedReading, error) {
	annotated, err := s.ownerAnnotated(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return analytics.NewestFirst(annotated), nil
}

// Snapshot returns the latest reading per animal in the owner's herd.
func (s *Service) Snapshot(ctx context.Context, ownerID string) ([]models.AnnotatedReading, error) {
	annotated, err := s.ownerAnnotated(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return analytics.LatestSnapshots(annotated), nil
}

// Monthly returns the owner's monthly KPI series with the health index.
func (s *Service) Monthly(ctx context.Context, ownerID string) ([]models.MonthlyPoint, error) {
	annotated, err := s.ownerAnnotated(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return analytics.MonthlySeries(annotated, s.location), nil
}

// PublicSnapshot returns the latest reading per publicly-shared animal.
func (s *Service) PublicSnapshot(ctx context.Context) ([]models.AnnotatedReading, error) {
	rows, err := s.repo.PublicReadingRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load public reading rows: %w", err)
	}
	annotated, err := analytics.Annotate(rows, s.now())
	if err != nil {
		return nil, err
	}
	return analytics.LatestSnapshots(annotated), nil
}

// PlatformMonthly runs the monthly series over every reading on the platform.
// Used by the scheduled herd report.
func (s *Service) PlatformMonthly(ctx context.Context) ([]models.MonthlyPoint, error) {
	rows, err := s.repo.AllReadingRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reading rows: %w", err)
	}
	annotated, err := analytics.Annotate(rows, s.now())
	if err != nil {
		return nil, err
	}
	return analytics.MonthlySeries(annotated, s.location), nil
}

func (s *Service) ownerAnnotated(ctx context.Context, ownerID string) ([]models.AnnotatedReading, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}

	rows, err := s.repo.OwnerReadingRows(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load reading rows for owner %s: %w", ownerID, err)
	}

	return analytics.Annotate(rows, s.now())
}
