package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/growtlabs/growt/internal/config"
	"github.com/growtlabs/growt/internal/repository/sheets"
	"github.com/growtlabs/growt/internal/service/herd"
	"github.com/growtlabs/growt/pkg/clients/notify"
)

// Scheduler runs the periodic herd report: it recomputes the platform-wide
// monthly series, exports the latest point and raises an alert when the
// health score dropped hard month-over-month. Exporter and notifier may be
// nil; those legs are simply skipped.
type Scheduler struct {
	cron     *cron.Cron
	herdSvc  *herd.Service
	exporter sheets.Exporter
	notifier notify.Client
	cfg      config.Config
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, herdSvc *herd.Service, exporter sheets.Exporter, notifier notify.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour,
	// dom, month, dow).
	return &Scheduler{
		cron:     cron.New(),
		herdSvc:  herdSvc,
		exporter: exporter,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers the herd report job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.runHerdReport); err != nil {
		s.logger.Error("failed to schedule herd report", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runHerdReport() {
	s.logger.Info("generating herd report")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	series, err := s.herdSvc.PlatformMonthly(ctx)
	if err != nil {
		s.logger.Error("failed to compute monthly series", zap.Error(err))
		return
	}
	if len(series) == 0 {
		s.logger.Info("no readings yet, skipping herd report")
		return
	}

	latest := series[len(series)-1]

	if s.exporter != nil {
		if err := s.exporter.AppendMonthlyPoint(ctx, latest); err != nil {
			s.logger.Error("failed to export monthly point", zap.Error(err))
		} else {
			s.logger.Info("monthly point exported", zap.String("month", latest.MonthKey))
		}
	}

	if s.notifier != nil && latest.HealthScoreDelta <= -s.cfg.Reporting.AlertDropPoints {
		alert := notify.Alert{
			Title: fmt.Sprintf("Herd health dropped in %s", latest.MonthKey),
			Message: fmt.Sprintf("Health score %.1f (%.1f vs previous month); %d of %d animals stuck or declining.",
				latest.HealthScore, latest.HealthScoreDelta, latest.StuckOrDecliningCount, latest.TotalEntities),
		}
		if err := s.notifier.SendAlert(ctx, alert); err != nil {
			s.logger.Error("failed to send health alert", zap.Error(err))
		} else {
			s.logger.Info("health alert sent", zap.String("month", latest.MonthKey))
		}
	}
}
