package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/growtlabs/growt/internal/config"
	"github.com/growtlabs/growt/internal/repository/mongodb"
	"github.com/growtlabs/growt/internal/repository/sheets"
	"github.com/growtlabs/growt/internal/scheduler"
	"github.com/growtlabs/growt/internal/server/handlers"
	"github.com/growtlabs/growt/internal/server/router"
	devicesvc "github.com/growtlabs/growt/internal/service/devices"
	herdsvc "github.com/growtlabs/growt/internal/service/herd"
	"github.com/growtlabs/growt/pkg/clients/notify"
	"github.com/growtlabs/growt/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	location, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		baseLogger.Fatal("invalid reporting timezone", zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
	}

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	herdService := herdsvc.NewService(mongoRepo, location, baseLogger.Named("svc.herd"))
	deviceService := devicesvc.NewService(mongoRepo, baseLogger.Named("svc.devices"))

	var exporter sheets.Exporter
	if cfg.SheetsEnabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("monthly sheet export enabled")
	} else {
		baseLogger.Warn("sheet export not configured, monthly report export disabled")
	}

	var notifier notify.Client
	if cfg.NotifyEnabled() {
		notifier = notify.NewClient(cfg.Notify)
		baseLogger.Info("health alert webhook enabled")
	} else {
		baseLogger.Warn("alert webhook not configured, health alerts disabled")
	}

	herdHandler := handlers.NewHerdHandler(herdService, baseLogger.Named("handlers.herd"))
	ingestHandler := handlers.NewIngestHandler(deviceService, herdService, baseLogger.Named("handlers.ingest"))
	deviceHandler := handlers.NewDeviceHandler(deviceService, baseLogger.Named("handlers.devices"))
	engine := router.New(herdHandler, ingestHandler, deviceHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, herdService, exporter, notifier, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
