package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"inventario-backend/internal/config"
	"inventario-backend/internal/domain/models"
	"inventario-backend/internal/repository/sheets"
	"inventario-backend/internal/scheduler"
	"inventario-backend/internal/server/handlers"
	"inventario-backend/internal/server/router"
	"inventario-backend/internal/service/exporter"
	"inventario-backend/internal/service/importer"
	"inventario-backend/internal/service/wizard"
	"inventario-backend/internal/storage"
	"inventario-backend/internal/store"
	"inventario-backend/pkg/clients/notify"
	"inventario-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	slot, err := openSlot(cfg.Storage)
	if err != nil {
		baseLogger.Fatal("failed to open storage slot", zap.Error(err))
	}
	defer func() {
		if err := slot.Close(); err != nil {
			baseLogger.Error("failed to close storage slot", zap.Error(err))
		}
	}()

	records := store.New(slot, cfg.Storage.Key, baseLogger.Named("store"))
	loaded := records.Load(context.Background())
	baseLogger.Info("records loaded", zap.Int("count", loaded))

	var notifier *notify.WebhookClient
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhookClient(cfg.Notify.WebhookURL, baseLogger.Named("notify"))
		baseLogger.Info("webhook notifier enabled")
	}

	var sheetWriter exporter.SheetWriter
	if cfg.Sheets.Enabled() {
		writer, err := sheets.NewGoogleWriter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets writer", zap.Error(err))
		}
		sheetWriter = writer
		baseLogger.Info("spreadsheet export enabled", zap.String("style", cfg.Sheets.Style))
	} else {
		baseLogger.Warn("sheets credentials missing, spreadsheet export disabled")
	}

	fs := models.NewFieldSet(cfg.Fields.ModelEnabled, cfg.Fields.DefaultManufacturer)

	wizardSvc := wizard.NewService(fs, records, notifier, baseLogger.Named("svc.wizard"))
	exporterSvc := exporter.NewService(fs, records, sheetWriter, notifier, baseLogger.Named("svc.exporter"))
	importerSvc := importer.NewService(fs, records, notifier, baseLogger.Named("svc.importer"))

	engine := router.New(
		handlers.NewWizardHandler(wizardSvc, baseLogger.Named("handlers.wizard")),
		handlers.NewRecordsHandler(records, notifier, baseLogger.Named("handlers.records")),
		handlers.NewTransferHandler(exporterSvc, importerSvc, baseLogger.Named("handlers.transfer")),
		baseLogger.Named("router"),
	)

	if cfg.Backup.Enabled {
		sched := scheduler.NewScheduler(cfg.Backup, exporterSvc, baseLogger.Named("scheduler"))
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

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

func openSlot(cfg config.StorageConfig) (storage.Slot, error) {
	if cfg.Backend == config.BackendSQLite {
		return storage.NewSQLiteSlot(cfg.Path)
	}
	return storage.NewFileSlot(cfg.Path)
}
