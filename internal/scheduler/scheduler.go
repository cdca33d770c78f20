// Package scheduler runs the periodic automatic backup: on the configured
// cron schedule the current store is written as a backup envelope into the
// backup directory.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"inventario-backend/internal/config"
	"inventario-backend/internal/service/exporter"
)

// Scheduler manages the scheduled backup task.
type Scheduler struct {
	cron     *cron.Cron
	exporter *exporter.Service
	cfg      config.BackupConfig
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.BackupConfig, exporterSvc *exporter.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:     cron.New(),
		exporter: exporterSvc,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers the backup job and launches the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runBackup); err != nil {
		return fmt.Errorf("register backup schedule %q: %w", s.cfg.CronSchedule, err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started",
		zap.String("schedule", s.cfg.CronSchedule),
		zap.String("dir", s.cfg.Dir))
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// RunNow triggers one backup outside the schedule.
func (s *Scheduler) RunNow() { s.runBackup() }

func (s *Scheduler) runBackup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	artifact, err := s.exporter.Backup(ctx)
	if err != nil {
		if errors.Is(err, exporter.ErrNoRecords) {
			s.logger.Debug("backup skipped, store is empty")
			return
		}
		s.logger.Error("scheduled backup failed", zap.Error(err))
		return
	}

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		s.logger.Error("failed creating backup dir", zap.Error(err))
		return
	}

	path := filepath.Join(s.cfg.Dir, artifact.Filename)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		s.logger.Error("failed writing backup file", zap.String("path", path), zap.Error(err))
		return
	}

	s.logger.Info("scheduled backup written",
		zap.String("path", path),
		zap.Int("bytes", len(artifact.Data)))
}
