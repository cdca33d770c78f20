// Package importer feeds externally sourced artifacts into the record
// store: CSV text, lenient JSON and backup envelope restore. Input is
// always parsed in full before the store is touched, so a failed import
// leaves prior state intact.
package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"inventario-backend/internal/domain/models"
	"inventario-backend/internal/service/codec"
	"inventario-backend/internal/store"
)

var importsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inventario_imports_total",
	Help: "Number of records brought in by successful imports, by format.",
}, []string{"format"})

// Notifier fans user-facing notices out to the configured channel.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

// Service orchestrates the decode codecs into the store.
type Service struct {
	fs       models.FieldSet
	records  *store.RecordStore
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires an importer. notifier may be nil.
func NewService(fs models.FieldSet, records *store.RecordStore, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fs:       fs,
		records:  records,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// CSV parses comma-separated text and prepends the rows. Every imported row
// is re-stamped with the current time. Returns the number of rows imported.
func (s *Service) CSV(ctx context.Context, data []byte) (int, error) {
	records, err := codec.DecodeCSV(s.fs, string(data), s.now())
	if err != nil {
		s.notifyFailure(ctx, "Importação falhou", "O arquivo CSV não contém registros utilizáveis.")
		return 0, err
	}
	return s.ingest(ctx, "csv", records)
}

// JSON parses a lenient JSON payload (bare array, rows or data envelope)
// and prepends the normalized rows.
func (s *Service) JSON(ctx context.Context, data []byte) (int, error) {
	records, err := codec.DecodeLenient(s.fs, data, s.now())
	if err != nil {
		s.notifyFailure(ctx, "Importação falhou", "Formato JSON não reconhecido.")
		return 0, err
	}
	return s.ingest(ctx, "json", records)
}

// Restore parses a backup envelope and prepends its rows verbatim, original
// timestamps included.
func (s *Service) Restore(ctx context.Context, data []byte) (int, error) {
	records, err := codec.DecodeBackup(data)
	if err != nil {
		s.notifyFailure(ctx, "Restauração falhou", "O arquivo não é um backup válido.")
		return 0, err
	}
	return s.ingest(ctx, "restore", records)
}

func (s *Service) ingest(ctx context.Context, format string, records []models.Record) (int, error) {
	if err := s.records.AddAll(ctx, records); err != nil {
		return 0, fmt.Errorf("store %s import: %w", format, err)
	}

	importsTotal.WithLabelValues(format).Add(float64(len(records)))
	s.logger.Info("records imported",
		zap.String("format", format),
		zap.Int("records", len(records)))
	s.notify(ctx, models.Success("Importação concluída",
		fmt.Sprintf("%d registros adicionados ao inventário.", len(records))))
	return len(records), nil
}

func (s *Service) notify(ctx context.Context, n models.Notification) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, n)
}

func (s *Service) notifyFailure(ctx context.Context, title, message string) {
	s.notify(ctx, models.Failure(title, message))
}
