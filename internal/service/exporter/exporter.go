// Package exporter turns the current store snapshot into downloadable
// artifacts: CSV text, the JSON backup envelope and the multi-sheet
// spreadsheet push.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"inventario-backend/internal/domain/models"
	"inventario-backend/internal/service/codec"
	"inventario-backend/internal/store"
)

var (
	// ErrNoRecords guards every export: with zero records no artifact is
	// produced.
	ErrNoRecords = errors.New("no records to export")
	// ErrSheetsDisabled signals a spreadsheet export without a configured
	// sheets writer.
	ErrSheetsDisabled = errors.New("spreadsheet export is not configured")
)

var exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inventario_exports_total",
	Help: "Number of successful exports by format.",
}, []string{"format"})

// Artifact is one produced download: a file name, its MIME type and the
// payload bytes.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SheetWriter pushes a workbook to an external spreadsheet container and
// returns its URL.
type SheetWriter interface {
	WriteWorkbook(ctx context.Context, wb models.Workbook) (string, error)
}

// Notifier fans user-facing notices out to the configured channel.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

// Service orchestrates the codecs over store snapshots. Exports are pure
// reads; the store is never mutated here.
type Service struct {
	fs       models.FieldSet
	records  *store.RecordStore
	sheets   SheetWriter
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires an exporter. sheets may be nil when the spreadsheet
// integration is not configured; notifier may be nil.
func NewService(fs models.FieldSet, records *store.RecordStore, sheets SheetWriter, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fs:       fs,
		records:  records,
		sheets:   sheets,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// CSV renders the full store as comma-separated text. The file name embeds
// the current calendar date.
func (s *Service) CSV(ctx context.Context) (Artifact, error) {
	snapshot := s.records.Snapshot()
	if len(snapshot) == 0 {
		return Artifact{}, ErrNoRecords
	}

	now := s.now()
	artifact := Artifact{
		Filename:    fmt.Sprintf("inventario-%s.csv", now.Format("2006-01-02")),
		ContentType: "text/csv; charset=utf-8",
		Data:        []byte(codec.EncodeCSV(s.fs, snapshot)),
	}

	exportsTotal.WithLabelValues("csv").Inc()
	s.logger.Info("csv exported", zap.Int("records", len(snapshot)))
	s.notify(ctx, models.Success("Exportação concluída",
		fmt.Sprintf("%d registros exportados para CSV.", len(snapshot))))
	return artifact, nil
}

// Backup renders the full store as the versioned JSON envelope.
func (s *Service) Backup(ctx context.Context) (Artifact, error) {
	snapshot := s.records.Snapshot()
	if len(snapshot) == 0 {
		return Artifact{}, ErrNoRecords
	}

	now := s.now()
	data, err := codec.EncodeBackup(snapshot, now)
	if err != nil {
		return Artifact{}, fmt.Errorf("encode backup: %w", err)
	}

	artifact := Artifact{
		Filename:    fmt.Sprintf("inventario-backup-%s.json", now.Format("2006-01-02")),
		ContentType: "application/json; charset=utf-8",
		Data:        data,
	}

	exportsTotal.WithLabelValues("backup").Inc()
	s.logger.Info("backup exported", zap.Int("records", len(snapshot)))
	s.notify(ctx, models.Success("Backup gerado",
		fmt.Sprintf("%d registros incluídos no backup.", len(snapshot))))
	return artifact, nil
}

// Spreadsheet builds the multi-sheet workbook and pushes it to the
// configured writer, returning the spreadsheet URL.
func (s *Service) Spreadsheet(ctx context.Context) (string, error) {
	if s.sheets == nil {
		return "", ErrSheetsDisabled
	}

	snapshot := s.records.Snapshot()
	if len(snapshot) == 0 {
		return "", ErrNoRecords
	}

	title := fmt.Sprintf("Inventário %s", s.now().Format("2006-01-02"))
	wb := codec.BuildWorkbook(title, s.fs, snapshot)

	url, err := s.sheets.WriteWorkbook(ctx, wb)
	if err != nil {
		s.notify(ctx, models.Failure("Exportação falhou",
			"Não foi possível gravar a planilha."))
		return "", fmt.Errorf("write workbook: %w", err)
	}

	exportsTotal.WithLabelValues("spreadsheet").Inc()
	s.logger.Info("spreadsheet exported",
		zap.Int("records", len(snapshot)),
		zap.Int("pages", len(wb.Pages)),
		zap.String("url", url))
	s.notify(ctx, models.Success("Planilha gerada",
		fmt.Sprintf("%d registros exportados em %d abas.", len(snapshot), len(wb.Pages))))
	return url, nil
}

func (s *Service) notify(ctx context.Context, n models.Notification) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, n)
}
