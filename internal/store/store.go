// Package store holds the authoritative in-memory record sequence and keeps
// it mirrored to the local storage slot on every mutation.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"inventario-backend/internal/domain/models"
	"inventario-backend/internal/storage"
)

var recordsGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "inventario_records",
	Help: "Number of inventory records currently held by the store.",
})

// RecordStore is the ordered sequence of finalized records, newest first.
// Mutations are serialized by a mutex because the HTTP surface is
// concurrent; each mutation synchronously rewrites the whole sequence into
// the slot (no partial or batched writes).
type RecordStore struct {
	mu      sync.RWMutex
	records []models.Record

	slot   storage.Slot
	key    string
	logger *zap.Logger
}

// New builds a store mirrored into the given slot key. Call Load before
// serving traffic.
func New(slot storage.Slot, key string, logger *zap.Logger) *RecordStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordStore{
		records: make([]models.Record, 0),
		slot:    slot,
		key:     key,
		logger:  logger,
	}
}

// Load reads the persisted sequence. An absent key, unreadable slot or a
// value that does not parse as a record array yields an empty store; the
// failure is logged and swallowed, never surfaced. Returns the number of
// records loaded.
func (s *RecordStore) Load(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make([]models.Record, 0)

	raw, found, err := s.slot.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("failed reading persisted records, starting empty", zap.Error(err))
		recordsGauge.Set(0)
		return 0
	}
	if !found {
		recordsGauge.Set(0)
		return 0
	}

	var loaded []models.Record
	if err := json.Unmarshal(raw, &loaded); err != nil {
		s.logger.Warn("persisted records are malformed, starting empty", zap.Error(err))
		recordsGauge.Set(0)
		return 0
	}
	if loaded != nil {
		s.records = loaded
	}

	recordsGauge.Set(float64(len(s.records)))
	return len(s.records)
}

// Add prepends one finalized record and mirrors the sequence.
func (s *RecordStore) Add(ctx context.Context, rec models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]models.Record{rec}, s.records...)
	return s.mirror(ctx)
}

// AddAll prepends a batch, preserving the batch's internal order, and
// mirrors the sequence. Used by the import paths.
func (s *RecordStore) AddAll(ctx context.Context, recs []models.Record) error {
	if len(recs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make([]models.Record, 0, len(recs)+len(s.records))
	merged = append(merged, recs...)
	merged = append(merged, s.records...)
	s.records = merged
	return s.mirror(ctx)
}

// RemoveAt deletes the record at position index. An out-of-bounds index is
// a silent no-op.
func (s *RecordStore) RemoveAt(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.records) {
		return nil
	}

	s.records = append(s.records[:index], s.records[index+1:]...)
	return s.mirror(ctx)
}

// Clear empties the sequence and mirrors an empty array. Callers are
// responsible for the explicit user confirmation gate.
func (s *RecordStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make([]models.Record, 0)
	return s.mirror(ctx)
}

// Snapshot returns a copy of the sequence for codecs and exports.
func (s *RecordStore) Snapshot() []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records held.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// mirror rewrites the full sequence into the slot. Callers hold the lock.
// On failure the in-memory state stands; the next successful mirror rewrites
// everything, so no partial state can persist.
func (s *RecordStore) mirror(ctx context.Context) error {
	raw, err := json.Marshal(s.records)
	if err != nil {
		return err
	}
	if err := s.slot.Set(ctx, s.key, raw); err != nil {
		s.logger.Error("failed mirroring records to slot", zap.Error(err))
		return err
	}

	recordsGauge.Set(float64(len(s.records)))
	return nil
}
