package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"inventario-backend/internal/domain/models"
	"inventario-backend/internal/store"
)

// Service runs one wizard per session. Sessions are cheap in-memory states
// keyed by an opaque id; an unknown id behaves as a fresh wizard, so clients
// may invent their own ids or mint them via NewSession.
type Service struct {
	fs       models.FieldSet
	records  *store.RecordStore
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]State
}

// Notifier fans user-facing notices out to the configured channel. A nil
// notifier disables fan-out; notices still travel in API responses.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

// NewService wires a wizard service over the record store.
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
		sessions: make(map[string]State),
	}
}

// Fields exposes the active field set.
func (s *Service) Fields() models.FieldSet { return s.fs }

// NewSession mints a session id with a fresh wizard state behind it.
func (s *Service) NewSession() string {
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = NewState(s.fs)
	s.mu.Unlock()

	return id
}

// State returns the current state for the session, falling back to a fresh
// one for unknown ids, plus the field currently being prompted for.
func (s *Service) State(sessionID string) (State, models.Field) {
	st := s.session(sessionID)
	return st, CurrentField(s.fs, st)
}

// Submit feeds one field value into the session's wizard. When the
// submission finalizes a record, the record is prepended to the store and a
// success notice is emitted; the returned record is nil otherwise.
func (s *Service) Submit(ctx context.Context, sessionID, value string) (State, *models.Record, error) {
	st := s.session(sessionID)
	next, rec := Submit(s.fs, st, value, s.now())

	if rec != nil {
		if err := s.records.Add(ctx, *rec); err != nil {
			// Keep the pre-submit state so the client can retry the
			// final submission.
			return st, nil, err
		}
		s.logger.Info("record finalized",
			zap.String("session", sessionID),
			zap.String("equipment_type", rec.EquipmentType),
			zap.String("patrimony", rec.Patrimony))
		s.notify(ctx, models.Success("Registro salvo",
			fmt.Sprintf("Equipamento %q adicionado ao inventário.", rec.EquipmentType)))
	}

	s.update(sessionID, next)
	return next, rec, nil
}

// Back moves the session's wizard one field back, never past the first.
func (s *Service) Back(sessionID string) State {
	next := Back(s.session(sessionID))
	s.update(sessionID, next)
	return next
}

// QuickAdd finalizes the session's partial draft. An all-empty draft returns
// ErrEmptyDraft without touching anything.
func (s *Service) QuickAdd(ctx context.Context, sessionID string) (State, *models.Record, error) {
	st := s.session(sessionID)

	next, rec, err := QuickAdd(s.fs, st, s.now())
	if err != nil {
		return st, nil, err
	}
	if err := s.records.Add(ctx, *rec); err != nil {
		return st, nil, err
	}

	s.logger.Info("record quick-added", zap.String("session", sessionID))
	s.notify(ctx, models.Success("Registro salvo",
		"Registro parcial adicionado ao inventário."))

	s.update(sessionID, next)
	return next, rec, nil
}

func (s *Service) session(id string) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.sessions[id]; ok {
		return st
	}
	return NewState(s.fs)
}

func (s *Service) update(id string, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = st
}

func (s *Service) notify(ctx context.Context, n models.Notification) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, n)
}
