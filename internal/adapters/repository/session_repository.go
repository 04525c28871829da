package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/kvstore"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

// SessionRepositoryImpl owns the single current-user key. It is not a
// collection: there is exactly one record, written by login and removed by
// logout.
type SessionRepositoryImpl struct {
	store  kvstore.Store
	logger *logger.Logger
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(store kvstore.Store, log *logger.Logger) ports.SessionRepository {
	return &SessionRepositoryImpl{store: store, logger: log}
}

// Get returns the current session or nil. A corrupt or unreadable record
// counts as signed out.
func (r *SessionRepositoryImpl) Get(ctx context.Context) *entities.Session {
	value, err := r.store.Get(ctx, KeySession)
	if err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			r.logger.Warn("Session read failed", "error", err)
		}
		return nil
	}

	var session entities.Session
	if err := json.Unmarshal(value, &session); err != nil {
		r.logger.Warn("Session record corrupt, treating as signed out", "error", err)
		return nil
	}
	return &session
}

func (r *SessionRepositoryImpl) Put(ctx context.Context, session *entities.Session) error {
	value, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.store.Set(ctx, KeySession, value); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepositoryImpl) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, KeySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
