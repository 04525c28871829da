package repository

import (
	"context"
	"strings"

	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/kvstore"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

// userRecord is the stored shape of an account. The entity hides the
// password hash from JSON so it can be returned over HTTP as-is; the store
// needs the hash, so the record carries it under its own tag.
type userRecord struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	PasswordHash string            `json:"passwordHash"`
	Role         entities.UserRole `json:"role"`
	CreatedAt    string            `json:"createdAt"`
}

func (rec *userRecord) toUser() entities.User {
	return entities.User{
		ID:           rec.ID,
		Name:         rec.Name,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		Role:         rec.Role,
		CreatedAt:    rec.CreatedAt,
	}
}

func toUserRecord(u entities.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}

// UserRepositoryImpl stores back-office accounts
type UserRepositoryImpl struct {
	collection *kvstore.Collection[userRecord]
}

// NewUserRepository creates a new user repository
func NewUserRepository(store kvstore.Store, log *logger.Logger, notifier *kvstore.Notifier) ports.UserRepository {
	seeds := seedUsers()
	records := make([]userRecord, len(seeds))
	for i, u := range seeds {
		records[i] = toUserRecord(u)
	}
	return &UserRepositoryImpl{
		collection: kvstore.NewCollection(store, KeyUsers, records, log, notifier),
	}
}

func (r *UserRepositoryImpl) GetAll(ctx context.Context) []entities.User {
	records := r.collection.Load(ctx)
	users := make([]entities.User, len(records))
	for i := range records {
		users[i] = records[i].toUser()
	}
	return users
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id string) *entities.User {
	for _, rec := range r.collection.Load(ctx) {
		if rec.ID == id {
			u := rec.toUser()
			return &u
		}
	}
	return nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) *entities.User {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, rec := range r.collection.Load(ctx) {
		if strings.ToLower(rec.Email) == email {
			u := rec.toUser()
			return &u
		}
	}
	return nil
}

func (r *UserRepositoryImpl) Save(ctx context.Context, user *entities.User) (*entities.User, error) {
	saved := *user
	if saved.ID == "" {
		saved.ID = newID()
	}
	if saved.CreatedAt == "" {
		saved.CreatedAt = entities.Now()
	}

	_, err := r.collection.Update(ctx, func(items []userRecord) ([]userRecord, error) {
		for i := range items {
			if items[i].ID == saved.ID {
				items[i] = toUserRecord(saved)
				return items, nil
			}
		}
		return append(items, toUserRecord(saved)), nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	_, err := r.collection.Update(ctx, func(items []userRecord) ([]userRecord, error) {
		next := make([]userRecord, 0, len(items))
		for _, item := range items {
			if item.ID == id {
				continue
			}
			next = append(next, item)
		}
		removed = len(next) != len(items)
		return next, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

func (r *UserRepositoryImpl) Reset(ctx context.Context) error {
	return r.collection.Reset(ctx)
}
