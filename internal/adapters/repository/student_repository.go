package repository

import (
	"context"
	"strings"

	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/kvstore"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

// StudentRepositoryImpl stores registrations from the public form
type StudentRepositoryImpl struct {
	collection *kvstore.Collection[entities.Student]
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(store kvstore.Store, log *logger.Logger, notifier *kvstore.Notifier) ports.StudentRepository {
	return &StudentRepositoryImpl{
		collection: kvstore.NewCollection(store, KeyStudents, seedStudents(), log, notifier),
	}
}

func (r *StudentRepositoryImpl) GetAll(ctx context.Context) []entities.Student {
	return r.collection.Load(ctx)
}

func (r *StudentRepositoryImpl) GetByID(ctx context.Context, id string) *entities.Student {
	for _, student := range r.collection.Load(ctx) {
		if student.ID == id {
			s := student
			return &s
		}
	}
	return nil
}

func (r *StudentRepositoryImpl) GetByEmail(ctx context.Context, email string) *entities.Student {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, student := range r.collection.Load(ctx) {
		if strings.ToLower(student.Email) == email {
			s := student
			return &s
		}
	}
	return nil
}

func (r *StudentRepositoryImpl) GetPending(ctx context.Context) []entities.Student {
	var pending []entities.Student
	for _, student := range r.collection.Load(ctx) {
		if student.IsPending() {
			pending = append(pending, student)
		}
	}
	return pending
}

// GetApproved includes legacy records with no status; those predate the
// moderation workflow and were live on the site already.
func (r *StudentRepositoryImpl) GetApproved(ctx context.Context) []entities.Student {
	var approved []entities.Student
	for _, student := range r.collection.Load(ctx) {
		if student.IsApproved() {
			approved = append(approved, student)
		}
	}
	return approved
}

func (r *StudentRepositoryImpl) Save(ctx context.Context, student *entities.Student) (*entities.Student, error) {
	saved := *student
	if saved.ID == "" {
		saved.ID = newID()
	}
	if saved.CreatedAt == "" {
		saved.CreatedAt = entities.Now()
	}

	_, err := r.collection.Update(ctx, func(items []entities.Student) ([]entities.Student, error) {
		for i := range items {
			if items[i].ID == saved.ID {
				items[i] = saved
				return items, nil
			}
		}
		return append(items, saved), nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *StudentRepositoryImpl) UpdateStatus(ctx context.Context, id string, status entities.StudentStatus) (*entities.Student, error) {
	var updated *entities.Student
	_, err := r.collection.Update(ctx, func(items []entities.Student) ([]entities.Student, error) {
		updated = nil
		for i := range items {
			if items[i].ID == id {
				items[i].Status = status
				s := items[i]
				updated = &s
				return items, nil
			}
		}
		return nil, entities.ErrStudentNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Normalize stamps the approved status onto records that have none. Runs
// once at startup so every stored record carries an explicit status.
func (r *StudentRepositoryImpl) Normalize(ctx context.Context) (int, error) {
	changed := 0
	_, err := r.collection.Update(ctx, func(items []entities.Student) ([]entities.Student, error) {
		changed = 0
		for i := range items {
			if items[i].Status == entities.StudentStatusUnspecified {
				items[i].Status = entities.StudentStatusApproved
				changed++
			}
		}
		return items, nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

func (r *StudentRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	_, err := r.collection.Update(ctx, func(items []entities.Student) ([]entities.Student, error) {
		next := make([]entities.Student, 0, len(items))
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

func (r *StudentRepositoryImpl) Reset(ctx context.Context) error {
	return r.collection.Reset(ctx)
}
