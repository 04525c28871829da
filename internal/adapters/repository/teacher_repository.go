package repository

import (
	"context"

	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/kvstore"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

// TeacherRepositoryImpl stores the coaching staff as one JSON array
type TeacherRepositoryImpl struct {
	collection *kvstore.Collection[entities.Teacher]
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(store kvstore.Store, log *logger.Logger, notifier *kvstore.Notifier) ports.TeacherRepository {
	return &TeacherRepositoryImpl{
		collection: kvstore.NewCollection(store, KeyTeachers, seedTeachers(), log, notifier),
	}
}

func (r *TeacherRepositoryImpl) GetAll(ctx context.Context) []entities.Teacher {
	return r.collection.Load(ctx)
}

func (r *TeacherRepositoryImpl) GetByID(ctx context.Context, id string) *entities.Teacher {
	for _, teacher := range r.collection.Load(ctx) {
		if teacher.ID == id {
			t := teacher
			return &t
		}
	}
	return nil
}

// Save upserts the teacher, keeping its position in the array so the
// public staff page order stays stable across edits.
func (r *TeacherRepositoryImpl) Save(ctx context.Context, teacher *entities.Teacher) (*entities.Teacher, error) {
	saved := *teacher
	if saved.ID == "" {
		saved.ID = newID()
	}
	if saved.CreatedAt == "" {
		saved.CreatedAt = entities.Now()
	}

	_, err := r.collection.Update(ctx, func(items []entities.Teacher) ([]entities.Teacher, error) {
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

func (r *TeacherRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	_, err := r.collection.Update(ctx, func(items []entities.Teacher) ([]entities.Teacher, error) {
		next := make([]entities.Teacher, 0, len(items))
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

func (r *TeacherRepositoryImpl) Reset(ctx context.Context) error {
	return r.collection.Reset(ctx)
}
