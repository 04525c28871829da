package repository

import (
	"context"

	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/kvstore"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

// BlogRepositoryImpl stores the public blog articles
type BlogRepositoryImpl struct {
	collection *kvstore.Collection[entities.BlogPost]
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(store kvstore.Store, log *logger.Logger, notifier *kvstore.Notifier) ports.BlogRepository {
	return &BlogRepositoryImpl{
		collection: kvstore.NewCollection(store, KeyBlogs, seedBlogs(), log, notifier),
	}
}

func (r *BlogRepositoryImpl) GetAll(ctx context.Context) []entities.BlogPost {
	return r.collection.Load(ctx)
}

func (r *BlogRepositoryImpl) GetPublished(ctx context.Context) []entities.BlogPost {
	var published []entities.BlogPost
	for _, post := range r.collection.Load(ctx) {
		if post.Published {
			published = append(published, post)
		}
	}
	return published
}

func (r *BlogRepositoryImpl) GetByID(ctx context.Context, id string) *entities.BlogPost {
	for _, post := range r.collection.Load(ctx) {
		if post.ID == id {
			p := post
			return &p
		}
	}
	return nil
}

func (r *BlogRepositoryImpl) Save(ctx context.Context, post *entities.BlogPost) (*entities.BlogPost, error) {
	saved := *post
	if saved.ID == "" {
		saved.ID = newID()
	}

	_, err := r.collection.Update(ctx, func(items []entities.BlogPost) ([]entities.BlogPost, error) {
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

func (r *BlogRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	_, err := r.collection.Update(ctx, func(items []entities.BlogPost) ([]entities.BlogPost, error) {
		next := make([]entities.BlogPost, 0, len(items))
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

func (r *BlogRepositoryImpl) Reset(ctx context.Context) error {
	return r.collection.Reset(ctx)
}
