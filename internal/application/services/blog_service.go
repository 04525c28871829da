package services

import (
	"context"
	"fmt"

	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

// BlogService handles the public blog
type BlogService struct {
	blogRepo ports.BlogRepository
	logger   *logger.Logger
}

// NewBlogService creates a new blog service
func NewBlogService(blogRepo ports.BlogRepository, logger *logger.Logger) *BlogService {
	return &BlogService{
		blogRepo: blogRepo,
		logger:   logger,
	}
}

// ListPublished returns the articles visible on the public site
func (s *BlogService) ListPublished(ctx context.Context) []entities.BlogPost {
	return s.blogRepo.GetPublished(ctx)
}

// ListAll returns every article including drafts, for the back office
func (s *BlogService) ListAll(ctx context.Context) []entities.BlogPost {
	return s.blogRepo.GetAll(ctx)
}

// GetPost retrieves an article by ID
func (s *BlogService) GetPost(ctx context.Context, id string) (*entities.BlogPost, error) {
	post := s.blogRepo.GetByID(ctx, id)
	if post == nil {
		return nil, entities.ErrBlogPostNotFound
	}
	return post, nil
}

// SavePost creates or updates an article
func (s *BlogService) SavePost(ctx context.Context, post *entities.BlogPost) (*entities.BlogPost, error) {
	saved, err := s.blogRepo.Save(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}
	s.logger.Info("Blog post saved", "post_id", saved.ID, "title", saved.Title, "published", saved.Published)
	return saved, nil
}

// DeletePost removes an article
func (s *BlogService) DeletePost(ctx context.Context, id string) error {
	removed, err := s.blogRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if !removed {
		return entities.ErrBlogPostNotFound
	}
	s.logger.Info("Blog post deleted", "post_id", id)
	return nil
}
