package repository

import (
	"context"

	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/kvstore"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

// MessageRepositoryImpl stores contact form submissions
type MessageRepositoryImpl struct {
	collection *kvstore.Collection[entities.ContactMessage]
}

// NewMessageRepository creates a new contact message repository
func NewMessageRepository(store kvstore.Store, log *logger.Logger, notifier *kvstore.Notifier) ports.MessageRepository {
	return &MessageRepositoryImpl{
		collection: kvstore.NewCollection(store, KeyMessages, seedMessages(), log, notifier),
	}
}

func (r *MessageRepositoryImpl) GetAll(ctx context.Context) []entities.ContactMessage {
	return r.collection.Load(ctx)
}

func (r *MessageRepositoryImpl) GetByID(ctx context.Context, id string) *entities.ContactMessage {
	for _, message := range r.collection.Load(ctx) {
		if message.ID == id {
			m := message
			return &m
		}
	}
	return nil
}

func (r *MessageRepositoryImpl) GetUnread(ctx context.Context) []entities.ContactMessage {
	var unread []entities.ContactMessage
	for _, message := range r.collection.Load(ctx) {
		if !message.Read {
			unread = append(unread, message)
		}
	}
	return unread
}

func (r *MessageRepositoryImpl) Save(ctx context.Context, message *entities.ContactMessage) (*entities.ContactMessage, error) {
	saved := *message
	if saved.ID == "" {
		saved.ID = newID()
	}
	if saved.CreatedAt == "" {
		saved.CreatedAt = entities.Now()
	}

	_, err := r.collection.Update(ctx, func(items []entities.ContactMessage) ([]entities.ContactMessage, error) {
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

// MarkRead flips the read flag on. The flag never goes back to false, so
// repeating the call is harmless.
func (r *MessageRepositoryImpl) MarkRead(ctx context.Context, id string) (*entities.ContactMessage, error) {
	return r.setFlag(ctx, id, func(m *entities.ContactMessage) { m.Read = true })
}

// MarkReplied flips the replied flag on, and the read flag with it; a
// message cannot be answered unseen.
func (r *MessageRepositoryImpl) MarkReplied(ctx context.Context, id string) (*entities.ContactMessage, error) {
	return r.setFlag(ctx, id, func(m *entities.ContactMessage) {
		m.Read = true
		m.Replied = true
	})
}

func (r *MessageRepositoryImpl) setFlag(ctx context.Context, id string, apply func(*entities.ContactMessage)) (*entities.ContactMessage, error) {
	var updated *entities.ContactMessage
	_, err := r.collection.Update(ctx, func(items []entities.ContactMessage) ([]entities.ContactMessage, error) {
		updated = nil
		for i := range items {
			if items[i].ID == id {
				apply(&items[i])
				m := items[i]
				updated = &m
				return items, nil
			}
		}
		return nil, entities.ErrMessageNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *MessageRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	_, err := r.collection.Update(ctx, func(items []entities.ContactMessage) ([]entities.ContactMessage, error) {
		next := make([]entities.ContactMessage, 0, len(items))
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

func (r *MessageRepositoryImpl) Reset(ctx context.Context) error {
	return r.collection.Reset(ctx)
}
