package repository

import (
	"context"

	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/kvstore"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

// EventRepositoryImpl stores tournaments, clinics and open days
type EventRepositoryImpl struct {
	collection *kvstore.Collection[entities.Event]
}

// NewEventRepository creates a new event repository
func NewEventRepository(store kvstore.Store, log *logger.Logger, notifier *kvstore.Notifier) ports.EventRepository {
	return &EventRepositoryImpl{
		collection: kvstore.NewCollection(store, KeyEvents, seedEvents(), log, notifier),
	}
}

func (r *EventRepositoryImpl) GetAll(ctx context.Context) []entities.Event {
	return r.collection.Load(ctx)
}

func (r *EventRepositoryImpl) GetByID(ctx context.Context, id string) *entities.Event {
	for _, event := range r.collection.Load(ctx) {
		if event.ID == id {
			e := event
			return &e
		}
	}
	return nil
}

func (r *EventRepositoryImpl) Save(ctx context.Context, event *entities.Event) (*entities.Event, error) {
	saved := *event
	if saved.ID == "" {
		saved.ID = newID()
	}
	if saved.CreatedAt == "" {
		saved.CreatedAt = entities.Now()
	}
	if saved.Registrations == nil {
		saved.Registrations = []string{}
	}

	_, err := r.collection.Update(ctx, func(items []entities.Event) ([]entities.Event, error) {
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

// Register adds userID to the event's registration list exactly once. The
// membership check runs inside the same read-modify-write as the append, so
// two concurrent registrations cannot both slip in.
func (r *EventRepositoryImpl) Register(ctx context.Context, eventID, userID string) (bool, error) {
	added := false
	_, err := r.collection.Update(ctx, func(items []entities.Event) ([]entities.Event, error) {
		added = false
		for i := range items {
			if items[i].ID != eventID {
				continue
			}
			if items[i].IsRegistered(userID) {
				return items, nil
			}
			items[i].Registrations = append(items[i].Registrations, userID)
			added = true
			return items, nil
		}
		return nil, entities.ErrEventNotFound
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

func (r *EventRepositoryImpl) Unregister(ctx context.Context, eventID, userID string) (bool, error) {
	removed := false
	_, err := r.collection.Update(ctx, func(items []entities.Event) ([]entities.Event, error) {
		removed = false
		for i := range items {
			if items[i].ID != eventID {
				continue
			}
			next := make([]string, 0, len(items[i].Registrations))
			for _, id := range items[i].Registrations {
				if id == userID {
					removed = true
					continue
				}
				next = append(next, id)
			}
			items[i].Registrations = next
			return items, nil
		}
		return nil, entities.ErrEventNotFound
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	_, err := r.collection.Update(ctx, func(items []entities.Event) ([]entities.Event, error) {
		next := make([]entities.Event, 0, len(items))
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

func (r *EventRepositoryImpl) Reset(ctx context.Context) error {
	return r.collection.Reset(ctx)
}
