package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/padelpro/academy/internal/infrastructure/logger"
)

// Collection is one JSON array of records stored under a fixed key. Every
// write replaces the whole array; reads return a decoded snapshot.
//
// Load never fails: an absent key is seeded, a corrupt value is reseeded,
// and an unreachable store degrades to the seed without persisting it. The
// public site renders from these collections unconditionally, so losing a
// read here must not break first paint.
type Collection[T any] struct {
	store    Store
	key      string
	seed     []T
	logger   *logger.Logger
	notifier *Notifier
}

// NewCollection binds a typed collection to its storage key. notifier may be
// nil when change events are not needed (CLI commands, tests).
func NewCollection[T any](store Store, key string, seed []T, log *logger.Logger, notifier *Notifier) *Collection[T] {
	return &Collection[T]{
		store:    store,
		key:      key,
		seed:     seed,
		logger:   log,
		notifier: notifier,
	}
}

// Key returns the storage key the collection lives under.
func (c *Collection[T]) Key() string {
	return c.key
}

// Load returns the stored records, seeding the key on first access.
func (c *Collection[T]) Load(ctx context.Context) []T {
	value, err := c.store.Get(ctx, c.key)
	if errors.Is(err, ErrKeyNotFound) {
		return c.reseed(ctx)
	}
	if err != nil {
		// Degraded mode: serve the seed but do not persist it, so a
		// recovered store keeps whatever it already had.
		c.logger.Warn("Collection load degraded to seed", "key", c.key, "error", err)
		return c.seedCopy()
	}

	var items []T
	if err := json.Unmarshal(value, &items); err != nil {
		c.logger.Warn("Collection value corrupt, reseeding", "key", c.key, "error", err)
		return c.reseed(ctx)
	}
	return items
}

// Replace overwrites the collection with items.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	value, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, value); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	c.publish()
	return nil
}

// Update applies fn to the current records and stores the result as one
// read-modify-write. On the Redis backend the whole cycle runs under WATCH,
// so concurrent writers retry instead of losing each other's changes. fn may
// be invoked more than once and must not keep side effects across calls.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) ([]T, error) {
	var result []T
	err := c.store.Update(ctx, c.key, func(current []byte) ([]byte, error) {
		items := c.decode(current)
		next, err := fn(items)
		if err != nil {
			return nil, err
		}
		result = next
		return json.Marshal(next)
	})
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", c.key, err)
	}
	c.publish()
	return result, nil
}

// Reset removes the key so the next Load reseeds the collection.
func (c *Collection[T]) Reset(ctx context.Context) error {
	if err := c.store.Delete(ctx, c.key); err != nil {
		return fmt.Errorf("reset %s: %w", c.key, err)
	}
	c.publish()
	return nil
}

func (c *Collection[T]) decode(value []byte) []T {
	if value == nil {
		return c.seedCopy()
	}
	var items []T
	if err := json.Unmarshal(value, &items); err != nil {
		c.logger.Warn("Collection value corrupt, starting from seed", "key", c.key, "error", err)
		return c.seedCopy()
	}
	return items
}

func (c *Collection[T]) reseed(ctx context.Context) []T {
	items := c.seedCopy()
	value, err := json.Marshal(items)
	if err != nil {
		c.logger.Error("Collection seed not encodable", "key", c.key, "error", err)
		return items
	}
	if err := c.store.Set(ctx, c.key, value); err != nil {
		c.logger.Warn("Collection seed not persisted", "key", c.key, "error", err)
	}
	return items
}

func (c *Collection[T]) seedCopy() []T {
	return append([]T(nil), c.seed...)
}

func (c *Collection[T]) publish() {
	if c.notifier != nil {
		c.notifier.Publish(c.key)
	}
}
