package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dtroode/quizzzy/internal/model"
)

var (
	_ model.Repository[model.User]       = (*Collection[model.User])(nil)
	_ model.Repository[model.Quiz]       = (*Collection[model.Quiz])(nil)
	_ model.Repository[model.Event]      = (*Collection[model.Event])(nil)
	_ model.Repository[model.Submission] = (*Collection[model.Submission])(nil)
)

// Collection stores a slice of entities as one JSON document under a fixed key.
// Every mutation loads the whole document, changes it and writes it back.
type Collection[T model.Entity] struct {
	store model.KVStore
	key   string
}

// NewCollection creates a Collection persisted under key.
func NewCollection[T model.Entity](store model.KVStore, key string) *Collection[T] {
	return &Collection[T]{
		store: store,
		key:   key,
	}
}

// Key returns the store key of the collection.
func (c *Collection[T]) Key() string {
	return c.key
}

// All returns the stored collection in stored order. It returns model.ErrNotFound when
// the key has never been written and an error wrapping model.ErrCorrupt when the
// stored document cannot be decoded.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	data, err := c.store.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", c.key, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w: %v", c.key, model.ErrCorrupt, err)
	}

	return items, nil
}

// Get returns the entity with the given id.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	items, err := c.load(ctx)
	if err != nil {
		return zero, err
	}

	for _, item := range items {
		if item.EntityID() == id {
			return item, nil
		}
	}

	return zero, model.ErrNotFound
}

// List returns the entities matching pred, preserving stored order. A nil pred matches all.
func (c *Collection[T]) List(ctx context.Context, pred func(T) bool) ([]T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]T, 0, len(items))
	for _, item := range items {
		if pred == nil || pred(item) {
			result = append(result, item)
		}
	}

	return result, nil
}

// Upsert replaces the entity with the same id in place or appends it.
func (c *Collection[T]) Upsert(ctx context.Context, entity T) error {
	items, err := c.load(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i, item := range items {
		if item.EntityID() == entity.EntityID() {
			items[i] = entity
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, entity)
	}

	return c.ReplaceAll(ctx, items)
}

// Prepend inserts the entity at the front of the collection.
func (c *Collection[T]) Prepend(ctx context.Context, entity T) error {
	items, err := c.load(ctx)
	if err != nil {
		return err
	}

	items = append([]T{entity}, items...)

	return c.ReplaceAll(ctx, items)
}

// ReplaceAll overwrites the stored collection.
func (c *Collection[T]) ReplaceAll(ctx context.Context, entities []T) error {
	if entities == nil {
		entities = []T{}
	}

	data, err := json.Marshal(entities)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}

	if err := c.store.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.key, err)
	}

	return nil
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	items, err := c.All(ctx)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	return items, err
}
