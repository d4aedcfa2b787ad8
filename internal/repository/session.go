package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dtroode/quizzzy/internal/model"
)

const loggedInValue = "true"

var _ model.SessionStore = (*SessionRepository)(nil)

// SessionRepository keeps the session marker pair (currentUser, isLoggedIn).
type SessionRepository struct {
	store model.KVStore
}

func NewSessionRepository(store model.KVStore) *SessionRepository {
	return &SessionRepository{
		store: store,
	}
}

func (r *SessionRepository) Load(ctx context.Context) (model.User, bool, error) {
	data, err := r.store.Get(ctx, model.KeyCurrentUser)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, false, model.ErrNotFound
		}
		return model.User{}, false, fmt.Errorf("failed to read session user: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return model.User{}, false, fmt.Errorf("failed to decode session user: %w: %v", model.ErrCorrupt, err)
	}

	flag, err := r.store.Get(ctx, model.KeyIsLoggedIn)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.User{}, false, fmt.Errorf("failed to read login marker: %w", err)
	}

	return user, string(flag) == loggedInValue, nil
}

func (r *SessionRepository) Save(ctx context.Context, user model.User) error {
	if err := r.Refresh(ctx, user); err != nil {
		return err
	}

	if err := r.store.Set(ctx, model.KeyIsLoggedIn, []byte(loggedInValue)); err != nil {
		return fmt.Errorf("failed to write login marker: %w", err)
	}

	return nil
}

func (r *SessionRepository) Refresh(ctx context.Context, user model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session user: %w", err)
	}

	if err := r.store.Set(ctx, model.KeyCurrentUser, data); err != nil {
		return fmt.Errorf("failed to write session user: %w", err)
	}

	return nil
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, model.KeyCurrentUser); err != nil {
		return fmt.Errorf("failed to delete session user: %w", err)
	}

	if err := r.store.Delete(ctx, model.KeyIsLoggedIn); err != nil {
		return fmt.Errorf("failed to delete login marker: %w", err)
	}

	return nil
}
