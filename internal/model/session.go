package model

import "context"

// SessionStore persists the single session marker pair.
type SessionStore interface {
	// Load returns the stored user snapshot and whether isLoggedIn is "true".
	// ErrNotFound is returned when no snapshot is stored.
	Load(ctx context.Context) (User, bool, error)
	// Save writes the snapshot and sets isLoggedIn.
	Save(ctx context.Context, user User) error
	// Refresh rewrites the snapshot only.
	Refresh(ctx context.Context, user User) error
	Clear(ctx context.Context) error
}
