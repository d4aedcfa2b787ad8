package model

import "context"

// Persisted key names. Collections are stored whole, JSON-encoded.
const (
	KeyUsers       = "quizzzy_users"
	KeyQuizzes     = "quizzzy_quizzes"
	KeyEvents      = "quizzzy_events"
	KeySubmissions = "quizzzy_submissions"
	KeyCurrentUser = "currentUser"
	KeyIsLoggedIn  = "isLoggedIn"
)

// KVStore is the key-value persistence surface every manager goes through.
// Get returns ErrNotFound for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Entity is a record addressable by id inside a collection.
type Entity interface {
	EntityID() string
}

// Repository reads and writes a whole collection on every call.
// Two repositories over the same store can overwrite each other's writes.
type Repository[T Entity] interface {
	All(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	List(ctx context.Context, pred func(T) bool) ([]T, error)
	Upsert(ctx context.Context, entity T) error
	Prepend(ctx context.Context, entity T) error
	ReplaceAll(ctx context.Context, entities []T) error
}
