package repository

import (
	"context"

	"github.com/dtroode/quizzzy/internal/model"
)

var _ model.KVStore = (*Namespaced)(nil)

// Namespaced prefixes every key so several profiles can share one backend.
type Namespaced struct {
	store  model.KVStore
	prefix string
}

// NewNamespaced wraps store. An empty namespace returns store unchanged.
func NewNamespaced(store model.KVStore, namespace string) model.KVStore {
	if namespace == "" {
		return store
	}
	return &Namespaced{
		store:  store,
		prefix: namespace + ":",
	}
}

func (n *Namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.store.Get(ctx, n.prefix+key)
}

func (n *Namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.store.Set(ctx, n.prefix+key, value)
}

func (n *Namespaced) Delete(ctx context.Context, key string) error {
	return n.store.Delete(ctx, n.prefix+key)
}
