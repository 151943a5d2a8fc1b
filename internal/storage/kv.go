// Package storage provides the key-value backends the guide persists its
// saved locations and settings into.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when nothing is stored under the key
var ErrNotFound = errors.New("storage: key not found")

// KeyValueStore is the persistence collaborator consumed by the stores.
// Values are opaque serialized strings.
type KeyValueStore interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, value string) error
	Close() error
}

// prefixedStore namespaces every key, so several apps can share one Redis or Postgres
type prefixedStore struct {
	inner  KeyValueStore
	prefix string
}

// WithPrefix returns kv with prefix prepended to every key
func WithPrefix(kv KeyValueStore, prefix string) KeyValueStore {
	if prefix == "" {
		return kv
	}
	return &prefixedStore{inner: kv, prefix: prefix}
}

func (p *prefixedStore) Load(ctx context.Context, key string) (string, error) {
	return p.inner.Load(ctx, p.prefix+key)
}

func (p *prefixedStore) Save(ctx context.Context, key, value string) error {
	return p.inner.Save(ctx, p.prefix+key, value)
}

func (p *prefixedStore) Close() error {
	return p.inner.Close()
}
