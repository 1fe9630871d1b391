// Package pebblestore persists vkv snapshots in a pebble keyspace, so
// versioned maps can be exported into an application's existing pebble
// database alongside its other data.
package pebblestore

import (
	"context"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// Persist implements the vkv.Persist interface on top of a pebble DB.
// All snapshots live under the configured key prefix.
type Persist struct {
	db     *pebble.DB
	prefix []byte
}

// NewPersist returns a Persist storing snapshots in the given pebble
// DB under the given key prefix. The DB remains owned by the caller.
func NewPersist(db *pebble.DB, prefix string) Persist {
	return Persist{db: db, prefix: []byte(prefix)}
}

func (p Persist) key(name string) []byte {
	return append(append([]byte{}, p.prefix...), name...)
}

// Store persists the given bytes under the given name, unless the name
// is already present. Snapshot content is immutable, so an existing
// key never needs rewriting.
func (p Persist) Store(ctx context.Context, name string, data []byte) error {
	key := p.key(name)
	if _, closer, err := p.db.Get(key); err == nil {
		_ = closer.Close()
		return nil
	}
	if err := p.db.Set(key, data, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set %s: %w", name, err)
	}
	return nil
}

// Load retrieves the previously-stored bytes by the given name.
func (p Persist) Load(ctx context.Context, name string) ([]byte, error) {
	data, closer, err := p.db.Get(p.key(name))
	if err != nil {
		return nil, fmt.Errorf("pebble get %s: %w", name, err)
	}
	out := append([]byte{}, data...)
	_ = closer.Close()
	return out, nil
}
