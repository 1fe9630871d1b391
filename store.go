package vkv

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/minio/blake2b-simd"
)

var (
	defaultUnmarshal = json.Unmarshal
	defaultMarshal   = json.Marshal
)

// Persist is the interface for loading and storing serialized
// snapshots.  The given string identity corresponds to the content,
// which is immutable (never modified).
type Persist interface {
	// Store makes the given bytes accessible by the given name.
	Store(ctx context.Context, name string, data []byte) error
	// Load retrieves the previously-stored bytes by the given name.
	Load(ctx context.Context, name string) ([]byte, error)
}

// RemoteConfig controls how snapshots are persisted and loaded.
type RemoteConfig struct {
	// StoreImmutablePartsWith is used to store and load serialized snapshots.
	StoreImmutablePartsWith Persist

	// Marshal function, defaults to JSON.
	Marshal func(interface{}) ([]byte, error)

	// Unmarshal function, defaults to JSON.
	Unmarshal func([]byte, interface{}) error

	// SnapshotCache caches encoded snapshots and may be shared across
	// multiple stores.
	SnapshotCache SnapshotCache
}

// Root identifies an exported version whose snapshot is accessible in
// the persistent store.  A nil Link means the version was empty.
type Root struct {
	Link    *string
	Size    uint64
	Version uint64
}

// Export serializes the view of the given version and stores it,
// named by the blake2b hash of its encoding, through the configured
// Persist.  Exporting a version beyond MaxVersion() exports the
// current version, matching the read fallback.
func (s *Store[K, V]) Export(ctx context.Context, version uint64, config *RemoteConfig) (*Root, error) {
	if config == nil || config.StoreImmutablePartsWith == nil {
		return nil, fmt.Errorf("no persistence mechanism set; set RemoteConfig.StoreImmutablePartsWith")
	}
	marshal := config.Marshal
	if marshal == nil {
		marshal = defaultMarshal
	}
	if version > s.MaxVersion() {
		version = s.MaxVersion()
	}
	size := s.SizeAt(version)
	if size == 0 {
		return &Root{nil, 0, version}, nil
	}
	encoded, err := marshalSnapshot(s, version, marshal)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	hashBytes := blake2b.Sum256(encoded)
	hash := base64.RawURLEncoding.EncodeToString(hashBytes[:])
	if config.SnapshotCache != nil && config.SnapshotCache.Contains(hash) {
		return &Root{&hash, size, version}, nil
	}
	err = config.StoreImmutablePartsWith.Store(ctx, hash, encoded)
	if err != nil {
		return nil, fmt.Errorf("persist store: %w", err)
	}
	if config.SnapshotCache != nil {
		config.SnapshotCache.Add(hash, encoded)
	}
	return &Root{&hash, size, version}, nil
}

// ImportStore loads an exported snapshot into a fresh store.  The
// entries become version 0 of the new store, open for mutation.
func ImportStore[K comparable, V comparable](ctx context.Context, root *Root, config *RemoteConfig) (*Store[K, V], error) {
	s := NewStore[K, V]()
	if root.Link == nil {
		return s, nil
	}
	unmarshal := config.Unmarshal
	if unmarshal == nil {
		unmarshal = defaultUnmarshal
	}
	var encoded []byte
	if config.SnapshotCache != nil {
		if cached, ok := config.SnapshotCache.Get(*root.Link); ok {
			encoded = cached.([]byte)
		}
	}
	if encoded == nil {
		if config.StoreImmutablePartsWith == nil {
			return nil, fmt.Errorf("no persistence mechanism set; set RemoteConfig.StoreImmutablePartsWith")
		}
		var err error
		encoded, err = config.StoreImmutablePartsWith.Load(ctx, *root.Link)
		if err != nil {
			return nil, fmt.Errorf("persist load %s: %w", *root.Link, err)
		}
		if config.SnapshotCache != nil {
			config.SnapshotCache.Add(*root.Link, encoded)
		}
	}
	if err := unmarshalSnapshot(s, encoded, unmarshal); err != nil {
		return nil, fmt.Errorf("unmarshaling %s: %w", *root.Link, err)
	}
	if s.Size() != root.Size {
		return nil, fmt.Errorf("snapshot %s has %d entries, root says %d",
			*root.Link, s.Size(), root.Size)
	}
	return s, nil
}
