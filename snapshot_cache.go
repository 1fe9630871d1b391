package vkv

import lru "github.com/hashicorp/golang-lru"

// SnapshotCache caches encoded snapshots from a remote storage source.
// It is also used to avoid re-storing snapshots, so care should be
// taken to switch/invalidate the SnapshotCache when the Persist is
// changed.
type SnapshotCache interface {
	// Add adds a freshly-persisted snapshot to the cache.
	Add(key, value interface{})
	// Contains indicates the snapshot with the given name has already been persisted.
	Contains(key interface{}) bool
	// Get retrieves the encoded snapshot with the given name, if cached.
	Get(key interface{}) (value interface{}, ok bool)
}

// NewSnapshotCache creates a new LRU-based snapshot cache of the given
// size. One cache can be shared by any number of stores.
func NewSnapshotCache(size int) SnapshotCache {
	cache, err := lru.NewARC(size)
	if err != nil {
		panic(err)
	}
	return cache
}
