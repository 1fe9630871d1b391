package vkv

import (
	"fmt"
	"strings"
)

// Store encapsulates the per-key diff chains and the version ledger of
// a versioned map.  The zero Store is not usable; call NewStore.
type Store[K comparable, V comparable] struct {
	heads map[K]*diff[V]
	sizes []uint64
	debug bool
}

// diff captures one key's value/tombstone state as of some version,
// linked backward to the key's previous differing state.  Walking prev
// from a chain head yields strictly decreasing versions.
type diff[V comparable] struct {
	value   V
	deleted bool
	version uint64
	prev    *diff[V]
}

// NewStore returns an empty store at version 0, open for mutation.
func NewStore[K comparable, V comparable]() *Store[K, V] {
	return &Store[K, V]{
		heads: map[K]*diff[V]{},
		sizes: []uint64{0},
	}
}

// currentVersion is the only version whose chain heads may be mutated
// in place; everything below it has been sealed by Save.
func (s *Store[K, V]) currentVersion() uint64 {
	return uint64(len(s.sizes) - 1)
}

func (s *Store[K, V]) isLive(d *diff[V]) bool {
	return d != nil && !d.deleted
}

// writableHead returns a chain head for key that belongs to the open
// version and so may be mutated in place.  If the existing head was
// sealed, a new node carrying the same observable state is pushed over
// it; post-mutation compaction undoes the push if the write turns out
// to be a no-op.
func (s *Store[K, V]) writableHead(key K) *diff[V] {
	head := s.heads[key]
	current := s.currentVersion()
	if head != nil && head.version == current {
		return head
	}
	head = &diff[V]{version: current, prev: head}
	if head.prev != nil {
		head.value = head.prev.value
		head.deleted = head.prev.deleted
	}
	s.heads[key] = head
	return head
}

// at walks the chain backward to the newest diff whose version is at
// most the requested version, or nil if the key was absent then.
func (d *diff[V]) at(version uint64) *diff[V] {
	n := d
	for n != nil && n.version > version {
		n = n.prev
	}
	return n
}

// compact restores the chain invariant for key after a mutation: no
// two adjacent nodes carry identical (value, deleted) state.  A chain
// reduced to a single tombstone is indistinguishable from no chain at
// every version, so it is dropped entirely.
func (s *Store[K, V]) compact(key K) {
	head := s.heads[key]
	if head == nil {
		return
	}
	if prev := head.prev; prev != nil &&
		head.value == prev.value && head.deleted == prev.deleted {
		head.prev = nil
		head = prev
		s.heads[key] = head
	}
	if head.deleted && head.prev == nil {
		delete(s.heads, key)
	}
}

// chainLength reports how many diffs key retains, for tests asserting
// compaction bounds.
func (s *Store[K, V]) chainLength(key K) int {
	n := 0
	for d := s.heads[key]; d != nil; d = d.prev {
		n++
	}
	return n
}

// checkChains verifies the structural invariants of every chain:
// strictly decreasing versions, versions within the ledger, and no
// adjacent duplicate states.
func (s *Store[K, V]) checkChains() error {
	for key, head := range s.heads {
		if head.version > s.currentVersion() {
			return fmt.Errorf("key %v: head version %d beyond current %d",
				key, head.version, s.currentVersion())
		}
		for d := head; d != nil; d = d.prev {
			prev := d.prev
			if prev == nil {
				continue
			}
			if prev.version >= d.version {
				return fmt.Errorf("key %v: versions not decreasing (%d then %d)",
					key, d.version, prev.version)
			}
			if prev.value == d.value && prev.deleted == d.deleted {
				return fmt.Errorf("key %v: adjacent duplicate state at version %d",
					key, d.version)
			}
		}
	}
	return nil
}

func (d *diff[V]) string() string {
	var b strings.Builder
	for n := d; n != nil; n = n.prev {
		if n != d {
			b.WriteString(" -> ")
		}
		if n.deleted {
			fmt.Fprintf(&b, "v%d:tombstone", n.version)
		} else {
			fmt.Fprintf(&b, "v%d:%v", n.version, n.value)
		}
	}
	return b.String()
}

func (s *Store[K, V]) dump() {
	fmt.Printf("version=%d size=%d sizes=%v\n",
		s.currentVersion(), s.Size(), s.sizes)
	for key, head := range s.heads {
		fmt.Printf("  %v: %s\n", key, head.string())
	}
}
