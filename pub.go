package vkv

import "fmt"

// Set adds or replaces the value for the given key in the current
// version.
func (s *Store[K, V]) Set(key K, value V) {
	if s.debug {
		fmt.Printf("setting %v=%v...\n", key, value)
	}
	wasLive := s.isLive(s.heads[key])
	head := s.writableHead(key)
	head.value = value
	head.deleted = false
	if !wasLive {
		s.sizes[len(s.sizes)-1]++
	}
	s.compact(key)
}

// Delete removes the key from the current version.  Earlier versions
// keep seeing the old value.  Deleting an absent key is a no-op.
func (s *Store[K, V]) Delete(key K) {
	if s.debug {
		fmt.Printf("deleting %v...\n", key)
	}
	if !s.isLive(s.heads[key]) {
		return
	}
	head := s.writableHead(key)
	var zero V
	head.value = zero
	head.deleted = true
	s.sizes[len(s.sizes)-1]--
	s.compact(key)
}

// Get returns the value for the given key in the current version, or
// the value type's zero value if the key is absent.
func (s *Store[K, V]) Get(key K) V {
	var zero V
	if head := s.heads[key]; s.isLive(head) {
		return head.value
	}
	return zero
}

// GetAt returns the value the given key had as of the given version,
// or the zero value if the key was absent then.  A version beyond
// MaxVersion() answers for the current version.
func (s *Store[K, V]) GetAt(key K, version uint64) V {
	var zero V
	if d := s.heads[key].at(version); s.isLive(d) {
		return d.value
	}
	return zero
}

// Contains reports whether the key is present in the current version.
func (s *Store[K, V]) Contains(key K) bool {
	return s.isLive(s.heads[key])
}

// ContainsAt reports whether the key was present as of the given
// version.  A version beyond MaxVersion() answers for the current
// version.
func (s *Store[K, V]) ContainsAt(key K, version uint64) bool {
	return s.isLive(s.heads[key].at(version))
}

// Size returns the number of live keys in the current version.
func (s *Store[K, V]) Size() uint64 {
	return s.sizes[len(s.sizes)-1]
}

// SizeAt returns the number of keys that were live as of the given
// version, without walking any chains.  A version beyond MaxVersion()
// answers for the current version.
func (s *Store[K, V]) SizeAt(version uint64) uint64 {
	if version >= uint64(len(s.sizes)) {
		return s.Size()
	}
	return s.sizes[version]
}

// MaxVersion returns the highest version number in use: the current,
// still-open version.  Sealed versions are 0 through MaxVersion()-1.
func (s *Store[K, V]) MaxVersion() uint64 {
	return s.currentVersion()
}

// Save seals the current version and returns its number.  The store
// then accepts writes into a new open version whose content starts
// identical to the sealed one.
func (s *Store[K, V]) Save() uint64 {
	sealed := s.currentVersion()
	s.sizes = append(s.sizes, s.sizes[sealed])
	return sealed
}

// Iter invokes the given callback for every live entry of the current
// version, in map order.  Iteration stops at the first error, which is
// returned.
func (s *Store[K, V]) Iter(f func(key K, value V) error) error {
	return s.IterAt(s.currentVersion(), f)
}

// IterAt invokes the given callback for every entry that was live as
// of the given version, in map order.
func (s *Store[K, V]) IterAt(version uint64, f func(key K, value V) error) error {
	for key, head := range s.heads {
		d := head.at(version)
		if !s.isLive(d) {
			continue
		}
		if err := f(key, d.value); err != nil {
			return err
		}
	}
	return nil
}
