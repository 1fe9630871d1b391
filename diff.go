package vkv

import "fmt"

// DiffIter invokes the given callback for every key whose observable
// state differs between the two given versions.  The iteration will
// stop if the callback returns keepGoing==false or an error.  Callback
// invocation with added==removed==true signifies keys whose values
// have changed; keys are visited in map order.
//
// Either version may be the open one, and a version beyond
// MaxVersion() stands for the current state, so DiffIter(sealed,
// MaxVersion()) yields the changes accumulated since that seal.
func (s *Store[K, V]) DiffIter(
	from, to uint64,
	f func(added, removed bool,
		key K, addedValue, removedValue V,
	) (bool, error),
) error {
	var zero V
	for key, head := range s.heads {
		older := head.at(from)
		newer := head.at(to)
		oldLive := s.isLive(older)
		newLive := s.isLive(newer)
		var keepGoing bool
		var err error
		switch {
		case oldLive && newLive:
			if older.value == newer.value {
				continue
			}
			keepGoing, err = f(true, true, key, newer.value, older.value)
		case newLive:
			keepGoing, err = f(true, false, key, newer.value, zero)
		case oldLive:
			keepGoing, err = f(false, true, key, zero, older.value)
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("callback: %w", err)
		}
		if !keepGoing {
			return nil
		}
	}
	return nil
}
