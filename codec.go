package vkv

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

func appendLength(buf []byte, n int) []byte {
	var tmpbuf [8]byte
	len := binary.PutUvarint(tmpbuf[:], uint64(n))
	return append(buf, tmpbuf[:len]...)
}

func appendBytes(buf, body []byte) []byte {
	buf = appendLength(buf, len(body))
	return append(buf, body...)
}

func decodeLength(buf []byte, n *int) ([]byte, error) {
	k, len := binary.Uvarint(buf)
	if len <= 0 {
		return nil, errors.New("bad length")
	}
	*n = int(k)
	return buf[len:], nil
}

func decodeBytes(buf []byte, body *[]byte) ([]byte, error) {
	var err error
	var n int
	buf, err = decodeLength(buf, &n)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return buf, nil
	}
	if len(buf) < n {
		return nil, errors.New("bad body length")
	}
	*body = buf[:n]
	return buf[n:], nil
}

type encodedEntry struct {
	key, value []byte
}

// marshalSnapshot encodes the entries live at the given version with
// uvarint framing.  Entries are sorted by encoded key so that equal
// content always encodes to equal bytes, keeping the content address
// stable across map iteration orders.
func marshalSnapshot[K comparable, V comparable](
	s *Store[K, V], version uint64,
	marshal func(interface{}) ([]byte, error),
) ([]byte, error) {
	var entries []encodedEntry
	err := s.IterAt(version, func(key K, value V) error {
		kb, err := marshal(key)
		if err != nil {
			return fmt.Errorf("marshal key: %w", err)
		}
		vb, err := marshal(value)
		if err != nil {
			return fmt.Errorf("marshal value: %w", err)
		}
		entries = append(entries, encodedEntry{kb, vb})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].key, entries[j].key) < 0
	})
	buf := appendLength(nil, len(entries))
	for _, e := range entries {
		buf = appendBytes(buf, e.key)
		buf = appendBytes(buf, e.value)
	}
	return buf, nil
}

// unmarshalSnapshot decodes an encoded snapshot into the given store
// as writes to its open version.
func unmarshalSnapshot[K comparable, V comparable](
	s *Store[K, V], buf []byte,
	unmarshal func([]byte, interface{}) error,
) error {
	var err error
	var total int
	buf, err = decodeLength(buf, &total)
	if err != nil {
		return fmt.Errorf("decode entry count: %w", err)
	}
	for i := 0; i < total; i++ {
		var kb, vb []byte
		buf, err = decodeBytes(buf, &kb)
		if err != nil {
			return fmt.Errorf("decode key[%d]: %w", i, err)
		}
		buf, err = decodeBytes(buf, &vb)
		if err != nil {
			return fmt.Errorf("decode value[%d]: %w", i, err)
		}
		var key K
		var value V
		if kb != nil {
			if err = unmarshal(kb, &key); err != nil {
				return fmt.Errorf("unmarshal key[%d]: %w", i, err)
			}
		}
		if vb != nil {
			if err = unmarshal(vb, &value); err != nil {
				return fmt.Errorf("unmarshal value[%d]: %w", i, err)
			}
		}
		s.Set(key, value)
	}
	return nil
}
