/*
Package vkv provides an in-memory key-value store with cheap,
immutable, numbered snapshots.  A Store behaves like a builtin map,
except that Save() seals the current content as a read-only version
that can keep being queried (Get/Contains/Size "at" a version) while
the live state continues to evolve.  Saving is O(1): the store never
copies the map, it records per-key diffs instead.

Uses

- Point-in-time views of configuration, caches or session state

- Undo/time-travel debugging for map-shaped state

- Change feeds between any two versions via DiffIter

How it works

Each key owns a backward-linked chain of diff nodes, one per version
in which the key's value or presence actually changed.  A diff node
records the value, a tombstone flag, and the version it was written
in.  Reading "key as of version v" walks the key's chain backward to
the newest diff at or below v.  A version ledger records the live-key
count at every seal, so Size at any version is O(1).  After every
write the chain is compacted: adjacent nodes with identical observable
state are merged, so a chain's length is bounded by the number of
distinct transitions the key went through, not by the number of
versions.

Missing keys and unknown versions never produce errors: reads of an
absent key yield the value type's zero value, and reads at a version
beyond MaxVersion() answer for the current, still-open version.

Persistence

Any version can be exported to a Persist (a filesystem, a pebble
keyspace, or anything else implementing Store/Load) as a single
content-addressed snapshot, and imported back into a fresh Store.
The snapshot name is the blake2b hash of its encoding, so identical
content always exports under the identical name, and a SnapshotCache
can elide repeated stores and loads.

Concurrency

A Store is not internally synchronized.  Writes mutate chain heads in
place, which is not safe to interleave with a concurrent backward
walk, so share a Store between goroutines only behind a single lock.
*/
package vkv
