package store

import (
	"encoding/binary"
)

// Keyspace helpers for Pebble keys.
//
// Layout (byte-wise, lexicographically sortable):
// - u/{id_be8}   record frames
// - r/{region}   per-region record counts (be8)
// - m/total      total record count (be8)
// - m/schema     store schema version

var (
	userPrefix   = []byte("u/")
	regionPrefix = []byte("r/")
	keyTotal     = []byte("m/total")
	keySchema    = []byte("m/schema")
)

func appendBE8(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

// KeyUser builds the record key with a big-endian id for proper ordering.
func KeyUser(id int64) []byte {
	k := make([]byte, 0, 10)
	k = append(k, userPrefix...)
	k = appendBE8(k, uint64(id))
	return k
}

// KeyRegion builds the per-region counter key.
func KeyRegion(region string) []byte {
	k := make([]byte, 0, len(regionPrefix)+len(region))
	k = append(k, regionPrefix...)
	k = append(k, region...)
	return k
}

// IDFromUserKey extracts the id from a record key.
func IDFromUserKey(key []byte) (int64, bool) {
	if len(key) != len(userPrefix)+8 {
		return 0, false
	}
	for i := range userPrefix {
		if key[i] != userPrefix[i] {
			return 0, false
		}
	}
	return int64(binary.BigEndian.Uint64(key[len(userPrefix):])), true
}

// prefixUpperBound returns an exclusive scan bound just past every key that
// starts with prefix.
func prefixUpperBound(prefix []byte) []byte {
	return append(append([]byte{}, prefix...), 0xFF)
}
