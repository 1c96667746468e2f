// Package store persists resolved user-directory records in Pebble.
//
// Values are framed as varint headerLen | header | payload | crc32c trailer,
// where the header carries the record's creation time in big-endian
// milliseconds and the payload is compact JSON. Frames that fail to decode
// are treated as absent rather than surfaced as errors.
//
// A bounded in-memory LRU fronts the persistent store. Records are immutable
// once written (the first insert for an id wins), so cached entries never go
// stale.
//
// Example:
//
//	s, err := store.Open(db, store.Options{CacheSize: 1024})
//	if err != nil { /* handle */ }
//	inserted, err := s.InsertIfAbsent(ctx, rec)
//	rec, found, err := s.Get(ctx, 42)
package store
