package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/rzbill/rolo/internal/metrics"
	pebblestore "github.com/rzbill/rolo/internal/storage/pebble"
	"github.com/rzbill/rolo/pkg/log"
)

const (
	defaultCacheSize = 4096
	schemaVersion    = "1"
)

var (
	cacheHits = metrics.MustRegisterCounter(
		"cache", "hit_total",
		"Record lookups served from the in-memory hot cache.",
	)
	cacheMisses = metrics.MustRegisterCounter(
		"cache", "miss_total",
		"Record lookups that fell through to the persistent store.",
	)
	corruptValues = metrics.MustRegisterCounter(
		"store", "corrupt_values_total",
		"Stored record frames that failed to decode and were treated as absent.",
	)
)

// Options configures the record store.
type Options struct {
	// CacheSize bounds the in-memory hot-record cache. Zero or negative uses
	// the default.
	CacheSize int
	// CacheTTL expires hot entries after the given duration. Zero keeps them
	// until evicted by size.
	CacheTTL time.Duration
	// Logger receives store diagnostics. Nil falls back to a default logger.
	Logger log.Logger
}

// Store persists resolved user records in Pebble with a hot-record LRU in
// front. Records are immutable once written, so cached entries never go
// stale.
type Store struct {
	db     *pebblestore.DB
	logger log.Logger

	// mu serializes insert-if-absent so the existence check and the write
	// commit atomically.
	mu  sync.Mutex
	hot *expirable.LRU[int64, Record]
}

// Open prepares a record store on db, writing the schema marker on first use.
func Open(db *pebblestore.DB, opts Options) (*Store, error) {
	if db == nil {
		return nil, errors.New("store: nil db")
	}
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewLogger()
	}

	s := &Store{
		db:     db,
		logger: logger.With(log.Component("store")),
		hot:    expirable.NewLRU[int64, Record](size, nil, opts.CacheTTL),
	}

	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureSchema writes the schema marker if absent and rejects mismatches.
func (s *Store) ensureSchema() error {
	val, err := s.db.Get(keySchema)
	if errors.Is(err, pebble.ErrNotFound) {
		if err := s.db.Set(keySchema, []byte(schemaVersion)); err != nil {
			return fmt.Errorf("write schema marker: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read schema marker: %w", err)
	}
	if string(val) != schemaVersion {
		return fmt.Errorf("unsupported store schema %q", string(val))
	}
	return nil
}

// Get returns the record for id, consulting the hot cache first. Undecodable
// stored values are treated as absent.
func (s *Store) Get(ctx context.Context, id int64) (Record, bool, error) {
	if rec, ok := s.hot.Get(id); ok {
		cacheHits.Inc()
		return rec, true, nil
	}
	cacheMisses.Inc()

	val, err := s.db.Get(KeyUser(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("get user %d: %w", id, err)
	}

	rec, ok := DecodeValue(id, val)
	if !ok {
		corruptValues.Inc()
		s.logger.Debug("undecodable record value treated as absent", log.Int64("user_id", id))
		return Record{}, false, nil
	}
	s.hot.Add(id, rec)
	return rec, true, nil
}

// InsertIfAbsent writes rec unless a record for its id already exists. The
// existing record wins and inserted reports false with a nil error, so
// duplicate writes count as success. First inserts bump the total and
// per-region counters in the same batch.
func (s *Store) InsertIfAbsent(ctx context.Context, rec Record) (bool, error) {
	if rec.ID <= 0 {
		return false, fmt.Errorf("invalid user id %d", rec.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Get(KeyUser(rec.ID))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, pebble.ErrNotFound) {
		return false, fmt.Errorf("check user %d: %w", rec.ID, err)
	}

	val, err := EncodeValue(rec)
	if err != nil {
		return false, fmt.Errorf("encode user %d: %w", rec.ID, err)
	}

	total, err := s.readCount(keyTotal)
	if err != nil {
		return false, err
	}

	b := s.db.NewBatch()
	defer b.Close()
	if err := b.Set(KeyUser(rec.ID), val, nil); err != nil {
		return false, err
	}
	if err := b.Set(keyTotal, be8(total+1), nil); err != nil {
		return false, err
	}
	if rec.Region != "" {
		rc, err := s.readCount(KeyRegion(rec.Region))
		if err != nil {
			return false, err
		}
		if err := b.Set(KeyRegion(rec.Region), be8(rc+1), nil); err != nil {
			return false, err
		}
	}
	if err := s.db.CommitBatch(ctx, b); err != nil {
		return false, fmt.Errorf("commit user %d: %w", rec.ID, err)
	}

	s.hot.Add(rec.ID, rec)
	return true, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	n, err := s.readCount(keyTotal)
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}

// RegionCounts returns per-region record totals.
func (s *Store) RegionCounts(ctx context.Context) (map[string]int64, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: regionPrefix,
		UpperBound: prefixUpperBound(regionPrefix),
	})
	if err != nil {
		return nil, fmt.Errorf("region scan: %w", err)
	}
	defer iter.Close()

	out := make(map[string]int64)
	for ok := iter.First(); ok; ok = iter.Next() {
		key := iter.Key()
		val := iter.Value()
		if len(val) != 8 {
			continue
		}
		region := string(key[len(regionPrefix):])
		out[region] = int64(binary.BigEndian.Uint64(val))
	}
	return out, nil
}

// ListOptions bounds a record scan.
type ListOptions struct {
	// Limit caps the number of returned records. Zero or negative means no cap.
	Limit int
	// Filter, when set, keeps only records it reports true for.
	Filter func(Record) bool
}

// List scans records in id order.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: userPrefix,
		UpperBound: prefixUpperBound(userPrefix),
	})
	if err != nil {
		return nil, fmt.Errorf("record scan: %w", err)
	}
	defer iter.Close()

	var out []Record
	for ok := iter.First(); ok; ok = iter.Next() {
		id, ok := IDFromUserKey(iter.Key())
		if !ok {
			continue
		}
		rec, ok := DecodeValue(id, iter.Value())
		if !ok {
			corruptValues.Inc()
			continue
		}
		if opts.Filter != nil && !opts.Filter(rec) {
			continue
		}
		out = append(out, rec)
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out, nil
}

// CacheLen reports how many records currently sit in the hot cache.
func (s *Store) CacheLen() int {
	return s.hot.Len()
}

func (s *Store) readCount(key []byte) (uint64, error) {
	val, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read counter %q: %w", string(key), err)
	}
	if len(val) != 8 {
		return 0, fmt.Errorf("counter %q has %d bytes, want 8", string(key), len(val))
	}
	return binary.BigEndian.Uint64(val), nil
}

func be8(v uint64) []byte {
	return appendBE8(nil, v)
}
