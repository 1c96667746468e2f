package store

import (
	"context"
	"testing"
	"time"

	pebblestore "github.com/rzbill/rolo/internal/storage/pebble"
	"github.com/rzbill/rolo/pkg/log"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir: t.TempDir(),
		Fsync:   pebblestore.FsyncModeNever,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	logger, err := log.ApplyConfig(&log.Config{Level: "error", Format: "text"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	s, err := Open(db, Options{CacheSize: 16, Logger: logger})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func testRecord(id int64, region string) Record {
	return Record{
		ID:          id,
		DisplayName: "user-" + region,
		Region:      region,
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestInsertAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := testRecord(7, "Norway")
	inserted, err := s.InsertIfAbsent(ctx, rec)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !inserted {
		t.Fatalf("expected first insert to report true")
	}

	got, found, err := s.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatalf("expected record")
	}
	if got.DisplayName != rec.DisplayName || got.Region != rec.Region {
		t.Fatalf("got %+v want %+v", got, rec)
	}

	_, found, err = s.Get(ctx, 8)
	if err != nil {
		t.Fatalf("get absent: %v", err)
	}
	if found {
		t.Fatalf("expected miss for unknown id")
	}
}

func TestDuplicateInsertKeepsFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := testRecord(3, "Chile")
	if _, err := s.InsertIfAbsent(ctx, first); err != nil {
		t.Fatalf("insert: %v", err)
	}

	second := testRecord(3, "Peru")
	inserted, err := s.InsertIfAbsent(ctx, second)
	if err != nil {
		t.Fatalf("duplicate insert should not error: %v", err)
	}
	if inserted {
		t.Fatalf("duplicate insert should report false")
	}

	got, _, err := s.Get(ctx, 3)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Region != "Chile" {
		t.Fatalf("first record should win, got %q", got.Region)
	}

	// Counters must not double count.
	total, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 record, got %d", total)
	}
}

func TestRegionCounts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i, region := range []string{"Norway", "Norway", "Chile"} {
		if _, err := s.InsertIfAbsent(ctx, testRecord(int64(i+1), region)); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	counts, err := s.RegionCounts(ctx)
	if err != nil {
		t.Fatalf("region counts: %v", err)
	}
	if counts["Norway"] != 2 || counts["Chile"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}

	total, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 records, got %d", total)
	}
}

func TestEmptyRegionNotCounted(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.InsertIfAbsent(ctx, testRecord(9, "")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	counts, err := s.RegionCounts(ctx)
	if err != nil {
		t.Fatalf("region counts: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("expected no region rows, got %v", counts)
	}
}

func TestListOrderLimitFilter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, id := range []int64{30, 10, 20} {
		if _, err := s.InsertIfAbsent(ctx, testRecord(id, "X")); err != nil {
			t.Fatalf("insert %d: %v", id, err)
		}
	}

	recs, err := s.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 3 || recs[0].ID != 10 || recs[1].ID != 20 || recs[2].ID != 30 {
		t.Fatalf("unexpected order: %+v", recs)
	}

	recs, err = s.List(ctx, ListOptions{Limit: 2})
	if err != nil {
		t.Fatalf("list limit: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}

	recs, err = s.List(ctx, ListOptions{Filter: func(r Record) bool { return r.ID > 15 }})
	if err != nil {
		t.Fatalf("list filter: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != 20 {
		t.Fatalf("unexpected filtered records: %+v", recs)
	}
}

func TestCorruptValueTreatedAsAbsent(t *testing.T) {
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir: t.TempDir(),
		Fsync:   pebblestore.FsyncModeNever,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	s, err := Open(db, Options{CacheSize: 16})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	// Write garbage directly under the record key.
	if err := db.Set(KeyUser(5), []byte("not a frame")); err != nil {
		t.Fatalf("set: %v", err)
	}

	_, found, err := s.Get(context.Background(), 5)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatalf("corrupt value should read as absent")
	}
}

func TestHotCacheServesAfterBackingDelete(t *testing.T) {
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir: t.TempDir(),
		Fsync:   pebblestore.FsyncModeNever,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	s, err := Open(db, Options{CacheSize: 16})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()

	if _, err := s.InsertIfAbsent(ctx, testRecord(11, "Ghana")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	// Remove the backing row; the hot cache should still answer.
	if err := db.Delete(KeyUser(11)); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, found, err := s.Get(ctx, 11)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatalf("expected hot cache hit")
	}
	if s.CacheLen() == 0 {
		t.Fatalf("expected cached entries")
	}
}

func TestInsertRejectsBadID(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.InsertIfAbsent(context.Background(), testRecord(0, "X")); err == nil {
		t.Fatalf("expected error for non-positive id")
	}
}

func TestSchemaMarkerRoundtrip(t *testing.T) {
	dir := t.TempDir()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: dir, Fsync: pebblestore.FsyncModeNever})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if _, err := Open(db, Options{}); err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db, err = pebblestore.Open(pebblestore.Options{DataDir: dir, Fsync: pebblestore.FsyncModeNever})
	if err != nil {
		t.Fatalf("reopen db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := Open(db, Options{}); err != nil {
		t.Fatalf("reopen store: %v", err)
	}

	// A foreign marker is rejected.
	if err := db.Set(keySchema, []byte("999")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := Open(db, Options{}); err == nil {
		t.Fatalf("expected schema mismatch error")
	}
}
