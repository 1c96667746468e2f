package store

import (
	"bytes"
	"testing"
)

func TestUserKeyOrdering(t *testing.T) {
	a := KeyUser(1)
	b := KeyUser(2)
	c := KeyUser(1 << 40)
	if bytes.Compare(a, b) >= 0 {
		t.Fatalf("expected key(1) < key(2)")
	}
	if bytes.Compare(b, c) >= 0 {
		t.Fatalf("expected key(2) < key(1<<40)")
	}
}

func TestIDFromUserKey(t *testing.T) {
	id, ok := IDFromUserKey(KeyUser(987654321))
	if !ok || id != 987654321 {
		t.Fatalf("roundtrip failed: %d %v", id, ok)
	}
	if _, ok := IDFromUserKey([]byte("r/Norway")); ok {
		t.Fatalf("region key should not parse as user key")
	}
	if _, ok := IDFromUserKey([]byte("u/short")); ok {
		t.Fatalf("short key should not parse")
	}
}

func TestPrefixUpperBoundCoversKeys(t *testing.T) {
	hi := prefixUpperBound(userPrefix)
	if bytes.Compare(KeyUser(1<<62), hi) >= 0 {
		t.Fatalf("upper bound does not cover large ids")
	}
}
