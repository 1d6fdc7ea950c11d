package cache

import (
	"path/filepath"
	"testing"

	"github.com/flightlog/blackbox/internal/header"
)

func TestDB_StoreAndLookup(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	fp := Fingerprint([]byte("some log bytes"))
	ranges := []header.Range{{Start: 0, End: 100}, {Start: 100, End: 250}}

	if _, ok := db.Lookup(fp); ok {
		t.Fatal("expected a cache miss before Store")
	}

	if err := db.Store(fp, ranges); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, ok := db.Lookup(fp)
	if !ok {
		t.Fatal("expected a cache hit after Store")
	}
	if len(got) != 2 || got[0] != ranges[0] || got[1] != ranges[1] {
		t.Fatalf("got = %+v, want %+v", got, ranges)
	}
}

func TestFingerprint_DiffersByContent(t *testing.T) {
	a := Fingerprint([]byte("alpha"))
	b := Fingerprint([]byte("beta"))
	if a == b {
		t.Fatal("expected different fingerprints for different content")
	}
}
