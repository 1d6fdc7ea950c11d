// Package cache persists session byte-ranges for blackbox log files keyed
// by a fingerprint of their content, so repeat opens of a large
// multi-session file can skip re-scanning for session boundaries.
package cache

import (
	"encoding/json"
	"fmt"
	"hash/crc32"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/flightlog/blackbox/internal/header"
)

const bucketName = "session_ranges"

// DB wraps a bbolt database holding one bucket: fingerprint -> JSON-encoded
// []header.Range.
type DB struct {
	bolt *bolt.DB
}

// Open opens (or creates) the cache database at path and ensures its
// bucket exists.
func Open(path string) (*DB, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("blackbox: opening cache %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("blackbox: initializing cache bucket: %w", err)
	}
	return &DB{bolt: db}, nil
}

// Close closes the underlying bbolt database.
func (d *DB) Close() error { return d.bolt.Close() }

// Fingerprint computes a cache key for a file's contents: its length and a
// CRC-32 checksum, cheap enough to compute on every Open without
// meaningfully adding to the cost Locate would have taken anyway.
func Fingerprint(data []byte) string {
	sum := crc32.ChecksumIEEE(data)
	return strconv.Itoa(len(data)) + ":" + strconv.FormatUint(uint64(sum), 16)
}

// Lookup returns the cached session ranges for fp, if any.
func (d *DB) Lookup(fp string) ([]header.Range, bool) {
	var ranges []header.Range
	found := false
	d.bolt.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		v := b.Get([]byte(fp))
		if v == nil {
			return nil
		}
		if err := json.Unmarshal(v, &ranges); err != nil {
			return nil
		}
		found = true
		return nil
	})
	return ranges, found
}

// Store records ranges under fp, overwriting any previous entry.
func (d *DB) Store(fp string, ranges []header.Range) error {
	data, err := json.Marshal(ranges)
	if err != nil {
		return fmt.Errorf("blackbox: encoding cache entry: %w", err)
	}
	return d.bolt.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		return b.Put([]byte(fp), data)
	})
}
