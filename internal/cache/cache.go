// Package cache memoizes type-checking results in a local sqlite database,
// so a CLI driver can skip re-checking a source file whose text and
// globals-map version have not changed since the last run.
//
// This package is genuinely optional: a caller that never constructs a
// Cache pays nothing, and internal/typecheck never depends on it;
// checking stays synchronous and pure regardless of whether a cache is
// in play.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Cache stores type-checking outcomes keyed by a content hash.
type Cache struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS check_results (
	key        TEXT PRIMARY KEY,
	ok         INTEGER NOT NULL,
	report     BLOB,
	checked_at INTEGER NOT NULL
);
`

// Open creates or opens a sqlite database at path and ensures its schema
// exists.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: create schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key derives a stable cache key from a source file's text and the version
// string of the globals map it was checked against, so a change to either
// invalidates the cached outcome.
func Key(source, globalsVersion string) string {
	h := sha256.New()
	h.Write([]byte(source))
	h.Write([]byte{0})
	h.Write([]byte(globalsVersion))
	return hex.EncodeToString(h.Sum(nil))
}

// Entry is a previously recorded type-checking outcome.
type Entry struct {
	OK        bool
	Report    []byte // deterministic JSON of an *errors.Report, nil when OK
	CheckedAt time.Time
}

// ErrNotFound is returned by Lookup when key has no cached entry.
var ErrNotFound = errors.New("cache: key not found")

// Lookup returns the cached outcome for key, or ErrNotFound if none exists.
func (c *Cache) Lookup(key string) (Entry, error) {
	var e Entry
	var ok int
	var report []byte
	var checkedAt int64

	row := c.db.QueryRow(`SELECT ok, report, checked_at FROM check_results WHERE key = ?`, key)
	if err := row.Scan(&ok, &report, &checkedAt); err != nil {
		if err == sql.ErrNoRows {
			return e, ErrNotFound
		}
		return e, fmt.Errorf("cache: lookup %s: %w", key, err)
	}

	e.OK = ok != 0
	e.Report = report
	e.CheckedAt = time.Unix(checkedAt, 0).UTC()
	return e, nil
}

// Store records the outcome of checking the source identified by key.
func (c *Cache) Store(key string, ok bool, report []byte) error {
	okInt := 0
	if ok {
		okInt = 1
	}
	_, err := c.db.Exec(
		`INSERT INTO check_results (key, ok, report, checked_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET ok = excluded.ok, report = excluded.report, checked_at = excluded.checked_at`,
		key, okInt, report, time.Now().UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("cache: store %s: %w", key, err)
	}
	return nil
}
