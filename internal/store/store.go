// Package store persists the catalog in the embedded sqlite database.
package store // import "github.com/jebrand/jebman/internal/store"

import (
	"database/sql"
	"sync"

	"github.com/jebrand/jebman/internal/store/db"
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a queried record does not exist.
	ErrNotFound = errors.New("store: record not found")
	// ErrNoRowsAffected is returned when a write touched zero rows. A
	// zero-affected-rows result is always a failure, never a no-op.
	ErrNoRowsAffected = errors.New("store: no rows affected")
)

type Store struct {
	db *db.DB
	// lock serializes writes. The embedded database is single-writer;
	// the store is the only writer in the process.
	lock sync.Mutex
}

func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// begin opens a write transaction under the store lock. The returned
// cleanup must be deferred; it rolls back unless commit succeeded.
func (s *Store) begin() (*sql.Tx, func(), error) {
	s.lock.Lock()
	tx, err := s.db.Begin()
	if err != nil {
		s.lock.Unlock()
		return nil, nil, errors.Wrap(err, "beginning transaction")
	}
	return tx, func() {
		tx.Rollback()
		s.lock.Unlock()
	}, nil
}
