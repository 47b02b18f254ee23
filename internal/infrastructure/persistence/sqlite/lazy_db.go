package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bnema/tabgroups/internal/logging"
)

// DatabaseProvider hands out the strip database on demand.
type DatabaseProvider interface {
	DB(ctx context.Context) (*sql.DB, error)
	Close() error
}

// LazyDB opens the database on first access, so commands that never touch
// storage skip the WASM compilation and migration cost.
type LazyDB struct {
	dbPath string

	mu  sync.Mutex
	db  *sql.DB
	err error
}

var _ DatabaseProvider = (*LazyDB)(nil)

// NewLazyDB creates a lazy database provider for dbPath.
func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// DB returns the connection, opening it on the first call. A failed open is
// remembered and returned on every later call.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil && l.err == nil {
		log := logging.FromContext(ctx)
		log.Debug().Str("path", l.dbPath).Msg("opening strip database")
		l.db, l.err = NewConnection(ctx, l.dbPath)
		if l.err != nil {
			log.Error().Err(l.err).Msg("strip database initialization failed")
		}
	}

	if l.err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", l.err)
	}
	return l.db, nil
}

// Close closes the connection if it was opened.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	l.err = fmt.Errorf("database closed")
	return err
}

// IsInitialized reports whether the connection has been opened.
func (l *LazyDB) IsInitialized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.db != nil
}

// Path returns the database path.
func (l *LazyDB) Path() string {
	return l.dbPath
}
