package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"tagreview/internal/logging"
	"tagreview/internal/reviewerr"
)

// Store manages record persistence backed by SQLite.
type Store struct {
	db       *sql.DB
	path     string
	lock     *flock.Flock
	readOnly bool
	logger   *slog.Logger
}

// Options tunes how a store is opened.
type Options struct {
	// ReadOnly opens an existing store for queries and exports without taking
	// the reviewer lock. Mutations fail.
	ReadOnly    bool
	BusyTimeout time.Duration
	Logger      *slog.Logger
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
	defaultBusyTimeout      = 5 * time.Second
)

// ErrReadOnly is returned by mutations on a store opened with Options.ReadOnly.
var ErrReadOnly = errors.New("store opened read-only")

// LockPath returns the advisory lock file guarding the store at path.
func LockPath(path string) string {
	return path + ".lock"
}

// Open initializes or connects to the store at path. Writers acquire the
// reviewer lock and create the schema when the file is new.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	ctx = ensureContext(ctx)
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("open store: empty path")
	}
	logger := logging.NewComponentLogger(opts.Logger, "records").With(logging.String(logging.FieldStore, filepath.Base(path)))

	if opts.ReadOnly {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("open store %s: %w", path, err)
		}
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure store directory: %w", err)
	}

	var lock *flock.Flock
	if !opts.ReadOnly {
		lock = flock.New(LockPath(path))
		ok, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire store lock: %w", err)
		}
		if !ok {
			return nil, reviewerr.Wrap(reviewerr.ErrLocked, "records", "open", "another review session is using "+filepath.Base(path), nil)
		}
	}

	db, err := sql.Open("sqlite", buildDSN(path, opts))
	if err != nil {
		releaseLock(lock)
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	store := &Store{db: db, path: path, lock: lock, readOnly: opts.ReadOnly, logger: logger}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		releaseLock(lock)
		return nil, err
	}

	logger.Debug("store opened", logging.Bool("read_only", opts.ReadOnly))
	return store, nil
}

func buildDSN(path string, opts Options) string {
	timeout := opts.BusyTimeout
	if timeout <= 0 {
		timeout = defaultBusyTimeout
	}
	params := url.Values{}
	params.Add("_pragma", "busy_timeout("+fmt.Sprint(timeout.Milliseconds())+")")
	params.Add("_pragma", "foreign_keys(1)")
	if opts.ReadOnly {
		params.Add("_pragma", "query_only(1)")
	} else {
		params.Add("_pragma", "journal_mode(WAL)")
	}
	return path + "?" + params.Encode()
}

func releaseLock(lock *flock.Flock) {
	if lock != nil {
		_ = lock.Unlock()
	}
}

// Close closes the database connection and releases the reviewer lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	releaseLock(s.lock)
	s.db = nil
	return err
}

// Path returns the store file location.
func (s *Store) Path() string {
	return s.path
}

// ReadOnly reports whether the store rejects mutations.
func (s *Store) ReadOnly() bool {
	return s.readOnly
}

func (s *Store) ensureWritable() error {
	if s.readOnly {
		return ErrReadOnly
	}
	return nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code()&0xff == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// inTx runs fn inside a transaction, retrying the whole transaction when
// SQLite reports the database as busy.
func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()
		if err := fn(tx); err != nil {
			return err
		}
		return tx.Commit()
	})
}
