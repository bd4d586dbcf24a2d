package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"tagreview/internal/logging"
	"tagreview/internal/records"
	"tagreview/internal/reviewerr"
)

// ErrExists is returned when a rename target is already taken.
var ErrExists = errors.New("store already exists")

// Entry describes one store file.
type Entry struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modified"`
	Locked  bool      `json:"locked"`
}

// Workspace is a directory of review stores.
type Workspace struct {
	dir    string
	logger *slog.Logger
}

// New returns a workspace rooted at dir. The directory is created lazily.
func New(dir string, logger *slog.Logger) *Workspace {
	return &Workspace{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "workspace"),
	}
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// Ensure creates the workspace directory when missing.
func (w *Workspace) Ensure() error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	return nil
}

// Resolve maps a store reference to a file path. References containing a
// path separator are used as given; bare names live in the workspace and
// get the store extension appended when missing.
func (w *Workspace) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New("no store selected (pass --db or set store.name)")
	}
	if strings.ContainsRune(ref, os.PathSeparator) || strings.Contains(ref, "/") {
		return filepath.Clean(ref), nil
	}
	name, err := normalizeName(ref)
	if err != nil {
		return "", err
	}
	return filepath.Join(w.dir, name), nil
}

// List returns the stores in the workspace, newest name first.
func (w *Workspace) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(w.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store directory: %w", err)
	}
	var out []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), Extension) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(w.dir, de.Name())
		out = append(out, Entry{
			Name:    de.Name(),
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Locked:  IsLocked(path),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

// IsLocked reports whether a review session currently holds the store.
func IsLocked(path string) bool {
	lock := flock.New(records.LockPath(path))
	ok, err := lock.TryLock()
	if err != nil {
		return false
	}
	if !ok {
		return true
	}
	_ = lock.Unlock()
	return false
}

// Rename moves a store and its sidecars to a new bare name. The target must
// not exist and the store must not be in use.
func (w *Workspace) Rename(ref, newName string) (string, error) {
	oldPath, err := w.Resolve(ref)
	if err != nil {
		return "", err
	}
	name, err := normalizeName(newName)
	if err != nil {
		return "", err
	}
	newPath := filepath.Join(filepath.Dir(oldPath), name)
	if newPath == oldPath {
		return oldPath, nil
	}
	if _, err := os.Stat(oldPath); err != nil {
		return "", fmt.Errorf("rename store: %w", err)
	}
	if _, err := os.Stat(newPath); err == nil {
		return "", fmt.Errorf("%w: %s", ErrExists, name)
	}

	release, err := w.acquire(oldPath, "rename")
	if err != nil {
		return "", err
	}
	defer release()

	if err := os.Rename(oldPath, newPath); err != nil {
		return "", fmt.Errorf("rename store: %w", err)
	}
	for i, side := range sidecars(oldPath) {
		target := sidecars(newPath)[i]
		if err := os.Rename(side, target); err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("rename %s: %w", filepath.Base(side), err)
		}
	}
	w.logger.Info("store renamed",
		logging.String(logging.FieldStore, filepath.Base(oldPath)),
		logging.String("new_name", name),
	)
	return newPath, nil
}

// Delete removes a store and its sidecars. The store must not be in use.
func (w *Workspace) Delete(ref string) error {
	path, err := w.Resolve(ref)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("delete store: %w", err)
	}

	release, err := w.acquire(path, "delete")
	if err != nil {
		return err
	}
	defer release()

	for _, target := range append([]string{path}, sidecars(path)...) {
		if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("delete %s: %w", filepath.Base(target), err)
		}
	}
	w.logger.Info("store deleted", logging.String(logging.FieldStore, filepath.Base(path)))
	return nil
}

// acquire takes the reviewer lock for path. The returned func unlocks and
// removes the lock file, since the store it guarded is gone.
func (w *Workspace) acquire(path, operation string) (func(), error) {
	lockPath := records.LockPath(path)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !ok {
		return nil, reviewerr.Wrap(reviewerr.ErrLocked, "workspace", operation, filepath.Base(path)+" is open in another review session", nil)
	}
	return func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}, nil
}
