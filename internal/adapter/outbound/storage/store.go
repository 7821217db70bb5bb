// Package storage persists the application's local records as JSON files
// under a data directory: the auth session, the favourites list, the theme
// flag, and locally-registered accounts. Each record is read and written in
// full; there is no transactional guarantee across records.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/unideck/unideck/internal/domain/auth"
	"github.com/unideck/unideck/internal/domain/course"
)

// Record file names under the data directory.
const (
	sessionFile    = "session.json"
	favouritesFile = "favourites.json"
	themeFile      = "theme.json"
	accountsFile   = "accounts.json"
)

// FileStore reads and writes the local record files.
// It provides atomic writes (write-tmp-then-rename) and file locking
// (flock for cross-process, mutex for in-process). Loads never fail:
// a missing or corrupt record yields its type-specific default.
type FileStore struct {
	dir    string
	mu     sync.Mutex
	logger *slog.Logger
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Dir returns the data directory path.
func (s *FileStore) Dir() string {
	return s.dir
}

// LoadSession returns the persisted session, or nil when no session is
// stored or the record cannot be parsed.
func (s *FileStore) LoadSession() *auth.Session {
	var session auth.Session
	if !s.load(sessionFile, &session) {
		return nil
	}
	return &session
}

// SaveSession persists the session record.
func (s *FileStore) SaveSession(session *auth.Session) error {
	return s.save(sessionFile, session)
}

// RemoveSession deletes the persisted session. Missing file is not an error.
func (s *FileStore) RemoveSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, sessionFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// LoadFavourites returns the persisted favourites, defaulting to an empty
// sequence.
func (s *FileStore) LoadFavourites() []course.Course {
	var favourites []course.Course
	if !s.load(favouritesFile, &favourites) || favourites == nil {
		return []course.Course{}
	}
	return favourites
}

// SaveFavourites persists the whole favourites sequence.
func (s *FileStore) SaveFavourites(favourites []course.Course) error {
	if favourites == nil {
		favourites = []course.Course{}
	}
	return s.save(favouritesFile, favourites)
}

// LoadTheme returns the persisted dark-theme flag, defaulting to false.
func (s *FileStore) LoadTheme() bool {
	var dark bool
	if !s.load(themeFile, &dark) {
		return false
	}
	return dark
}

// SaveTheme persists the dark-theme flag.
func (s *FileStore) SaveTheme(dark bool) error {
	return s.save(themeFile, dark)
}

// LoadAccounts returns the locally-registered accounts, defaulting to empty.
func (s *FileStore) LoadAccounts() auth.Accounts {
	var accounts auth.Accounts
	if !s.load(accountsFile, &accounts) || accounts == nil {
		return auth.Accounts{}
	}
	return accounts
}

// SaveAccounts persists the locally-registered accounts.
func (s *FileStore) SaveAccounts(accounts auth.Accounts) error {
	return s.save(accountsFile, accounts)
}

// load reads and parses one record file. Returns false (and logs) when the
// file is absent or unparseable so the caller falls back to its default.
func (s *FileStore) load(name string, out any) bool {
	path := filepath.Join(s.dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read record, using default", "path", path, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("failed to parse record, using default", "path", path, "error", err)
		return false
	}
	return true
}

// save writes one record file atomically.
//
// The write sequence is:
//  1. Acquire in-process mutex
//  2. Acquire flock on path+".lock"
//  3. Marshal the record as indented JSON
//  4. Write to path+".tmp" with 0600 permissions
//  5. Fsync the temp file
//  6. Rename path+".tmp" -> path
//  7. Release flock
//  8. Release mutex
func (s *FileStore) save(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, name)

	// Acquire cross-process file lock.
	lockPath := path + ".lock"
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer func() { _ = lockFile.Close() }()

	if err := flockLock(lockFile.Fd()); err != nil {
		return fmt.Errorf("acquire file lock: %w", err)
	}
	defer flockUnlock(lockFile.Fd()) //nolint:errcheck

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	data = append(data, '\n')

	if err := writeAtomic(path, data); err != nil {
		return err
	}

	s.logger.Debug("record saved", "path", path)
	return nil
}

// writeAtomic writes data to a temp file, fsyncs it, and renames it
// over the target path. On any error the temp file is cleaned up.
func writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	// cleanup closes and removes the temp file on error.
	cleanup := func() {
		_ = f.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := f.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("fsync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp to record: %w", err)
	}
	return nil
}
