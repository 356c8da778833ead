package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	log "github.com/sirupsen/logrus"
)

// DefaultLockTimeout bounds how long an operation waits for another process
// holding the data files.
const DefaultLockTimeout = 5 * time.Second

// Collections is the full in-memory state handed to a repository callback.
// Callbacks mark what they changed so only those files are rewritten.
type Collections struct {
	Books []Book
	Users []User

	booksDirty bool
	usersDirty bool
}

func (c *Collections) MarkBooks() { c.booksDirty = true }
func (c *Collections) MarkUsers() { c.usersDirty = true }

// Repository is the single persistence authority for books.json and users.json.
//
// Every operation reloads both files under an in-process mutex and an advisory
// file lock, so two screens or two processes never overwrite each other with
// stale lists.
type Repository struct {
	booksPath   string
	usersPath   string
	lockTimeout time.Duration

	mu   sync.Mutex
	lock *flock.Flock
}

// NewRepository prepares the data files. The users file is created as an empty
// array on first run; the books file appears on the first save.
func NewRepository(booksPath, usersPath string, lockTimeout time.Duration) (*Repository, error) {
	if booksPath == "" || usersPath == "" {
		return nil, fmt.Errorf("books and users file paths are required")
	}
	for _, p := range []string{booksPath, usersPath} {
		if dir := filepath.Dir(p); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
		}
	}
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}

	r := &Repository{
		booksPath:   booksPath,
		usersPath:   usersPath,
		lockTimeout: lockTimeout,
		lock:        flock.New(booksPath + ".lock"),
	}
	if err := r.withLock(true, func() error { return EnsureFile(usersPath) }); err != nil {
		return nil, fmt.Errorf("prepare users file: %w", err)
	}
	return r, nil
}

// BooksPath returns the books file location.
func (r *Repository) BooksPath() string { return r.booksPath }

// UsersPath returns the users file location.
func (r *Repository) UsersPath() string { return r.usersPath }

// View loads the current state and passes it to fn. Changes made by fn are
// discarded.
func (r *Repository) View(fn func(*Collections) error) error {
	return r.withLock(false, func() error {
		c, err := r.load()
		if err != nil {
			return err
		}
		return fn(c)
	})
}

// Update loads the current state, applies fn and saves the collections fn
// marked dirty. Nothing is saved when fn returns an error.
func (r *Repository) Update(fn func(*Collections) error) error {
	return r.withLock(true, func() error {
		c, err := r.load()
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		if c.booksDirty {
			if err := SaveAll(r.booksPath, c.Books); err != nil {
				return err
			}
		}
		if c.usersDirty {
			if err := SaveAll(r.usersPath, c.Users); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close releases the lock file handle.
func (r *Repository) Close() error {
	return r.lock.Close()
}

func (r *Repository) load() (*Collections, error) {
	books, err := LoadAll[Book](r.booksPath)
	if err != nil {
		return nil, err
	}
	users, err := LoadAll[User](r.usersPath)
	if err != nil {
		return nil, err
	}
	return &Collections{Books: books, Users: users}, nil
}

func (r *Repository) withLock(exclusive bool, fn func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), r.lockTimeout)
	defer cancel()

	var (
		locked bool
		err    error
	)
	if exclusive {
		locked, err = r.lock.TryLockContext(ctx, 20*time.Millisecond)
	} else {
		locked, err = r.lock.TryRLockContext(ctx, 20*time.Millisecond)
	}
	if err != nil || !locked {
		log.WithFields(log.Fields{
			"path": r.lock.Path(),
			"err":  err,
		}).Error("could not lock data files")
		return fmt.Errorf("data files are in use by another process (waited %s): %w", r.lockTimeout, err)
	}
	defer r.lock.Unlock()

	return fn()
}
