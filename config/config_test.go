package config_test

import (
	"strings"
	"testing"
	"time"

	"library-system/config"

	"github.com/matryer/is"
)

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := config.Load()
	is.NoErr(err)
	is.Equal(cfg.BooksFile, "books.json")
	is.Equal(cfg.UsersFile, "users.json")
	is.Equal(cfg.HistoryDB, "")
	is.Equal(cfg.CheckoutDays, 14)
	is.Equal(cfg.CheckoutLimit, 10)
	is.Equal(cfg.RecentCapacity, 10)
	is.Equal(cfg.LockTimeout, 5*time.Second)
	is.Equal(cfg.LogLevel, "info")
}

func TestLoadFromEnvironment(t *testing.T) {
	is := is.New(t)
	t.Setenv("LIBRARY_BOOKS_FILE", "/data/b.json")
	t.Setenv("LIBRARY_USERS_FILE", "/data/u.json")
	t.Setenv("LIBRARY_HISTORY_DB", "/data/loans.db")
	t.Setenv("LIBRARY_CHECKOUT_LIMIT", "0")
	t.Setenv("LIBRARY_RECENT_CAPACITY", "5")
	t.Setenv("LIBRARY_LOCK_TIMEOUT", "250ms")

	cfg, err := config.Load()
	is.NoErr(err)
	is.Equal(cfg.BooksFile, "/data/b.json")
	is.Equal(cfg.UsersFile, "/data/u.json")
	is.Equal(cfg.HistoryDB, "/data/loans.db")
	is.Equal(cfg.CheckoutLimit, 0)
	is.Equal(cfg.RecentCapacity, 5)
	is.Equal(cfg.LockTimeout, 250*time.Millisecond)
}

func TestValidate(t *testing.T) {
	valid := config.Config{
		BooksFile:      "books.json",
		UsersFile:      "users.json",
		CheckoutDays:   14,
		CheckoutLimit:  10,
		RecentCapacity: 10,
		LockTimeout:    time.Second,
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"valid", func(*config.Config) {}, ""},
		{"missing books file", func(c *config.Config) { c.BooksFile = "" }, "books file"},
		{"missing users file", func(c *config.Config) { c.UsersFile = "" }, "users file"},
		{"negative checkout days", func(c *config.Config) { c.CheckoutDays = -1 }, "checkout days"},
		{"negative limit", func(c *config.Config) { c.CheckoutLimit = -3 }, "checkout limit"},
		{"zero recent capacity", func(c *config.Config) { c.RecentCapacity = 0 }, "recent capacity"},
		{"zero lock timeout", func(c *config.Config) { c.LockTimeout = 0 }, "lock timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				is.NoErr(err)
				return
			}
			is.True(err != nil)
			is.True(strings.Contains(err.Error(), tt.wantErr))
		})
	}
}

func TestLoadRejectsInvalidEnvironment(t *testing.T) {
	is := is.New(t)
	t.Setenv("LIBRARY_RECENT_CAPACITY", "0")

	_, err := config.Load()
	is.True(err != nil)
}

func TestOptions(t *testing.T) {
	is := is.New(t)
	cfg := config.Config{
		BooksFile:      "b.json",
		UsersFile:      "u.json",
		HistoryDB:      "loans.db",
		CheckoutDays:   7,
		CheckoutLimit:  3,
		RecentCapacity: 4,
		LockTimeout:    time.Second,
	}

	opts := cfg.Options()
	is.Equal(opts.BooksFile, "b.json")
	is.Equal(opts.UsersFile, "u.json")
	is.Equal(opts.HistoryDB, "loans.db")
	is.Equal(opts.Policy.CheckoutDays, 7)
	is.Equal(opts.Policy.CheckoutLimit, 3)
	is.Equal(opts.RecentCapacity, 4)
	is.Equal(opts.LockTimeout, time.Second)
	is.True(opts.Clock == nil)
}
