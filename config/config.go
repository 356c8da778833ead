// Package config loads runtime settings from LIBRARY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"library-system/library"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix, e.g. LIBRARY_BOOKS_FILE.
const Prefix = "library"

type Config struct {
	BooksFile      string        `split_words:"true" default:"books.json"`
	UsersFile      string        `split_words:"true" default:"users.json"`
	HistoryDB      string        `split_words:"true" default:""`
	CheckoutDays   int           `split_words:"true" default:"14"`
	CheckoutLimit  int           `split_words:"true" default:"10"`
	RecentCapacity int           `split_words:"true" default:"10"`
	LockTimeout    time.Duration `split_words:"true" default:"5s"`
	LogLevel       string        `split_words:"true" default:"info"`
}

// Load reads the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.BooksFile == "" {
		errs = append(errs, errors.New("books file path is required"))
	}
	if c.UsersFile == "" {
		errs = append(errs, errors.New("users file path is required"))
	}
	if c.CheckoutDays < 0 {
		errs = append(errs, fmt.Errorf("checkout days must not be negative, got %d", c.CheckoutDays))
	}
	if c.CheckoutLimit < 0 {
		errs = append(errs, fmt.Errorf("checkout limit must not be negative, got %d", c.CheckoutLimit))
	}
	if c.RecentCapacity < 1 {
		errs = append(errs, fmt.Errorf("recent capacity must be at least 1, got %d", c.RecentCapacity))
	}
	if c.LockTimeout <= 0 {
		errs = append(errs, fmt.Errorf("lock timeout must be positive, got %s", c.LockTimeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Options converts the configuration into manager options.
func (c Config) Options() library.Options {
	return library.Options{
		BooksFile: c.BooksFile,
		UsersFile: c.UsersFile,
		HistoryDB: c.HistoryDB,
		Policy: library.Policy{
			CheckoutDays:  c.CheckoutDays,
			CheckoutLimit: c.CheckoutLimit,
		},
		RecentCapacity: c.RecentCapacity,
		LockTimeout:    c.LockTimeout,
	}
}
