package library

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// LoadAll reads the whole collection stored at path.
//
// A missing file is a first run and yields an empty collection. A file that
// exists but cannot be read or parsed yields ErrCorruptDataFile, so callers
// never mistake it for an empty catalog.
func LoadAll[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", path, ErrCorruptDataFile, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		log.WithField("path", path).Warn("data file is empty, treating as no records")
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %w", path, ErrCorruptDataFile, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SaveAll overwrites path with items as a pretty-printed JSON array.
//
// The data is written to a sibling temp file and renamed over path, so a failed
// write never leaves a truncated file behind.
func SaveAll[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(path, data); err != nil {
		log.WithFields(log.Fields{
			"path": path,
			"err":  err,
		}).Error("could not save data file")
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// EnsureFile creates path holding an empty JSON array if it does not exist.
func EnsureFile(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	log.WithField("path", path).Debug("creating empty data file")
	return writeFileAtomic(path, []byte("[]\n"))
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
