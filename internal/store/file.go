package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/voidshard/roadgraph/internal/logger"
)

// FileStore keeps one JSON file per snapshot in a directory
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir, creating it if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating snapshot dir %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(name string) string {
	return filepath.Join(f.dir, name+".json")
}

// Save writes data atomically via a temp file + rename
func (f *FileStore) Save(ctx context.Context, name string, data []byte) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, name+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "writing snapshot %s", name)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing snapshot %s", name)
	}
	if err := os.Rename(tmp.Name(), f.path(name)); err != nil {
		return errors.Wrapf(err, "renaming snapshot %s", name)
	}

	logger.L().Debug("store_save", "backend", "file", "name", name, "bytes", len(data))
	return nil
}

// Load reads a snapshot, ErrNotFound if there isn't one
func (f *FileStore) Load(ctx context.Context, name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path(name))
	if os.IsNotExist(err) {
		return nil, errors.Wrap(ErrNotFound, name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading snapshot %s", name)
	}
	return data, nil
}

// Delete removes a snapshot, missing snapshots are not an error
func (f *FileStore) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	err := os.Remove(f.path(name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing snapshot %s", name)
	}
	return nil
}
