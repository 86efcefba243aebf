// Package store persists encoded map snapshots by name.
package store

import (
	"context"
	"fmt"
)

var (
	// ErrNotFound is returned when no snapshot exists under a name
	ErrNotFound = fmt.Errorf("snapshot not found")

	// ErrBadName is returned for names that can't be used as keys
	ErrBadName = fmt.Errorf("invalid snapshot name")
)

// Store saves and loads snapshot bytes
type Store interface {
	Save(ctx context.Context, name string, data []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
}

func validName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrBadName)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return fmt.Errorf("%w: %q", ErrBadName, name)
		}
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return nil
}
