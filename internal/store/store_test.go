package store

import (
	"context"
	"errors"
	"testing"
)

func TestFileStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := fs.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got=%v want %v", err, ErrNotFound)
	}

	if err := fs.Save(ctx, "town-1", []byte(`{"a":1}`)); err != nil {
		t.Fatal(err)
	}
	if err := fs.Save(ctx, "town-1", []byte(`{"a":2}`)); err != nil {
		t.Fatal(err)
	}

	data, err := fs.Load(ctx, "town-1")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"a":2}` {
		t.Fatalf("got=%s want %s", data, `{"a":2}`)
	}

	if err := fs.Delete(ctx, "town-1"); err != nil {
		t.Fatal(err)
	}
	if err := fs.Delete(ctx, "town-1"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if _, err := fs.Load(ctx, "town-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got=%v want %v", err, ErrNotFound)
	}
}

func TestValidName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ok   bool
	}{
		{"town", true},
		{"Town_2.v1", true},
		{"", false},
		{"..", false},
		{"a/b", false},
		{"a b", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validName(tt.name)
			if (err == nil) != tt.ok {
				t.Fatalf("got=%v want ok=%v", err, tt.ok)
			}
			if err != nil && !errors.Is(err, ErrBadName) {
				t.Fatalf("got=%v want %v", err, ErrBadName)
			}
		})
	}
}
