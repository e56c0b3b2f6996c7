package object

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrExists is returned when a key is already taken; stores never overwrite.
	ErrExists = errors.New("object already exists")
	// ErrNotFound is returned when a key has no stored object.
	ErrNotFound = errors.New("object not found")
	// ErrInvalidKey is returned for keys that would escape the store root.
	ErrInvalidKey = errors.New("invalid storage key")
)

// Store defines the contract for saving and retrieving content by key.
// Keys are slash-separated paths relative to the public root of the store.
type Store interface {
	// Put writes r under key and returns the number of bytes stored. The object
	// becomes visible only after the whole body has been written; on error
	// nothing is left behind under key.
	Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// Info describes a stored object.
type Info struct {
	Key       string
	SizeBytes int64
	UpdatedAt time.Time
}

// Lister is implemented by stores that can enumerate keys under a prefix.
type Lister interface {
	List(ctx context.Context, prefix string) ([]Info, error)
}
