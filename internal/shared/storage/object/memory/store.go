package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"qrfolio-backend/internal/shared/storage/object"
	"qrfolio-backend/internal/shared/util"
)

type entry struct {
	data        []byte
	contentType string
	updatedAt   time.Time
}

// Store is an in-memory object.Store, used in dev mode and tests.
type Store struct {
	mu      sync.RWMutex
	objects map[string]entry
}

// New constructs an empty Store.
func New() *Store {
	return &Store{objects: make(map[string]entry)}
}

// Put buffers the whole body before publishing it under key.
func (s *Store) Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if !util.SafeKey(key) {
		return 0, object.ErrInvalidKey
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read body: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; ok {
		return 0, fmt.Errorf("put %s: %w", key, object.ErrExists)
	}
	s.objects[key] = entry{data: data, contentType: contentType, updatedAt: time.Now().UTC()}
	return int64(len(data)), nil
}

// Open returns a reader over a copy-free view of the stored bytes.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !util.SafeKey(key) {
		return nil, object.ErrInvalidKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.objects[key]
	if !ok {
		return nil, object.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(e.data)), nil
}

// List returns stored objects with the given key prefix, sorted by key.
func (s *Store) List(ctx context.Context, prefix string) ([]object.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]object.Info, 0, len(s.objects))
	for key, e := range s.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, object.Info{Key: key, SizeBytes: int64(len(e.data)), UpdatedAt: e.updatedAt})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// ContentType returns the content type recorded for key.
func (s *Store) ContentType(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objects[key].contentType
}

// Len reports how many objects are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

var (
	_ object.Store  = (*Store)(nil)
	_ object.Lister = (*Store)(nil)
)
