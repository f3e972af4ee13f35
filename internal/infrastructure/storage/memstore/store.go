package memstore

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/riskibarqy/creator-booking/internal/domain/portfolio"
	"github.com/valyala/bytebufferpool"
)

type object struct {
	contentType string
	data        []byte
}

// Store is an in-process object store used for local runs and tests.
type Store struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]object
}

func New(baseURL string) *Store {
	return &Store{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		objects: make(map[string]object),
	}
}

func (s *Store) Upload(ctx context.Context, path, contentType string, size int64, body io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return fmt.Errorf("object path is required")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	n, err := buf.ReadFrom(body)
	if err != nil {
		return fmt.Errorf("read object body: %w", err)
	}
	if size >= 0 && n != size {
		return fmt.Errorf("object size mismatch: declared %d, read %d", size, n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = object{
		contentType: contentType,
		data:        append([]byte(nil), buf.B...),
	}
	return nil
}

func (s *Store) Delete(_ context.Context, path string) error {
	path = strings.Trim(strings.TrimSpace(path), "/")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[path]; !ok {
		return fmt.Errorf("%w: %s", portfolio.ErrObjectNotFound, path)
	}
	delete(s.objects, path)
	return nil
}

func (s *Store) Exists(_ context.Context, path string) (bool, error) {
	path = strings.Trim(strings.TrimSpace(path), "/")

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[path]
	return ok, nil
}

func (s *Store) PublicURL(path string) string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if s.baseURL == "" {
		return "/" + path
	}
	return s.baseURL + "/" + path
}

// Len reports how many objects are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
