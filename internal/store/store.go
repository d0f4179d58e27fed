package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"checklist-cli/internal/model"
)

// Keys of the persisted collections.
const (
	KeyItems = "items"
	KeyTags  = "tags"
	KeyUI    = "ui"
)

const (
	BackendSQLite = "sqlite"
	BackendDiskv  = "diskv"
)

// KV is the persistence boundary: named JSON blobs. A missing key is not an
// error (ok=false).
type KV interface {
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte) error
	Close() error
}

type Store struct {
	Dir     string
	Backend string
	kv      KV
}

type UnknownBackendError struct {
	Backend string
}

func (e UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown store backend: %q (expected sqlite|diskv)", e.Backend)
}

// Open opens the store in dir with the named backend ("" means sqlite).
func Open(ctx context.Context, dir, backend string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("store: missing dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure dir: %w", err)
	}
	backend = strings.ToLower(strings.TrimSpace(backend))
	if backend == "" {
		backend = BackendSQLite
	}

	var (
		kv  KV
		err error
	)
	switch backend {
	case BackendSQLite:
		kv, err = OpenSQLite(ctx, filepath.Join(dir, sqliteFileName))
	case BackendDiskv:
		kv, err = OpenDiskv(filepath.Join(dir, diskvDirName))
	default:
		return nil, UnknownBackendError{Backend: backend}
	}
	if err != nil {
		return nil, err
	}
	return &Store{Dir: dir, Backend: backend, kv: kv}, nil
}

// New wraps an already opened KV (tests use NewMemory).
func New(kv KV) *Store {
	return &Store{kv: kv}
}

func (s *Store) Close() error {
	if s == nil || s.kv == nil {
		return nil
	}
	return s.kv.Close()
}

func (s *Store) getJSON(ctx context.Context, key string, v any) (bool, error) {
	b, ok, err := s.kv.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, b)
}

// LoadItems returns the persisted collection (empty when nothing is stored).
func (s *Store) LoadItems(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if _, err := s.getJSON(ctx, KeyItems, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) SaveItems(ctx context.Context, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	return s.setJSON(ctx, KeyItems, items)
}

// LoadTags returns the tag catalogue, seeding the default catalogue when none
// has been stored yet.
func (s *Store) LoadTags(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	ok, err := s.getJSON(ctx, KeyTags, &tags)
	if err != nil {
		return nil, err
	}
	if !ok {
		return model.DefaultTags(), nil
	}
	return tags, nil
}

func (s *Store) SaveTags(ctx context.Context, tags []model.Tag) error {
	if tags == nil {
		tags = []model.Tag{}
	}
	return s.setJSON(ctx, KeyTags, tags)
}
