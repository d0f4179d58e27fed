package store

import (
	"context"
	"errors"
	"io/fs"

	"github.com/peterbourgon/diskv/v3"
)

const diskvDirName = "kv"

type diskvKV struct {
	d *diskv.Diskv
}

// OpenDiskv opens a diskv-backed KV rooted at base. Each key is one file.
// The read cache stays off: another process (the watcher's peer) may write.
func OpenDiskv(base string) (KV, error) {
	return &diskvKV{d: diskv.New(diskv.Options{
		BasePath:     base,
		CacheSizeMax: 0,
	})}, nil
}

func (s *diskvKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	if !s.d.Has(key) {
		return nil, false, nil
	}
	b, err := s.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *diskvKV) Set(_ context.Context, key string, val []byte) error {
	return s.d.Write(key, val)
}

func (s *diskvKV) Close() error { return nil }
