package store

import (
	"context"
	"testing"
	"time"

	"checklist-cli/internal/model"
)

func TestWatch_EmitsOnSave(t *testing.T) {
	for _, backend := range []string{BackendDiskv, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			s, err := Open(ctx, t.TempDir(), backend)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer s.Close()

			ch, err := s.Watch(ctx)
			if err != nil {
				t.Fatalf("Watch: %v", err)
			}
			// Allow the watcher to subscribe before writing.
			time.Sleep(50 * time.Millisecond)

			if err := s.SaveItems(ctx, []model.Item{{Key: "a", Value: "x"}}); err != nil {
				t.Fatalf("SaveItems: %v", err)
			}

			select {
			case ev := <-ch:
				if backend == BackendDiskv && ev.Key != KeyItems {
					t.Fatalf("key=%q want %q", ev.Key, KeyItems)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("timed out waiting for change event")
			}
		})
	}
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, err := Open(ctx, t.TempDir(), BackendDiskv)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	ch, err := s.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	cancel()
	select {
	case _, ok := <-ch:
		for ok {
			_, ok = <-ch
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed")
	}
}

func TestWatch_RequiresDir(t *testing.T) {
	if _, err := New(NewMemory()).Watch(context.Background()); err == nil {
		t.Fatal("expected error for memory store")
	}
}
