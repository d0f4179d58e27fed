package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is emitted by Watch when the underlying storage changes. Key names
// the changed value when the backend can tell (diskv); empty means "reload
// everything".
type Event struct {
	Key string
}

const watchThrottle = 100 * time.Millisecond

func (s *Store) watchDir() string {
	if s.Backend == BackendDiskv {
		return filepath.Join(s.Dir, diskvDirName)
	}
	return s.Dir
}

// keyForPath maps a changed file to an Event, or ok=false for files the store
// does not own.
func (s *Store) keyForPath(path string) (Event, bool) {
	base := filepath.Base(path)
	if s.Backend == BackendDiskv {
		if strings.HasPrefix(base, ".") {
			return Event{}, false
		}
		return Event{Key: base}, true
	}
	if strings.HasPrefix(base, sqliteFileName) {
		return Event{}, true
	}
	return Event{}, false
}

// Watch streams change events until ctx is cancelled. Bursts of writes are
// coalesced. The channel is closed once ctx is done or the watcher fails.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return nil, errors.New("store: watch needs a directory-backed store")
	}
	dir := s.watchDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure watch dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() { _ = watcher.Close() })
	}
	if err := watcher.Add(dir); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	events := make(chan Event, 16)
	send := func(ev Event) {
		select {
		case events <- ev:
		default:
			// Consumer busy; the next event triggers a reload anyway.
		}
	}

	go func() {
		throttle := newEventThrottle(watchThrottle)
		defer func() {
			throttle.Stop()
			closeWatcher()
			close(events)
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(Event{}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
					continue
				}
				ev, mine := s.keyForPath(evt.Name)
				if !mine {
					continue
				}
				throttle.Enqueue(ev, send)
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid notifications so consumers reload once per
// burst of writes.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	delay   time.Duration
	stopped bool
	flushes sync.WaitGroup
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{delay: delay, pending: map[string]struct{}{}}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.pending[ev.Key] = struct{}{}
	if t.timer == nil {
		t.flushes.Add(1)
		t.timer = time.AfterFunc(t.delay, func() {
			defer t.flushes.Done()
			t.flush(send)
		})
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = map[string]struct{}{}
	t.timer = nil
	stopped := t.stopped
	t.mu.Unlock()
	if stopped {
		return
	}

	if _, all := pending[""]; all {
		send(Event{})
		return
	}
	for key := range pending {
		send(Event{Key: key})
	}
}

// Stop cancels a pending flush and waits for a running one, so nothing is
// sent after Stop returns.
func (t *eventThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil && t.timer.Stop() {
		t.timer = nil
		t.flushes.Done()
	}
	t.mu.Unlock()
	t.flushes.Wait()
}
