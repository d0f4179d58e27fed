package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"checklist-cli/internal/model"
)

func TestStore_RoundTripBackends(t *testing.T) {
	for _, backend := range []string{BackendSQLite, BackendDiskv} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()
			s, err := Open(ctx, dir, backend)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}

			items, err := s.LoadItems(ctx)
			if err != nil || len(items) != 0 {
				t.Fatalf("empty store: items=%v err=%v", items, err)
			}

			want := []model.Item{
				{Key: "a", Value: "milk", Tags: []string{"Urgent"}},
				{Key: "b", Value: "eggs", Archived: true},
				{Key: "t"},
			}
			if err := s.SaveItems(ctx, want); err != nil {
				t.Fatalf("SaveItems: %v", err)
			}
			if err := s.SaveItems(ctx, want); err != nil {
				t.Fatalf("SaveItems (overwrite): %v", err)
			}
			if err := s.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			s, err = Open(ctx, dir, backend)
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer s.Close()
			got, err := s.LoadItems(ctx)
			if err != nil {
				t.Fatalf("LoadItems: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("got %+v want %+v", got, want)
			}
		})
	}
}

func TestStore_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), t.TempDir(), "redis")
	var ub UnknownBackendError
	if !errors.As(err, &ub) || ub.Backend != "redis" {
		t.Fatalf("err=%v", err)
	}
}

func TestStore_TagsSeedDefaults(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory())

	tags, err := s.LoadTags(ctx)
	if err != nil {
		t.Fatalf("LoadTags: %v", err)
	}
	if !reflect.DeepEqual(tags, model.DefaultTags()) {
		t.Fatalf("expected default catalogue, got %+v", tags)
	}

	if err := s.SaveTags(ctx, nil); err != nil {
		t.Fatalf("SaveTags: %v", err)
	}
	tags, err = s.LoadTags(ctx)
	if err != nil || len(tags) != 0 {
		t.Fatalf("stored empty catalogue must not reseed: %v %v", tags, err)
	}
}

func TestStore_CorruptItems(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	_ = kv.Set(ctx, KeyItems, []byte("{not json"))
	if _, err := New(kv).LoadItems(ctx); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestUIState_BestEffort(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	s := New(kv)

	st, err := s.LoadUIState(ctx)
	if err != nil || st.View != ViewHome || st.Version != 1 {
		t.Fatalf("default: %+v %v", st, err)
	}

	if err := s.SaveUIState(ctx, &UIState{View: ViewArchive, TagFilter: []string{"Urgent"}}); err != nil {
		t.Fatalf("SaveUIState: %v", err)
	}
	st, _ = s.LoadUIState(ctx)
	if st.View != ViewArchive || !reflect.DeepEqual(st.TagFilter, []string{"Urgent"}) || st.Version != 1 {
		t.Fatalf("round trip: %+v", st)
	}

	_ = kv.Set(ctx, KeyUI, []byte("garbage"))
	st, err = s.LoadUIState(ctx)
	if err != nil || st.View != ViewHome {
		t.Fatalf("corrupt: %+v %v", st, err)
	}

	_ = kv.Set(ctx, KeyUI, []byte(`{"version":1,"view":"agenda"}`))
	st, _ = s.LoadUIState(ctx)
	if st.View != ViewHome {
		t.Fatalf("unknown view kept: %q", st.View)
	}
}
