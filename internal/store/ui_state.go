package store

import (
	"context"
	"encoding/json"
)

const (
	ViewHome     = "home"
	ViewArchive  = "archive"
	ViewSettings = "settings"
)

// UIState restores the last screen on relaunch. It is best effort: a missing
// or corrupt value yields defaults.
type UIState struct {
	Version int `json:"version"`

	// View is one of: home|archive|settings
	View string `json:"view,omitempty"`

	TagFilter []string `json:"tagFilter,omitempty"`
}

func (s *Store) LoadUIState(ctx context.Context) (*UIState, error) {
	b, ok, err := s.kv.Get(ctx, KeyUI)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &UIState{Version: 1, View: ViewHome}, nil
	}
	var st UIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Corrupt; treat as missing.
		return &UIState{Version: 1, View: ViewHome}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	switch st.View {
	case ViewHome, ViewArchive, ViewSettings:
	default:
		st.View = ViewHome
	}
	return &st, nil
}

func (s *Store) SaveUIState(ctx context.Context, st *UIState) error {
	if st == nil {
		return nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return s.setJSON(ctx, KeyUI, st)
}
