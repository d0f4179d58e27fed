package tui

import (
	"time"

	"checklist-cli/internal/model"
	"checklist-cli/internal/store"
)

type view int

const (
	viewHome view = iota
	viewArchive
	viewSettings
)

// views in tab order.
var views = []view{viewHome, viewArchive, viewSettings}

func (v view) String() string {
	switch v {
	case viewArchive:
		return store.ViewArchive
	case viewSettings:
		return store.ViewSettings
	default:
		return store.ViewHome
	}
}

func viewFromString(s string) view {
	switch s {
	case store.ViewArchive:
		return viewArchive
	case store.ViewSettings:
		return viewSettings
	default:
		return viewHome
	}
}

func (v view) title() string {
	switch v {
	case viewArchive:
		return "Done"
	case viewSettings:
		return "Tags"
	default:
		return "Todo"
	}
}

// Frame interval of the row slide animation.
const animInterval = 30 * time.Millisecond

// How long a minibuffer message stays up.
const minibufferAutoClearAfter = 3 * time.Second

// loadedMsg carries the initial (or reloaded) store contents.
type loadedMsg struct {
	items  []model.Item
	tags   []model.Tag
	ui     *store.UIState
	reload bool
	err    error
}

// storeChangedMsg is posted by the watcher when another process wrote.
type storeChangedMsg struct{ key string }

type saveTickMsg struct{ seq int }

type savedMsg struct {
	what string
	err  error
}

type activateMsg struct {
	list listID
	seq  int
}

type animTickMsg struct{}

type flashDoneMsg struct{ seq int }
