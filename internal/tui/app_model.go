package tui

import (
	"context"
	"log/slog"
	"reflect"
	"time"

	"checklist-cli/internal/badge"
	"checklist-cli/internal/model"
	"checklist-cli/internal/mutate"
	"checklist-cli/internal/store"
	"checklist-cli/internal/visibility"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

const windowTitle = "checklist"

// Rows above the list: header, tag bar, spacer.
const listTop = 3

// titleSink records the window title the badge asks for; the model turns it
// into a tea.SetWindowTitle command.
type titleSink struct {
	title string
}

func (s *titleSink) SetBadge(text string) error {
	s.title = badge.Title(windowTitle, text)
	return nil
}

type appModel struct {
	ctx   context.Context
	store *store.Store
	cfg   store.Config
	log   *slog.Logger

	width  int
	height int

	view view

	// The full collection and catalogue. appModel is their only writer.
	items  []model.Item
	tags   []model.Tag
	filter []string

	// Inputs are disabled and saves/badge suppressed until the first load.
	rehydrating bool

	home    *sortableList[model.Item, string]
	archive *sortableList[model.Item, string]
	tagList *sortableList[model.Tag, string]
	pointer *pointerRouter
	chip    *chipDrag
	zones   *zone.Manager

	input      textinput.Model
	editingKey string

	keys      keyMap
	help      help.Model
	showHelp  bool
	helpCache *renderCache

	saveSeq    int
	dirtyItems bool
	dirtyTags  bool
	dirtyUI    bool
	lastSaved  []model.Item

	badge *badge.Publisher
	title *titleSink

	minibufferText  string
	minibufferErr   bool
	minibufferSetAt time.Time
	flashSeq        int

	animating bool
}

func newAppModel(ctx context.Context, s *store.Store, cfg store.Config, logger *slog.Logger) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := appModel{
		ctx:         ctx,
		store:       s,
		cfg:         cfg,
		log:         logger,
		view:        viewHome,
		rehydrating: true,
		pointer:     &pointerRouter{},
		zones:       zone.New(),
		keys:        defaultKeyMap(),
		help:        help.New(),
		helpCache:   &renderCache{},
		title:       &titleSink{title: windowTitle},
	}
	m.badge = badge.NewPublisher(m.title)

	itemRows := cfg.List.RowHeight
	if itemRows <= 0 {
		itemRows = 2
	}
	tagRows := cfg.Settings.RowHeight
	if tagRows <= 0 {
		tagRows = 1
	}
	m.home = newSortableList(sortableOptions[model.Item, string]{
		ID:        listHome,
		Key:       model.ItemKey,
		Visible:   visibility.Active(nil),
		PinnedFor: mutate.TrailingPinned,
		RowHeight: itemRows,
		Delay:     cfg.Drag.ActivationDelay,
		Binder:    m.pointer,
	})
	m.archive = newSortableList(sortableOptions[model.Item, string]{
		ID:        listArchive,
		Key:       model.ItemKey,
		Visible:   visibility.Archived(nil),
		RowHeight: itemRows,
		Delay:     cfg.Drag.ActivationDelay,
		Binder:    m.pointer,
	})
	m.tagList = newSortableList(sortableOptions[model.Tag, string]{
		ID:        listTags,
		Key:       model.TagTitleKey,
		RowHeight: tagRows,
		Delay:     cfg.Drag.ActivationDelay,
		Binder:    m.pointer,
		Empty:     "No tags",
	})

	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.Placeholder = "Add new task"
	m.input.CharLimit = 1024
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(false), tea.SetWindowTitle(windowTitle))
}

func (m appModel) loadCmd(reload bool) tea.Cmd {
	s, ctx := m.store, m.ctx
	return func() tea.Msg {
		items, err := s.LoadItems(ctx)
		if err != nil {
			return loadedMsg{reload: reload, err: err}
		}
		tags, err := s.LoadTags(ctx)
		if err != nil {
			return loadedMsg{reload: reload, err: err}
		}
		var ui *store.UIState
		if !reload {
			if ui, err = s.LoadUIState(ctx); err != nil {
				return loadedMsg{reload: reload, err: err}
			}
		}
		return loadedMsg{items: items, tags: tags, ui: ui, reload: reload}
	}
}

// applyLoaded installs store contents. Reloads caused by our own writes are
// recognised by comparing against the last saved snapshot.
func (m *appModel) applyLoaded(msg loadedMsg) tea.Cmd {
	if msg.err != nil {
		m.log.Error("load", "err", msg.err)
		return m.showError("load failed: " + msg.err.Error())
	}
	if msg.reload {
		if m.dirtyItems || m.dirtyTags {
			m.log.Debug("reload skipped: local changes pending")
			return nil
		}
		if reflect.DeepEqual(msg.items, m.lastSaved) && reflect.DeepEqual(msg.tags, m.tags) {
			return nil
		}
	}

	items := mutate.EnsureTrailing(msg.items)
	appended := len(items) != len(msg.items)
	m.tags = msg.tags
	m.lastSaved = msg.items
	if msg.ui != nil {
		m.view = viewFromString(msg.ui.View)
		m.filter = knownFilter(msg.ui.TagFilter, m.tags)
	} else {
		m.filter = knownFilter(m.filter, m.tags)
	}
	m.applyFilter()

	first := m.rehydrating
	m.rehydrating = false
	m.setItems(items)
	m.tagList.SetItems(m.tags)
	if first {
		if k, ok := mutate.TrailingKey(m.items); ok {
			m.home.FocusKey(k)
		}
	}
	m.syncInput()

	cmds := []tea.Cmd{m.publishBadge()}
	if appended {
		m.dirtyItems = true
		cmds = append(cmds, m.scheduleSave())
	}
	return tea.Batch(cmds...)
}

// knownFilter drops filter titles that are no longer in the catalogue.
func knownFilter(filter []string, tags []model.Tag) []string {
	var out []string
	for _, f := range filter {
		if t, _, ok := model.FindTag(tags, f); ok {
			out = append(out, t.Title)
		}
	}
	return out
}

func (m *appModel) applyFilter() {
	m.home.SetVisible(visibility.Active(m.filter))
	m.archive.SetVisible(visibility.Archived(m.filter))
}

// setItems replaces the full collection and re-projects every list.
func (m *appModel) setItems(items []model.Item) {
	m.items = items
	m.home.SetItems(items)
	m.archive.SetItems(items)
}

// commitItems is the single write path for item changes made in the TUI.
func (m *appModel) commitItems(items []model.Item) tea.Cmd {
	focusKey := m.focusedItemKey()
	m.setItems(items)
	if focusKey != "" {
		m.activeItemList().FocusKey(focusKey)
	}
	m.syncInput()
	m.dirtyItems = true
	return tea.Batch(m.scheduleSave(), m.publishBadge(), m.animate())
}

func (m *appModel) commitTags(tags []model.Tag) tea.Cmd {
	m.tags = tags
	m.tagList.SetItems(tags)
	m.dirtyTags = true
	return tea.Batch(m.scheduleSave(), m.animate())
}

func (m *appModel) activeItemList() *sortableList[model.Item, string] {
	if m.view == viewArchive {
		return m.archive
	}
	return m.home
}

func (m *appModel) focusedItem() (model.Item, bool) {
	if m.view == viewSettings {
		return model.Item{}, false
	}
	return m.activeItemList().Focused()
}

func (m *appModel) focusedItemKey() string {
	if it, ok := m.focusedItem(); ok {
		return it.Key
	}
	return ""
}

// syncInput loads the focused home row into the text input.
func (m *appModel) syncInput() {
	it, ok := m.home.Focused()
	if m.view != viewHome || !ok || m.rehydrating {
		m.input.Blur()
		m.editingKey = ""
		return
	}
	if it.Key != m.editingKey {
		m.editingKey = it.Key
		m.input.SetValue(it.Value)
		m.input.CursorEnd()
	}
	m.input.Width = m.inputWidth(it)
	m.input.Focus()
}

func (m *appModel) inputWidth(it model.Item) int {
	w := m.width - grabWidth
	if w < 1 {
		w = 1
	}
	pinned := mutate.IsTrailing(m.items, it.Key)
	lay := layoutItemRow(it, m.tags, w, m.home.rowHeight, pinned)
	if lay.textW < 2 {
		return 1
	}
	return lay.textW - 1
}

func (m *appModel) publishBadge() tea.Cmd {
	if m.rehydrating {
		return nil
	}
	sent, err := m.badge.Publish(m.items)
	if err != nil {
		m.log.Warn("badge", "err", err)
		return nil
	}
	if !sent {
		return nil
	}
	return tea.SetWindowTitle(m.title.title)
}

// scheduleSave debounces persistence: only the last tick of a burst saves.
func (m *appModel) scheduleSave() tea.Cmd {
	if m.rehydrating || m.store == nil {
		return nil
	}
	m.saveSeq++
	seq := m.saveSeq
	d := m.cfg.Save.Debounce
	if d <= 0 {
		return func() tea.Msg { return saveTickMsg{seq: seq} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return saveTickMsg{seq: seq} })
}

// saveNow snapshots whatever is dirty and returns a fire-and-forget command
// that writes it.
func (m *appModel) saveNow() tea.Cmd {
	if m.store == nil || m.rehydrating {
		return nil
	}
	var cmds []tea.Cmd
	s, ctx := m.store, m.ctx
	if m.dirtyItems {
		snapshot := model.CloneItems(m.items)
		m.lastSaved = snapshot
		m.dirtyItems = false
		cmds = append(cmds, func() tea.Msg {
			return savedMsg{what: store.KeyItems, err: s.SaveItems(ctx, snapshot)}
		})
	}
	if m.dirtyTags {
		snapshot := append([]model.Tag(nil), m.tags...)
		m.dirtyTags = false
		cmds = append(cmds, func() tea.Msg {
			return savedMsg{what: store.KeyTags, err: s.SaveTags(ctx, snapshot)}
		})
	}
	if m.dirtyUI {
		st := &store.UIState{Version: 1, View: m.view.String(), TagFilter: append([]string(nil), m.filter...)}
		m.dirtyUI = false
		cmds = append(cmds, func() tea.Msg {
			return savedMsg{what: store.KeyUI, err: s.SaveUIState(ctx, st)}
		})
	}
	return tea.Batch(cmds...)
}

func (m *appModel) animate() tea.Cmd {
	if m.animating {
		return nil
	}
	if !m.home.Animating() && !m.archive.Animating() && !m.tagList.Animating() {
		// Still tick once so just-dropped markers clear after a render.
		if _, ok := m.home.engine.Dropped(); !ok {
			if _, ok := m.archive.engine.Dropped(); !ok {
				if _, ok := m.tagList.engine.Dropped(); !ok {
					return nil
				}
			}
		}
	}
	m.animating = true
	return tea.Tick(animInterval, func(time.Time) tea.Msg { return animTickMsg{} })
}

func (m *appModel) showMinibuffer(text string) tea.Cmd {
	m.minibufferText = text
	m.minibufferErr = false
	m.minibufferSetAt = time.Now()
	return m.flashTimer()
}

func (m *appModel) showError(text string) tea.Cmd {
	cmd := m.showMinibuffer(text)
	m.minibufferErr = true
	return cmd
}

func (m *appModel) flashTimer() tea.Cmd {
	m.flashSeq++
	seq := m.flashSeq
	return tea.Tick(minibufferAutoClearAfter, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func (m *appModel) layout() {
	h := m.height - listTop - 1
	if h < 1 {
		h = 1
	}
	m.home.Layout(0, listTop, m.width, h)
	m.archive.Layout(0, listTop, m.width, h)
	m.tagList.Layout(0, listTop, m.width, h)
	m.help.Width = m.width
	m.syncInput()
}
