package tui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"checklist-cli/internal/gesture"
	"checklist-cli/internal/model"
	"checklist-cli/internal/mutate"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case loadedMsg:
		cmd := m.applyLoaded(msg)
		return m, cmd

	case storeChangedMsg:
		if m.rehydrating {
			return m, nil
		}
		return m, m.loadCmd(true)

	case saveTickMsg:
		if msg.seq != m.saveSeq {
			return m, nil
		}
		return m, m.saveNow()

	case savedMsg:
		if msg.err != nil {
			m.log.Error("save", "key", msg.what, "err", msg.err)
			return m, m.showError("save failed: " + msg.err.Error())
		}
		m.log.Debug("saved", "key", msg.what)
		return m, nil

	case activateMsg:
		if l := m.listByID(msg.list); l != nil && l.Activate(msg.seq) {
			m.log.Debug("drag start", "list", msg.list)
			m.syncInput()
		}
		return m, nil

	case animTickMsg:
		m.animating = false
		moving := m.home.Step()
		moving = m.archive.Step() || moving
		moving = m.tagList.Step() || moving
		m.home.ClearDropped()
		m.archive.ClearDropped()
		m.tagList.ClearDropped()
		if moving {
			m.animating = true
			return m, tea.Tick(animInterval, func(time.Time) tea.Msg { return animTickMsg{} })
		}
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq && time.Since(m.minibufferSetAt) >= minibufferAutoClearAfter-time.Millisecond {
			m.minibufferText = ""
			m.minibufferErr = false
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m *appModel) listByID(id listID) interface{ Activate(int) bool } {
	switch id {
	case listHome:
		return m.home
	case listArchive:
		return m.archive
	case listTags:
		return m.tagList
	}
	return nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, m.quit()
	}
	if m.showHelp {
		switch msg.String() {
		case "f1", "esc", "q":
			m.showHelp = false
		}
		return m, nil
	}
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = true
		return m, nil
	}
	if m.rehydrating {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextView):
		return m, m.switchView((m.view + 1) % 3)
	case key.Matches(msg, m.keys.PrevView):
		return m, m.switchView((m.view + 2) % 3)
	case key.Matches(msg, m.keys.Filter) && m.view != viewSettings:
		n, _ := strconv.Atoi(strings.TrimPrefix(msg.String(), "alt+"))
		return m, m.toggleFilterAt(n - 1)
	case key.Matches(msg, m.keys.Clear) && m.view != viewSettings:
		return m, m.setFilter(nil)
	}

	if m.view == viewSettings {
		return m.updateSettingsKey(msg)
	}
	return m.updateItemKey(msg)
}

func (m appModel) updateItemKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := m.activeItemList()
	switch {
	case key.Matches(msg, m.keys.Up):
		l.MoveFocus(-1)
		m.syncInput()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		l.MoveFocus(1)
		m.syncInput()
		return m, nil
	case key.Matches(msg, m.keys.Next):
		if l.FocusIndex() < l.Len()-1 {
			l.MoveFocus(1)
			m.syncInput()
		}
		return m, nil
	case key.Matches(msg, m.keys.MoveUp):
		return m, m.moveFocusedItem(-1)
	case key.Matches(msg, m.keys.MoveDown):
		return m, m.moveFocusedItem(1)
	case key.Matches(msg, m.keys.ToggleDone):
		return m, m.toggleDone(m.focusedItemKey())
	case key.Matches(msg, m.keys.Remove):
		return m, m.removeItem(m.focusedItemKey())
	case key.Matches(msg, m.keys.NextTag):
		return m, m.assignNextTag()
	case key.Matches(msg, m.keys.Copy):
		if it, ok := m.focusedItem(); ok && strings.TrimSpace(it.Value) != "" {
			return m, m.showMinibuffer("Copied to " + copyToClipboard(it.Value))
		}
		return m, nil
	}

	if m.view != viewHome || m.editingKey == "" {
		return m, nil
	}

	if msg.Type == tea.KeyBackspace && m.input.Value() == "" {
		return m, m.deleteEmpty(m.editingKey)
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		return m, tea.Batch(cmd, m.editItem(m.editingKey, v))
	}
	return m, cmd
}

func (m appModel) updateSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.tagList.MoveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.tagList.MoveFocus(1)
	case key.Matches(msg, m.keys.MoveUp):
		return m, m.moveFocusedTag(-1)
	case key.Matches(msg, m.keys.MoveDown):
		return m, m.moveFocusedTag(1)
	}
	return m, nil
}

func (m *appModel) quit() tea.Cmd {
	m.home.Teardown()
	m.archive.Teardown()
	m.tagList.Teardown()
	if m.chip != nil {
		m.chip.end()
		m.chip = nil
	}
	if save := m.saveNow(); save != nil {
		return tea.Sequence(save, tea.Quit)
	}
	return tea.Quit
}

func (m *appModel) switchView(v view) tea.Cmd {
	if v == m.view {
		return nil
	}
	// Leaving a view tears down its gesture.
	m.home.Teardown()
	m.archive.Teardown()
	m.tagList.Teardown()
	m.view = v
	m.syncInput()
	m.dirtyUI = true
	return m.scheduleSave()
}

func (m *appModel) toggleFilterAt(i int) tea.Cmd {
	if i < 0 || i >= len(m.tags) {
		return nil
	}
	return m.toggleFilter(m.tags[i].Title)
}

func (m *appModel) toggleFilter(title string) tea.Cmd {
	k := model.TagKey(title)
	next := make([]string, 0, len(m.filter)+1)
	found := false
	for _, f := range m.filter {
		if model.TagKey(f) == k {
			found = true
			continue
		}
		next = append(next, f)
	}
	if !found {
		next = append(next, title)
	}
	return m.setFilter(next)
}

func (m *appModel) setFilter(filter []string) tea.Cmd {
	if len(filter) == 0 && len(m.filter) == 0 {
		return nil
	}
	if len(filter) == 0 {
		filter = nil
	}
	focusKey := m.focusedItemKey()
	m.filter = filter
	m.applyFilter()
	if focusKey != "" && !m.activeItemList().FocusKey(focusKey) {
		m.activeItemList().SetFocus(0)
	}
	m.syncInput()
	m.dirtyUI = true
	return tea.Batch(m.scheduleSave(), m.animate())
}

// logOp logs a failed mutation. Every failure is a no-op for the collection.
func (m *appModel) logOp(op string, err error) {
	var pinned mutate.PinnedError
	switch {
	case mutate.IsNotFound(err):
		m.log.Warn(op+": stale reference", "err", err)
	case errors.As(err, &pinned):
		m.log.Debug(op+": refused", "err", err)
	default:
		m.log.Warn(op, "err", err)
	}
}

func (m *appModel) editItem(key, value string) tea.Cmd {
	res, err := mutate.EditItem(m.items, key, value)
	if err != nil {
		m.logOp("edit", err)
		return nil
	}
	if !res.Changed {
		return nil
	}
	return m.commitItems(res.Items)
}

// deleteEmpty handles backspace on an empty row: the row goes away and the
// previous row takes focus. The trailing row is never deleted.
func (m *appModel) deleteEmpty(key string) tea.Cmd {
	if mutate.IsTrailing(m.items, key) {
		return nil
	}
	idx := m.home.FocusIndex()
	res, err := mutate.DeleteItem(m.items, key)
	if err != nil {
		m.logOp("delete", err)
		return nil
	}
	cmd := m.commitItems(res.Items)
	if idx > 0 {
		m.home.SetFocus(idx - 1)
	} else {
		m.home.SetFocus(0)
	}
	m.syncInput()
	return cmd
}

func (m *appModel) removeItem(key string) tea.Cmd {
	if key == "" {
		return nil
	}
	l := m.activeItemList()
	idx := l.FocusIndex()
	res, err := mutate.DeleteItem(m.items, key)
	if err != nil {
		m.logOp("delete", err)
		return nil
	}
	cmd := m.commitItems(res.Items)
	l.SetFocus(idx)
	m.syncInput()
	return cmd
}

func (m *appModel) toggleDone(key string) tea.Cmd {
	if key == "" {
		return nil
	}
	l := m.activeItemList()
	idx := l.FocusIndex()
	res, err := mutate.ToggleArchived(m.items, key)
	if err != nil {
		m.logOp("archive", err)
		return nil
	}
	if !res.Changed {
		return nil
	}
	cmd := m.commitItems(res.Items)
	// The row left this list; keep the focus on the same slot.
	l.SetFocus(idx)
	m.syncInput()
	return cmd
}

// assignNextTag walks the catalogue: the tag after the last one the item
// carries is assigned (group rules may replace a sibling).
func (m *appModel) assignNextTag() tea.Cmd {
	it, ok := m.focusedItem()
	if !ok || len(m.tags) == 0 {
		return nil
	}
	next := 0
	if sorted := mutate.SortTags(it.Tags, m.tags); len(sorted) > 0 {
		if _, i, ok := model.FindTag(m.tags, sorted[len(sorted)-1]); ok {
			next = (i + 1) % len(m.tags)
		}
	}
	for n := 0; n < len(m.tags); n++ {
		t := m.tags[(next+n)%len(m.tags)]
		if it.HasTag(t.Title) {
			continue
		}
		res, err := mutate.AssignTag(m.items, m.tags, it.Key, t.Title)
		if err != nil {
			m.logOp("tag", err)
			return nil
		}
		return m.commitItems(res.Items)
	}
	return nil
}

func (m *appModel) moveFocusedItem(delta int) tea.Cmd {
	l := m.activeItemList()
	it, ok := l.Focused()
	if !ok || !l.MoveFocused(delta) {
		return nil
	}
	next, ok := l.TakeCommit()
	if !ok {
		return nil
	}
	cmd := m.commitItems(next)
	l.FocusKey(it.Key)
	m.syncInput()
	return cmd
}

func (m *appModel) moveFocusedTag(delta int) tea.Cmd {
	t, ok := m.tagList.Focused()
	if !ok || !m.tagList.MoveFocused(delta) {
		return nil
	}
	next, ok := m.tagList.TakeCommit()
	if !ok {
		return nil
	}
	cmd := m.commitTags(next)
	m.tagList.FocusKey(model.TagTitleKey(t))
	return cmd
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.rehydrating || m.showHelp {
		return m, nil
	}
	if m.pointer.Route(msg) {
		return m, m.afterRoute()
	}
	p := pointOf(msg)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollActive(-1)
			return m, nil
		case tea.MouseButtonWheelDown:
			m.scrollActive(1)
			return m, nil
		}
		if cmd, ok := m.clickHeader(msg); ok {
			return m, cmd
		}
		if m.pressTagBar(msg) {
			return m, nil
		}
		if m.view == viewSettings {
			if cmd, ok := m.tagList.Press(p, buttonOf(msg)); ok {
				return m, cmd
			}
			if h, ok := m.tagList.HitTest(p); ok {
				m.tagList.SetFocus(h.Index)
			}
			return m, nil
		}
		l := m.activeItemList()
		if cmd, ok := l.Press(p, buttonOf(msg)); ok {
			return m, cmd
		}
		if buttonOf(msg) != gesture.ButtonPrimary {
			return m, nil
		}
		return m, m.clickItem(msg)

	case tea.MouseActionRelease:
		if m.view == viewSettings {
			if k, click := m.tagList.Release(p); click {
				m.tagList.FocusKey(k)
			}
			return m, nil
		}
		l := m.activeItemList()
		if k, click := l.Release(p); click {
			// A quick click on the grip is an ordinary click.
			l.FocusKey(k)
			m.syncInput()
		}
		return m, nil
	}
	return m, nil
}

// afterRoute applies whatever a bound gesture produced: drag commits and
// chip drops.
func (m *appModel) afterRoute() tea.Cmd {
	var cmds []tea.Cmd
	for _, l := range []*sortableList[model.Item, string]{m.home, m.archive} {
		if next, ok := l.TakeCommit(); ok {
			m.log.Debug("drag commit", "list", l.id)
			cmds = append(cmds, m.commitItems(next))
		}
	}
	if next, ok := m.tagList.TakeCommit(); ok {
		cmds = append(cmds, m.commitTags(next))
	}
	if !m.home.Dragging() && !m.archive.Dragging() && !m.tagList.Dragging() {
		m.syncInput()
	}
	if d := m.chip; d != nil && d.done {
		d.end()
		m.chip = nil
		cmds = append(cmds, m.dropChip(d))
	}
	cmds = append(cmds, m.animate())
	return tea.Batch(cmds...)
}

func (m *appModel) scrollActive(d int) {
	if m.view == viewSettings {
		m.tagList.Scroll(d)
		return
	}
	m.activeItemList().Scroll(d)
}

// clickHeader switches views through the tabs drawn by renderHeader.
func (m *appModel) clickHeader(msg tea.MouseMsg) (tea.Cmd, bool) {
	for _, v := range views {
		if m.zones.Get(tabZone(v)).InBounds(msg) {
			return m.switchView(v), true
		}
	}
	return nil, false
}

// pressTagBar starts a chip drag from the tag bar. A release without
// movement toggles the filter instead.
func (m *appModel) pressTagBar(msg tea.MouseMsg) bool {
	if m.view == viewSettings || buttonOf(msg) != gesture.ButtonPrimary {
		return false
	}
	for _, t := range m.tags {
		if !m.zones.Get(tagBarZone(t.Title)).InBounds(msg) {
			continue
		}
		p := pointOf(msg)
		d := &chipDrag{title: t.Title, payload: mutate.EncodeTagPayload(t), origin: p, at: p}
		if d.unbind = m.pointer.Bind(d); d.unbind != nil {
			m.chip = d
		}
		return true
	}
	return false
}

func (m *appModel) dropChip(d *chipDrag) tea.Cmd {
	if !d.moved {
		return m.toggleFilter(d.title)
	}
	l := m.activeItemList()
	h, ok := l.HitTest(d.at)
	if !ok {
		return nil
	}
	it := l.Items()[h.Index]
	res, err := mutate.DropTag(m.items, m.tags, it.Key, d.payload)
	if err != nil {
		m.logOp("drop tag", err)
		return nil
	}
	if !res.Changed {
		return nil
	}
	return m.commitItems(res.Items)
}

// chipHover is the row a dragged chip is over, for highlighting.
func (m *appModel) chipHover() string {
	if m.chip == nil || !m.chip.moved {
		return ""
	}
	l := m.activeItemList()
	if h, ok := l.HitTest(m.chip.at); ok {
		return l.Items()[h.Index].Key
	}
	return ""
}

// clickItem handles a primary press on an item row away from the grip:
// checkbox, delete button, tag chips, or focus.
func (m *appModel) clickItem(msg tea.MouseMsg) tea.Cmd {
	l := m.activeItemList()
	h, ok := l.HitTest(pointOf(msg))
	if !ok {
		return nil
	}
	it := l.Items()[h.Index]
	l.SetFocus(h.Index)
	m.syncInput()
	if mutate.IsTrailing(m.items, it.Key) {
		return nil
	}
	switch {
	case m.zones.Get(itemZone(it.Key, "box")).InBounds(msg):
		return m.toggleDone(it.Key)
	case m.zones.Get(itemZone(it.Key, "del")).InBounds(msg):
		return m.removeItem(it.Key)
	}
	for _, title := range it.Tags {
		if !m.zones.Get(itemChipZone(it.Key, title)).InBounds(msg) {
			continue
		}
		res, err := mutate.RemoveTag(m.items, it.Key, title)
		if err != nil {
			m.logOp("untag", err)
			return nil
		}
		if res.Changed {
			return m.commitItems(res.Items)
		}
		return nil
	}
	return nil
}
