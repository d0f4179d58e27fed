// Package tui is the interactive checklist: a full-screen bubbletea program
// with mouse drag-to-reorder.
package tui

import (
	"context"
	"errors"
	"log/slog"

	"checklist-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	Store  *store.Store
	Config store.Config
	Logger *slog.Logger
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()
	applyGlyphPreference()

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newAppModel(ctx, opts.Store, opts.Config, logger)
	defer m.zones.Close()
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	// Writes by other processes (CLI commands in another terminal) reload
	// the list; our own writes are recognised and ignored by the model.
	if events, err := opts.Store.Watch(ctx); err != nil {
		logger.Warn("watch disabled", "err", err)
	} else {
		go func() {
			for ev := range events {
				p.Send(storeChangedMsg{key: ev.Key})
			}
		}()
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
