package cli

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"checklist-cli/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

var errNotTerminal = errors.New("the interactive checklist needs a terminal (use `checklist items list` in scripts)")

func runTUI(cmd *cobra.Command, app *App) error {
	out, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !(isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())) {
		return writeErr(cmd, errNotTerminal)
	}

	logger, closeLog, err := tuiLogger(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeLog()

	ctx := cmd.Context()
	s, err := openStore(ctx, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()

	return tui.Run(ctx, tui.Options{
		Store:  s,
		Config: app.cfg,
		Logger: logger,
	})
}

// tuiLogger logs to log.file when configured. Anything written to the
// terminal would corrupt the alt screen, so logs are discarded otherwise.
func tuiLogger(app *App) (*slog.Logger, func(), error) {
	path := strings.TrimSpace(app.cfg.Log.File)
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := tea.LogToFile(path, "checklist")
	if err != nil {
		return nil, nil, err
	}
	return newLogger(f, app.cfg.Log.Level), func() { _ = f.Close() }, nil
}
