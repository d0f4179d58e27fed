package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"checklist-cli/internal/format"
	"checklist-cli/internal/model"
	"checklist-cli/internal/mutate"
	"checklist-cli/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type App struct {
	Dir        string
	Backend    string
	PrettyJSON bool
	Format     string

	v      *viper.Viper
	cfg    store.Config
	logger *slog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{v: viper.New()}

	cmd := &cobra.Command{
		Use:          "checklist",
		Short:        "Terminal checklist with drag-to-reorder",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  checklist

  # Scriptable commands
  checklist items add "Buy milk" --tag urgent
  checklist items move 3f2a --by -2
  checklist badge --watch
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		flags := cmd.Root().PersistentFlags()
		_ = app.v.BindPFlag("store.dir", flags.Lookup("dir"))
		_ = app.v.BindPFlag("store.backend", flags.Lookup("backend"))
		cfg, err := store.LoadConfig(app.v)
		if err != nil {
			return writeErr(cmd, fmt.Errorf("load config: %w", err))
		}
		app.cfg = cfg
		app.logger = newLogger(cmd.ErrOrStderr(), cfg.Log.Level)
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Path to the store dir (default ~/.checklist)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Store backend (sqlite|diskv)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CHECKLIST_FORMAT", "json"), "Output format (json|edn|table)")

	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newBadgeCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func openStore(ctx context.Context, app *App) (*store.Store, error) {
	return store.Open(ctx, app.cfg.Store.Dir, app.cfg.Store.Backend)
}

// loadState opens the store and reads the collection (with its trailing row
// guaranteed) and the tag catalogue. Callers close the store.
func loadState(ctx context.Context, app *App) (*store.Store, []model.Item, []model.Tag, error) {
	s, err := openStore(ctx, app)
	if err != nil {
		return nil, nil, nil, err
	}
	items, err := s.LoadItems(ctx)
	if err != nil {
		_ = s.Close()
		return nil, nil, nil, err
	}
	tags, err := s.LoadTags(ctx)
	if err != nil {
		_ = s.Close()
		return nil, nil, nil, err
	}
	return s, mutate.EnsureTrailing(items), tags, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

// writeData wraps data in the {"data": ...} envelope.
func writeData(cmd *cobra.Command, app *App, data any) error {
	return writeOut(cmd, app, envelope{Data: data})
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
