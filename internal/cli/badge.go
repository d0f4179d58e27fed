package cli

import (
	"os/signal"
	"syscall"

	"checklist-cli/internal/badge"

	"github.com/spf13/cobra"
)

func newBadgeCmd(app *App) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "badge",
		Short: "Print the number of pending tasks",
		Long: `Print the number of pending tasks (active items, not counting the
empty trailing row). With --watch, print a line every time the count changes
until interrupted; an empty line means nothing is pending.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			items, err := s.LoadItems(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !watch {
				n := badge.Count(items)
				return writeData(cmd, app, badgeView{Count: n, Text: badge.Text(n)})
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			events, err := s.Watch(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			pub := badge.NewPublisher(badge.WriterSink{W: cmd.OutOrStdout()})
			if _, err := pub.Publish(items); err != nil {
				return writeErr(cmd, err)
			}
			for range events {
				items, err := s.LoadItems(ctx)
				if err != nil {
					app.logger.Warn("badge: reload failed", "err", err)
					continue
				}
				if _, err := pub.Publish(items); err != nil {
					return writeErr(cmd, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and print on every change")
	return cmd
}
