package cli

import (
	"checklist-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var opt publish.WriteOptions
	var to string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the checklist as markdown or HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, items, tags, err := loadState(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			if to == "" {
				b, err := publish.Render(items, tags, opt)
				if err != nil {
					return writeErr(cmd, err)
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			res, err := publish.WriteFile(items, tags, to, opt)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, res)
		},
	}
	cmd.Flags().StringVar(&opt.Format, "as", publish.FormatMarkdown, "Document format (md|html)")
	cmd.Flags().StringVar(&to, "to", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&opt.Title, "title", "Checklist", "Document title")
	cmd.Flags().BoolVar(&opt.IncludeArchived, "archived", false, "Include done items")
	cmd.Flags().StringSliceVar(&opt.TagFilter, "tag", nil, "Only items carrying every given tag")
	cmd.Flags().BoolVar(&opt.Overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}
