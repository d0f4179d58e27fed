package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"checklist-cli/internal/model"
	"checklist-cli/internal/mutate"
	"checklist-cli/internal/reorder"
	"checklist-cli/internal/store"

	"github.com/spf13/cobra"
)

func newTagsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag"},
		Short:   "Manage the tag catalogue and item tags",
	}
	cmd.AddCommand(newTagsListCmd(app))
	cmd.AddCommand(newTagsAddCmd(app))
	cmd.AddCommand(newTagsDeleteCmd(app))
	cmd.AddCommand(newTagsAssignCmd(app))
	cmd.AddCommand(newTagsRemoveCmd(app))
	cmd.AddCommand(newTagsMoveCmd(app))
	cmd.AddCommand(newTagsExportCmd(app))
	cmd.AddCommand(newTagsImportCmd(app))
	return cmd
}

func newTagsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tags with the number of active items carrying each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, items, tags, err := loadState(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			return writeData(cmd, app, tagViews(mutate.TagCounts(items, tags)))
		},
	}
}

// mutateTags runs fn against the stored catalogue and saves the result.
func mutateTags(cmd *cobra.Command, app *App, fn func(items []model.Item, tags []model.Tag) ([]model.Item, []model.Tag, error)) error {
	ctx := cmd.Context()
	s, items, tags, err := loadState(ctx, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()

	nextItems, nextTags, err := fn(items, tags)
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := s.SaveTags(ctx, nextTags); err != nil {
		return writeErr(cmd, err)
	}
	if nextItems != nil {
		if err := s.SaveItems(ctx, nextItems); err != nil {
			return writeErr(cmd, err)
		}
	} else {
		nextItems = items
	}
	return writeData(cmd, app, tagViews(mutate.TagCounts(nextItems, nextTags)))
}

func newTagsAddCmd(app *App) *cobra.Command {
	var color, altColor, altTextColor, group string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a tag to the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateTags(cmd, app, func(_ []model.Item, tags []model.Tag) ([]model.Item, []model.Tag, error) {
				next, err := mutate.AddTag(tags, model.Tag{
					Title:        args[0],
					Color:        color,
					AltColor:     altColor,
					AltTextColor: altTextColor,
					GroupName:    group,
				})
				if errors.Is(err, mutate.ErrDuplicateTag) {
					err = fmt.Errorf("tag %q: %w", args[0], err)
				}
				return nil, next, err
			})
		},
	}
	cmd.Flags().StringVar(&color, "color", "hsl(60, 100%, 85%)", "Chip colour (hsl(h, s%, l%) or #rrggbb)")
	cmd.Flags().StringVar(&altColor, "alt-color", "", "Chip colour on light terminals")
	cmd.Flags().StringVar(&altTextColor, "alt-text-color", "", "Chip text colour on light terminals")
	cmd.Flags().StringVar(&group, "group", "", "Exclusive group (one tag per group per item)")
	return cmd
}

func newTagsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <title>",
		Aliases: []string{"rm"},
		Short:   "Delete a tag from the catalogue and from every item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateTags(cmd, app, func(items []model.Item, tags []model.Tag) ([]model.Item, []model.Tag, error) {
				return mutate.DeleteTag(items, tags, args[0])
			})
		},
	}
}

func newTagsAssignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <item> <title>",
		Short: "Tag an item (replaces a tag of the same group)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateItems(cmd, app, func(items []model.Item, tags []model.Tag) (mutate.Result, error) {
				key, err := resolveItem(items, args[0])
				if err != nil {
					return mutate.Result{}, err
				}
				return mutate.AssignTag(items, tags, key, args[1])
			})
		},
	}
}

func newTagsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item> <title>",
		Short: "Remove a tag from an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateItems(cmd, app, func(items []model.Item, _ []model.Tag) (mutate.Result, error) {
				key, err := resolveItem(items, args[0])
				if err != nil {
					return mutate.Result{}, err
				}
				return mutate.RemoveTag(items, key, args[1])
			})
		},
	}
}

func newTagsMoveCmd(app *App) *cobra.Command {
	var by int
	cmd := &cobra.Command{
		Use:   "move <title>",
		Short: "Reorder a tag in the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateTags(cmd, app, func(_ []model.Item, tags []model.Tag) ([]model.Item, []model.Tag, error) {
				if _, _, ok := model.FindTag(tags, args[0]); !ok {
					return nil, tags, errNotFound("tag", args[0])
				}
				eng := reorder.New(reorder.Options[model.Tag, string]{
					Key:       model.TagTitleKey,
					RowHeight: 1,
				})
				next, _ := eng.DragEnd(tags, model.TagKey(args[0]), by)
				return nil, next, nil
			})
		},
	}
	cmd.Flags().IntVar(&by, "by", 0, "Slots to move (negative moves up)")
	_ = cmd.MarkFlagRequired("by")
	return cmd
}

func newTagsExportCmd(app *App) *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the tag catalogue as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, tags, err := loadState(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			if strings.TrimSpace(to) == "" {
				return store.ExportTags(cmd.OutOrStdout(), tags)
			}
			f, err := os.Create(to)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.ExportTags(f, tags); err != nil {
				_ = f.Close()
				return writeErr(cmd, err)
			}
			if err := f.Close(); err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, map[string]any{"written": to, "tags": len(tags)})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Output file (default stdout)")
	return cmd
}

func newTagsImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the tag catalogue from a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			defer f.Close()
			imported, err := store.ImportTags(f)
			if err != nil {
				return writeErr(cmd, err)
			}
			return mutateTags(cmd, app, func(_ []model.Item, _ []model.Tag) ([]model.Item, []model.Tag, error) {
				return nil, imported, nil
			})
		},
	}
}
