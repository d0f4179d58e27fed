package cli

import (
	"errors"
	"strings"

	"checklist-cli/internal/model"
	"checklist-cli/internal/mutate"
	"checklist-cli/internal/reorder"
	"checklist-cli/internal/visibility"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item", "tasks"},
		Short:   "List and edit checklist items",
	}
	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsEditCmd(app))
	cmd.AddCommand(newItemsArchiveCmd(app))
	cmd.AddCommand(newItemsDeleteCmd(app))
	cmd.AddCommand(newItemsMoveCmd(app))
	return cmd
}

func resolveItem(items []model.Item, ref string) (string, error) {
	key, matches, err := mutate.ResolveKey(items, ref)
	if err != nil {
		return "", err
	}
	if len(matches) > 1 {
		return "", ambiguousRefError{ref: ref, matches: matches}
	}
	return key, nil
}

// listView is the visible sequence a command addresses: active (or archived)
// items carrying every tag in filter, without the trailing row.
func listView(items []model.Item, archived bool, filter []string) []model.Item {
	keep := visibility.Active(filter)
	if archived {
		keep = visibility.Archived(filter)
	}
	trailing, _ := mutate.TrailingKey(items)
	out := make([]model.Item, 0, len(items))
	for _, it := range visibility.Project(items, keep).Items {
		if !archived && it.Key == trailing {
			continue
		}
		out = append(out, it)
	}
	return out
}

func position(view []model.Item, key string) int {
	for i, it := range view {
		if it.Key == key {
			return i + 1
		}
	}
	return 0
}

// mutateItems runs fn against the stored collection and saves the result
// when it changed. It writes the affected item.
func mutateItems(cmd *cobra.Command, app *App, fn func(items []model.Item, tags []model.Tag) (mutate.Result, error)) error {
	ctx := cmd.Context()
	s, items, tags, err := loadState(ctx, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()

	res, err := fn(items, tags)
	if err != nil {
		return writeErr(cmd, err)
	}
	if res.Changed {
		if err := s.SaveItems(ctx, res.Items); err != nil {
			return writeErr(cmd, err)
		}
	}
	return writeItem(cmd, app, res.Items, tags, res.Key)
}

func writeItem(cmd *cobra.Command, app *App, items []model.Item, tags []model.Tag, key string) error {
	for _, it := range items {
		if it.Key != key {
			continue
		}
		pos := position(listView(items, it.Archived, nil), key)
		return writeData(cmd, app, viewOf(it, pos, tags))
	}
	return writeData(cmd, app, nil)
}

func newItemsListCmd(app *App) *cobra.Command {
	var archived bool
	var filter []string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active items in order (or archived with --archived)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, items, tags, err := loadState(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			view := listView(items, archived, filter)
			out := make(itemViews, 0, len(view))
			for i, it := range view {
				out = append(out, viewOf(it, i+1, tags))
			}
			return writeData(cmd, app, out)
		},
	}
	cmd.Flags().BoolVar(&archived, "archived", false, "List archived (done) items")
	cmd.Flags().StringSliceVar(&filter, "tag", nil, "Only items carrying every given tag (repeatable)")
	return cmd
}

func newItemsAddCmd(app *App) *cobra.Command {
	var tagTitles []string
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add an item above the trailing row",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return writeErr(cmd, errors.New("item text is required"))
			}
			return mutateItems(cmd, app, func(items []model.Item, tags []model.Tag) (mutate.Result, error) {
				res, err := mutate.AddItem(items, text)
				if err != nil {
					return res, err
				}
				for _, t := range tagTitles {
					next, err := mutate.AssignTag(res.Items, tags, res.Key, t)
					if err != nil {
						return mutate.Result{}, err
					}
					next.Changed = true
					res = next
				}
				return res, nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&tagTitles, "tag", nil, "Tag to assign (repeatable)")
	return cmd
}

func newItemsEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <item> <text>",
		Short: "Replace an item's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")
			return mutateItems(cmd, app, func(items []model.Item, _ []model.Tag) (mutate.Result, error) {
				key, err := resolveItem(items, args[0])
				if err != nil {
					return mutate.Result{}, err
				}
				return mutate.EditItem(items, key, text)
			})
		},
	}
}

func newItemsArchiveCmd(app *App) *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:     "archive <item>",
		Aliases: []string{"done"},
		Short:   "Mark an item as done (or as todo with --undo)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateItems(cmd, app, func(items []model.Item, _ []model.Tag) (mutate.Result, error) {
				key, err := resolveItem(items, args[0])
				if err != nil {
					return mutate.Result{}, err
				}
				return mutate.SetItemArchived(items, key, !undo)
			})
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark as todo again")
	return cmd
}

func newItemsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <item>",
		Aliases: []string{"rm"},
		Short:   "Remove an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, items, _, err := loadState(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			key, err := resolveItem(items, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.DeleteItem(items, key)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SaveItems(ctx, res.Items); err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, map[string]any{"deleted": key})
		},
	}
}

func newItemsMoveCmd(app *App) *cobra.Command {
	var by int
	var to int
	var filter []string
	cmd := &cobra.Command{
		Use:   "move <item>",
		Short: "Reorder an item (--by N slots, or --to position)",
		Long: strings.TrimSpace(`
Reorder an active item among the visible items, exactly as a mouse drag would.
With --tag only the filtered items are considered; the others keep their order.
The trailing row cannot be moved and nothing can be moved below it.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byChanged := cmd.Flags().Changed("by")
			toChanged := cmd.Flags().Changed("to")
			if byChanged == toChanged {
				return writeErr(cmd, errors.New("provide exactly one of --by or --to"))
			}
			return mutateItems(cmd, app, func(items []model.Item, _ []model.Tag) (mutate.Result, error) {
				key, err := resolveItem(items, args[0])
				if err != nil {
					return mutate.Result{}, err
				}
				if mutate.IsTrailing(items, key) {
					return mutate.Result{}, mutate.PinnedError{Op: "move", Key: key}
				}
				delta := by
				if toChanged {
					from := position(listView(items, false, filter), key)
					if from == 0 {
						return mutate.Result{}, errNotFound("item in view", key)
					}
					delta = to - from
				}
				next, changed := moveItem(items, key, filter, delta)
				return mutate.Result{Items: next, Key: key, Changed: changed}, nil
			})
		},
	}
	cmd.Flags().IntVar(&by, "by", 0, "Slots to move (negative moves up)")
	cmd.Flags().IntVar(&to, "to", 0, "Target 1-based position in the list")
	cmd.Flags().StringSliceVar(&filter, "tag", nil, "Move within the items carrying every given tag")
	return cmd
}

// moveItem drives the reorder engine with a displacement of whole rows.
func moveItem(items []model.Item, key string, filter []string, rows int) ([]model.Item, bool) {
	eng := reorder.New(reorder.Options[model.Item, string]{
		Key:       model.ItemKey,
		Visible:   visibility.Active(filter),
		Pinned:    mutate.TrailingPinned(items),
		RowHeight: 1,
	})
	return eng.DragEnd(items, key, rows)
}
