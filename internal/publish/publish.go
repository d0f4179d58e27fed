package publish

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"checklist-cli/internal/model"
)

const (
	FormatMarkdown = "md"
	FormatHTML     = "html"
)

type WriteOptions struct {
	RenderOptions
	Format    string
	Overwrite bool
}

type WriteResult struct {
	Written string `json:"written"`
	Items   int    `json:"items"`
}

// Render produces the export document in the requested format.
func Render(items []model.Item, catalogue []model.Tag, opt WriteOptions) ([]byte, error) {
	md := RenderMarkdown(items, catalogue, opt.RenderOptions)
	switch strings.ToLower(strings.TrimSpace(opt.Format)) {
	case "", FormatMarkdown, "markdown":
		return []byte(md), nil
	case FormatHTML:
		title := strings.TrimSpace(opt.Title)
		if title == "" {
			title = "Checklist"
		}
		return RenderHTML(title, md)
	default:
		return nil, fmt.Errorf("unknown export format: %s (expected md|html)", opt.Format)
	}
}

// WriteFile renders the checklist into path.
func WriteFile(items []model.Item, catalogue []model.Tag, path string, opt WriteOptions) (WriteResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	path = filepath.Clean(path)
	b, err := Render(items, catalogue, opt)
	if err != nil {
		return WriteResult{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return WriteResult{}, err
	}
	if err := writeFile(path, b, opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: path, Items: countExported(items, opt.RenderOptions)}, nil
}

func countExported(items []model.Item, opt RenderOptions) int {
	active, archived := exported(items, opt)
	return len(active) + len(archived)
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
