package store

import (
	"fmt"
	"io"
	"strings"

	"checklist-cli/internal/model"

	"github.com/pelletier/go-toml/v2"
)

type tagFile struct {
	Tags []model.Tag `toml:"tag"`
}

// ExportTags writes the catalogue as a TOML document of [[tag]] tables.
func ExportTags(w io.Writer, tags []model.Tag) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(tagFile{Tags: tags})
}

// ImportTags reads a catalogue written by ExportTags. Titles must be present
// and unique (case-insensitive).
func ImportTags(r io.Reader) ([]model.Tag, error) {
	var f tagFile
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("import tags: %w", err)
	}
	seen := map[string]bool{}
	out := make([]model.Tag, 0, len(f.Tags))
	for i, t := range f.Tags {
		t.Title = strings.TrimSpace(t.Title)
		if t.Title == "" {
			return nil, fmt.Errorf("import tags: tag %d: missing title", i+1)
		}
		k := model.TagKey(t.Title)
		if seen[k] {
			return nil, fmt.Errorf("import tags: duplicate title %q", t.Title)
		}
		seen[k] = true
		out = append(out, t)
	}
	return out, nil
}
