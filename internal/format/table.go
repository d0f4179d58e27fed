package format

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// Tabular values can be printed with --format table.
type Tabular interface {
	TableHeader() []string
	TableRows() [][]string
}

// WriteTable renders t as an aligned table with a bold header row. Colour is
// dropped automatically when w is not a terminal (fatih/color NoColor).
func WriteTable(w io.Writer, t Tabular) error {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true

	header := t.TableHeader()
	cells := make([]any, 0, len(header))
	for _, h := range header {
		cells = append(cells, bold.Sprint(h))
	}
	tbl.AddRow(cells...)

	for _, row := range t.TableRows() {
		cells := make([]any, 0, len(row))
		for _, c := range row {
			cells = append(cells, c)
		}
		tbl.AddRow(cells...)
	}
	_, err := fmt.Fprintln(w, tbl)
	return err
}
