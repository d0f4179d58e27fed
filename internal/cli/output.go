package cli

import (
	"fmt"
	"strconv"
	"strings"

	"checklist-cli/internal/format"
	"checklist-cli/internal/model"
	"checklist-cli/internal/mutate"
)

type envelope struct {
	Data any `json:"data"`
}

func (e envelope) TableHeader() []string {
	if t, ok := e.Data.(format.Tabular); ok {
		return t.TableHeader()
	}
	return []string{"DATA"}
}

func (e envelope) TableRows() [][]string {
	if t, ok := e.Data.(format.Tabular); ok {
		return t.TableRows()
	}
	return [][]string{{fmt.Sprint(e.Data)}}
}

type itemView struct {
	Position int      `json:"position"`
	Key      string   `json:"key"`
	Value    string   `json:"value"`
	Tags     []string `json:"tags"`
	Archived bool     `json:"archived"`
}

type itemViews []itemView

func (v itemViews) TableHeader() []string { return []string{"#", "KEY", "TASK", "TAGS", "DONE"} }

func (v itemViews) TableRows() [][]string {
	rows := make([][]string, 0, len(v))
	for _, it := range v {
		done := ""
		if it.Archived {
			done = "x"
		}
		rows = append(rows, []string{strconv.Itoa(it.Position), shortKey(it.Key), it.Value, strings.Join(it.Tags, ", "), done})
	}
	return rows
}

func viewOf(it model.Item, pos int, catalogue []model.Tag) itemView {
	tags := mutate.SortTags(it.Tags, catalogue)
	if tags == nil {
		tags = []string{}
	}
	return itemView{Position: pos, Key: it.Key, Value: it.Value, Tags: tags, Archived: it.Archived}
}

type tagViews []mutate.TagCount

func (v tagViews) TableHeader() []string { return []string{"TAG", "GROUP", "COLOR", "ITEMS"} }

func (v tagViews) TableRows() [][]string {
	rows := make([][]string, 0, len(v))
	for _, tc := range v {
		rows = append(rows, []string{tc.Tag.Title, tc.Tag.GroupName, tc.Tag.Color, strconv.Itoa(tc.Count)})
	}
	return rows
}

type badgeView struct {
	Count int    `json:"count"`
	Text  string `json:"text"`
}

func (b badgeView) TableHeader() []string { return []string{"PENDING"} }
func (b badgeView) TableRows() [][]string { return [][]string{{strconv.Itoa(b.Count)}} }

func shortKey(k string) string {
	if len(k) > 8 {
		return k[:8]
	}
	return k
}
