package main

import (
	"reflect"
	"testing"
)

func TestRewriteQuickAddArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"checklist"},
			want: []string{"checklist"},
		},
		{
			name: "quick add first token",
			in:   []string{"checklist", "+Buy milk"},
			want: []string{"checklist", "items", "add", "Buy milk"},
		},
		{
			name: "quick add after value flag",
			in:   []string{"checklist", "--dir", "./tmp-test", "+milk"},
			want: []string{"checklist", "--dir", "./tmp-test", "items", "add", "milk"},
		},
		{
			name: "quick add after equals flag",
			in:   []string{"checklist", "--dir=./tmp-test", "+milk"},
			want: []string{"checklist", "--dir=./tmp-test", "items", "add", "milk"},
		},
		{
			name: "quick add after bool flag keeps trailing flags",
			in:   []string{"checklist", "--pretty", "+milk", "--tag", "urgent"},
			want: []string{"checklist", "--pretty", "items", "add", "milk", "--tag", "urgent"},
		},
		{
			name: "quick add after double dash",
			in:   []string{"checklist", "--", "+milk"},
			want: []string{"checklist", "--", "items", "add", "milk"},
		},
		{
			name: "bare plus not rewritten",
			in:   []string{"checklist", "+"},
			want: []string{"checklist", "+"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"checklist", "items", "add", "+milk"},
			want: []string{"checklist", "items", "add", "+milk"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteQuickAddArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}
