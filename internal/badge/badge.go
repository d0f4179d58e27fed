// Package badge derives the pending-task count shown outside the list (the
// terminal title, the status line, `checklist badge`).
package badge

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"checklist-cli/internal/model"

	"github.com/fatih/color"
	"github.com/muesli/termenv"
)

// Count is the number of active items excluding the trailing row. It is
// never negative.
func Count(items []model.Item) int {
	n := 0
	for _, it := range items {
		if !it.Archived {
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return n - 1
}

// Text renders a count; zero renders as an empty badge.
func Text(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// Sink receives badge text.
type Sink interface {
	SetBadge(text string) error
}

type SinkFunc func(text string) error

func (f SinkFunc) SetBadge(text string) error { return f(text) }

// Publisher pushes the badge to a sink only when the count changes.
type Publisher struct {
	mu   sync.Mutex
	sink Sink
	last int
	sent bool
}

func NewPublisher(sink Sink) *Publisher {
	return &Publisher{sink: sink}
}

// Publish recomputes the count for items and notifies the sink when it differs
// from the last published value. It reports whether the sink was called.
func (p *Publisher) Publish(items []model.Item) (bool, error) {
	return p.PublishCount(Count(items))
}

func (p *Publisher) PublishCount(n int) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sent && p.last == n {
		return false, nil
	}
	if p.sink == nil {
		return false, nil
	}
	if err := p.sink.SetBadge(Text(n)); err != nil {
		return true, err
	}
	p.sent = true
	p.last = n
	return true, nil
}

// Last returns the last published count.
func (p *Publisher) Last() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, p.sent
}

// WriterSink prints one line per badge change: white on red, like a toolbar
// badge. An empty badge prints an empty line.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) SetBadge(text string) error {
	if text == "" {
		_, err := fmt.Fprintln(s.W)
		return err
	}
	c := color.New(color.FgHiWhite, color.BgRed, color.Bold)
	_, err := c.Fprintf(s.W, " %s ", text)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.W)
	return err
}

// TitleSink sets the terminal window title to "<prefix> (n)".
type TitleSink struct {
	Output *termenv.Output
	Prefix string
}

func (s TitleSink) SetBadge(text string) error {
	s.Output.SetWindowTitle(Title(s.Prefix, text))
	return nil
}

// Title formats a window title carrying the badge.
func Title(prefix, text string) string {
	if text == "" {
		return prefix
	}
	return fmt.Sprintf("%s (%s)", prefix, text)
}
