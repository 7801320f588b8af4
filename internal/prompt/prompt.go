// Package prompt asks the operator which Strapi webhook events should
// trigger the workflow.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Message is the question shown above the choices.
const Message = "Select webhook events to trigger the workflow:"

// Events are the selectable Strapi webhook events, in presentation order.
var Events = []string{
	"entry.create",
	"entry.update",
	"entry.delete",
	"entry.publish",
	"entry.unpublish",
	"media.create",
	"media.update",
	"media.delete",
}

// ErrCancelled is returned when the operator aborts the selection.
var ErrCancelled = errors.New("selection cancelled")

// Prompter returns the chosen subset of choices in the order they were
// selected, without duplicates.
type Prompter interface {
	Select(ctx context.Context, choices []string) ([]string, error)
}

// Options configures New.
type Options struct {
	// Preset skips the interactive prompt when non-nil.
	Preset []string
	In     io.Reader
	Out    io.Writer
}

// New picks a prompter: the preset when one is given, the checkbox UI when
// In is a terminal, and the numbered line prompt otherwise.
func New(opts Options) Prompter {
	if opts.Preset != nil {
		return Static(opts.Preset)
	}
	if f, ok := opts.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return &Checkbox{In: opts.In, Out: opts.Out}
	}
	return &Line{In: opts.In, Out: opts.Out}
}

// Static is a non-interactive prompter returning a fixed selection.
type Static []string

// Select validates the preset against choices.
func (s Static) Select(_ context.Context, choices []string) ([]string, error) {
	valid := make(map[string]bool, len(choices))
	for _, c := range choices {
		valid[c] = true
	}

	var unknown []string
	for _, e := range s {
		if !valid[e] {
			unknown = append(unknown, e)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown events %s: choose from %s",
			strings.Join(unknown, ", "), strings.Join(choices, ", "))
	}
	return dedupe(s), nil
}

// ParseList splits a comma separated event list, dropping blanks.
func ParseList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
