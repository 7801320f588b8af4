package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Line asks for a comma separated list of choice numbers on a plain stream.
// It is used when stdin is not a terminal.
type Line struct {
	In  io.Reader
	Out io.Writer
}

// Select prints a numbered menu and reads one line of numbers.
func (l *Line) Select(_ context.Context, choices []string) ([]string, error) {
	fmt.Fprintf(l.Out, "\n%s\n", Message)
	for i, c := range choices {
		fmt.Fprintf(l.Out, "  %d) %s\n", i+1, c)
	}
	fmt.Fprintf(l.Out, "Enter numbers separated by commas [1-%d], blank for none: ", len(choices))

	line, err := bufio.NewReader(l.In).ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading selection: %w", err)
		}
		// A final line without a newline still counts as an answer.
		if line == "" {
			return nil, ErrCancelled
		}
	}

	var selected []string
	for _, field := range ParseList(line) {
		num, err := strconv.Atoi(field)
		if err != nil || num < 1 || num > len(choices) {
			return nil, fmt.Errorf("invalid selection %q: choose 1-%d", field, len(choices))
		}
		selected = append(selected, choices[num-1])
	}
	return dedupe(selected), nil
}
