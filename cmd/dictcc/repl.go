package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/poiesic/dictcc/completion"
	"github.com/poiesic/dictcc/config"
)

const prompt = "> "

// completionSource is implemented by sessions that can propose lines.
type completionSource interface {
	CompletionSource(ctx context.Context) completion.Source
}

// tabCompleter adapts a completion source to readline. Candidates are
// whole lines, so readline receives the part after the cursor.
type tabCompleter struct {
	source   completion.Source
	circular bool
	// out receives candidate lists in list mode.
	out io.Writer
}

// Do implements readline.AutoCompleter.
func (t *tabCompleter) Do(line []rune, pos int) ([][]rune, int) {
	typed := line[:pos]
	var suffixes [][]rune
	for _, candidate := range t.source.Complete(string(typed)) {
		rs := []rune(candidate)
		if len(rs) <= len(typed) || string(rs[:len(typed)]) != string(typed) {
			continue
		}
		suffixes = append(suffixes, rs[len(typed):])
	}
	if t.circular || len(suffixes) < 2 {
		return suffixes, len(typed)
	}

	// List mode extends the common prefix first and shows the candidates
	// once nothing more can be inserted.
	if common := commonPrefix(suffixes); len(common) > 0 {
		return [][]rune{common}, len(typed)
	}
	if t.out != nil {
		lines := make([]string, len(suffixes))
		for i, s := range suffixes {
			lines[i] = string(typed) + string(s)
		}
		fmt.Fprintln(t.out, strings.Join(lines, "    "))
	}
	return nil, 0
}

func commonPrefix(words [][]rune) []rune {
	prefix := words[0]
	for _, w := range words[1:] {
		n := 0
		for n < len(prefix) && n < len(w) && prefix[n] == w[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return prefix
}

// runREPL reads queries until end of input. Interrupts discard the
// current line.
func runREPL(ctx context.Context, printer *resultPrinter, completionType string) error {
	completer := &tabCompleter{circular: completionType == config.CompletionCircular}
	if src, ok := printer.session.(completionSource); ok {
		completer.source = src.CompletionSource(ctx)
	}

	rlConfig := &readline.Config{Prompt: prompt}
	if completer.source != nil {
		rlConfig.AutoComplete = completer
	}
	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return err
	}
	defer rl.Close()
	completer.out = rl.Stdout()
	printer.out = rl.Stdout()
	printer.errOut = rl.Stderr()

	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			fmt.Fprintf(printer.errOut, "Readline error: %v\n", err)
			return nil
		}
		printer.print(ctx, line)
	}
}
