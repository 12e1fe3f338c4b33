// Package completion proposes dictionary phrases for a partially typed
// line.
package completion

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/poiesic/dictcc/schema"
	"github.com/poiesic/dictcc/search"
	"github.com/poiesic/dictcc/storage"
)

// ErrIndexReaderRequired is returned when an index reader is not provided.
var ErrIndexReaderRequired = errors.New("index reader required")

// Source is the capability consumed by line editors: full candidate lines
// for what has been typed so far.
type Source interface {
	Complete(partial string) []string
}

// Completer finds key phrases of one side that extend a partial line.
type Completer struct {
	reader storage.IndexReader
	side   schema.Side
	logger *slog.Logger
}

// Option configures a Completer.
type Option func(*Completer)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Completer) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewCompleter creates a completer over the key field of side.
func NewCompleter(reader storage.IndexReader, side schema.Side, opts ...Option) (*Completer, error) {
	if reader == nil {
		return nil, ErrIndexReaderRequired
	}
	c := &Completer{reader: reader, side: side, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Complete returns the distinct key phrases that start with the trimmed
// partial line, in Sort order. The last word of the line is treated as
// incomplete and must be extended by at least one character; earlier words
// must appear consecutively.
func (c *Completer) Complete(ctx context.Context, partial string) ([]string, error) {
	line := norm.NFC.String(strings.TrimSpace(partial))
	terms := schema.Terms(line)
	if len(terms) == 0 {
		return nil, nil
	}

	field := schema.KeyField(c.side)
	var q search.Query = &search.PrefixQuery{Field: field, Prefix: terms[len(terms)-1]}
	if head := search.TermsQuery(field, terms[:len(terms)-1]); head != nil {
		q = &search.BooleanQuery{Must: []search.Query{head, q}}
	}

	matches, err := q.Execute(ctx, c.reader)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(matches))
	var candidates []string
	for _, id := range matches.IDs() {
		doc, err := c.reader.Document(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("failed to load document", "id", id, "err", err)
			continue
		}
		key := field.Value(doc)
		if !strings.HasPrefix(key, line) {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		candidates = append(candidates, key)
	}
	Sort(candidates)
	return candidates, nil
}

// Sort orders candidates by word count, then character count, then
// lexicographically.
func Sort(candidates []string) {
	slices.SortFunc(candidates, func(a, b string) int {
		return cmp.Or(
			cmp.Compare(len(strings.Fields(a)), len(strings.Fields(b))),
			cmp.Compare(utf8.RuneCountInString(a), utf8.RuneCountInString(b)),
			strings.Compare(a, b),
		)
	})
}

// Source adapts c to the Source capability. Errors are logged and yield
// no candidates.
func (c *Completer) Source(ctx context.Context) Source {
	return sourceFunc(func(partial string) []string {
		candidates, err := c.Complete(ctx, partial)
		if err != nil {
			c.logger.Warn("completion failed", "partial", partial, "err", err)
			return nil
		}
		return candidates
	})
}

type sourceFunc func(partial string) []string

func (f sourceFunc) Complete(partial string) []string {
	return f(partial)
}
