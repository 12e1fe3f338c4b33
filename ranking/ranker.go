// Package ranking orders search matches by their Sørensen–Dice similarity
// to the query.
package ranking

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/poiesic/dictcc/core"
	"github.com/poiesic/dictcc/entry"
	"github.com/poiesic/dictcc/schema"
)

// MaxScore is the score of a perfect match.
const MaxScore = 1000

// Ranker scores matched documents against the query that found them.
type Ranker struct {
	minSimilarity int
	limit         int
	logger        *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithMinSimilarity drops results scoring below min. Zero disables the
// threshold.
func WithMinSimilarity(min int) Option {
	return func(r *Ranker) error {
		if min < 0 || min > MaxScore {
			return fmt.Errorf("%w: %d", ErrInvalidMinSimilarity, min)
		}
		r.minSimilarity = min
		return nil
	}
}

// WithLimit keeps only the n best results. Zero means unlimited.
func WithLimit(n int) Option {
	return func(r *Ranker) error {
		if n < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidLimit, n)
		}
		r.limit = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRanker creates a ranker. Without options every result is kept.
func NewRanker(opts ...Option) (*Ranker, error) {
	r := &Ranker{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Rank scores docs against query using the display text of side and
// returns them best first. Equal scores keep their input order.
func (r *Ranker) Rank(docs []*core.Document, query string, side schema.Side) []*core.SearchResult {
	q := norm.NFC.String(strings.ToLower(query))
	field := schema.DisplayField(side)

	results := make([]*core.SearchResult, 0, len(docs))
	for _, doc := range docs {
		score := r.score(field.Value(doc), q)
		if r.minSimilarity > 0 && score < r.minSimilarity {
			continue
		}
		results = append(results, &core.SearchResult{Document: doc, Score: score})
	}

	slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
		return b.Score - a.Score
	})

	if r.limit > 0 && len(results) > r.limit {
		results = results[:r.limit]
	}
	return results
}

// score compares display text, normalized with angle brackets kept, to
// the lowercased query. Parentheses only count against the core phrase.
func (r *Ranker) score(display, query string) int {
	normalized, err := entry.Normalize(display, false)
	if err != nil {
		r.logger.Debug("failed to normalize result", "text", display, "err", err)
		return 0
	}
	text := strings.ToLower(normalized.Text)
	text = strings.NewReplacer("(", "", ")", "").Replace(text)
	extra := strings.ToLower(normalized.Extra)
	similarity := max(Dice(text, query), Dice(extra, query))
	return int(similarity * MaxScore)
}

// Translations pairs each result's source text with its translation.
func Translations(results []*core.SearchResult, side schema.Side) []core.Translation {
	source := schema.DisplayField(side)
	target := schema.DisplayField(side.Opposite())
	out := make([]core.Translation, len(results))
	for i, res := range results {
		out[i] = core.Translation{
			Source:        source.Value(res.Document),
			Target:        target.Value(res.Document),
			WordClasses:   res.Document.WordClasses,
			SubjectLabels: res.Document.SubjectLabels,
			Score:         res.Score,
		}
	}
	return out
}
