package entry

import (
	"strings"

	"github.com/poiesic/dictcc/core"
)

// Normalize splits raw into its core phrase and its annotations.
//
// Text joins the words and round groups with single spaces, keeping the
// parentheses. Extra joins the angle groups; with stripAngleBrackets the
// enclosing '<' and '>' of each group are dropped. Both outputs are
// whitespace-collapsed. Normalize is pure and idempotent.
func Normalize(raw string, stripAngleBrackets bool) (core.NormalizedEntry, error) {
	tokens, err := Parse(raw)
	if err != nil {
		return core.NormalizedEntry{}, err
	}

	var text, extra []string
	for _, tok := range tokens {
		switch tok.Kind {
		case Word, RoundGroup:
			text = append(text, tok.Text)
		case AngleGroup:
			annotation := tok.Text
			if stripAngleBrackets {
				annotation = annotation[1 : len(annotation)-1]
			}
			extra = append(extra, annotation)
		}
	}

	return core.NormalizedEntry{
		Text:  CollapseWhitespace(strings.Join(text, " ")),
		Extra: CollapseWhitespace(strings.Join(extra, " ")),
	}, nil
}

// CollapseWhitespace replaces every run of whitespace with one space and
// trims both ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
