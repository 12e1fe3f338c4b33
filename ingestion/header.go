package ingestion

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/poiesic/dictcc/core"
)

const byteOrderMark = "\ufeff"

// readHeader consumes the first line of r and returns the pair it names.
func readHeader(r *bufio.Reader) (core.LanguagePair, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return core.LanguagePair{}, err
	}
	if line == "" {
		return core.LanguagePair{}, ErrNoLanguagePair
	}
	return parseHeader(line)
}

// parseHeader extracts the pair from a header such as
// "# DE-EN vocabulary database". The first token after '#' must contain
// exactly one hyphen.
func parseHeader(line string) (core.LanguagePair, error) {
	line = strings.TrimPrefix(line, byteOrderMark)
	if !strings.HasPrefix(line, "#") {
		return core.LanguagePair{}, ErrNoLanguagePair
	}
	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return core.LanguagePair{}, ErrNoLanguagePair
	}
	return core.ParseLanguagePair(fields[0])
}
