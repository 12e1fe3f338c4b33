package ingestion

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/poiesic/dictcc/core"
)

// maxLineSize bounds a single source line.
const maxLineSize = 1 << 20

// row is one data line of the source.
type row struct {
	line int // 1-based line number in the source
	text string
}

// newLineScanner returns a scanner over the lines of r.
func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	return scanner
}

// isDataLine reports whether a line holds an entry rather than a comment.
func isDataLine(line string) bool {
	line = strings.TrimSuffix(line, "\r")
	return line != "" && !strings.HasPrefix(line, "#")
}

// countRows counts the data lines of a whole source, skipping the header.
func countRows(r io.Reader) (int, error) {
	scanner := newLineScanner(r)
	total := 0
	for line := 1; scanner.Scan(); line++ {
		if line > 1 && isDataLine(scanner.Text()) {
			total++
		}
	}
	return total, scanner.Err()
}

// decodeRow splits a data line into its columns. Entities are decoded and
// the text composed to NFC. Rows with fewer than two columns are rejected.
func decodeRow(r row) (core.RawEntry, error) {
	if !utf8.ValidString(r.text) {
		return core.RawEntry{}, fmt.Errorf("line %d: invalid UTF-8", r.line)
	}
	columns := strings.SplitN(strings.TrimSuffix(r.text, "\r"), "\t", 5)
	if len(columns) < 2 {
		return core.RawEntry{}, fmt.Errorf("line %d: expected at least 2 columns, got %d", r.line, len(columns))
	}
	for len(columns) < 4 {
		columns = append(columns, "")
	}
	return core.RawEntry{
		Left:          decodeColumn(columns[0]),
		Right:         decodeColumn(columns[1]),
		WordClasses:   decodeColumn(columns[2]),
		SubjectLabels: decodeColumn(columns[3]),
	}, nil
}

func decodeColumn(s string) string {
	return norm.NFC.String(html.UnescapeString(s))
}
