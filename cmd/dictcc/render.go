package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/poiesic/dictcc/core"
)

// translator is the part of a session the printer needs.
type translator interface {
	From() string
	To() string
	Lookup(ctx context.Context, query string) ([]core.Translation, error)
}

// resultPrinter runs lookups and prints them as tables.
type resultPrinter struct {
	session translator
	out     io.Writer
	errOut  io.Writer
	ascii   bool
}

// print looks up line and writes the result table. Failures are reported
// on errOut and do not stop the caller.
func (p *resultPrinter) print(ctx context.Context, line string) {
	rows, err := p.session.Lookup(ctx, line)
	if err != nil {
		fmt.Fprintf(p.errOut, "Search database error: %v\n", err)
		return
	}
	if len(rows) == 0 {
		return
	}
	header := []string{strings.ToUpper(p.session.From()), strings.ToUpper(p.session.To())}
	fmt.Fprintln(p.out, renderTranslations(header, rows, p.ascii))
}

func border(ascii bool) lipgloss.Border {
	if ascii {
		return lipgloss.ASCIIBorder()
	}
	return lipgloss.NormalBorder()
}

func renderTranslations(header []string, rows []core.Translation, ascii bool) string {
	t := table.New().
		Border(border(ascii)).
		BorderRow(true).
		Headers(header...)
	for _, row := range rows {
		t.Row(row.Source, row.Target)
	}
	return t.String()
}

func renderManifest(w io.Writer, m *core.Manifest) error {
	label := lipgloss.NewStyle().Bold(true)
	fields := [][2]string{
		{"Language pair", m.Pair().String()},
		{"Entries", fmt.Sprint(m.Documents)},
		{"Skipped rows", fmt.Sprint(m.Skipped)},
		{"Source", m.SourceName},
		{"Checksum", m.SourceChecksum},
		{"Imported at", m.ImportedAt.Local().Format(time.RFC1123)},
	}
	for _, f := range fields {
		if _, err := fmt.Fprintf(w, "%s %s\n", label.Render(f[0]+":"), f[1]); err != nil {
			return err
		}
	}
	return nil
}
