package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/dictcc/core"
)

type fakeSession struct {
	rows []core.Translation
	err  error
}

func (f *fakeSession) From() string { return "de" }
func (f *fakeSession) To() string   { return "en" }

func (f *fakeSession) Lookup(context.Context, string) ([]core.Translation, error) {
	return f.rows, f.err
}

func TestResultPrinter(t *testing.T) {
	var out, errOut bytes.Buffer
	p := &resultPrinter{
		session: &fakeSession{rows: []core.Translation{{Source: "Haus {n}", Target: "house", Score: 1000}}},
		out:     &out,
		errOut:  &errOut,
		ascii:   true,
	}
	p.print(context.Background(), "Haus")
	assert.Contains(t, out.String(), "Haus {n}")
	assert.Contains(t, out.String(), "house")
	assert.Contains(t, out.String(), "+")
	assert.Empty(t, errOut.String())
}

func TestResultPrinter_EmptyAndFailure(t *testing.T) {
	var out, errOut bytes.Buffer
	p := &resultPrinter{session: &fakeSession{}, out: &out, errOut: &errOut}
	p.print(context.Background(), "xyz")
	assert.Empty(t, out.String())

	p.session = &fakeSession{err: errors.New("boom")}
	p.print(context.Background(), "xyz")
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "boom")
}

func TestRenderTranslations_Border(t *testing.T) {
	rows := []core.Translation{{Source: "gehen", Target: "to go"}}
	ascii := renderTranslations([]string{"DE", "EN"}, rows, true)
	unicode := renderTranslations([]string{"DE", "EN"}, rows, false)
	assert.NotContains(t, ascii, "│")
	assert.Contains(t, unicode, "│")
	assert.Contains(t, ascii, "to go")
}

func TestRenderManifest(t *testing.T) {
	var buf bytes.Buffer
	m := &core.Manifest{
		Left: "de", Right: "en", Documents: 3, Skipped: 1,
		SourceName: "de-en.txt", SourceChecksum: "abc",
		ImportedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, renderManifest(&buf, m))
	assert.Contains(t, buf.String(), "de-en")
	assert.Contains(t, buf.String(), "de-en.txt")
	assert.Contains(t, buf.String(), "abc")
}
