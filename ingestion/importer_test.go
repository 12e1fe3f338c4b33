package ingestion

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/dictcc/core"
	"github.com/poiesic/dictcc/schema"
	"github.com/poiesic/dictcc/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = "# DE-EN vocabulary database\tcompiled by dict.cc\n" +
	"# License: test data\n" +
	"\n" +
	"Haus {n}\thouse\tnoun\t[archi.]\n" +
	"Maus {f}\tmouse\tnoun\t[zool.]\n" +
	"das Haus hüten <ugs.>\tto stay at home\tverb\n" +
	"kaputt &amp; alt\tbroken &amp; old\tadj\n" +
	"defekt (kaputt\tbroken\tadj\n" +
	"nur eine Spalte\n" +
	"go(ing)\tgehend\n"

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestImporter(t *testing.T, opts ...Option) (*Importer, string) {
	t.Helper()
	root := t.TempDir()
	im, err := NewImporter(root, append([]Option{WithBatchSize(2), WithPoolSize(2)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(im.Release)
	return im, root
}

func openPair(t *testing.T, root, dir string) *badger.IndexReader {
	t.Helper()
	r, err := badger.OpenIndex(filepath.Join(root, dir), nil)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestImport(t *testing.T) {
	var progress bytes.Buffer
	im, root := newTestImporter(t, WithProgress(&progress, 1))
	src := writeSource(t, sampleSource)

	manifest, err := im.Import(context.Background(), src, false)
	require.NoError(t, err)
	assert.Equal(t, "de", manifest.Left)
	assert.Equal(t, "en", manifest.Right)
	assert.Equal(t, uint64(5), manifest.Documents)
	assert.Equal(t, uint64(2), manifest.Skipped)
	assert.Equal(t, "source.txt", manifest.SourceName)
	assert.Len(t, manifest.SourceChecksum, 64)
	assert.False(t, manifest.ImportedAt.IsZero())

	current, total := im.Progress()
	assert.Equal(t, 7, total)
	assert.Equal(t, 7, current)
	assert.Contains(t, progress.String(), "Processing 7/7")

	r := openPair(t, root, "de-en")
	ctx := context.Background()

	doc, err := r.Document(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Haus {n}", doc.LangLeft)
	assert.Equal(t, "Haus {n}", doc.KeyLeft)
	assert.Equal(t, "house", doc.LangRight)
	assert.Equal(t, "noun", doc.WordClasses)
	assert.Equal(t, "[archi.]", doc.SubjectLabels)

	doc, err = r.Document(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "das Haus hüten", doc.KeyLeft)
	assert.Equal(t, "ugs.", doc.ExtraLeft)
	assert.Equal(t, "das Haus hüten <ugs.>", doc.LangLeft)

	doc, err = r.Document(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "kaputt & alt", doc.LangLeft)
	assert.Equal(t, "broken & old", doc.KeyRight)

	doc, err = r.Document(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "go(ing)", doc.KeyLeft)

	postings, err := r.Postings(ctx, schema.KeyLeft, "haus")
	require.NoError(t, err)
	assert.Len(t, postings, 2)

	// No staging leftovers.
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "de-en", entries[0].Name())
}

func TestImport_ReversedHeaderUsesCanonicalSides(t *testing.T) {
	im, root := newTestImporter(t)
	src := writeSource(t, "#EN-DE\nhouse\tHaus {n}\n")

	manifest, err := im.Import(context.Background(), src, false)
	require.NoError(t, err)
	assert.Equal(t, core.LanguagePair{Left: "de", Right: "en"}, manifest.Pair())

	r := openPair(t, root, "de-en")
	doc, err := r.Document(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Haus {n}", doc.LangLeft)
	assert.Equal(t, "house", doc.LangRight)
}

func TestImport_AlreadyImported(t *testing.T) {
	im, root := newTestImporter(t)
	ctx := context.Background()

	_, err := im.Import(ctx, writeSource(t, sampleSource), false)
	require.NoError(t, err)

	_, err = im.Import(ctx, writeSource(t, "#en-de\nHaus\thouse\n"), false)
	assert.ErrorIs(t, err, ErrAlreadyImported)

	// The existing index is untouched.
	r := openPair(t, root, "de-en")
	assert.Equal(t, uint64(5), r.Manifest().Documents)
}

func TestImport_ForceRebuilds(t *testing.T) {
	im, root := newTestImporter(t)
	ctx := context.Background()

	_, err := im.Import(ctx, writeSource(t, sampleSource), false)
	require.NoError(t, err)

	manifest, err := im.Import(ctx, writeSource(t, "#de-en\nBaum\ttree\n"), true)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), manifest.Documents)

	r := openPair(t, root, "de-en")
	postings, err := r.Postings(ctx, schema.KeyLeft, "haus")
	require.NoError(t, err)
	assert.Empty(t, postings, "no merge with the previous index")

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestImport_AbortKeepsPreviousIndex(t *testing.T) {
	im, root := newTestImporter(t)
	_, err := im.Import(context.Background(), writeSource(t, sampleSource), false)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = im.Import(ctx, writeSource(t, "#de-en\nBaum\ttree\n"), true)
	assert.ErrorIs(t, err, context.Canceled)

	r := openPair(t, root, "de-en")
	assert.Equal(t, uint64(5), r.Manifest().Documents)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "staging directory removed")
}

func TestImport_BadHeader(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"empty file", "", ErrNoLanguagePair},
		{"no hash", "de-en\nHaus\thouse\n", ErrNoLanguagePair},
		{"hash only", "#\nHaus\thouse\n", ErrNoLanguagePair},
		{"no hyphen", "# dictionary\nHaus\thouse\n", core.ErrInvalidLanguagePair},
		{"two hyphens", "#de-en-fr\nHaus\thouse\n", core.ErrInvalidLanguagePair},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			im, root := newTestImporter(t)
			_, err := im.Import(context.Background(), writeSource(t, tt.content), false)
			assert.ErrorIs(t, err, tt.want)

			entries, err := os.ReadDir(root)
			require.NoError(t, err)
			assert.Empty(t, entries, "nothing written")
		})
	}
}

func TestImport_NotDirectory(t *testing.T) {
	im, root := newTestImporter(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "de-en"), []byte("x"), 0o644))

	_, err := im.Import(context.Background(), writeSource(t, sampleSource), true)
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestImport_MissingSource(t *testing.T) {
	im, _ := newTestImporter(t)
	_, err := im.Import(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewImporter_RequiresRoot(t *testing.T) {
	_, err := NewImporter("")
	assert.ErrorIs(t, err, ErrRootRequired)
}

func TestParseHeader(t *testing.T) {
	pair, err := parseHeader("\ufeff# DE-EN vocabulary database\tcompiled by dict.cc\r\n")
	require.NoError(t, err)
	assert.Equal(t, core.LanguagePair{Left: "de", Right: "en"}, pair)

	pair, err = parseHeader("#fr-de")
	require.NoError(t, err)
	assert.Equal(t, core.LanguagePair{Left: "fr", Right: "de"}, pair)
}

func TestDecodeRow(t *testing.T) {
	raw, err := decodeRow(row{line: 2, text: "Fu&szlig;\tfoot\tnoun\t[anat.]\textra"})
	require.NoError(t, err)
	assert.Equal(t, core.RawEntry{Left: "Fuß", Right: "foot", WordClasses: "noun", SubjectLabels: "[anat.]"}, raw)

	raw, err = decodeRow(row{line: 3, text: "Fuß\tfoot"})
	require.NoError(t, err)
	assert.Empty(t, raw.WordClasses)

	// Decomposed input is composed.
	raw, err = decodeRow(row{line: 4, text: "Fu\u0308\tfoo"})
	require.NoError(t, err)
	assert.Equal(t, "F\u00fc", raw.Left)

	_, err = decodeRow(row{line: 5, text: "single"})
	assert.Error(t, err)

	_, err = decodeRow(row{line: 6, text: "bad\xff\tbytes"})
	assert.ErrorContains(t, err, "invalid UTF-8")
}

func TestCountRows(t *testing.T) {
	total, err := countRows(strings.NewReader(sampleSource))
	require.NoError(t, err)
	assert.Equal(t, 7, total)
}

func TestCountRows_CRLF(t *testing.T) {
	src := "# DE-EN\r\n\r\nHaus\thouse\r\n\r\n# comment\r\nMaus\tmouse\r\n"
	total, err := countRows(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestImport_CRLFBlankLines(t *testing.T) {
	im, root := newTestImporter(t)
	src := writeSource(t, "# DE-EN vocabulary database\r\n\r\nHaus {n}\thouse\tnoun\r\n\r\nMaus {f}\tmouse\r\n")

	manifest, err := im.Import(context.Background(), src, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), manifest.Documents)
	assert.Zero(t, manifest.Skipped)

	_, total := im.Progress()
	assert.Equal(t, 2, total)

	r := openPair(t, root, "de-en")
	doc, err := r.Document(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "noun", doc.WordClasses)
	doc, err = r.Document(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "mouse", doc.LangRight)
}

func TestImport_SkipsRowsWithBothSidesEmpty(t *testing.T) {
	im, root := newTestImporter(t)
	src := writeSource(t, "# DE-EN\nHaus\thouse\n\t\tnoun\nMaus\tmouse\n")

	manifest, err := im.Import(context.Background(), src, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), manifest.Documents)
	assert.Equal(t, uint64(1), manifest.Skipped)

	r := openPair(t, root, "de-en")
	doc, err := r.Document(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Maus", doc.LangLeft)
}

func TestProcessRow_BothSidesEmpty(t *testing.T) {
	p := &processor{}
	res := p.processRow(row{line: 7, text: "\t\tnoun\t[zool.]"})
	assert.Nil(t, res.doc)
	assert.ErrorIs(t, res.err, core.ErrEmptyDocument)

	res = p.processRow(row{line: 8, text: "\thouse"})
	require.NoError(t, res.err)
	assert.Equal(t, "house", res.doc.LangRight)
	assert.Empty(t, res.doc.LangLeft)
}
