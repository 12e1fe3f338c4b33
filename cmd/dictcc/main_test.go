package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/dictcc/core"
)

const testSource = "# DE-EN vocabulary database\n" +
	"Haus {n}\thouse\tnoun\n" +
	"Maus {f}\tmouse\tnoun\t[zool.]\n" +
	"Hausboot {n}\thouseboat\tnoun\n"

type testRun struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func run(t *testing.T, dataDir string, args ...string) (*testRun, error) {
	t.Helper()
	app := newApp()
	out := &testRun{}
	app.Writer = &out.stdout
	app.ErrWriter = &out.stderr
	// An empty config path keeps the test away from the user's config.
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, nil, 0o644))
	full := append([]string{"dictcc", "--config", cfgPath, "--data-dir", dataDir}, args...)
	return out, app.Run(full)
}

func importFixture(t *testing.T) string {
	t.Helper()
	dataDir := filepath.Join(t.TempDir(), "data")
	src := filepath.Join(t.TempDir(), "de-en.txt")
	require.NoError(t, os.WriteFile(src, []byte(testSource), 0o644))

	out, err := run(t, dataDir, "import", src)
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), "Imported de-en: 3 entries, 0 skipped")
	return dataDir
}

func TestImportListInfoDelete(t *testing.T) {
	dataDir := importFixture(t)

	out, err := run(t, dataDir, "list")
	require.NoError(t, err)
	assert.Equal(t, "de-en\n", out.stdout.String())

	out, err = run(t, dataDir, "list", "--languages")
	require.NoError(t, err)
	assert.Equal(t, "de, en\n", out.stdout.String())

	out, err = run(t, dataDir, "info", "en-de")
	require.NoError(t, err)
	assert.Contains(t, out.stdout.String(), "de-en")
	assert.Contains(t, out.stdout.String(), "de-en.txt")

	_, err = run(t, dataDir, "delete", "de-en")
	require.NoError(t, err)

	out, err = run(t, dataDir, "list")
	require.NoError(t, err)
	assert.Empty(t, out.stdout.String())
	assert.Contains(t, out.stderr.String(), "No dictionaries imported")
}

func TestImport_ExistingWithoutForce(t *testing.T) {
	dataDir := importFixture(t)
	src := filepath.Join(t.TempDir(), "de-en.txt")
	require.NoError(t, os.WriteFile(src, []byte(testSource), 0o644))

	_, err := run(t, dataDir, "import", src)
	assert.Error(t, err)

	_, err = run(t, dataDir, "import", "--force", src)
	assert.NoError(t, err)
}

func TestTranslate_OneShot(t *testing.T) {
	dataDir := importFixture(t)

	out, err := run(t, dataDir, "-l", "de-en", "-f", "de", "--ascii", "Haus")
	require.NoError(t, err)
	table := out.stdout.String()
	assert.Contains(t, table, "DE")
	assert.Contains(t, table, "EN")
	assert.Contains(t, table, "house")
	assert.NotContains(t, table, "mouse")
	assert.Less(t, strings.Index(table, "DE"), strings.Index(table, "house"))
}

func TestTranslate_Errors(t *testing.T) {
	dataDir := importFixture(t)

	_, err := run(t, dataDir, "-l", "de-en", "-f", "fr", "Haus")
	var notAvailable *core.LanguageNotAvailableError
	require.ErrorAs(t, err, &notAvailable)
	assert.Equal(t, "source language fr not available. Available are: de, en", err.Error())

	_, err = run(t, dataDir, "-l", "de-fr", "-f", "de", "Haus")
	assert.Error(t, err)

	_, err = run(t, dataDir, "-l", "de-en", "-f", "de", "-r", "0", "Haus")
	assert.ErrorContains(t, err, "limit-results")

	_, err = run(t, dataDir, "-l", "de-en", "-f", "de", "-d", "256", "Haus")
	assert.Error(t, err)

	_, err = run(t, dataDir, "-l", "de-en", "-f", "de", "-c", "menu", "Haus")
	assert.Error(t, err)

	_, err = run(t, dataDir, "-f", "de", "Haus")
	assert.ErrorContains(t, err, "language pair")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "info")
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown", "pair", "de-en")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = newLogger(&buf, "loud")
	assert.Error(t, err)
}
