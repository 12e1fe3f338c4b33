package dictcc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/poiesic/dictcc/core"
	"github.com/poiesic/dictcc/ingestion"
	"github.com/poiesic/dictcc/storage/badger"
)

var (
	// ErrPairNotFound is returned for operations on a pair that was never imported.
	ErrPairNotFound = errors.New("language pair not imported")

	// ErrDataDirRequired is returned when no data directory is provided.
	ErrDataDirRequired = errors.New("data directory required")
)

// Catalog manages the pair indexes below a data directory. Each imported
// pair lives in a directory named after its canonical form, e.g. "de-en".
// Hidden directories hold in-progress imports and are ignored.
type Catalog struct {
	root   string
	logger *slog.Logger
}

// NewCatalog creates a catalog rooted at dir. The directory does not need
// to exist yet.
func NewCatalog(dir string, logger *slog.Logger) (*Catalog, error) {
	if dir == "" {
		return nil, ErrDataDirRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{root: dir, logger: logger}, nil
}

// Root returns the data directory.
func (c *Catalog) Root() string {
	return c.root
}

// Path returns the directory of pair, in either direction.
func (c *Catalog) Path(pair core.LanguagePair) string {
	return filepath.Join(c.root, pair.DirName())
}

// Pairs lists the imported pairs in canonical form, sorted.
func (c *Catalog) Pairs() ([]core.LanguagePair, error) {
	entries, err := os.ReadDir(c.root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var pairs []core.LanguagePair
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		pair, err := core.ParseLanguagePair(e.Name())
		if err != nil {
			c.logger.Debug("ignoring directory", "name", e.Name(), "err", err)
			continue
		}
		pairs = append(pairs, pair)
	}
	slices.SortFunc(pairs, func(a, b core.LanguagePair) int {
		return strings.Compare(a.String(), b.String())
	})
	return pairs, nil
}

// Languages lists every language of every imported pair, sorted.
func (c *Catalog) Languages() ([]string, error) {
	pairs, err := c.Pairs()
	if err != nil {
		return nil, err
	}
	var langs []string
	for _, p := range pairs {
		langs = append(langs, p.Left, p.Right)
	}
	slices.Sort(langs)
	return slices.Compact(langs), nil
}

// Has reports whether pair has been imported.
func (c *Catalog) Has(pair core.LanguagePair) (bool, error) {
	info, err := os.Stat(c.Path(pair))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// Import reads a dict.cc export into the catalog.
func (c *Catalog) Import(ctx context.Context, source string, force bool, opts ...ingestion.Option) (*core.Manifest, error) {
	importer, err := ingestion.NewImporter(c.root, append([]ingestion.Option{ingestion.WithLogger(c.logger)}, opts...)...)
	if err != nil {
		return nil, err
	}
	defer importer.Release()
	return importer.Import(ctx, source, force)
}

// Delete removes the index of pair.
func (c *Catalog) Delete(pair core.LanguagePair) error {
	ok, err := c.Has(pair)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrPairNotFound, pair.Canonical())
	}
	if err := os.RemoveAll(c.Path(pair)); err != nil {
		return err
	}
	c.logger.Info("deleted language pair", "pair", pair.Canonical().String())
	return nil
}

// Manifest returns the import manifest of pair.
func (c *Catalog) Manifest(pair core.LanguagePair) (*core.Manifest, error) {
	ok, err := c.Has(pair)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPairNotFound, pair.Canonical())
	}
	return badger.ReadManifest(c.Path(pair), c.logger)
}

// Open opens the index of pair for lookups.
func (c *Catalog) Open(pair core.LanguagePair, opts ...DatabaseOption) (*Database, error) {
	ok, err := c.Has(pair)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPairNotFound, pair.Canonical())
	}
	return OpenDatabase(c.Path(pair), append([]DatabaseOption{WithLogger(c.logger)}, opts...)...)
}
