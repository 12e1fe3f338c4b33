package ingestion

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/dictcc/core"
	"github.com/poiesic/dictcc/storage/badger"
)

const (
	defaultBatchSize        = 1000
	defaultProgressInterval = 10000

	// Prefixes of the hidden directories used while swapping an index.
	stagingPrefix = ".import-"
	retiredPrefix = ".retired-"
)

// Importer builds pair indexes below a data directory.
type Importer struct {
	root             string
	pool             *ants.Pool
	batchSize        int
	progressWriter   io.Writer
	progressInterval int
	tracker          *ProgressTracker
	logger           *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer) error

// WithPoolSize sets the worker pool size for row normalization.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(im *Importer) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if im.pool != nil {
			im.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		im.pool = pool
		return nil
	}
}

// WithBatchSize sets how many rows are normalized and written together.
func WithBatchSize(size int) Option {
	return func(im *Importer) error {
		if size < 1 {
			size = 1
		}
		im.batchSize = size
		return nil
	}
}

// WithProgress reports progress to w every interval rows.
func WithProgress(w io.Writer, interval int) Option {
	return func(im *Importer) error {
		im.progressWriter = w
		im.progressInterval = interval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(im *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		im.logger = logger
		return nil
	}
}

// NewImporter creates an importer writing pair directories below root.
func NewImporter(root string, opts ...Option) (*Importer, error) {
	if root == "" {
		return nil, ErrRootRequired
	}

	// Default pool size
	poolSize := max(runtime.NumCPU()/2, 1)
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	im := &Importer{
		root:             root,
		pool:             pool,
		batchSize:        defaultBatchSize,
		progressInterval: defaultProgressInterval,
		logger:           slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(im); optErr != nil {
			im.Release()
			return nil, optErr
		}
	}
	return im, nil
}

// Release releases the worker pool.
// The importer should not be used after calling Release.
func (im *Importer) Release() {
	if im.pool != nil {
		im.pool.Release()
	}
}

// Progress returns the row counts of the running or last import.
func (im *Importer) Progress() (current, total int) {
	if im.tracker == nil {
		return 0, 0
	}
	return im.tracker.Progress()
}

// Import reads the dict.cc export at sourcePath into the index of the pair
// named by its header. An existing index is only replaced when force is
// set; it stays readable until the new one is complete.
func (im *Importer) Import(ctx context.Context, sourcePath string, force bool) (*core.Manifest, error) {
	f, err := os.Open(sourcePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pair, err := readHeader(bufio.NewReader(f))
	if err != nil {
		return nil, err
	}
	canonical := pair.Canonical()
	target := filepath.Join(im.root, canonical.DirName())

	exists, err := pairExists(target)
	if err != nil {
		return nil, err
	}
	if exists && !force {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyImported, canonical)
	}

	// Count rows and checksum the source in one pass.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	checksum, err := core.NewChecksum()
	if err != nil {
		return nil, err
	}
	total, err := countRows(io.TeeReader(f, checksum))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", sourcePath, err)
	}
	im.logger.Info("importing dictionary", "pair", canonical.String(), "rows", total)

	if err := os.MkdirAll(im.root, 0755); err != nil {
		return nil, err
	}
	staging := filepath.Join(im.root, stagingPrefix+canonical.DirName())
	if err := os.RemoveAll(staging); err != nil {
		return nil, err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	manifest := &core.Manifest{
		SourceName:     filepath.Base(sourcePath),
		SourceChecksum: hex.EncodeToString(checksum.Sum(nil)),
	}
	if err := im.build(ctx, f, staging, pair, total, manifest); err != nil {
		os.RemoveAll(staging)
		return nil, err
	}

	if err := swap(staging, target, filepath.Join(im.root, retiredPrefix+canonical.DirName())); err != nil {
		os.RemoveAll(staging)
		return nil, err
	}
	im.logger.Info("import complete", "pair", canonical.String(),
		"documents", manifest.Documents, "skipped", manifest.Skipped)
	return manifest, nil
}

// build writes all rows of src into a new index at dir and commits it.
func (im *Importer) build(ctx context.Context, src io.Reader, dir string, pair core.LanguagePair, total int, manifest *core.Manifest) error {
	writer, err := badger.NewIndexWriter(dir, pair, im.logger)
	if err != nil {
		return err
	}
	defer writer.Rollback()

	proc := &processor{pool: im.pool, swap: pair != pair.Canonical()}
	im.tracker = NewProgressTracker(im.progressWriter, total, im.progressInterval)
	im.tracker.Start()

	flush := func(rows []row) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		docs := make([]*core.Document, 0, len(rows))
		for _, res := range proc.process(rows) {
			if res.err != nil {
				manifest.Skipped++
				im.logger.Warn("skipping row", "line", res.row.line, "text", res.row.text, "err", res.err)
				continue
			}
			docs = append(docs, res.doc)
		}
		im.tracker.Increment(len(rows))
		return writer.Add(ctx, docs...)
	}

	scanner := newLineScanner(src)
	batch := make([]row, 0, im.batchSize)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if line == 1 || !isDataLine(text) {
			continue
		}
		batch = append(batch, row{line: line, text: text})
		if len(batch) == im.batchSize {
			if err := flush(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}
	if err := flush(batch); err != nil {
		return err
	}
	im.tracker.Finish()

	manifest.ImportedAt = time.Now().UTC()
	return writer.Commit(ctx, manifest)
}

// pairExists reports whether a pair directory is present at path.
func pairExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}
	return true, nil
}

// swap moves the committed index at staging to target. A previous index is
// parked at retired until the new one is in place, then removed.
func swap(staging, target, retired string) error {
	if err := os.RemoveAll(retired); err != nil {
		return err
	}
	hadPrevious := true
	if err := os.Rename(target, retired); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to retire previous index: %w", err)
		}
		hadPrevious = false
	}
	if err := os.Rename(staging, target); err != nil {
		if hadPrevious {
			os.Rename(retired, target)
		}
		return fmt.Errorf("failed to install index: %w", err)
	}
	if hadPrevious {
		return os.RemoveAll(retired)
	}
	return nil
}
