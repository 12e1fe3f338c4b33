// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/dictcc"
	"github.com/poiesic/dictcc/config"
	"github.com/poiesic/dictcc/core"
	"github.com/poiesic/dictcc/ingestion"
	"github.com/poiesic/dictcc/ipc"
	"github.com/poiesic/dictcc/search"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "dictcc",
		Usage:     "Offline translations from dict.cc vocabulary files",
		ArgsUsage: "[SEARCH]",
		Metadata:  map[string]interface{}{},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Set logging level (debug, info, warn, error)",
				Value: "warn",
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "Directory holding the imported dictionaries",
				EnvVars: []string{"DICTCC_DATA_DIR"},
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a TOML file with default settings",
			},
			&cli.StringFlag{
				Name:    "language-pair",
				Aliases: []string{"l"},
				Usage:   "Languages to translate between, e.g. de-en",
			},
			&cli.StringFlag{
				Name:    "from",
				Aliases: []string{"f"},
				Usage:   "The source language to translate from",
			},
			&cli.IntFlag{
				Name:    "distance",
				Aliases: []string{"d"},
				Usage:   "Fuzzy distance to find entries (0-255)",
				Value:   0,
			},
			&cli.IntFlag{
				Name:    "limit-results",
				Aliases: []string{"r"},
				Usage:   "Limit the amount of results",
			},
			&cli.IntFlag{
				Name:    "min-similarity",
				Aliases: []string{"s"},
				Usage:   "Only show results with a minimum similarity (0-1000)",
			},
			&cli.StringFlag{
				Name:    "completion-type",
				Aliases: []string{"c"},
				Usage:   "Tab completion style (circular, list)",
				Value:   config.CompletionList,
			},
			&cli.BoolFlag{
				Name:  "ascii",
				Usage: "Use ASCII tables",
			},
		},
		Before: setup,
		Action: translateCommand,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import a dict.cc file",
				ArgsUsage: "FILE",
				Action:    importCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Overwrite existing database if necessary",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of rows to process in each batch",
						Value: 1000,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N rows",
						Value: 10000,
					},
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete an imported dict.cc database",
				ArgsUsage: "LANGUAGE_PAIR",
				Action:    deleteCommand,
			},
			{
				Name:   "list",
				Usage:  "List imported language pairs",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "languages",
						Usage: "List the available source languages instead",
					},
				},
			},
			{
				Name:      "info",
				Usage:     "Show details of an imported language pair",
				ArgsUsage: "LANGUAGE_PAIR",
				Action:    infoCommand,
			},
			{
				Name:   "serve",
				Usage:  "Answer MessagePack requests on stdin/stdout",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "language-pair",
						Aliases: []string{"l"},
						Usage:   "Languages to translate between, e.g. de-en",
					},
					&cli.StringFlag{
						Name:    "from",
						Aliases: []string{"f"},
						Usage:   "The source language to translate from",
					},
				},
			},
		},
	}
}

// setup resolves the configuration and installs the logger before any
// command runs.
func setup(c *cli.Context) error {
	cfg, err := loadSettings(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(c.App.ErrWriter, cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	c.App.Metadata[settingsKey] = cfg
	return nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	handler := log.NewWithOptions(w, log.Options{
		Prefix:          "dictcc",
		Level:           lvl,
		ReportTimestamp: lvl == log.DebugLevel,
		Formatter:       log.TextFormatter,
	})
	return slog.New(handler), nil
}

func openCatalog(cfg *config.Config) (*dictcc.Catalog, error) {
	return dictcc.NewCatalog(cfg.DataDir, slog.Default())
}

func parsePairArg(c *cli.Context) (core.LanguagePair, error) {
	if c.NArg() != 1 {
		return core.LanguagePair{}, errors.New("expected exactly one LANGUAGE_PAIR argument")
	}
	return core.ParseLanguagePair(c.Args().First())
}

func importCommand(c *cli.Context) error {
	cfg := settings(c)
	if c.NArg() != 1 {
		return errors.New("expected exactly one FILE argument")
	}
	if c.Int("batch-size") <= 0 {
		return errors.New("batch-size must be greater than 0")
	}
	if c.Int("report-interval") <= 0 {
		return errors.New("report-interval must be greater than 0")
	}
	catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	manifest, err := catalog.Import(ctx, c.Args().First(), c.Bool("force"),
		ingestion.WithBatchSize(c.Int("batch-size")),
		ingestion.WithProgress(c.App.ErrWriter, c.Int("report-interval")),
	)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Imported %s: %d entries, %d skipped\n",
		manifest.Pair(), manifest.Documents, manifest.Skipped)
	return nil
}

func deleteCommand(c *cli.Context) error {
	pair, err := parsePairArg(c)
	if err != nil {
		return err
	}
	catalog, err := openCatalog(settings(c))
	if err != nil {
		return err
	}
	return catalog.Delete(pair)
}

func listCommand(c *cli.Context) error {
	catalog, err := openCatalog(settings(c))
	if err != nil {
		return err
	}
	pairs, err := catalog.Pairs()
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		fmt.Fprintf(c.App.ErrWriter, "No dictionaries imported in %s\n", catalog.Root())
		return nil
	}
	if c.Bool("languages") {
		langs, err := catalog.Languages()
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, strings.Join(langs, ", "))
		return nil
	}
	for _, pair := range pairs {
		fmt.Fprintln(c.App.Writer, pair)
	}
	return nil
}

func infoCommand(c *cli.Context) error {
	pair, err := parsePairArg(c)
	if err != nil {
		return err
	}
	catalog, err := openCatalog(settings(c))
	if err != nil {
		return err
	}
	manifest, err := catalog.Manifest(pair)
	if err != nil {
		return err
	}
	return renderManifest(c.App.Writer, manifest)
}

// openSession opens the configured pair and starts a session in the
// configured direction.
func openSession(cfg *config.Config) (*dictcc.Database, *dictcc.Session, error) {
	if cfg.LanguagePair == "" {
		return nil, nil, errors.New("a language pair is required (--language-pair)")
	}
	if cfg.From == "" {
		return nil, nil, errors.New("a source language is required (--from)")
	}
	pair, err := cfg.Pair()
	if err != nil {
		return nil, nil, err
	}
	if !pair.Contains(cfg.From) {
		return nil, nil, &core.LanguageNotAvailableError{
			Language:  cfg.From,
			Available: []string{pair.Left, pair.Right},
		}
	}
	catalog, err := openCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}
	db, err := catalog.Open(pair)
	if err != nil {
		return nil, nil, err
	}

	opts := []dictcc.SessionOption{
		dictcc.WithDistance(uint8(cfg.Distance)),
		dictcc.WithLimit(cfg.Limit),
		dictcc.WithMinSimilarity(cfg.MinSimilarity),
	}
	if strings.EqualFold(cfg.LogLevel, "debug") {
		opts = append(opts, dictcc.WithSearchMonitor(&search.LogMonitor{Logger: slog.Default()}))
	}
	session, err := db.NewSession(cfg.From, opts...)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, session, nil
}

func translateCommand(c *cli.Context) error {
	cfg := settings(c)
	db, session, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	printer := &resultPrinter{
		session: session,
		out:     c.App.Writer,
		errOut:  c.App.ErrWriter,
		ascii:   cfg.ASCII,
	}
	if c.NArg() > 0 {
		printer.print(c.Context, strings.Join(c.Args().Slice(), " "))
		return nil
	}
	return runREPL(c.Context, printer, cfg.CompletionType)
}

func serveCommand(c *cli.Context) error {
	cfg := *settings(c)
	if c.IsSet("language-pair") {
		cfg.LanguagePair = c.String("language-pair")
	}
	if c.IsSet("from") {
		cfg.From = c.String("from")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	db, session, err := openSession(&cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	server, err := ipc.NewServer(session, os.Stdin, os.Stdout, ipc.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()
	if err := server.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
