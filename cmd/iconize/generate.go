package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Mavwarf/iconize/internal/config"
	"github.com/Mavwarf/iconize/internal/history"
	"github.com/Mavwarf/iconize/internal/iconset"
	"github.com/Mavwarf/iconize/internal/logging"
)

// loadConfig resolves settings with priority: flags > ICONIZE_* env >
// config file > defaults.
func loadConfig(opts options) (config.Config, string, error) {
	cfg, src, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, src, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, src, err
	}
	applyFlags(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		return cfg, src, err
	}
	return cfg, src, nil
}

func applyFlags(cfg *config.Config, opts options) {
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.filter != "" {
		cfg.Filter = opts.filter
	}
	if opts.history {
		cfg.History = true
	}
}

// generateCmd runs one generation and returns the process exit code.
func generateCmd(opts options) int {
	if opts.icon == "" || opts.output == "" {
		fmt.Fprintf(os.Stderr, "Error: both --icon and --output are required\n")
		fmt.Fprintf(os.Stderr, "Run 'iconize help' for usage.\n")
		return 1
	}

	cfg, src, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	log, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if src != "" {
		log.Debugf("using config %s", src)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gen := iconset.New(log)
	gen.Filter = cfg.Filter
	gen.Workers = cfg.Workers
	res, err := gen.Generate(ctx, opts.icon, opts.output)
	if err != nil {
		// A missing source has already been logged by the generator.
		if !errors.Is(err, iconset.ErrInputNotFound) {
			log.Error(err)
		}
		return 1
	}

	if cfg.History {
		recordRun(log, cfg, opts, res)
	}
	fmt.Println(res.Snippet)
	return 0
}

// recordRun stores res in the history database. Failures are only logged.
func recordRun(log *logrus.Logger, cfg config.Config, opts options, res *iconset.Result) {
	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		log.Warnf("history disabled: %v", err)
		return
	}
	defer store.Close()

	source := opts.icon
	if abs, err := filepath.Abs(source); err == nil {
		source = abs
	}
	id, err := store.Record(history.Run{
		Source:    source,
		OutputDir: opts.output,
		Filter:    cfg.Filter,
		Files:     res.Files(),
		Skipped:   res.Skipped,
	})
	if err != nil {
		log.Warnf("recording history: %v", err)
		return
	}
	log.Debugf("recorded run %d in %s", id, store.Path())
}
