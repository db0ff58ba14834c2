package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// loadConfig resolves the config file and applies its display settings.
func loadConfig(logger *log.Logger) (config.BlocksConfig, error) {
	cfg, source, err := config.LoadBlocksWithSource(flagConfig)
	if err != nil {
		return config.BlocksConfig{}, err
	}
	logger.Debug("config loaded", "source", source)
	blocks.SetDisplay(cfg.Display)
	return cfg, nil
}

// newLogger builds the CLI logger. Without --log-file, logs go to fallback;
// interactive commands pass io.Discard because the terminal belongs to the
// game.
func newLogger(fallback io.Writer) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out, closer := fallback, io.Closer(nopCloser{})
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, f
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "blocks",
		Level:           level,
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// hostOptions builds the options shared by every interactive screen.
func hostOptions(cfg config.BlocksConfig, store *storage.Store, logger *log.Logger) (tui.Options, error) {
	keys, err := cfg.Input.KeyMap()
	if err != nil {
		return tui.Options{}, err
	}
	return tui.Options{
		Store:     store,
		Logger:    logger,
		Keys:      tui.NewKeyMapper(keys),
		HoldTicks: cfg.Input.HoldTicks,
	}, nil
}

// openStoreOrWarn opens the scores database. Games still run without it.
func openStoreOrWarn(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "error", err)
		return nil
	}
	return store
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// runtimeConfig builds the host config from the global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := terminalSize()
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// interactiveSetup does the common work of play and menu.
func interactiveSetup() (tui.Options, func(), error) {
	logger, logCloser, err := newLogger(io.Discard)
	if err != nil {
		return tui.Options{}, nil, err
	}
	cfg, err := loadConfig(logger)
	if err != nil {
		logCloser.Close()
		return tui.Options{}, nil, err
	}
	store := openStoreOrWarn(logger)
	opts, err := hostOptions(cfg, store, logger)
	if err != nil {
		if store != nil {
			store.Close()
		}
		logCloser.Close()
		return tui.Options{}, nil, err
	}

	cleanup := func() {
		if store != nil {
			store.Close()
		}
		logCloser.Close()
	}
	return opts, cleanup, nil
}
