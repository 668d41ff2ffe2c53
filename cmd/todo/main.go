package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todoprompt/internal/cli"
	"github.com/idilsaglam/todoprompt/internal/config"
	"github.com/idilsaglam/todoprompt/internal/logging"
	"github.com/idilsaglam/todoprompt/internal/store"
	"github.com/idilsaglam/todoprompt/internal/store/flatfile"
	"github.com/idilsaglam/todoprompt/internal/store/sqlstore"
	"github.com/idilsaglam/todoprompt/internal/tui"
	"github.com/idilsaglam/todoprompt/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run returns an exit code (0 ok, 1 error, 2 usage).
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg, err := config.Load(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, "todo:", err)
		return 2
	}

	logger, err := logging.New(stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, "todo:", err)
		return 2
	}
	logger.Debug("starting", "backend", cfg.Backend, "path", cfg.StoragePath(), "config", cfg.ConfigFile)

	s, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("open storage", "backend", cfg.Backend, "err", err)
		return 1
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Error("close storage", "err", err)
		}
	}()

	ctx := context.Background()
	if cfg.TUI {
		if err := tui.Run(ctx, s, ui.NewTheme(cfg.Theme, stdout), stdin, stdout); err != nil {
			logger.Error("browser stopped", "err", err)
			return 1
		}
		return 0
	}

	d := cli.New(s, stdin, stdout, cli.Options{Theme: cfg.Theme, Group: cfg.Group, Logger: logger})
	if err := d.Run(ctx); err != nil {
		logger.Error("prompt loop stopped", "err", err)
		return 1
	}
	return 0
}

func openStore(cfg *config.Config, logger *log.Logger) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return sqlstore.Open(cfg.DB, logger)
	default:
		return flatfile.Open(cfg.File, logger)
	}
}
