// Package main implements the entry point for the subscriptions API server,
// which manages users and their subscriptions to named services.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/subscriptions-api/internal/config"
)

// cliOptions holds the parsed command line.
type cliOptions struct {
	configPath  string
	migrateCmd  string
	verbose     bool
	autoMigrate *bool // nil when the flag was not given
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		slog.Error("server exited with error", "error", err)
		stop()
		os.Exit(1)
	}
}

// parseFlags reads the command line. An explicit -auto-migrate overrides
// database.auto_migrate from the configuration.
func parseFlags(args []string, output io.Writer) (cliOptions, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(output)

	var opts cliOptions
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file (default ./config.yaml if present)")
	fs.StringVar(&opts.migrateCmd, "migrate", "", "run a migration command and exit: up|down|status|version|reset")
	fs.BoolVar(&opts.verbose, "verbose", false, "verbose migration output")
	autoMigrate := fs.Bool("auto-migrate", true, "apply pending migrations before serving")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %v", fs.Args())
		fmt.Fprintln(output, err)
		return cliOptions{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "auto-migrate" {
			opts.autoMigrate = autoMigrate
		}
	})

	return opts, nil
}

// run loads configuration and either executes a migration command or
// serves HTTP until ctx is cancelled.
func run(ctx context.Context, opts cliOptions) error {
	cfg, err := loadAppConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.autoMigrate != nil {
		cfg.Database.AutoMigrate = *opts.autoMigrate
	}

	logger, err := setupAppLogger(cfg, os.Stdout)
	if err != nil {
		return err
	}

	if opts.migrateCmd != "" {
		return runMigrationCommand(ctx, cfg, logger, opts.migrateCmd, opts.verbose)
	}

	return serve(ctx, cfg, logger)
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	conn, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Database.AutoMigrate {
		if err := applyMigrations(ctx, conn.DB.DB, cfg, logger, "up", false); err != nil {
			conn.Close(logger)
			return err
		}
	}

	app := newApplication(cfg, logger, conn)
	return app.Run(ctx)
}
