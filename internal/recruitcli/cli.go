package recruitcli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/phillip-england/recruitdesk/internal/calls"
	"github.com/phillip-england/recruitdesk/internal/clock"
	"github.com/phillip-england/recruitdesk/internal/config"
	"github.com/phillip-england/recruitdesk/internal/dashboard"
	"github.com/phillip-england/recruitdesk/internal/envutil"
	"github.com/phillip-england/recruitdesk/internal/events"
	"github.com/phillip-england/recruitdesk/internal/importer"
	"github.com/phillip-england/recruitdesk/internal/snapshot"
	"github.com/phillip-england/recruitdesk/internal/store"
)

var ErrUsage = errors.New("usage")

func Execute(args []string) error {
	return execute(args, os.Stdout)
}

func execute(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		return usageError()
	}

	switch args[0] {
	case "setup":
		return runSetup(args[1:], stdout)
	case "run":
		return runCommand(args[1:])
	case "preview":
		return runPreview(args[1:], stdout)
	case "template":
		return runTemplate(args[1:], stdout)
	case "snapshot":
		return runSnapshot(args[1:], stdout)
	default:
		return usageError()
	}
}

func usageError() error {
	return fmt.Errorf("%w: recruitdesk <setup|run|preview|template|snapshot> [...]", ErrUsage)
}

func PrintUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: recruitdesk setup [--env-file .env] [--addr :8080] [--log-level info] [--seed-path file] [--force]")
	fmt.Fprintln(w, "       recruitdesk run [--config recruitdesk.yaml]")
	fmt.Fprintln(w, "       recruitdesk preview --entity candidates|clients|jobs <file.xlsx>")
	fmt.Fprintln(w, "       recruitdesk template --entity candidates|clients|jobs [--out file.xlsx]")
	fmt.Fprintln(w, "       recruitdesk snapshot [--out seed.yaml.xz]")
}

// parseFlags treats --help as a usage request.
func parseFlags(fs *pflag.FlagSet, args []string) error {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return usageError()
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

func runSetup(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("setup", pflag.ContinueOnError)
	envPath := fs.String("env-file", ".env", "path to .env file")
	addr := fs.String("addr", ":8080", "dashboard listen address")
	logLevel := fs.String("log-level", "info", "debug, info, warn or error")
	seedPath := fs.String("seed-path", "", "snapshot file loaded at startup instead of the demo data")
	force := fs.Bool("force", false, "overwrite existing env file")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	values := map[string]string{
		config.EnvAddr:     *addr,
		config.EnvLogLevel: *logLevel,
	}
	if *seedPath != "" {
		values[config.EnvSeedPath] = *seedPath
	}

	if err := ensureParentDirs(*envPath); err != nil {
		return err
	}
	if err := envutil.WriteDotEnv(*envPath, values, *force); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s\n", *envPath)
	return nil
}

func runCommand(args []string) error {
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	configPath := fs.String("config", "", "path to YAML config file (default $"+config.EnvConfigPath+")")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if err := envutil.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	if *configPath == "" {
		*configPath = os.Getenv(config.EnvConfigPath)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv, err := buildServer(cfg)
	if err != nil {
		return err
	}
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// buildServer assembles the store and its collaborators from cfg.
func buildServer(cfg config.Config) (*dashboard.Server, error) {
	logger := cfg.Logger()
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	clk := clock.Real()

	st := store.New(clk, logger)
	if cfg.SeedPath != "" {
		snap, err := snapshot.Load(cfg.SeedPath)
		if err != nil {
			return nil, err
		}
		snap.Apply(st)
		logger.Info("seed loaded", "path", cfg.SeedPath,
			"candidates", len(snap.Candidates), "clients", len(snap.Clients),
			"jobs", len(snap.Jobs), "call_logs", len(snap.CallLogs))
	} else {
		st.LoadDefaults()
	}

	hub := events.NewHub()
	hub.Attach(st)

	return dashboard.New(dashboard.Options{
		Config:   cfg,
		Store:    st,
		Importer: importer.New(st, clk, loc, logger),
		Dialer:   calls.NewDialer(st, clk, loc, cfg.CallProviders, logger),
		Hub:      hub,
		Clock:    clk,
		Location: loc,
		Logger:   logger,
	}), nil
}

func runSnapshot(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("snapshot", pflag.ContinueOnError)
	out := fs.StringP("out", "o", "seed.yaml.xz", "output file (.yaml, .yml or .json, optionally .xz)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := snapshot.Write(*out, snapshot.Defaults()); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s\n", *out)
	return nil
}

func ensureParentDirs(paths ...string) error {
	for _, p := range paths {
		dir := filepath.Dir(p)
		if dir == "." || dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
