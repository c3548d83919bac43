// Package commands implements the sitegen CLI commands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/sitegen/internal/compile"
	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/datasource"
	"git.home.luguber.info/inful/sitegen/internal/errors"
	"git.home.luguber.info/inful/sitegen/internal/filters"
)

// CLI is the root command structure.
type CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"sitegen.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Compile CompileCmd `cmd:"" help:"Compile the site and write routed outputs"`
	Routes  RoutesCmd  `cmd:"" help:"Print the resolved output route for every item representation"`
	Inspect InspectCmd `cmd:"" help:"Print loaded items and their metadata without compiling"`
}

// setupLogging installs the default slog logger from config and the verbose
// flag.
func setupLogging(cfg *config.Config, verbose bool) {
	level := cfg.Logging.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if config.NormalizeLogFormat(string(cfg.Logging.Format)) == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// loadEngine wires config, data sources, rules, and filters into an engine.
func loadEngine(ctx context.Context, root *CLI) (*config.Config, *compile.Engine, error) {
	config.LoadDotEnv()

	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, nil, err
	}
	setupLogging(cfg, root.Verbose)

	ruleSet, err := cfg.BuildRuleSet()
	if err != nil {
		return nil, nil, err
	}
	sources, err := cfg.BuildSources(datasource.DefaultRegistry())
	if err != nil {
		return nil, nil, err
	}
	items, layouts, err := datasource.LoadAll(ctx, sources)
	if err != nil {
		return nil, nil, err
	}

	engine, err := compile.NewEngine(items, layouts, ruleSet, filters.DefaultRegistry(),
		compile.WithParallelism(cfg.Parallelism))
	if err != nil {
		return nil, nil, err
	}
	return cfg, engine, nil
}

// RenderError formats an error for the terminal. Trivial errors are operator
// mistakes and get the short message; everything else is a bug and keeps its
// full chain.
func RenderError(err error) string {
	if errors.IsTrivial(err) {
		return fmt.Sprintf("sitegen: %v", errors.RootCause(err))
	}
	return fmt.Sprintf("sitegen: internal error (please report): %v", err)
}
