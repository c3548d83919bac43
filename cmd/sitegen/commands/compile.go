package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/sitegen/internal/compile"
	"git.home.luguber.info/inful/sitegen/internal/incremental"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
)

// CompileCmd implements the 'compile' command.
type CompileCmd struct {
	Output  string `short:"o" help:"Override the configured output directory"`
	NoCache bool   `help:"Ignore the incremental cache and rewrite every output"`
}

func (c *CompileCmd) Run(root *CLI) error {
	ctx := context.Background()

	cfg, engine, err := loadEngine(ctx, root)
	if err != nil {
		return err
	}

	outputDir := cfg.Output.Dir
	if c.Output != "" {
		outputDir = c.Output
	}

	var store *incremental.Store
	if cfg.Output.Cache != "" && !c.NoCache {
		store, err = incremental.Open(cfg.Output.Cache)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
	}

	writer := compile.NewWriter(outputDir, store, metrics.NoopRecorder{})
	if err := engine.WriteSite(ctx, writer); err != nil {
		return err
	}

	slog.Info("Site compiled", "output", outputDir, "run", engine.RunID())
	fmt.Println("Site compiled to", outputDir)
	return nil
}
