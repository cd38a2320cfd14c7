package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"struct-metadata/internal/analyze"
	"struct-metadata/internal/config"
	"struct-metadata/internal/diagnostic"
	"struct-metadata/internal/gen"
)

// newLogger builds a development logger when verbose and a production one
// otherwise.
func newLogger(verbose bool) *zap.Logger {
	build := zap.NewProduction
	if verbose {
		build = zap.NewDevelopment
	}

	logger, err := build()
	if err != nil {
		return zap.NewNop()
	}

	return logger
}

// loadConfig reads the configuration and applies the persistent flags.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	if o.verbose {
		cfg.Verbose = true
	}

	return cfg, nil
}

// generate loads, validates and renders the packages named by args, or by
// the configuration when args is empty. Nothing is written.
func (o *rootOptions) generate(cmd *cobra.Command, args []string) ([]gen.GeneratedFile, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Verbose)
	defer func() { _ = logger.Sync() }()

	patterns := cfg.Packages
	if len(args) > 0 {
		patterns = args
	}

	logger.Debug("loading packages", zap.Strings("patterns", patterns))

	graph, err := analyze.NewAnalyzer(
		analyze.WithLogger(logger),
		analyze.WithGeneratedFile(cfg.Output),
	).LoadPackages(patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	diags := analyze.Validate(graph)
	report(cmd.OutOrStdout(), diags, cfg.Verbose)

	if diags.HasErrors() {
		return nil, fmt.Errorf("%d invalid declaration(s)", len(diags.Errors))
	}

	if cfg.FailOnWarnings && len(diags.Warnings) > 0 {
		return nil, fmt.Errorf("%d warning(s) with fail_on_warnings set", len(diags.Warnings))
	}

	files, err := gen.NewGenerator(gen.GeneratorConfig{
		Output:           cfg.Output,
		DebugUnformatted: cfg.DebugUnformatted,
	}).Generate(graph)
	if err != nil {
		return nil, err
	}

	logger.Info("rendered packages", zap.Int("files", len(files)))

	return files, nil
}

// report prints errors and warnings, and the selections when verbose.
func report(out io.Writer, diags diagnostic.Diagnostics, verbose bool) {
	errColor := color.New(color.FgRed)
	warnColor := color.New(color.FgYellow)
	infoColor := color.New(color.FgCyan)

	for _, d := range diags.Errors {
		errColor.Fprintf(out, "error: %s\n", d)
	}

	for _, d := range diags.Warnings {
		warnColor.Fprintf(out, "warning: %s\n", d)
	}

	if !verbose {
		return
	}

	for _, d := range diags.Infos {
		infoColor.Fprintf(out, "info: %s\n", d)
	}
}
