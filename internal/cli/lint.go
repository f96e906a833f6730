package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cxxtidy/internal/configloader"
	"github.com/yaklabco/cxxtidy/internal/logging"
	"github.com/yaklabco/cxxtidy/pkg/parser/cfront"
	"github.com/yaklabco/cxxtidy/pkg/config"
	"github.com/yaklabco/cxxtidy/pkg/lint"
	_ "github.com/yaklabco/cxxtidy/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/cxxtidy/pkg/reporter"
	"github.com/yaklabco/cxxtidy/pkg/runner"
)

type lintFlags struct {
	format           string
	ruleFormat       string
	strict           bool
	noContext        bool
	compact          bool
	followSymlinks   bool
	includeVendored  bool
	includeGenerated bool
	cpuprofile       string
}

func newLintCommand(info BuildInfo) *cobra.Command {
	cfg := &config.Config{}
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check C and C++ sources and optionally fix them",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, info, cfg, flags)
		},
	}

	addLintFlags(cmd, cfg, flags)

	return cmd
}

const lintLongDescription = `Check C and C++ sources for readability issues.

By default, checks every C and C++ source and header below the current
directory. Hidden directories, vendored trees and generated files are
skipped unless named explicitly or re-enabled with flags.

Examples:
  cxxtidy lint                        # Check current directory
  cxxtidy lint src/                   # Check src directory
  cxxtidy lint main.cpp               # Check a single file
  cxxtidy lint --fix                  # Check and fix in place
  cxxtidy lint --dry-run              # Show the fixes as a diff
  cxxtidy lint --format json          # Output as JSON for CI
  cxxtidy lint --disable CT004        # Leave inline comments alone
  cxxtidy lint --fix --fix-rules CT001  # Only apply brace fixes`

func runLint(cmd *cobra.Command, args []string, info BuildInfo, cfg *config.Config, flags *lintFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	if flags.cpuprofile != "" {
		stop, err := startCPUProfile(flags.cpuprofile)
		if err != nil {
			return &ExitError{Code: ExitIOError, Err: err}
		}
		defer stop()
	}

	// Only explicitly set flags may override config files.
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
		if !cfg.Format.IsValid() {
			return &ExitError{Code: ExitInvalidUsage, Err: fmt.Errorf("invalid format %q: must be text, json or diff", flags.format)}
		}
	}
	if cmd.Flags().Changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
		if !cfg.RuleFormat.IsValid() {
			return &ExitError{Code: ExitInvalidUsage, Err: fmt.Errorf("invalid rule format %q: must be name, id or combined", flags.ruleFormat)}
		}
	}
	if cfg.DryRun {
		cfg.Fix = true
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("get working directory: %w", err)}
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Registry:     lint.DefaultRegistry,
		CLIConfig:    cfg,
	})
	if err != nil {
		return &ExitError{Code: ExitConfigError, Err: fmt.Errorf("load configuration: %w", err)}
	}

	finalCfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldSource, loadResult.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	engine := lint.NewEngine(cfront.New(), lint.DefaultRegistry)
	lintRunner := runner.New(lint.NewPipeline(engine))

	runOpts := runner.OptionsFromConfig(args, workDir, finalCfg)
	runOpts.FollowSymlinks = flags.followSymlinks
	runOpts.IncludeVendored = flags.includeVendored
	runOpts.IncludeGenerated = flags.includeGenerated

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("lint run failed: %w", err)}
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return &ExitError{Code: ExitInvalidUsage, Err: err}
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
		RuleFormat:  finalCfg.RuleFormat,
		WorkingDir:  workDir,
		Version:     info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("report results: %w", err)}
	}

	if code := ExitCodeFromResult(result, flags.strict); code != ExitSuccess {
		return &ExitError{Code: code, Err: ErrLintIssuesFound}
	}
	return nil
}

func startCPUProfile(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("start cpu profile: %w", err)
	}
	return func() {
		pprof.StopCPUProfile()
		_ = f.Close()
	}, nil
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	f := cmd.Flags()
	f.BoolVar(&cfg.Fix, "fix", false, "apply fixes to files in place")
	f.BoolVar(&cfg.DryRun, "dry-run", false, "compute fixes and print them as a diff without writing")
	f.StringVar(&flags.format, "format", "text", "output format: text, json, diff")
	f.IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = GOMAXPROCS)")
	f.StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns to exclude")
	f.StringSliceVar(&cfg.Extensions, "extensions", nil, "extra file extensions to treat as sources")
	f.StringSliceVar(&cfg.EnableRules, "enable", nil, "rule IDs or names to enable")
	f.StringSliceVar(&cfg.DisableRules, "disable", nil, "rule IDs or names to disable")
	f.StringSliceVar(&cfg.FixRules, "fix-rules", nil, "limit fixes to these rule IDs or names")
	f.BoolVar(&cfg.NoBackups, "no-backups", false, "do not write backups before fixing")
	f.BoolVar(&flags.strict, "strict", false, "exit non-zero on warnings")
	f.BoolVar(&flags.noContext, "no-context", false, "hide source lines under diagnostics")
	f.BoolVar(&flags.compact, "compact", false, "minify JSON output")
	f.StringVar(&flags.ruleFormat, "rule-format", "name", "rule identifier in output: name, id, combined")
	f.BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")
	f.BoolVar(&flags.includeVendored, "include-vendored", false, "check vendored directories")
	f.BoolVar(&flags.includeGenerated, "include-generated", false, "check generated files")
	f.StringVar(&flags.cpuprofile, "cpuprofile", "", "write a CPU profile to file")
}
