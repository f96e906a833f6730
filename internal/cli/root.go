// Package cli provides the Cobra command structure for cxxtidy.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cxxtidy/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root cxxtidy command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "cxxtidy",
		Short: "A clang-tidy style fixer for C and C++ readability checks",
		Long: `cxxtidy finds and fixes readability issues in C and C++ sources.

It braces the bodies of control statements, drops redundant nullptr
comparisons and parentheses, and moves trailing declaration comments onto
their own lines. Fixes are applied in memory until no rule has anything
left to change, checked for conflicts, and written atomically.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newLintCommand(info))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))
	rootCmd.AddCommand(newDumpCommand())

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
