package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/cxxtidy/internal/logging"
	"github.com/yaklabco/cxxtidy/pkg/config"
	"github.com/yaklabco/cxxtidy/pkg/lint"
	"github.com/yaklabco/cxxtidy/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

type initFlags struct {
	force  bool
	full   bool
	format string
	output string
	pack   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a cxxtidy configuration file",
		Long: `Create a .cxxtidy.yml configuration file in the current directory. The
rules section is seeded from a pack; run "cxxtidy rules --packs" to list
them.

Examples:
  cxxtidy init                      Create .cxxtidy.yml from the default pack
  cxxtidy init --pack strict        Report every rule as an error
  cxxtidy init --full               Document every rule and option
  cxxtidy init --format toml        Create .cxxtidy.toml instead`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.InOrStdin(), cmd.ErrOrStderr(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file without asking")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every rule and option")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path (default .cxxtidy.yml or .cxxtidy.toml)")
	cmd.Flags().StringVar(&flags.pack, "pack", "default",
		"rule pack: "+strings.Join(rules.PackNames(), ", "))

	return cmd
}

func runInit(in io.Reader, errOut io.Writer, flags *initFlags) error {
	logger := logging.NewWithWriter(errOut, "info")

	format := config.FileFormat(flags.format)
	if format != config.FileFormatYAML && format != config.FileFormatTOML {
		return &ExitError{Code: ExitInvalidUsage, Err: fmt.Errorf("invalid format %q: must be yaml or toml", flags.format)}
	}

	pack := rules.PackByName(flags.pack)
	if pack == nil {
		return &ExitError{Code: ExitInvalidUsage, Err: fmt.Errorf("unknown pack %q: must be one of %s",
			flags.pack, strings.Join(rules.PackNames(), ", "))}
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".cxxtidy." + map[config.FileFormat]string{
			config.FileFormatYAML: "yml",
			config.FileFormatTOML: "toml",
		}[format]
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		if !isInteractive(in) {
			return &ExitError{Code: ExitIOError, Err: fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)}
		}
		ok, err := confirm(in, errOut, fmt.Sprintf("%s already exists. Overwrite? [y/N] ", outputPath))
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("left existing file unchanged", logging.FieldPath, outputPath)
			return nil
		}
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:     flags.full,
		Format:   format,
		Rules:    lint.RuleInfos(lint.DefaultRegistry),
		PackName: pack.Name,
		Pack:     pack.Rules,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("write file: %w", err)}
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath, logging.FieldConfig, pack.Name)
	logger.Info("run 'cxxtidy rules' to see all available rules")

	return nil
}

// isInteractive reports whether in is a terminal we can prompt on.
func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("read answer: %w", err)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
