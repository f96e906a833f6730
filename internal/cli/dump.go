package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cxxtidy/internal/logging"
	"github.com/yaklabco/cxxtidy/pkg/parser/cfront"
	"github.com/yaklabco/cxxtidy/pkg/syntax"
)

func newDumpCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "dump [flags] <file>...",
		Short: "Print the syntax tree the rules see",
		Long: `Print the syntax tree cxxtidy builds for each file as an s-expression.

With --kind, only subtrees rooted at nodes of that kind are printed, one per
line and prefixed with their position.`,
		Example: `  cxxtidy dump main.cpp
  cxxtidy dump --kind if main.cpp`,
		Args:   cobra.MinimumNArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args, kind)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "only print subtrees of this node kind, e.g. If or Binary")

	return cmd
}

func runDump(cmd *cobra.Command, args []string, kindName string) error {
	filter := syntax.KindInvalid
	if kindName != "" {
		k, ok := syntax.ParseKind(kindName)
		if !ok {
			return &ExitError{Code: ExitInvalidUsage, Err: fmt.Errorf("unknown node kind %q", kindName)}
		}
		filter = k
	}

	parser := cfront.New()
	out := cmd.OutOrStdout()

	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return &ExitError{Code: ExitIOError, Err: fmt.Errorf("read %s: %w", path, err)}
		}

		tree, err := parser.Parse(cmd.Context(), path, content)
		if err != nil {
			return &ExitError{Code: ExitIOError, Err: fmt.Errorf("parse %s: %w", path, err)}
		}
		logging.ForFile(cmd.Context(), path).Debug("parsed", logging.FieldNodes, tree.Len())

		if filter == syntax.KindInvalid {
			fmt.Fprintf(out, "%s: %s\n", path, syntax.Dump(tree.Root))
			continue
		}

		var sb strings.Builder
		for _, n := range syntax.FindAll(tree.Root, filter) {
			pos := tree.Buffer.PresumedLoc(n.Range.Begin)
			fmt.Fprintf(&sb, "%s:%d:%d: %s\n", path, pos.Line, pos.Column, syntax.Dump(n))
		}
		fmt.Fprint(out, sb.String())
	}
	return nil
}
