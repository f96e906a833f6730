package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cxxtidy/internal/ui/pretty"
	"github.com/yaklabco/cxxtidy/pkg/config"
	"github.com/yaklabco/cxxtidy/pkg/lint"
	"github.com/yaklabco/cxxtidy/pkg/lint/rules"
)

type rulesFlags struct {
	ruleFormat string
	format     string
	packs      bool
}

const formatJSON = "json"

// ruleJSON represents a rule in JSON output.
type ruleJSON struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Enabled     bool         `json:"enabled"`
	Severity    string       `json:"severity"`
	Fixable     bool         `json:"fixable"`
	Tags        []string     `json:"tags,omitempty"`
	Aliases     []string     `json:"aliases,omitempty"`
	Options     []optionJSON `json:"options,omitempty"`
}

type optionJSON struct {
	Name        string `json:"name"`
	Default     any    `json:"default"`
	Description string `json:"description"`
}

type packJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available rules",
		Long: `List every rule with its ID, default severity, whether it can fix what
it reports, and its options. With --packs, list the configuration packs
accepted by "cxxtidy init --pack".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if flags.format != "text" && flags.format != formatJSON {
				return &ExitError{Code: ExitInvalidUsage, Err: fmt.Errorf("invalid format %q: must be text or json", flags.format)}
			}
			ruleFormat := config.RuleFormat(flags.ruleFormat)
			if !ruleFormat.IsValid() {
				return &ExitError{Code: ExitInvalidUsage, Err: fmt.Errorf("invalid rule format %q", flags.ruleFormat)}
			}

			colorMode, err := cmd.Flags().GetString("color")
			if err != nil {
				colorMode = "auto"
			}
			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

			if flags.packs {
				if flags.format == formatJSON {
					return writePacksJSON(out)
				}
				writePacksText(out, styles)
				return nil
			}

			infos := lint.RuleInfos(lint.DefaultRegistry)
			if flags.format == formatJSON {
				return writeRulesJSON(out, infos)
			}
			writeRulesText(out, styles, infos, ruleFormat)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "combined",
		"rule identifier format: name, id, combined")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&flags.packs, "packs", false, "list configuration packs instead of rules")

	return cmd
}

func writeRulesText(w io.Writer, styles *pretty.Styles, infos []config.RuleInfo, ruleFormat config.RuleFormat) {
	for _, info := range infos {
		var line strings.Builder
		line.WriteString(styles.RuleID.Render(config.FormatRuleID(ruleFormat, info.ID, info.Name)))
		line.WriteString("  ")
		line.WriteString(styles.FormatSeverity(info.Severity))
		if info.CanFix {
			line.WriteString("  ")
			line.WriteString(styles.Fixable.Render("[fixable]"))
		}
		if !info.Enabled {
			line.WriteString("  ")
			line.WriteString(styles.Dim.Render("(disabled by default)"))
		}
		fmt.Fprintln(w, line.String())
		fmt.Fprintf(w, "    %s\n", info.Description)

		if len(info.Aliases) > 0 {
			fmt.Fprintf(w, "    %s %s\n", styles.Dim.Render("aliases:"), strings.Join(info.Aliases, ", "))
		}
		for _, opt := range info.Options {
			fmt.Fprintf(w, "    %s %s\n",
				styles.Location.Render(fmt.Sprintf("%s=%v", opt.Name, opt.Default)),
				styles.Dim.Render(opt.Description))
		}
	}
}

func writeRulesJSON(w io.Writer, infos []config.RuleInfo) error {
	out := make([]ruleJSON, 0, len(infos))
	for _, info := range infos {
		rj := ruleJSON{
			ID:          info.ID,
			Name:        info.Name,
			Description: info.Description,
			Enabled:     info.Enabled,
			Severity:    string(info.Severity),
			Fixable:     info.CanFix,
			Tags:        info.Tags,
			Aliases:     info.Aliases,
		}
		for _, opt := range info.Options {
			rj.Options = append(rj.Options, optionJSON(opt))
		}
		out = append(out, rj)
	}
	return encodeJSON(w, out)
}

func writePacksText(w io.Writer, styles *pretty.Styles) {
	for _, pack := range rules.Packs() {
		fmt.Fprintf(w, "%-10s %s\n", styles.Bold.Render(pack.Name), pack.Description)
	}
}

func writePacksJSON(w io.Writer) error {
	packs := rules.Packs()
	out := make([]packJSON, 0, len(packs))
	for _, pack := range packs {
		out = append(out, packJSON{Name: pack.Name, Description: pack.Description})
	}
	return encodeJSON(w, out)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
