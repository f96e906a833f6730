// Package configloader resolves the effective configuration from defaults,
// config files, CXXTIDY_* environment variables and command-line flags.
package configloader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/yaklabco/cxxtidy/internal/logging"
	"github.com/yaklabco/cxxtidy/pkg/config"
	"github.com/yaklabco/cxxtidy/pkg/lint"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Defaults to
	// the current directory.
	WorkingDir string

	// ExplicitPath is a config file named with --config. It is loaded on
	// top of any discovered files.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// Getenv replaces os.Getenv when set.
	Getenv func(string) string

	// Registry resolves rule keys and checks rule options. Defaults to
	// lint.DefaultRegistry.
	Registry *lint.Registry

	// CLIConfig holds values from command-line flags, the highest
	// precedence source.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were loaded, lowest precedence first.
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration. Sources, lowest precedence first:
//  1. Defaults
//  2. System config (/etc/cxxtidy/config.yaml)
//  3. User config ($XDG_CONFIG_HOME/cxxtidy/config.yaml)
//  4. Project config (.cxxtidy.yml, .cxxtidy.yaml or .cxxtidy.toml, upward search)
//  5. Explicit config file (--config)
//  6. Environment variables (CXXTIDY_*)
//  7. Command-line flags
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	reg := opts.Registry
	if reg == nil {
		reg = lint.DefaultRegistry
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath
	result := &LoadResult{Paths: paths}

	cfg := config.NewConfig()
	for _, src := range []struct {
		name string
		path string
		skip bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	} {
		if src.skip || src.path == "" {
			continue
		}
		if cfg, err = loadConfigFile(cfg, src.path, reg, result); err != nil {
			return nil, fmt.Errorf("load %s config: %w", src.name, err)
		}
		result.LoadedFrom = append(result.LoadedFrom, src.path)
		logger.Debug("loaded config", logging.FieldSource, src.name, logging.FieldPath, src.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg, opts.Getenv); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	normalizeRuleKeys(cfg, reg, result)

	validation := Validate(cfg, reg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile decodes the file at path over a copy of base. Keys the
// file does not mention keep base's values. The file's rule keys are
// resolved to IDs and then merged field by field.
func loadConfigFile(base *config.Config, path string, reg *lint.Registry, result *LoadResult) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	overlay := base.Clone()
	overlay.Rules = nil
	if err := config.DecodeInto(content, config.FileFormatFromPath(path), overlay); err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}

	fileRules := &config.Config{Rules: overlay.Rules}
	normalizeRuleKeys(fileRules, reg, result)
	overlay.Rules = mergeRules(base.Rules, fileRules.Rules)
	return overlay, nil
}

// normalizeRuleKeys rewrites rule names and aliases in cfg.Rules to rule
// IDs. When several keys name the same rule, their settings are merged in
// key order and a warning is recorded. Unknown keys are kept for
// validation to report.
func normalizeRuleKeys(cfg *config.Config, reg *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	keys := slices.Sorted(maps.Keys(cfg.Rules))

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seen := make(map[string]string)

	for _, key := range keys {
		ruleCfg := cfg.Rules[key]
		id, _, ok := reg.Resolve(key)
		if !ok {
			normalized[key] = ruleCfg
			continue
		}

		if first, dup := seen[id]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; settings are merged",
					first, key, id))
			normalized[id] = mergeRuleConfig(normalized[id], ruleCfg)
			continue
		}
		seen[id] = key
		normalized[id] = ruleCfg
	}

	cfg.Rules = normalized
}
