package lint

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/yaklabco/cxxtidy/pkg/config"
	"github.com/yaklabco/cxxtidy/pkg/source"
	"github.com/yaklabco/cxxtidy/pkg/syntax"
)

// ErrInvalidOption is returned when a rule option is unknown or has the
// wrong type or range.
var ErrInvalidOption = errors.New("invalid rule option")

// RuleContext carries everything a rule needs to build a checker for one
// file.
//
// RuleContext stores context.Context as a field because it is a short-lived
// parameter object created per rule and file.
type RuleContext struct {
	// Ctx is the context for cancellation.
	Ctx context.Context

	// Tree is the parsed file.
	Tree *syntax.Tree

	// Buffer is the file's source (convenience alias for Tree.Buffer).
	Buffer *source.Buffer

	// Config is the resolved configuration.
	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	// Registry provides access to the rule registry for name lookups.
	Registry *Registry
}

// NewRuleContext creates a RuleContext for the given tree and configuration.
func NewRuleContext(
	ctx context.Context,
	tree *syntax.Tree,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	var buf *source.Buffer
	if tree != nil {
		buf = tree.Buffer
	}

	return &RuleContext{
		Ctx:        ctx,
		Tree:       tree,
		Buffer:     buf,
		Config:     cfg,
		RuleConfig: ruleCfg,
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	if rc.Ctx == nil {
		return false
	}
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionInt returns an integer option. Integral values arrive as int from
// YAML, int64 from TOML and float64 from JSON; all are accepted.
func (rc *RuleContext) OptionInt(key string, defaultValue int) (int, error) {
	switch val := rc.Option(key, defaultValue).(type) {
	case int:
		return val, nil
	case int64:
		if val < math.MinInt || val > math.MaxInt {
			return 0, fmt.Errorf("%w: %s: %d out of range", ErrInvalidOption, key, val)
		}
		return int(val), nil
	case float64:
		if val != math.Trunc(val) || math.Abs(val) > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %s: %v is not an integer", ErrInvalidOption, key, val)
		}
		return int(val), nil
	default:
		return 0, fmt.Errorf("%w: %s: expected integer, got %T", ErrInvalidOption, key, val)
	}
}

// OptionString returns a string option.
func (rc *RuleContext) OptionString(key string, defaultValue string) (string, error) {
	v := rc.Option(key, defaultValue)
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s: expected string, got %T", ErrInvalidOption, key, v)
	}
	return s, nil
}

// OptionBool returns a boolean option.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) (bool, error) {
	v := rc.Option(key, defaultValue)
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s: expected boolean, got %T", ErrInvalidOption, key, v)
	}
	return b, nil
}

// CheckOptions rejects option keys not listed in known.
func (rc *RuleContext) CheckOptions(known ...string) error {
	if rc.RuleConfig == nil {
		return nil
	}

	var unknown []string
	for key := range rc.RuleConfig.Options {
		if !slices.Contains(known, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}

	sort.Strings(unknown)
	return fmt.Errorf("%w: unknown option %q", ErrInvalidOption, unknown[0])
}
