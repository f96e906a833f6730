// Package runner provides multi-file linting orchestration.
package runner

import (
	"github.com/yaklabco/cxxtidy/pkg/config"
)

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions are extra file extensions (with leading dot) treated as
	// C or C++ sources on top of langdetect.SourceExtensions.
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories,
	// relative to WorkingDir.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// IncludeVendored keeps files under vendor/, third_party/ and similar
	// trees during directory walks.
	IncludeVendored bool

	// IncludeGenerated keeps machine-generated files during directory walks.
	IncludeGenerated bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.GOMAXPROCS).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// OptionsFromConfig fills the discovery fields of Options from cfg.
func OptionsFromConfig(paths []string, workDir string, cfg *config.Config) Options {
	opts := Options{
		Paths:      paths,
		WorkingDir: workDir,
		Config:     cfg,
	}
	if cfg != nil {
		opts.Extensions = cfg.Extensions
		opts.ExcludeGlobs = cfg.Ignore
		opts.Jobs = cfg.Jobs
	}
	return opts
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
