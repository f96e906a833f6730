package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths holds the discovered configuration files. Missing files are
// empty strings.
type ConfigPaths struct {
	// System is the machine-wide config, e.g. /etc/cxxtidy/config.yaml.
	System string

	// User is the per-user config, e.g. ~/.config/cxxtidy/config.yaml.
	User string

	// Project is the nearest .cxxtidy.{yml,yaml,toml} above the working dir.
	Project string

	// Explicit is the --config path.
	Explicit string
}

// ProjectConfigNames are the project config file names in order of
// preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ProjectConfigNames = []string{
	".cxxtidy.yml",
	".cxxtidy.yaml",
	".cxxtidy.toml",
	"cxxtidy.yml",
	"cxxtidy.yaml",
	"cxxtidy.toml",
}

//nolint:gochecknoglobals // Read-only lookup table.
var (
	dirConfigNames = []string{"config.yaml", "config.yml", "config.toml"}
	vcsRootMarkers = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths finds the system, user and project configuration files.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  findInDir(systemConfigDir()),
		User:    findInDir(UserConfigDir()),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, "cxxtidy")
	}
	return "/etc/cxxtidy"
}

// UserConfigDir returns $XDG_CONFIG_HOME/cxxtidy, falling back to
// ~/.config/cxxtidy. It returns "" when neither can be determined.
func UserConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "cxxtidy")
}

func findInDir(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range dirConfigNames {
		if path := filepath.Join(dir, name); fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config
// file. The search stops at a VCS root, the home directory, or the
// filesystem root, and returns "" when nothing is found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		for _, name := range ProjectConfigNames {
			if path := filepath.Join(dir, name); fileExists(path) {
				return path, nil
			}
		}

		if isVCSRoot(dir) || (home != "" && dir == home) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
