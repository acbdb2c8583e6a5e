package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rshade/pagefeed/internal/logging"
)

// projectDirName is the per-project overlay directory.
const projectDirName = ".pagefeed"

// EnvProjectDir points at a project directory explicitly.
const EnvProjectDir = "PAGEFEED_PROJECT_DIR"

// ResolveProjectDir determines the project-local .pagefeed directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. PAGEFEED_PROJECT_DIR env var
//  3. walking up from startDir to the first directory containing .pagefeed/config.yaml
//
// Returns the path to $PROJECT/.pagefeed/ or empty string if no project found.
// Does NOT create the directory. Returned path is always absolute (or empty).
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	if startDir == "" {
		return ""
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	home, _ := GetConfigDir()
	for {
		candidate := filepath.Join(dir, projectDirName)
		if candidate != home {
			if _, statErr := os.Stat(filepath.Join(candidate, configFileName)); statErr == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// NewWithProjectDir creates a Config by loading global config then merging
// the project-local config on top. If projectDir is empty, behaves
// identically to New().
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()

	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		// Missing project config is not an error — use global defaults.
		return cfg
	}

	cfgCopy := New()
	if err := ShallowMergeYAML(cfgCopy, overlayPath); err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global defaults")
		return cfg
	}
	cfgCopy.ApplyEnv(os.LookupEnv)
	cfgCopy.path = overlayPath

	return cfgCopy
}

// toAbsProjectDir converts dir to an absolute path and appends ".pagefeed".
// If the path already ends with ".pagefeed", it is returned as-is.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == projectDirName {
		return abs
	}

	return filepath.Join(abs, projectDirName)
}
