package config

import (
	"github.com/rshade/pagefeed/internal/logging"
)

// ToLoggingConfig converts config.LoggingConfig to logging.Config for use with
// the internal/logging package.
//
// The conversion applies these rules:
//   - Level, Format are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// GetLoggingConfig returns the Logging section of the global configuration.
// The returned value is a copy; callers apply flag overrides such as --debug
// on top of it.
func GetLoggingConfig() LoggingConfig {
	cfg := GetGlobalConfig()
	return cfg.Logging
}
