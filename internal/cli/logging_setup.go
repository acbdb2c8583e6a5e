package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/pagefeed/internal/config"
	"github.com/rshade/pagefeed/internal/logging"
)

// setupLogging configures logging based on config file, environment, and CLI flags.
func setupLogging(cmd *cobra.Command) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
	}

	// Ensure log directory exists after all overrides have been applied.
	if loggingCfg.File != "" {
		if err := config.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	logCfg := loggingCfg.ToLoggingConfig()
	if ownsTerminal(cmd) && logCfg.Output == logging.OutputStderr {
		logCfg.Output = logging.OutputDiscard
	}

	result := logging.NewLoggerWithPath(logCfg)
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile && debug {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.With().Str(logging.TraceIDField, traceID).Logger().WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Str(logging.TraceIDField, traceID).Msg("command started")

	return result
}

// ownsTerminal reports whether cmd will draw a full-screen view on stdout.
func ownsTerminal(cmd *cobra.Command) bool {
	if cmd.Annotations[annotationOwnsTerminal] == "" {
		return false
	}
	plain, _ := cmd.Flags().GetBool("plain")
	return !plain && isTerminal(os.Stdout)
}

// cleanupLogging closes the log file handle.
func cleanupLogging(logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
