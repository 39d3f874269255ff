package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/foodtruckfinder/internal/config"
	"github.com/rshade/foodtruckfinder/internal/logging"
)

// setupLogging builds the logger from the loaded configuration and the
// --debug flag, then stores it and a trace ID on the command context.
func setupLogging(cmd *cobra.Command, cfg *config.Config) logging.LogPathResult {
	loggingCfg := cfg.Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}

	// Ensure log directory exists after all overrides have been applied.
	if err := loggingCfg.EnsureLogDir(); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}

// cleanupLogging writes a final event and closes the log file handle, if any.
func cleanupLogging(logResult *logging.LogPathResult) error {
	if logResult == nil {
		return nil
	}
	logger.Info().Msg("command finished")
	return logResult.Close()
}
