// Package logging configures zerolog for stockrecon and carries loggers
// through contexts. Logs go to stderr: console lines on a terminal, JSON
// lines otherwise, so scripted runs stay machine readable.
//
// Example usage:
//
//	ctx := logging.WithLogger(context.Background(), logging.Default())
//	ctx = logging.WithFile(ctx, "RW_json/RW_U00054_22.json")
//	logging.FromContext(ctx).Warn().Msg("Record skipped")
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger serves code that runs without a logger in its context.
// Until SetDefault is called it follows the LOG_* environment variables.
var defaultLogger = NewLoggerFromConfig(ConfigFromEnv())

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger, including zerolog's global
// log.Logger used by third-party code.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}
