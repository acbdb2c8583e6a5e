// Package logging builds the zerolog loggers used across pagefeed and carries
// the logger and a per-session trace ID through context.Context.
package logging
