// Package logging builds the slog loggers used across the pipeline and the
// CLI. The console format renders compact single-line records; the json
// format emits machine-readable records for log shipping.
package logging
