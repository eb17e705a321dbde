// Package logger provides structured logging for the application.
//
// It configures log/slog with a JSON handler, carries request-scoped loggers
// through context.Context, and adapts slog to gorm's logger interface so SQL
// tracing ends up in the same stream.
package logger
