package logger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mintyhq/minty-api/internal/redact"
)

// Gorm routes gorm's statement tracing through slog. Bound parameters are
// never logged; statements appear with their placeholders.
type Gorm struct {
	logger        *slog.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

var (
	_ gormlogger.Interface = (*Gorm)(nil)
	_ gorm.ParamsFilter    = (*Gorm)(nil)
)

// NewGorm returns a gorm logger at Warn level. Statements slower than
// slowThreshold are logged as warnings; zero disables the check.
func NewGorm(l *slog.Logger, slowThreshold time.Duration) *Gorm {
	return &Gorm{
		logger:        l.With("component", "gorm"),
		level:         gormlogger.Warn,
		slowThreshold: slowThreshold,
	}
}

// LogMode implements gormlogger.Interface.
func (g *Gorm) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *g
	c.level = level
	return &c
}

func (g *Gorm) Info(ctx context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Info {
		FromContextOrDefault(ctx, g.logger).InfoContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (g *Gorm) Warn(ctx context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Warn {
		FromContextOrDefault(ctx, g.logger).WarnContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (g *Gorm) Error(ctx context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Error {
		FromContextOrDefault(ctx, g.logger).ErrorContext(ctx, fmt.Sprintf(msg, args...))
	}
}

// Trace implements gormlogger.Interface. Record-not-found results are not
// errors for this application; the store layer maps them to ErrNotFound.
func (g *Gorm) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	l := FromContextOrDefault(ctx, g.logger)

	switch {
	case err != nil && g.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.ErrorContext(ctx, "sql statement failed",
			redact.ErrorAttr(err),
			slog.Duration("elapsed", elapsed),
			slog.Int64("rows", rows),
			slog.String("sql", sql))
	case g.slowThreshold > 0 && elapsed > g.slowThreshold && g.level >= gormlogger.Warn:
		sql, rows := fc()
		l.WarnContext(ctx, "slow sql statement",
			slog.Duration("elapsed", elapsed),
			slog.Duration("threshold", g.slowThreshold),
			slog.Int64("rows", rows),
			slog.String("sql", sql))
	case g.level >= gormlogger.Info:
		sql, rows := fc()
		l.DebugContext(ctx, "sql statement",
			slog.Duration("elapsed", elapsed),
			slog.Int64("rows", rows),
			slog.String("sql", sql))
	}
}

// ParamsFilter drops bound parameters so values such as password hashes
// never reach the log.
func (g *Gorm) ParamsFilter(_ context.Context, sql string, _ ...any) (string, []any) {
	return sql, nil
}
