package testdb

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Counter records every statement executed through a handle returned by
// Count.
type Counter struct {
	mu         sync.Mutex
	statements []string
}

// Count returns a session on db whose statements are recorded by the
// returned Counter.
func Count(db *gorm.DB) (*gorm.DB, *Counter) {
	c := &Counter{}
	return db.Session(&gorm.Session{Logger: c}), c
}

// N is the number of statements recorded so far.
func (c *Counter) N() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.statements)
}

// Statements returns the recorded SQL in execution order.
func (c *Counter) Statements() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.statements))
	copy(out, c.statements)
	return out
}

// Reset forgets the recorded statements.
func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statements = nil
}

func (c *Counter) LogMode(gormlogger.LogLevel) gormlogger.Interface { return c }
func (c *Counter) Info(context.Context, string, ...any)             {}
func (c *Counter) Warn(context.Context, string, ...any)             {}
func (c *Counter) Error(context.Context, string, ...any)            {}

func (c *Counter) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	c.mu.Lock()
	c.statements = append(c.statements, sql)
	c.mu.Unlock()
}
