// Package logging provides the structured, leveled logger used across tip.
// It wraps zap the way go.viam.com/rdk/logging wraps it for the rest of the
// teacher codebase: a small interface, a real constructor, and a test
// constructor that builds a development-mode logger named after the test.
package logging

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the leveled logger every tip package takes as a dependency
// instead of reaching for the global zap logger directly.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Named(name string) Logger
	// Throttled returns a Logger whose Infow/Warnw/Errorw calls are rate-limited to
	// once per interval per distinct msg, mirroring ROS_*_THROTTLE in the
	// original planner.
	Throttled(interval time.Duration) Logger
}

type zapLogger struct {
	sug *zap.SugaredLogger
}

// NewLogger builds a production logger writing JSON to stderr at debug level.
func NewLogger(name string) Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	base, err := cfg.Build()
	if err != nil {
		// Fall back to a no-op logger rather than panicking; logging must
		// never be the reason the planner fails to start.
		base = zap.NewNop()
	}
	return &zapLogger{sug: base.Sugar().Named(name)}
}

// NewTestLogger builds a development-mode logger suitable for test output.
func NewTestLogger(tb testingTB) Logger {
	cfg := zap.NewDevelopmentConfig()
	base, err := cfg.Build()
	if err != nil {
		base = zap.NewNop()
	}
	tb.Cleanup(func() { _ = base.Sync() })
	return &zapLogger{sug: base.Sugar().Named(tb.Name())}
}

// testingTB is the subset of testing.TB logging needs, so this package does
// not have to import "testing" into non-test builds.
type testingTB interface {
	Name() string
	Cleanup(func())
}

func (l *zapLogger) Debugw(msg string, kv ...interface{}) { l.sug.Debugw(msg, kv...) }
func (l *zapLogger) Infow(msg string, kv ...interface{})  { l.sug.Infow(msg, kv...) }
func (l *zapLogger) Warnw(msg string, kv ...interface{})  { l.sug.Warnw(msg, kv...) }
func (l *zapLogger) Errorw(msg string, kv ...interface{}) { l.sug.Errorw(msg, kv...) }

func (l *zapLogger) Named(name string) Logger {
	return &zapLogger{sug: l.sug.Named(name)}
}

func (l *zapLogger) Throttled(interval time.Duration) Logger {
	return &throttledLogger{inner: l, interval: interval, last: map[string]time.Time{}}
}

// throttledLogger drops repeat Infow/Warnw/Errorw calls for the same msg
// within interval; Debugw passes through untouched. Grounded on tip.cpp's
// ROS_ERROR_THROTTLE(1.0, ...) / ROS_INFO_THROTTLE(1.0, ...) calls.
type throttledLogger struct {
	inner    Logger
	interval time.Duration
	mu       sync.Mutex
	last     map[string]time.Time
}

func (l *throttledLogger) allow(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	if last, ok := l.last[msg]; ok && now.Sub(last) < l.interval {
		return false
	}
	l.last[msg] = now
	return true
}

func (l *throttledLogger) Debugw(msg string, kv ...interface{}) { l.inner.Debugw(msg, kv...) }
func (l *throttledLogger) Infow(msg string, kv ...interface{}) {
	if l.allow(msg) {
		l.inner.Infow(msg, kv...)
	}
}

func (l *throttledLogger) Warnw(msg string, kv ...interface{}) {
	if l.allow(msg) {
		l.inner.Warnw(msg, kv...)
	}
}

func (l *throttledLogger) Errorw(msg string, kv ...interface{}) {
	if l.allow(msg) {
		l.inner.Errorw(msg, kv...)
	}
}

func (l *throttledLogger) Named(name string) Logger { return l.inner.Named(name).Throttled(l.interval) }
func (l *throttledLogger) Throttled(interval time.Duration) Logger {
	return &throttledLogger{inner: l.inner, interval: interval, last: map[string]time.Time{}}
}
