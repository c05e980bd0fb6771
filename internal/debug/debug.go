// Package debug provides the level-gated trace logging the reactor and
// its protocol engine sprinkle through hot paths, in the same
// debug.Log(level, format, args...) style as the teacher repo's
// internal/debug package. Levels roughly track verbosity: 1 is
// coarse-grained protocol events, 2 is frame-level detail, 3 is
// per-byte/per-credit bookkeeping.
package debug

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	level  int32
	logger atomic.Pointer[zap.SugaredLogger]
)

func init() {
	// Debug level, so that Log's own threshold is the only gate.
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	l, _ := cfg.Build()
	logger.Store(l.Sugar())
}

// SetLevel changes the global trace verbosity; 0 disables tracing.
func SetLevel(l int) {
	atomic.StoreInt32(&level, int32(l))
}

// SetLogger replaces the underlying zap logger, e.g. to route traces to
// a development (console) encoder instead of the production JSON one.
func SetLogger(l *zap.Logger) {
	logger.Store(l.Sugar())
}

// Log emits a trace line if the global level is at least threshold.
func Log(threshold int, format string, args ...any) {
	if atomic.LoadInt32(&level) < int32(threshold) {
		return
	}
	logger.Load().Debugf(format, args...)
}
