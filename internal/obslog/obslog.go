// Package obslog is the ambient structured-logging facade for this
// module's operational (not test-result) logging: run start/stop,
// family dispatch, and framework-misuse diagnostics. It wraps zerolog
// directly rather than routing through a generic logging front end,
// since this module has exactly one backend to support.
package obslog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Level mirrors a small, closed severity vocabulary, gating field
// construction the way a tiered logging front end would: callers check
// Enabled before doing any formatting work.
type Level int8

const (
	LevelDisabled Level = iota - 1
	LevelError
	LevelWarning
	LevelInfo
	LevelDebug
)

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelError:
		return zerolog.ErrorLevel
	case LevelWarning:
		return zerolog.WarnLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.Disabled
	}
}

// Logger is the package's operational logger, backed by zerolog.
type Logger struct {
	zl zerolog.Logger
}

// New constructs a Logger writing to w at the given minimum level. A nil
// w defaults to os.Stderr.
func New(w io.Writer, level Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	zl := zerolog.New(w).Level(level.zerolog()).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// Enabled reports whether a message at level would be emitted, letting
// callers skip building expensive fields when it would not.
func (l *Logger) Enabled(level Level) bool {
	return l.zl.GetLevel() <= level.zerolog() && level != LevelDisabled
}

// Event starts a structured log entry at level. Call its methods to
// attach fields, then Msg/Msgf to emit; a no-op Event is returned when
// the level is disabled, so chained field calls remain cheap.
func (l *Logger) Event(level Level) *zerolog.Event {
	switch level {
	case LevelError:
		return l.zl.Error()
	case LevelWarning:
		return l.zl.Warn()
	case LevelInfo:
		return l.zl.Info()
	case LevelDebug:
		return l.zl.Debug()
	default:
		return nil
	}
}

// RunStarted logs the beginning of a Runner execution.
func (l *Logger) RunStarted(runID string, families int) {
	if e := l.Event(LevelInfo); e != nil {
		e.Str("run_id", runID).Int("families", families).Msg("run started")
	}
}

// RunFinished logs the end of a Runner execution.
func (l *Logger) RunFinished(runID string, passed bool, checks, failures int) {
	if e := l.Event(LevelInfo); e != nil {
		e.Str("run_id", runID).Bool("passed", passed).Int("checks", checks).Int("failures", failures).Msg("run finished")
	}
}

// FrameworkMisuse logs a setup-time misuse error detected before any
// test ran.
func (l *Logger) FrameworkMisuse(reason string) {
	if e := l.Event(LevelError); e != nil {
		e.Str("reason", reason).Msg("framework misuse")
	}
}
