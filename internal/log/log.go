// Package log is a small leveled logger on top of the standard library log
// package. Callers tag their lines, e.g. "[FIELD] resized to %dx%d".
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int32(l))
	}
}

type Logger struct {
	out   *stdlog.Logger
	level atomic.Int32
}

// New returns a logger writing to w at LevelInfo.
func New(w io.Writer) *Logger {
	l := &Logger{out: stdlog.New(w, "", stdlog.LstdFlags|stdlog.Lmicroseconds)}
	l.level.Store(int32(LevelInfo))
	return l
}

// Std returns a logger that writes through the standard logger, so its
// output follows log.SetOutput.
func Std() *Logger {
	l := &Logger{out: stdlog.Default()}
	l.level.Store(int32(LevelInfo))
	return l
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() *Logger {
	return New(io.Discard)
}

func (l *Logger) SetLevel(lv Level) { l.level.Store(int32(lv)) }

func (l *Logger) Level() Level { return Level(l.level.Load()) }

func (l *Logger) Enabled(lv Level) bool { return lv >= l.Level() }

func (l *Logger) logf(lv Level, format string, args ...any) {
	if l == nil || !l.Enabled(lv) {
		return
	}
	l.out.Printf(lv.String()+" "+format, args...)
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }
