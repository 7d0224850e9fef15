// Package logsink is the engine's process-wide pluggable diagnostic sink.
// At most one Sink is installed at a time; until SetSink is called, every
// record is silently dropped by an internal no-op default so call sites
// never need to nil-check.
package logsink

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// Level is a log record's severity.
type Level int

const (
	Debug Level = iota
	Info
	Warning
	Error
	Fatal
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Record is one leveled log entry with source context.
type Record struct {
	Level   Level
	File    string
	Line    int
	Func    string
	Message string
	Time    time.Time
}

// Sink receives log Records. Implementations must be safe for concurrent
// use — the engine's worker goroutine and the caller's goroutine may both
// emit records.
type Sink interface {
	Log(Record)
}

type dropSink struct{}

func (dropSink) Log(Record) {}

var (
	mu      sync.RWMutex
	current Sink = dropSink{}
)

// SetSink installs s as the process-wide sink, replacing any previously
// installed sink. Passing nil restores the silent default.
func SetSink(s Sink) {
	mu.Lock()
	defer mu.Unlock()
	if s == nil {
		current = dropSink{}
		return
	}
	current = s
}

// Emit records one log line at level, attributing it to the caller
// skip frames above Emit (skip=0 means Emit's immediate caller).
func Emit(skip int, level Level, format string, args ...any) {
	mu.RLock()
	sink := current
	mu.RUnlock()

	pc, file, line, ok := runtime.Caller(skip + 1)
	funcName := "unknown"
	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			funcName = fn.Name()
		}
	}

	sink.Log(Record{
		Level:   level,
		File:    file,
		Line:    line,
		Func:    funcName,
		Message: fmt.Sprintf(format, args...),
		Time:    time.Now(),
	})
}

// Debugf, Infof, Warnf, Errorf, Fatalf emit at their named level,
// attributing the record to their caller.
func Debugf(format string, args ...any) { Emit(1, Debug, format, args...) }
func Infof(format string, args ...any)  { Emit(1, Info, format, args...) }
func Warnf(format string, args ...any)  { Emit(1, Warning, format, args...) }
func Errorf(format string, args ...any) { Emit(1, Error, format, args...) }
func Fatalf(format string, args ...any) { Emit(1, Fatal, format, args...) }
