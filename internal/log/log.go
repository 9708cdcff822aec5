// Package log is the debug file logger for enrich.
//
// Logging is off until Init is called (the root command does so for --debug
// or ENRICH_DEBUG). Entries are single lines:
//
//	2026-01-02T15:04:05 [WARN] [registry] create refused title="AI Agent"
package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level represents log severity.
type Level int

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
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatChips    Category = "chips"    // chip input engine
	CatRegistry Category = "registry" // enrichment records and drafts
	CatConfig   Category = "config"   // config load, save, reload
	CatUI       Category = "ui"       // bubbletea components
	CatWatcher  Category = "watcher"  // config file watcher
	CatTrace    Category = "trace"    // tracing provider
	CatCache    Category = "cache"    // render cache
)

type logger struct {
	mu       sync.Mutex
	out      io.Writer
	closer   io.Closer
	minLevel Level
	now      func() time.Time
}

var (
	mu     sync.RWMutex
	active *logger
)

// Init opens path for appending and routes all entries there. The returned
// func closes the file and disables logging again.
func Init(path string) (func(), error) {
	f, err := tea.LogToFile(path, "")
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	install(&logger{out: f, closer: f, minLevel: LevelDebug, now: time.Now})
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if active != nil && active.closer != nil {
			_ = active.closer.Close()
		}
		active = nil
	}, nil
}

// SetOutput routes entries to w without a backing file. Passing nil disables
// logging. Used by tests.
func SetOutput(w io.Writer) {
	if w == nil {
		install(nil)
		return
	}
	install(&logger{out: w, minLevel: LevelDebug, now: time.Now})
}

func install(l *logger) {
	mu.Lock()
	active = l
	mu.Unlock()
}

// Enabled reports whether entries are being written anywhere.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return active != nil
}

// SetMinLevel drops entries below level.
func SetMinLevel(level Level) {
	mu.RLock()
	defer mu.RUnlock()
	if active != nil {
		active.mu.Lock()
		active.minLevel = level
		active.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields)
}

// ErrorErr logs msg at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	text := "<nil>"
	if err != nil {
		text = err.Error()
	}
	write(LevelError, cat, msg, append(fields, "error", text))
}

func write(level Level, cat Category, msg string, fields []any) {
	mu.RLock()
	l := active
	mu.RUnlock()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.minLevel {
		return
	}
	_, _ = io.WriteString(l.out, format(l.now(), level, cat, msg, fields))
}

func format(ts time.Time, level Level, cat Category, msg string, fields []any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i < len(fields); i += 2 {
		if i+1 == len(fields) {
			fmt.Fprintf(&b, " %v=<missing>", fields[i])
			break
		}
		fmt.Fprintf(&b, " %v=%v", fields[i], quote(fields[i+1]))
	}
	b.WriteByte('\n')
	return b.String()
}

// quote wraps string values containing spaces so entries stay greppable.
func quote(v any) any {
	if s, ok := v.(string); ok && strings.ContainsAny(s, " \t") {
		return fmt.Sprintf("%q", s)
	}
	return v
}
