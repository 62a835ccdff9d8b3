// Package xlog is the small logger abstraction used for saturation
// tracing and CLI diagnostics: plain writers gated by a verbosity
// level, with color applied only when the destination is a terminal.
package xlog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Level is a logger's verbosity gate.
type Level int

const (
	LevelSilent Level = iota
	LevelInfo
	LevelTrace
)

// Logger writes leveled, optionally colored lines to a single writer.
type Logger struct {
	w        io.Writer
	level    Level
	useColor bool
}

// New builds a Logger writing to w at level, auto-detecting color
// support the way the teacher's OutputFormatter does: colorable when w
// is a terminal file descriptor, plain otherwise. A terminal *os.File
// (such as os.Stderr on a console) is wrapped in go-colorable so ANSI
// codes degrade gracefully on non-ANSI targets.
func New(w io.Writer, level Level) *Logger {
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		if useColor {
			w = colorable.NewColorable(f)
		}
	}
	return &Logger{w: w, level: level, useColor: useColor}
}

// SetColor overrides the auto-detected color setting, for --color/--no-color.
func (l *Logger) SetColor(on bool) { l.useColor = on }

func (l *Logger) colorize(s string, attr color.Attribute) string {
	if !l.useColor {
		return s
	}
	return color.New(attr).Sprint(s)
}

// Info writes a line at LevelInfo or above.
func (l *Logger) Info(format string, args ...any) {
	l.writeAt(LevelInfo, l.colorize("info", color.FgGreen), format, args...)
}

// Trace writes a line at LevelTrace only, the per-pass/per-rule detail
// used by the CLI's --explain mode.
func (l *Logger) Trace(format string, args ...any) {
	l.writeAt(LevelTrace, l.colorize("trace", color.FgCyan), format, args...)
}

// Warn always writes, regardless of level.
func (l *Logger) Warn(format string, args ...any) {
	fmt.Fprintf(l.w, "%s %s\n", l.colorize("warn", color.FgYellow), fmt.Sprintf(format, args...))
}

func (l *Logger) writeAt(level Level, tag, format string, args ...any) {
	if l.level < level {
		return
	}
	fmt.Fprintf(l.w, "%s %s\n", tag, fmt.Sprintf(format, args...))
}

// Enabled reports whether level would actually produce output.
func (l *Logger) Enabled(level Level) bool { return l.level >= level }

// LevelFromEnv maps the TIMEXPR_TRACE environment variable to a Level:
// unset or "0" is LevelInfo, any other non-empty value is LevelTrace.
func LevelFromEnv() Level {
	v := strings.TrimSpace(os.Getenv("TIMEXPR_TRACE"))
	if v == "" || v == "0" {
		return LevelInfo
	}
	return LevelTrace
}
