package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Level represents log level
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	OFF
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case OFF:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// levelColors always emit escapes; Logger.colored decides whether they are used
var levelColors = map[Level]*color.Color{
	DEBUG: newLevelColor(color.FgCyan),
	INFO:  newLevelColor(color.FgGreen),
	WARN:  newLevelColor(color.FgYellow),
	ERROR: newLevelColor(color.FgRed, color.Bold),
}

func newLevelColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// colorEnabled reports whether w is a terminal that should get colored tags.
// NO_COLOR and TERM=dumb turn colors off.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if _, set := os.LookupEnv("NO_COLOR"); set || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Logger writes leveled diagnostics annotated with the caller's source location
type Logger struct {
	level      Level
	jsonFormat bool
	colored    bool
	output     io.Writer
	fields     map[string]interface{}
	component  string
}

// NewLogger creates a logger writing to stderr
func NewLogger(level Level, jsonFormat bool) *Logger {
	return &Logger{
		level:      level,
		jsonFormat: jsonFormat,
		colored:    colorEnabled(os.Stderr),
		output:     os.Stderr,
		fields:     make(map[string]interface{}),
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	l := NewLogger(OFF, false)
	l.output = io.Discard
	l.colored = false
	return l
}

// SetOutput sets the output writer. Colors are used only when w is a terminal.
func (l *Logger) SetOutput(w io.Writer) {
	l.output = w
	l.colored = colorEnabled(w)
}

// SetComponent sets the name printed in front of every message
func (l *Logger) SetComponent(component string) {
	l.component = component
}

// Level returns the minimum level that is written
func (l *Logger) Level() Level {
	return l.level
}

// Enabled reports whether messages at level would be written
func (l *Logger) Enabled(level Level) bool {
	return level >= l.level && l.level != OFF
}

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Component string                 `json:"component,omitempty"`
	Source    string                 `json:"source"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// log writes a log entry. skip counts frames above log itself.
func (l *Logger) log(skip int, level Level, message string, fields map[string]interface{}) {
	if !l.Enabled(level) {
		return
	}

	source := "???:0"
	if _, file, line, ok := runtime.Caller(skip + 1); ok {
		source = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	mergedFields := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		mergedFields[k] = v
	}
	for k, v := range fields {
		mergedFields[k] = v
	}

	if l.jsonFormat {
		entry := LogEntry{
			Timestamp: time.Now().Format(time.RFC3339),
			Level:     level.String(),
			Component: l.component,
			Source:    source,
			Message:   message,
		}
		if len(mergedFields) > 0 {
			entry.Fields = mergedFields
		}
		data, err := json.Marshal(entry)
		if err != nil {
			log.Printf("Failed to marshal log entry: %v", err)
			return
		}
		fmt.Fprintln(l.output, string(data))
		return
	}

	tag := level.String()
	if c, ok := levelColors[level]; ok && l.colored {
		tag = c.Sprint(tag)
	}

	var b strings.Builder
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(&b, "[%s] %s: ", timestamp, tag)
	if l.component != "" {
		fmt.Fprintf(&b, "%s ", l.component)
	}
	fmt.Fprintf(&b, "(%s) %s", source, message)
	if len(mergedFields) > 0 {
		b.WriteString(" " + formatFields(mergedFields))
	}
	fmt.Fprintln(l.output, b.String())
}

// formatFields renders fields as sorted key=value pairs
func formatFields(fields map[string]interface{}) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(parts, " ")
}

func firstFields(fields []map[string]interface{}) map[string]interface{} {
	if len(fields) > 0 {
		return fields[0]
	}
	return nil
}

// Debug logs a debug message
func (l *Logger) Debug(message string, fields ...map[string]interface{}) {
	l.log(1, DEBUG, message, firstFields(fields))
}

// Info logs an info message
func (l *Logger) Info(message string, fields ...map[string]interface{}) {
	l.log(1, INFO, message, firstFields(fields))
}

// Warn logs a warning message
func (l *Logger) Warn(message string, fields ...map[string]interface{}) {
	l.log(1, WARN, message, firstFields(fields))
}

// Error logs an error message
func (l *Logger) Error(message string, fields ...map[string]interface{}) {
	l.log(1, ERROR, message, firstFields(fields))
}

// ErrorDepth logs an error attributed to the caller depth frames up.
// Helpers use it so the reported source is their caller, not themselves.
func (l *Logger) ErrorDepth(depth int, message string, fields ...map[string]interface{}) {
	l.log(1+depth, ERROR, message, firstFields(fields))
}

// DebugDepth is the DEBUG counterpart of ErrorDepth
func (l *Logger) DebugDepth(depth int, message string, fields ...map[string]interface{}) {
	l.log(1+depth, DEBUG, message, firstFields(fields))
}

// WithField adds a field to the logger context
func (l *Logger) WithField(key string, value interface{}) *Logger {
	newFields := make(map[string]interface{}, len(l.fields)+1)
	for k, v := range l.fields {
		newFields[k] = v
	}
	newFields[key] = value
	return &Logger{
		level:      l.level,
		jsonFormat: l.jsonFormat,
		colored:    l.colored,
		output:     l.output,
		fields:     newFields,
		component:  l.component,
	}
}

// ParseLevel parses a log level string
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error", "errors":
		return ERROR
	case "off", "none", "quiet":
		return OFF
	default:
		return INFO
	}
}
