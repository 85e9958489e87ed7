package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents the logging level.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

var levelColors = map[Level]string{
	DEBUG: "\033[36m", // Cyan
	INFO:  "\033[32m", // Green
	WARN:  "\033[33m", // Yellow
	ERROR: "\033[31m", // Red
}

const colorReset = "\033[0m"

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Logger writes leveled, timestamped messages.
type Logger struct {
	mu          sync.Mutex
	level       Level
	output      *log.Logger
	colorEnable bool
}

func newLogger(w io.Writer, level Level, color bool) *Logger {
	return &Logger{
		level:       level,
		output:      log.New(w, "", log.LstdFlags),
		colorEnable: color,
	}
}

// Coverage output goes to stdout, so messages default to stderr.
var defaultLogger = newLogger(os.Stderr, INFO, true)

// Init replaces the default logger. Every Debug/Info/Warn/Error call
// goes through it.
func Init(levelStr string, w io.Writer, color bool) error {
	level, err := ParseLevel(levelStr)
	if err != nil {
		return err
	}
	defaultLogger = newLogger(w, level, color)
	return nil
}

// ParseLevel converts a level name to a Level. An empty name means INFO.
func ParseLevel(levelStr string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO", "":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", levelStr)
	}
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	message := fmt.Sprintf(format, args...)
	if l.colorEnable {
		l.output.Printf("%s[%s]%s %s", levelColors[level], level, colorReset, message)
		return
	}
	l.output.Printf("[%s] %s", level, message)
}

// Debug logs a debug message on the default logger.
func Debug(format string, args ...interface{}) {
	defaultLogger.log(DEBUG, format, args...)
}

// Info logs an info message on the default logger.
func Info(format string, args ...interface{}) {
	defaultLogger.log(INFO, format, args...)
}

// Warn logs a warning message on the default logger.
func Warn(format string, args ...interface{}) {
	defaultLogger.log(WARN, format, args...)
}

// Error logs an error message on the default logger.
func Error(format string, args ...interface{}) {
	defaultLogger.log(ERROR, format, args...)
}
