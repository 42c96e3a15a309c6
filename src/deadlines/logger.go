package deadlines

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// LogLevel represents severity for the package logger.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var currentLevel int32 = int32(LevelInfo)

var baseLogger = log.New(os.Stderr, "", log.Ldate|log.Ltime)

// SetLogLevel parses and sets the global log level. Returns false for
// unrecognized names, leaving the level unchanged.
func SetLogLevel(s string) bool {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return false
	}
	atomic.StoreInt32(&currentLevel, int32(l))
	return true
}

func getLevel() LogLevel { return LogLevel(atomic.LoadInt32(&currentLevel)) }

func logf(l LogLevel, format string, args ...interface{}) {
	if getLevel() > l {
		return
	}
	prefix := "INFO"
	switch l {
	case LevelDebug:
		prefix = "DEBUG"
	case LevelWarn:
		prefix = "WARN"
	case LevelError:
		prefix = "ERROR"
	}
	// Treat a no-arg call as a plain message so literal % characters in
	// already formatted strings don't produce %!x(MISSING) artifacts.
	if len(args) == 0 {
		baseLogger.Printf("[%s] %s", prefix, format)
		return
	}
	baseLogger.Printf("[%s] %s", prefix, fmt.Sprintf(format, args...))
}

// Public helpers
func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }
