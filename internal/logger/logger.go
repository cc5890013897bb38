package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the name of the log file inside the log directory.
const FileName = "calpick.log"

const (
	maxLogSizeMB  = 5
	maxLogBackups = 3
	maxLogAgeDays = 14
)

var (
	logger    *slog.Logger
	logLevel  slog.Level
	logFormat string
	logFile   string
	tuiMode   bool
	rotator   *lumberjack.Logger
	once      sync.Once
	mu        sync.Mutex
)

// Config configures the logger explicitly.
// In TUI mode output never goes to stderr; without a File it is discarded.
type Config struct {
	Level   string
	Format  string
	File    string
	TUIMode bool
}

func init() {
	Initialize()
}

// Initialize configures the logger from LOG_LEVEL, LOG_FORMAT and
// CALPICK_DEBUG. It only runs once.
func Initialize() {
	once.Do(func() {
		levelStr := os.Getenv("LOG_LEVEL")
		if levelStr == "" {
			levelStr = os.Getenv("CALPICK_DEBUG")
			if levelStr == "1" || levelStr == "true" {
				levelStr = "DEBUG"
			} else {
				levelStr = "INFO"
			}
		}

		_ = InitializeWithConfig(Config{
			Level:  levelStr,
			Format: os.Getenv("LOG_FORMAT"),
		})
	})
}

// InitializeWithConfig replaces the active logger. The logger is always
// usable afterwards; the error reports a log directory that could not be
// created, in which case output is discarded.
func InitializeWithConfig(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	var initErr error

	logLevel = parseLevel(cfg.Level)
	logFormat = strings.ToLower(cfg.Format)
	if logFormat == "" {
		logFormat = "text"
	}
	tuiMode = cfg.TUIMode

	logFile = cfg.File
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			initErr = fmt.Errorf("failed to prepare log directory: %w", err)
			logFile = ""
		}
	}

	if rotator != nil {
		_ = rotator.Close()
		rotator = nil
	}

	var out io.Writer = os.Stderr
	switch {
	case logFile != "":
		rotator = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
		}
		out = rotator
	case cfg.TUIMode:
		// No usable log file; stay silent rather than draw over the alt screen.
		out = io.Discard
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if logFormat == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger = slog.New(handler)
	return initErr
}

// Close releases the log file, if any. Later log calls go to stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	logFile = ""
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	return err
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func GetLogger() *slog.Logger {
	Initialize()
	mu.Lock()
	defer mu.Unlock()
	return logger
}

func GetLevel() slog.Level {
	Initialize()
	mu.Lock()
	defer mu.Unlock()
	return logLevel
}

func GetFormat() string {
	Initialize()
	mu.Lock()
	defer mu.Unlock()
	return logFormat
}

// GetFile returns the active log file, or "" when logging to stderr.
func GetFile() string {
	mu.Lock()
	defer mu.Unlock()
	return logFile
}

// IsTUIMode reports whether the logger was configured for a full-screen UI.
func IsTUIMode() bool {
	mu.Lock()
	defer mu.Unlock()
	return tuiMode
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}
