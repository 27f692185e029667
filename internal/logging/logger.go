// Package logging configures the process-wide logger: color resolution,
// optional file sink, and a small leveled API used by the pipeline.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/backmassage/framebatch/internal/config"
)

// Logger wraps a logrus logger with the file sink's lifecycle.
type Logger struct {
	log  *logrus.Logger
	file *os.File
}

// NewLogger builds a logger from cfg: colors per ColorMode, debug level when
// verbose, and an append-only file sink when LogFile is set. Call Close()
// when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     colorEnabled(cfg.ColorMode),
		DisableColors:   !colorEnabled(cfg.ColorMode),
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if cfg.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	l := &Logger{log: log}

	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}
	return l, nil
}

// colorEnabled resolves the requested color mode against the environment.
func colorEnabled(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == "" && strings.ToLower(os.Getenv("TERM")) != "dumb"
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.file != nil {
		l.log.SetOutput(os.Stdout)
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// WithField returns an entry carrying one structured field.
func (l *Logger) WithField(key string, value interface{}) *logrus.Entry {
	return l.log.WithField(key, value)
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log.Infof(format, args...)
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log.Warnf(format, args...)
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log.Errorf(format, args...)
}

// Debug logs at DEBUG level; dropped unless the logger was built verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log.Debugf(format, args...)
}
