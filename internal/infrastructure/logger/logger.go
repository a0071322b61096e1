package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
)

// SlogLogger adapts a *slog.Logger to the printf-style logger used by use cases.
type SlogLogger struct {
	l *slog.Logger
}

var _ usecasecontract.IAppLogger = (*SlogLogger)(nil)

// New returns a JSON logger in prod and a text logger with debug level otherwise.
func New(env string) *SlogLogger {
	return NewWithWriter(env, os.Stdout)
}

func NewWithWriter(env string, w io.Writer) *SlogLogger {
	var h slog.Handler
	if env == "prod" {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return &SlogLogger{l: slog.New(h)}
}

// Slog exposes the underlying logger for packages that log structured fields.
func (s *SlogLogger) Slog() *slog.Logger {
	return s.l
}

func (s *SlogLogger) Debugf(format string, args ...interface{}) {
	s.l.Debug(fmt.Sprintf(format, args...))
}

func (s *SlogLogger) Infof(format string, args ...interface{}) {
	s.l.Info(fmt.Sprintf(format, args...))
}

func (s *SlogLogger) Warnf(format string, args ...interface{}) {
	s.l.Warn(fmt.Sprintf(format, args...))
}

func (s *SlogLogger) Errorf(format string, args ...interface{}) {
	s.l.Error(fmt.Sprintf(format, args...))
}

// Fatalf logs an error message and exits.
func (s *SlogLogger) Fatalf(format string, args ...interface{}) {
	s.l.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
