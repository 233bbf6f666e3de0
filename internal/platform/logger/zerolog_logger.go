package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options selects the output format and minimum level.
type Options struct {
	Level  string
	Format string
	Out    io.Writer
}

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// Factory hands out component loggers sharing one root logger.
type Factory struct {
	root zerolog.Logger
}

func NewFactory(opts Options) Factory {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if strings.ToLower(opts.Format) == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	return Factory{root: zerolog.New(out).Level(level).With().Timestamp().Logger()}
}

// For returns a logger whose entries all carry the component field.
func (f Factory) For(component string) Logger {
	return &ZerologLogger{log: f.root.With().Str("component", component).Logger()}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
