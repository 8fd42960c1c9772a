package logging

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"DOIT_BACK-END/internal/config"
)

type ZerologLogger struct {
	l zerolog.Logger
}

func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{l: l}
}

// New builds the application logger from configuration. A nil writer means stdout.
func New(cfg config.LogConfig, w io.Writer) Logger {
	if w == nil {
		w = os.Stdout
	}
	if strings.EqualFold(cfg.Format, "console") {
		w = zerolog.ConsoleWriter{Out: w}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	l := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return NewZerologLogger(l)
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return NewZerologLogger(zerolog.Nop())
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.write(ctx, z.l.Debug(), msg, args)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.write(ctx, z.l.Info(), msg, args)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.write(ctx, z.l.Warn(), msg, args)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.write(ctx, z.l.Error(), msg, args)
}

func (z *ZerologLogger) With(args ...any) Logger {
	return &ZerologLogger{l: z.l.With().Fields(normalize(args)).Logger()}
}

func (z *ZerologLogger) write(ctx context.Context, e *zerolog.Event, msg string, args []any) {
	if e == nil {
		return
	}
	if id, ok := RequestIDFromContext(ctx); ok {
		e = e.Str(string(requestIDKey), id)
	}
	if len(args) > 0 {
		e = e.Fields(normalize(args))
	}
	e.Msg(msg)
}

// normalize turns key/value args into the []interface{} form zerolog accepts.
// A dangling key gets a nil value; error values are rendered as strings.
func normalize(args []any) []interface{} {
	if len(args)%2 != 0 {
		args = append(args, nil)
	}
	out := make([]interface{}, 0, len(args))
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = "!BADKEY"
		}
		val := args[i+1]
		if err, isErr := val.(error); isErr && err != nil {
			val = err.Error()
		}
		out = append(out, key, val)
	}
	return out
}
