package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// zerologAdapter wraps a zerolog.Logger to implement Logger.
type zerologAdapter struct {
	logger zerolog.Logger
}

// NewZerolog creates a Logger implemented with zerolog, writing to w. When
// pretty is true the output is the human-oriented console format; otherwise
// structured JSON.
func NewZerolog(w io.Writer, level zerolog.Level, pretty bool) Logger {
	if w == nil {
		w = os.Stderr
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	zlog := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &zerologAdapter{logger: zlog}
}

func (z *zerologAdapter) Debug(ctx context.Context, msg string, args ...any) {
	z.logger.Debug().Fields(args).Msg(msg)
}

func (z *zerologAdapter) Info(ctx context.Context, msg string, args ...any) {
	z.logger.Info().Fields(args).Msg(msg)
}

func (z *zerologAdapter) Warn(ctx context.Context, msg string, args ...any) {
	z.logger.Warn().Fields(args).Msg(msg)
}

func (z *zerologAdapter) Error(ctx context.Context, msg string, args ...any) {
	z.logger.Error().Fields(args).Msg(msg)
}

func (z *zerologAdapter) With(args ...any) Logger {
	return &zerologAdapter{logger: z.logger.With().Fields(args).Logger()}
}
