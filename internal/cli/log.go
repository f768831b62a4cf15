package cli

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// newLogger writes leveled logs with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stage times one CLI step and logs its record count when it ends.
// Not safe for concurrent use.
type stage struct {
	logger *log.Logger
	name   string
	start  time.Time
}

func startStage(l *log.Logger, name string) *stage {
	l.Debug("stage started", "stage", name)
	return &stage{logger: l, name: name, start: time.Now()}
}

// done logs e.g. "convert finished records=120 elapsed=12ms".
func (s *stage) done(records int) {
	s.logger.Info(s.name+" finished",
		"records", records,
		"elapsed", time.Since(s.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// requestLogger tags base with a fresh request ID and the request line.
func requestLogger(base *log.Logger, r *http.Request) *log.Logger {
	return base.With("request_id", uuid.NewString(), "method", r.Method, "path", r.URL.Path)
}
