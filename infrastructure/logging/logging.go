package logging

import (
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Level maps the verbosity flag (0=none, 1=debug, 2=raw output, 3=debug+raw)
// to a slog level. Raw switch output is logged at Info, so it only depends
// on the verbosity check done by the transports.
func Level(verbosity int) slog.Level {
	if verbosity == 1 || verbosity == 3 {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// New returns a terminal logger writing to w
func New(verbosity int, w io.Writer) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      Level(verbosity),
		NoColor:    !colorEnabled(w),
		TimeFormat: time.TimeOnly,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && verbosity == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func colorEnabled(w io.Writer) bool {
	if runtime.GOOS == "windows" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
