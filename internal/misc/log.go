package misc

import (
	"io"
	"log/slog"
	"os"
)

// SetDefaultLog installs a text slog handler writing to w, stderr when w is nil.
func SetDefaultLog(w io.Writer, level slog.Leveler) {
	if w == nil {
		w = os.Stderr
	}
	slog.SetDefault(
		slog.New(
			slog.NewTextHandler(
				w,
				&slog.HandlerOptions{
					Level: level,
				},
			),
		),
	)
}

// LogLevel maps the verbose switch to a slog level
func LogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
