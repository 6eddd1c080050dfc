package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Init installs a colored slog handler as the process default.
func Init() {
	slog.SetDefault(New(os.Stderr, slog.LevelDebug))
}

func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		AddSource:  true,
		TimeFormat: time.Kitchen,
	}))
}
