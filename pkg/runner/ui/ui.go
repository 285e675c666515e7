package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"

	"tableflip.dev/abcinema/pkg/app"
	tuiapp "tableflip.dev/abcinema/pkg/tui/app"
)

var ErrNotTerminal = errors.New("ui: stdout is not a terminal")

// UI runs the full-screen interface. Logs go to the configured file while
// the screen is owned by the program.
type UI struct {
	Service *app.Service
	// Stdout is checked for a terminal; defaults to os.Stdout.
	Stdout *os.File
}

func (u *UI) Do(ctx context.Context) error {
	out := u.Stdout
	if out == nil {
		out = os.Stdout
	}
	if !isatty.IsTerminal(out.Fd()) && !isatty.IsCygwinTerminal(out.Fd()) {
		return ErrNotTerminal
	}
	defer u.Service.Close()

	w := LogWriter(u.Service.Config.LogFile())
	defer w.Close()
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(prev)

	slog.Info("ui.start", "store.path", u.Service.Config.BasePath())
	err := tuiapp.Run(ctx, u.Service)
	slog.Info("ui.stop", "err", err)
	return err
}

// LogWriter returns a rotating log file, or a discarding writer when path is
// empty.
func LogWriter(path string) io.WriteCloser {
	if path == "" {
		return nopCloser{io.Discard}
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
