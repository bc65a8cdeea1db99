package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

const (
	logDir      = "logs"
	logFileName = "fly-catcher.log"
	maxLogSize  = 10 * 1024 * 1024 // 10MB
)

// setupLogging installs the default slog logger
// Without debug all output is discarded; with debug it goes to logs/fly-catcher.log, never to the terminal
func setupLogging(debug bool) *os.File {
	if !debug {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	rotateLog(logPath)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil
	}

	slog.SetDefault(newLogger(f))
	slog.Info("logging started", "path", logPath)
	return f
}

// rotateLog moves an oversized log aside under a timestamped name
func rotateLog(logPath string) {
	info, err := os.Stat(logPath)
	if err != nil || info.Size() <= maxLogSize {
		return
	}
	stamp := time.Now().Format("20060102-150405")
	rotated := filepath.Join(logDir, fmt.Sprintf("fly-catcher-%s.log", stamp))
	_ = os.Rename(logPath, rotated)
}

// newLogger builds the tint handler, colored only when the output is a terminal
func newLogger(output *os.File) *slog.Logger {
	handler := tint.NewHandler(output, &tint.Options{
		Level:      slog.LevelDebug,
		AddSource:  false,
		TimeFormat: "2006-01-02 15:04:05.000Z07:00",
		NoColor:    !isatty.IsTerminal(output.Fd()),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Value.Kind() == slog.KindAny {
				if _, ok := a.Value.Any().(error); ok {
					return tint.Attr(9, a)
				}
			}
			return a
		},
	})
	return slog.New(handler)
}
