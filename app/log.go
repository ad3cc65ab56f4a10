// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"io"
	"log/slog"

	"github.com/loomkit/loom/internal/logger"
)

// SetLogger configures the logger of loom and all its packages. By
// default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by loom:
//   - [slog.LevelDebug]: pass diagnostics (dispatched events, frame sizes)
//   - [slog.LevelInfo]: lifecycle events (pipeline start and stop)
//   - [slog.LevelWarn]: resource failures (undecodable images, full atlas)
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return logger.Get()
}

// NewLogger returns a text logger writing to w at the level named in
// cfg, or nil if logging is off.
func NewLogger(w io.Writer, cfg LogConfig) (*slog.Logger, error) {
	lvl, on, err := parseLevel(cfg.Level)
	if err != nil || !on {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
