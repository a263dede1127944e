//go:build !mimestreamdebug

package stream

import "log/slog"

// sourceMoved is called when a shared source is not where a window left it.
func sourceMoved(logger *slog.Logger, want, got int64) {
	logger.Debug("source moved, repositioning", "want", want, "got", got)
}
