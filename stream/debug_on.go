//go:build mimestreamdebug

package stream

import "log/slog"

// sourceMoved is called when a shared source is not where a window left it.
// Debug builds report every such move loudly, since it is how two windows
// used at the same time show up.
func sourceMoved(logger *slog.Logger, want, got int64) {
	logger.Warn("source moved, repositioning", "want", want, "got", got)
	if logger.Handler() == slog.DiscardHandler {
		slog.Warn("stream: source moved, repositioning", "want", want, "got", got)
	}
}
