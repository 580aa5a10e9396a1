//go:build !linux && !darwin

package platform

import (
	"context"
	"log/slog"

	"github.com/timetrackerpro/timetracker/tracker"
)

// ForegroundApp returns nil; app tracking is not available here.
func ForegroundApp(*slog.Logger) tracker.ForegroundApp {
	return nil
}

// WatchLock returns ErrUnsupported.
func WatchLock(context.Context, *slog.Logger, Emit) error {
	return ErrUnsupported
}
