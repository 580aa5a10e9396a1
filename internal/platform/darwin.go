//go:build darwin

package platform

import (
	"context"
	"log/slog"
	"os/exec"

	"github.com/timetrackerpro/timetracker/tracker"
)

type lsappinfo struct{}

// ForegroundApp returns the focused application reporter for macOS.
func ForegroundApp(*slog.Logger) tracker.ForegroundApp {
	return lsappinfo{}
}

func (lsappinfo) Current(ctx context.Context) (tracker.AppInfo, error) {
	out, err := exec.CommandContext(ctx, "lsappinfo", "front").Output()
	if err != nil {
		return tracker.AppInfo{}, err
	}

	asn, err := parseFrontASN(out)
	if err != nil {
		return tracker.AppInfo{}, err
	}

	out, err = exec.CommandContext(
		ctx,
		"lsappinfo",
		"info",
		"-only",
		"bundleid",
		"-only",
		"name",
		asn,
	).Output()
	if err != nil {
		return tracker.AppInfo{}, err
	}

	return parseLsappinfo(out)
}

func screenLocked(ctx context.Context) (bool, error) {
	out, err := exec.CommandContext(ctx, "ioreg", "-n", "Root", "-d1").Output()
	if err != nil {
		return false, err
	}

	return parseScreenLocked(out), nil
}

// WatchLock polls the console session until ctx is cancelled. Sleep is
// inferred from gaps between polls.
func WatchLock(ctx context.Context, logger *slog.Logger, emit Emit) error {
	p := &lockPoller{
		isLocked: screenLocked,
		emit:     emit,
		logger:   logger,
		interval: pollInterval,
	}

	return p.run(ctx)
}
