//go:build linux

package platform

import (
	"context"
	"log/slog"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/timetrackerpro/timetracker/tracker"
)

const (
	focusedWindowDest   = "org.gnome.Shell"
	focusedWindowPath   = "/org/gnome/shell/extensions/FocusedWindow"
	focusedWindowMethod = "org.gnome.shell.extensions.FocusedWindow.Get"
)

type gnomeFocusedWindow struct {
	logger *slog.Logger
}

// ForegroundApp returns the focused application reporter for Linux. It
// needs the FocusedWindow GNOME Shell extension; it returns nil when the
// session bus is unavailable.
func ForegroundApp(logger *slog.Logger) tracker.ForegroundApp {
	if _, err := dbus.SessionBus(); err != nil {
		logger.Info("app tracking unavailable", slog.Any("error", err))
		return nil
	}

	return gnomeFocusedWindow{logger: logger}
}

func (g gnomeFocusedWindow) Current(ctx context.Context) (tracker.AppInfo, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return tracker.AppInfo{}, err
	}

	obj := conn.Object(focusedWindowDest, focusedWindowPath)

	var s string

	err = obj.CallWithContext(ctx, focusedWindowMethod, 0).Store(&s)
	if err != nil {
		return tracker.AppInfo{}, err
	}

	return parseFocusedWindow(s)
}

type busMatch struct {
	system bool
	opts   []dbus.MatchOption
}

var lockMatches = []busMatch{
	{opts: []dbus.MatchOption{
		dbus.WithMatchInterface(ifaceGnomeScreenSaver),
		dbus.WithMatchMember(memberActiveChanged),
	}},
	{opts: []dbus.MatchOption{
		dbus.WithMatchInterface(ifaceFreedesktopScreenSaver),
		dbus.WithMatchMember(memberActiveChanged),
	}},
	{system: true, opts: []dbus.MatchOption{
		dbus.WithMatchInterface(ifaceLogin1Manager),
		dbus.WithMatchMember(memberPrepareForSleep),
	}},
	{system: true, opts: []dbus.MatchOption{
		dbus.WithMatchInterface(ifaceLogin1Session),
		dbus.WithMatchMember(memberLock),
	}},
	{system: true, opts: []dbus.MatchOption{
		dbus.WithMatchInterface(ifaceLogin1Session),
		dbus.WithMatchMember(memberUnlock),
	}},
}

// WatchLock forwards screensaver, lock and sleep signals from the session
// and system buses until ctx is cancelled. A bus that cannot be reached is
// skipped; ErrUnsupported is returned when neither can.
func WatchLock(ctx context.Context, logger *slog.Logger, emit Emit) error {
	signals := make(chan *dbus.Signal, 16)

	var connected int

	for _, system := range []bool{false, true} {
		conn, err := connect(system)
		if err != nil {
			logger.Info(
				"D-Bus unavailable",
				slog.Bool("system", system),
				slog.Any("error", err),
			)

			continue
		}

		defer conn.Close()

		for _, m := range lockMatches {
			if m.system != system {
				continue
			}

			if err := conn.AddMatchSignal(m.opts...); err != nil {
				logger.Debug("D-Bus match failed", slog.Any("error", err))
			}
		}

		conn.Signal(signals)
		connected++
	}

	if connected == 0 {
		return ErrUnsupported
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig, ok := <-signals:
			if !ok {
				return nil
			}

			if s, ok := signalFromDBus(sig, time.Now()); ok {
				emit(s)
			}
		}
	}
}

// connect opens a private connection so that closing it does not affect
// the shared session bus used for app tracking.
func connect(system bool) (*dbus.Conn, error) {
	if system {
		return dbus.ConnectSystemBus()
	}

	return dbus.ConnectSessionBus()
}
