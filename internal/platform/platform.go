// Package platform connects the tracker to the operating system: it reports
// the focused application and turns lock, screensaver and sleep events into
// tracker signals.
package platform

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/timetrackerpro/timetracker/internal/apperr"
	"github.com/timetrackerpro/timetracker/tracker"
)

var (
	ErrUnsupported = &apperr.Error{
		Message: "lock detection is not supported on this platform",
	}

	errParseApp = &apperr.Error{
		Message: "unexpected output from %s",
	}
)

// Emit receives lock related signals. It is called from a background
// goroutine.
type Emit func(sig tracker.Signal)

const (
	pollInterval = 2 * time.Second

	// sleepGap is how much longer than pollInterval a gap between two polls
	// must be before it is treated as the machine having slept.
	sleepGap = 30 * time.Second
)

// lockPoller turns a polled "is the screen locked" check into lock and
// unlock signals. A gap between two polls that is much longer than the
// interval means the process was suspended, which is reported as a sleep
// at the previous poll followed by a wake.
type lockPoller struct {
	isLocked func(ctx context.Context) (bool, error)
	emit     Emit
	logger   *slog.Logger
	interval time.Duration
	lastPoll time.Time
	locked   bool
}

func (p *lockPoller) poll(ctx context.Context, now time.Time) {
	// wall clock only, the monotonic clock may stop while asleep
	now = now.Round(0)

	if !p.lastPoll.IsZero() && now.Sub(p.lastPoll) > p.interval+sleepGap {
		p.emit(tracker.Signal{At: p.lastPoll, Kind: tracker.SystemSleep})
		p.emit(tracker.Signal{At: now, Kind: tracker.SystemWake})
	}

	p.lastPoll = now

	locked, err := p.isLocked(ctx)
	if err != nil {
		p.logger.Debug("lock check failed", slog.Any("error", err))
		return
	}

	if locked == p.locked {
		return
	}

	p.locked = locked

	kind := tracker.ScreenUnlocked
	if locked {
		kind = tracker.ScreenLocked
	}

	p.emit(tracker.Signal{At: now, Kind: kind})
}

func (p *lockPoller) run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx, time.Now())

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			p.poll(ctx, now)
		}
	}
}

// parseLsappinfo extracts the bundle id and display name from the output of
// `lsappinfo info -only bundleid -only name <asn>`.
func parseLsappinfo(out []byte) (tracker.AppInfo, error) {
	var info tracker.AppInfo

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}

		key = strings.Trim(strings.TrimSpace(key), `"`)
		value = strings.Trim(strings.TrimSpace(value), `"`)

		switch key {
		case "CFBundleIdentifier":
			info.ID = value
		case "LSDisplayName":
			info.Name = value
		}
	}

	if info.ID == "" || info.ID == "[ NULL ]" {
		if info.Name == "" {
			return info, errParseApp.Fmt("lsappinfo")
		}

		info.ID = info.Name
	}

	if info.Name == "" {
		info.Name = info.ID
	}

	return info, nil
}

// parseFrontASN extracts the application serial number from the output of
// `lsappinfo front`.
func parseFrontASN(out []byte) (string, error) {
	asn := strings.TrimSpace(string(out))
	if !strings.HasPrefix(asn, "ASN:") {
		return "", tracker.ErrNoForegroundApp
	}

	return asn, nil
}

// parseScreenLocked reports whether the console session described by the
// output of `ioreg -n Root -d1` is locked.
func parseScreenLocked(out []byte) bool {
	compact := bytes.ReplaceAll(out, []byte(" "), nil)

	return bytes.Contains(compact, []byte(`"CGSSessionScreenIsLocked"=Yes`))
}

type focusedWindow struct {
	Title           string `json:"title"`
	WMClass         string `json:"wm_class"`
	WMClassInstance string `json:"wm_class_instance"`
}

// parseFocusedWindow decodes the JSON returned by the GNOME Shell
// FocusedWindow extension.
func parseFocusedWindow(s string) (tracker.AppInfo, error) {
	if strings.TrimSpace(s) == "" || s == "{}" {
		return tracker.AppInfo{}, tracker.ErrNoForegroundApp
	}

	var w focusedWindow
	if err := json.Unmarshal([]byte(s), &w); err != nil {
		return tracker.AppInfo{}, errParseApp.Fmt("FocusedWindow").Wrap(err)
	}

	id := w.WMClass
	if id == "" {
		id = w.WMClassInstance
	}

	if id == "" {
		return tracker.AppInfo{}, tracker.ErrNoForegroundApp
	}

	return tracker.AppInfo{ID: id, Name: id}, nil
}

// D-Bus names of the signals that are watched on Linux.
const (
	ifaceFreedesktopScreenSaver = "org.freedesktop.ScreenSaver"
	ifaceGnomeScreenSaver       = "org.gnome.ScreenSaver"
	ifaceLogin1Manager          = "org.freedesktop.login1.Manager"
	ifaceLogin1Session          = "org.freedesktop.login1.Session"

	memberActiveChanged   = "ActiveChanged"
	memberPrepareForSleep = "PrepareForSleep"
	memberLock            = "Lock"
	memberUnlock          = "Unlock"
)

// signalFromDBus maps a D-Bus signal to a tracker signal.
func signalFromDBus(sig *dbus.Signal, now time.Time) (tracker.Signal, bool) {
	iface, member, ok := splitSignalName(sig.Name)
	if !ok {
		return tracker.Signal{}, false
	}

	flag := func() (bool, bool) {
		if len(sig.Body) == 0 {
			return false, false
		}

		v, ok := sig.Body[0].(bool)

		return v, ok
	}

	pick := func(on, off tracker.SignalKind) (tracker.Signal, bool) {
		v, ok := flag()
		if !ok {
			return tracker.Signal{}, false
		}

		if v {
			return tracker.Signal{At: now, Kind: on}, true
		}

		return tracker.Signal{At: now, Kind: off}, true
	}

	switch {
	case iface == ifaceGnomeScreenSaver && member == memberActiveChanged:
		return pick(tracker.ScreenLocked, tracker.ScreenUnlocked)
	case iface == ifaceFreedesktopScreenSaver && member == memberActiveChanged:
		return pick(tracker.ScreensaverStarted, tracker.ScreensaverStopped)
	case iface == ifaceLogin1Manager && member == memberPrepareForSleep:
		return pick(tracker.SystemSleep, tracker.SystemWake)
	case iface == ifaceLogin1Session && member == memberLock:
		return tracker.Signal{At: now, Kind: tracker.ScreenLocked}, true
	case iface == ifaceLogin1Session && member == memberUnlock:
		return tracker.Signal{At: now, Kind: tracker.ScreenUnlocked}, true
	}

	return tracker.Signal{}, false
}

func splitSignalName(name string) (iface, member string, ok bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return "", "", false
	}

	return name[:i], name[i+1:], true
}
