package platform

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timetrackerpro/timetracker/internal/logger"
	"github.com/timetrackerpro/timetracker/tracker"
)

var now = time.Date(2026, time.October, 12, 9, 0, 0, 0, time.UTC)

func TestParseLsappinfo(t *testing.T) {
	testCases := []struct {
		name    string
		out     string
		want    tracker.AppInfo
		wantErr bool
	}{
		{
			name: "bundle id and name",
			out:  "\"CFBundleIdentifier\"=\"com.apple.Safari\"\n\"LSDisplayName\"=\"Safari\"\n",
			want: tracker.AppInfo{ID: "com.apple.Safari", Name: "Safari"},
		},
		{
			name: "missing bundle id",
			out:  "\"CFBundleIdentifier\"=[ NULL ]\n\"LSDisplayName\"=\"java\"\n",
			want: tracker.AppInfo{ID: "java", Name: "java"},
		},
		{
			name:    "empty output",
			out:     "",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseLsappinfo([]byte(tc.out))
			if tc.wantErr {
				assert.ErrorIs(t, err, errParseApp)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFrontASN(t *testing.T) {
	asn, err := parseFrontASN([]byte("ASN:0x0-0x1a01a:\n"))
	require.NoError(t, err)
	assert.Equal(t, "ASN:0x0-0x1a01a:", asn)

	_, err = parseFrontASN([]byte("\n"))
	assert.ErrorIs(t, err, tracker.ErrNoForegroundApp)
}

func TestParseScreenLocked(t *testing.T) {
	locked := []byte(`    | "IOConsoleUsers" = ({"kCGSSessionOnConsoleKey"=Yes,"CGSSessionScreenIsLocked"=Yes})`)
	unlocked := []byte(`    | "IOConsoleUsers" = ({"kCGSSessionOnConsoleKey"=Yes})`)

	assert.True(t, parseScreenLocked(locked))
	assert.False(t, parseScreenLocked(unlocked))
}

func TestParseFocusedWindow(t *testing.T) {
	got, err := parseFocusedWindow(`{"title":"main.go - code","wm_class":"Code","wm_class_instance":"code"}`)
	require.NoError(t, err)
	assert.Equal(t, tracker.AppInfo{ID: "Code", Name: "Code"}, got)

	got, err = parseFocusedWindow(`{"wm_class_instance":"kitty"}`)
	require.NoError(t, err)
	assert.Equal(t, "kitty", got.ID)

	_, err = parseFocusedWindow("{}")
	assert.ErrorIs(t, err, tracker.ErrNoForegroundApp)

	_, err = parseFocusedWindow("not json")
	assert.ErrorIs(t, err, errParseApp)
}

func TestSignalFromDBus(t *testing.T) {
	testCases := []struct {
		name string
		sig  *dbus.Signal
		want tracker.SignalKind
		ok   bool
	}{
		{
			name: "gnome lock",
			sig:  &dbus.Signal{Name: "org.gnome.ScreenSaver.ActiveChanged", Body: []any{true}},
			want: tracker.ScreenLocked,
			ok:   true,
		},
		{
			name: "gnome unlock",
			sig:  &dbus.Signal{Name: "org.gnome.ScreenSaver.ActiveChanged", Body: []any{false}},
			want: tracker.ScreenUnlocked,
			ok:   true,
		},
		{
			name: "screensaver",
			sig:  &dbus.Signal{Name: "org.freedesktop.ScreenSaver.ActiveChanged", Body: []any{true}},
			want: tracker.ScreensaverStarted,
			ok:   true,
		},
		{
			name: "sleep",
			sig:  &dbus.Signal{Name: "org.freedesktop.login1.Manager.PrepareForSleep", Body: []any{true}},
			want: tracker.SystemSleep,
			ok:   true,
		},
		{
			name: "wake",
			sig:  &dbus.Signal{Name: "org.freedesktop.login1.Manager.PrepareForSleep", Body: []any{false}},
			want: tracker.SystemWake,
			ok:   true,
		},
		{
			name: "session unlock",
			sig:  &dbus.Signal{Name: "org.freedesktop.login1.Session.Unlock"},
			want: tracker.ScreenUnlocked,
			ok:   true,
		},
		{
			name: "missing body",
			sig:  &dbus.Signal{Name: "org.gnome.ScreenSaver.ActiveChanged"},
		},
		{
			name: "unrelated",
			sig:  &dbus.Signal{Name: "org.freedesktop.DBus.NameAcquired", Body: []any{"x"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := signalFromDBus(tc.sig, now)

			assert.Equal(t, tc.ok, ok)

			if tc.ok {
				assert.Equal(t, tc.want, got.Kind)
				assert.Equal(t, now, got.At)
			}
		})
	}
}

func TestLockPoller(t *testing.T) {
	var (
		locked  bool
		signals []tracker.Signal
	)

	p := &lockPoller{
		isLocked: func(context.Context) (bool, error) {
			return locked, nil
		},
		emit: func(sig tracker.Signal) {
			signals = append(signals, sig)
		},
		logger:   logger.Discard(),
		interval: pollInterval,
	}

	ctx := context.Background()

	p.poll(ctx, now)
	assert.Empty(t, signals)

	locked = true
	p.poll(ctx, now.Add(2*time.Second))

	p.poll(ctx, now.Add(4*time.Second))

	locked = false
	p.poll(ctx, now.Add(10*time.Minute))

	require.Len(t, signals, 4)
	assert.Equal(t, tracker.ScreenLocked, signals[0].Kind)
	assert.Equal(t, tracker.SystemSleep, signals[1].Kind)
	assert.Equal(t, now.Add(4*time.Second), signals[1].At)
	assert.Equal(t, tracker.SystemWake, signals[2].Kind)
	assert.Equal(t, tracker.ScreenUnlocked, signals[3].Kind)
}

func TestLockPollerIgnoresProbeErrors(t *testing.T) {
	var signals []tracker.Signal

	p := &lockPoller{
		isLocked: func(context.Context) (bool, error) {
			return true, errors.New("ioreg failed")
		},
		emit: func(sig tracker.Signal) {
			signals = append(signals, sig)
		},
		logger:   logger.Discard(),
		interval: pollInterval,
	}

	p.poll(context.Background(), now)

	assert.Empty(t, signals)
}
