package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/timetrackerpro/timetracker/dashboard"
	"github.com/timetrackerpro/timetracker/internal/config"
	"github.com/timetrackerpro/timetracker/internal/notify"
	"github.com/timetrackerpro/timetracker/internal/pathutil"
	"github.com/timetrackerpro/timetracker/internal/platform"
	"github.com/timetrackerpro/timetracker/internal/static"
	"github.com/timetrackerpro/timetracker/store"
	"github.com/timetrackerpro/timetracker/tracker"
)

const snapshotBuffer = 16

// writeStatus mirrors every snapshot into the status file until the
// tracker stops publishing.
func writeStatus(snapshots <-chan tracker.Snapshot, path string, logger *slog.Logger) {
	for snap := range snapshots {
		if err := tracker.WriteStatusFile(path, &snap); err != nil {
			logger.Debug("writing status file failed", slog.Any("error", err))
		}
	}
}

// watchLock feeds lock signals into t until ctx is cancelled.
func watchLock(ctx context.Context, t *tracker.Tracker, logger *slog.Logger) {
	err := platform.WatchLock(ctx, logger, t.HandleSignal)
	if errors.Is(err, platform.ErrUnsupported) {
		logger.Warn("lock detection is not available, auto-pause is disabled")
		return
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("lock detection stopped", slog.Any("error", err))
	}
}

// runAction starts the tracker with the dashboard, or headless until an
// interrupt is received.
func runAction(ctx *cli.Context) error {
	logger := slog.Default()
	configPath := pathutil.ConfigFilePath()

	cfg, err := config.New(
		config.WithPromptConfig(configPath),
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded", slog.String("config", cfg.String()))

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	icon, err := static.Install(filepath.Dir(pathutil.DBFilePath()))
	if err != nil {
		logger.Warn("installing notification icon failed", slog.Any("error", err))
	}

	notifier := notify.New(icon, cfg.Notifications.Sound, logger)

	headless := notify.NewPrompter(notifier, cfg.Notifications.Enabled, logger)

	var (
		prompter tracker.Prompter = headless
		board    *dashboard.Prompter
	)

	if !cfg.CLI.Headless {
		board = dashboard.NewPrompter(prompter)
		prompter = board
	}

	t := tracker.New(tracker.NewLoop(), cfg.Settings(), tracker.Deps{
		Sessions:     db,
		Accumulators: db,
		Notices:      db,
		Foreground:   platform.ForegroundApp(logger),
		Notifier:     notifier,
		Prompter:     prompter,
		Logger:       logger,
	})

	sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCtx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	status := t.Subscribe(snapshotBuffer)

	var program *tea.Program

	if board != nil {
		model := dashboard.New(t, t.Subscribe(snapshotBuffer), board, cfg.Display)
		program = tea.NewProgram(model, tea.WithAltScreen())
	}

	err = config.Watch(configPath, logger, func(updated *config.Config) {
		if err := config.WithCLIConfig(ctx)(updated); err != nil {
			logger.Warn("ignoring settings change", slog.Any("error", err))
			return
		}

		t.ApplySettings(updated.Settings())
		notifier.SetSound(updated.Notifications.Sound)
		headless.SetEnabled(updated.Notifications.Enabled)

		if program != nil {
			program.Send(dashboard.DisplayChanged(updated.Display))
		}

		logger.Info("settings reloaded")
	})
	if err != nil {
		logger.Warn("watching the settings file failed", slog.Any("error", err))
	}

	var g errgroup.Group

	g.Go(func() error {
		t.Run(runCtx)
		return nil
	})

	g.Go(func() error {
		writeStatus(status, pathutil.StatusFilePath(), logger)
		return nil
	})

	g.Go(func() error {
		watchLock(runCtx, t, logger)
		return nil
	})

	if c := cfg.CLI.StartCategory; c != "" {
		t.Start(c)
	}

	logger.Info(
		"tracker started",
		slog.Bool("headless", program == nil),
		slog.String("start", string(cfg.CLI.StartCategory)),
	)

	if program == nil {
		pterm.Info.Println("timetracker is running. Press Ctrl+C to stop")
		<-runCtx.Done()
	} else {
		go func() {
			<-runCtx.Done()
			program.Quit()
		}()

		_, err = program.Run()
	}

	cancel()

	if waitErr := g.Wait(); waitErr != nil {
		return waitErr
	}

	return err
}
