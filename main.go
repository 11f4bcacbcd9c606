// Package main provides the entry point for the Watermark Studio application.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"go.uber.org/zap"

	"watermark-studio/internal/app"
	"watermark-studio/internal/config"
	"watermark-studio/internal/logger"
	"watermark-studio/internal/version"
	"watermark-studio/ui/mainwindow"
	"watermark-studio/ui/prefs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Log, cfg.Mode); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.String("version", version.String()),
		zap.String("mode", cfg.Mode),
		zap.String("env_file", cfg.EnvFile))

	session, err := app.New(cfg, logger.Lg)
	if err != nil {
		logger.Error("failed to create session", zap.Error(err))
		os.Exit(1)
	}

	fyneApp := fyneapp.NewWithID(version.AppID)
	fyneApp.Settings().SetTheme(&app.StudioTheme{})

	win := mainwindow.New(fyneApp, session, prefs.Load(), logger.Named("ui"))

	// An image path on the command line is opened at startup.
	if len(os.Args) > 1 {
		if err := session.LoadImage(os.Args[1]); err != nil {
			logger.Warn("failed to open image", zap.String("path", os.Args[1]), zap.Error(err))
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Development() {
		setupHotReload(ctx, win)
	}

	win.ShowAndRun()
}

// setupHotReload offers a restart when the binary is recompiled.
func setupHotReload(ctx context.Context, win *mainwindow.MainWindow) {
	log := logger.Named("reload")
	watcher, err := app.NewBinaryWatcher(2*time.Second, log)
	if err != nil {
		log.Warn("hot reload disabled", zap.Error(err))
		return
	}
	log.Info("watching executable", zap.String("path", watcher.Path()))

	go watcher.Run(ctx, func() {
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					return
				}
				win.SavePreferences()
				logger.Sync()
				if err := watcher.Restart(); err != nil {
					log.Error("restart failed", zap.Error(err))
				}
			}, win.Window)
	})
}
