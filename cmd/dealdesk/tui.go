package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/garrettladley/dealdesk/internal/client/backend"
	"github.com/garrettladley/dealdesk/internal/client/release"
	"github.com/garrettladley/dealdesk/internal/config"
	"github.com/garrettladley/dealdesk/internal/db"
	"github.com/garrettladley/dealdesk/internal/i18n"
	"github.com/garrettladley/dealdesk/internal/layout"
	"github.com/garrettladley/dealdesk/internal/paths"
	"github.com/garrettladley/dealdesk/internal/store"
	"github.com/garrettladley/dealdesk/internal/tui"
	"github.com/garrettladley/dealdesk/internal/xslog"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if _, err := paths.EnsureDir(); err != nil {
		return err
	}

	logger, closeLog, err := openLog()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(xslog.WithLogger(cmd.Context(), logger))
	defer cancel()

	dbPath, err := paths.DB()
	if err != nil {
		return err
	}
	sqlDB, err := db.Open(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	catalog, err := i18n.Load(cfg.Locale)
	if err != nil {
		return err
	}

	lay, updates := loadLayout(ctx, logger, cfg.LayoutPath)

	st := store.New()
	client := backend.New(cfg.APIURL,
		backend.WithOrgID(cfg.OrgID),
		backend.WithLogger(logger),
	)
	syncer := store.NewSyncer(client, st,
		store.WithCache(store.NewCache(sqlDB), cfg.OrgID),
		store.WithInterval(cfg.PollInterval),
		store.WithLogger(logger),
	)

	var wg sync.WaitGroup
	wg.Go(func() { syncer.Run(ctx) })

	model := tui.New(tui.Deps{
		Ctx:           ctx,
		Logger:        logger,
		Store:         st,
		Syncer:        syncer,
		Catalog:       catalog,
		OrgID:         cfg.OrgID,
		Layout:        lay,
		LayoutUpdates: updates,
		Releases:      release.New(),
		FPS:           cfg.FPS,
		ReducedMotion: cfg.ReducedMotion,
	})

	p := tea.NewProgram(&model, tea.WithContext(ctx))
	_, err = p.Run()

	model.Close()
	cancel()
	wg.Wait()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func openLog() (*slog.Logger, func(), error) {
	logPath, err := paths.Log()
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return xslog.NewLoggerFromEnv(f), func() { _ = f.Close() }, nil
}

// loadLayout falls back to the default layout when the file is broken, and
// runs without live reload when it cannot be watched.
func loadLayout(ctx context.Context, logger *slog.Logger, path string) (layout.Layout, <-chan layout.Update) {
	if path == "" {
		p, err := paths.Layout()
		if err != nil {
			logger.WarnContext(ctx, "no layout path", xslog.Error(err))
			return layout.Default(), nil
		}
		path = p
	}

	lay, err := layout.Load(path)
	if err != nil {
		logger.WarnContext(ctx, "invalid layout, using default", xslog.Path(path), xslog.Error(err))
		lay = layout.Default()
	}

	updates, err := layout.Watch(ctx, path)
	if err != nil {
		logger.WarnContext(ctx, "layout reload disabled", xslog.Path(path), xslog.Error(err))
		return lay, nil
	}
	return lay, updates
}
