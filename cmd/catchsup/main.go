package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/catchsup/catchsup/internal/cli"
	"github.com/catchsup/catchsup/internal/config"
	"github.com/catchsup/catchsup/internal/db"
	"github.com/catchsup/catchsup/internal/events"
	"github.com/catchsup/catchsup/internal/repository"
	"github.com/catchsup/catchsup/internal/service"
	"github.com/catchsup/catchsup/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Data directory: env var or the config default.
	dataDir := os.Getenv("CATCHSUP_DIR")
	if dataDir == "" {
		dataDir = config.Default().DataDir
	}
	cfg, err := config.Load(dataDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.DataDir = dataDir

	// Load state; a corrupt file falls back to defaults but is worth
	// a warning since the old file survives as .bak after first save.
	persister := &store.FilePersister{Path: cfg.StatePath()}
	state, err := store.LoadOrDefault(persister)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; starting fresh\n", err)
	}

	ctrl := store.NewController(state)

	// The config file owns the scheduling knobs.
	ctrl.ApplyUpdate(func(st *store.State) {
		st.Scheduler.ScheduleIntervalMin = cfg.Scheduler.ScheduleIntervalMin
		st.Scheduler.DailyLimitMin = cfg.Scheduler.DailyLimitMin
		st.Scheduler.NoDisturbChoices = cfg.Scheduler.NoDisturbChoices
		st.Settings.SoundVolume = cfg.Sound.Volume
		if cfg.Sound.Mute {
			st.Settings.MuteSounds = true
		}
	})

	// Persist every applied update.
	ctrl.Subscribe(func(st *store.State) {
		if err := store.Save(persister, st); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: saving state: %v\n", err)
		}
	})

	bus := events.NewBus()

	// The archive is best effort; history commands degrade without it.
	var archive repository.TrainingLogArchive
	if database, err := db.OpenDB(cfg.ArchivePath()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: opening training-log archive: %v\n", err)
	} else {
		defer database.Close()
		archive = repository.NewSQLiteTrainingLogArchive(database)
	}

	goalSvc := service.NewGoalService(ctrl, bus)

	// Settle skip deductions accrued while catchsup was not running.
	goalSvc.CatchUpSkips(time.Now())

	app := &cli.App{
		Store:    ctrl,
		Bus:      bus,
		Goals:    goalSvc,
		Sessions: service.NewSessionService(ctrl, bus, archive),
		Archive:  archive,
		Config:   cfg,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
