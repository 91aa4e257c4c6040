package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/catchsup/catchsup/internal/cli/formatter"
	"github.com/catchsup/catchsup/internal/notifier"
	"github.com/catchsup/catchsup/internal/store"
)

func newWatchCmd(app *App) *cobra.Command {
	var mute bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the notifier in the foreground",
		Long: "Watch polls the goals, keeps the scheduled goal fresh and " +
			"prints the notifications a desktop shell would show. External " +
			"edits to the state file are picked up live.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			st := app.Store.GetState()
			ports := newConsolePorts(cmd.OutOrStdout(), mute || st.Settings.MuteSounds)

			coord := notifier.New(app.Store, ports, app.Bus)
			coord.PollInterval = time.Duration(app.Config.Notifier.PollIntervalSec) * time.Second
			defer coord.Stop()

			stop, err := watchStateFile(app.Config.StatePath(), app.Store)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: not watching state file: %v\n", err)
			} else {
				defer stop()
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Watching. Ctrl-C to stop."))
			coord.Run(ctx)
			return nil
		},
	}

	cmd.Flags().BoolVar(&mute, "mute", false, "Suppress sound cues")

	return cmd
}

// watchStateFile reloads the controller when another process rewrites
// the state file. The parent directory is watched because saves swap
// the file by rename.
func watchStateFile(path string, ctrl *store.Controller) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})

	go func() {
		var debounce *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				// Debounce: the save sequence touches the path twice.
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(200*time.Millisecond, func() {
					reloadIfChanged(path, ctrl)
				})

			case <-watcher.Errors:
				// Transient watch errors are not actionable here.

			case <-done:
				return
			}
		}
	}()

	cleanup := func() {
		close(done)
		watcher.Close()
	}
	return cleanup, nil
}

// reloadIfChanged replaces the in-memory state with the file's
// contents unless the file still matches what we hold, which is the
// signature of our own save.
func reloadIfChanged(path string, ctrl *store.Controller) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return
	}
	current, err := store.Encode(ctrl.GetState())
	if err == nil && bytes.Equal(bytes.TrimSpace(blob), bytes.TrimSpace(current)) {
		return
	}
	loaded, err := store.Decode(blob)
	if err != nil {
		return
	}
	ctrl.ApplyUpdate(func(st *store.State) { *st = *loaded })
}
