package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/radovskyb/watcher"
)

const watchInterval = 200 * time.Millisecond

// rerenderOnChange blocks, rebuilding whenever the content directory changes,
// until ctx is cancelled. Failed rebuilds are logged; the watcher keeps running.
func rerenderOnChange(ctx context.Context, dir string, rebuild func(context.Context) error) error {
	w := watcher.New()
	w.SetMaxEvents(1)
	if err := w.AddRecursive(dir); err != nil {
		return err
	}
	slog.Info("Watching for changes", keyPath, dir)

	go func() {
		for {
			select {
			case ev := <-w.Event:
				slog.Debug("Change detected", keyPath, ev.Path, "op", ev.Op.String())
				if err := rebuild(ctx); err != nil {
					slog.Error("Rebuild failed", keyError, err)
				}
			case err := <-w.Error:
				slog.Warn("Watcher error", keyError, err)
			case <-w.Closed:
				return
			}
		}
	}()

	// Close is a no-op until Start is running, so wait for it first.
	go func() {
		w.Wait()
		<-ctx.Done()
		w.Close()
	}()

	return w.Start(watchInterval)
}
