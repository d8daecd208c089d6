package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pagesmedic/pagesmedic/pkg/config"
	"github.com/pagesmedic/pagesmedic/pkg/console"
	"github.com/pagesmedic/pagesmedic/pkg/logger"
)

var watchLog = logger.New("cli:watch")

// watchDebounce batches rapid editor events (write + rename + chmod) into a
// single diagnostic run.
const watchDebounce = 300 * time.Millisecond

// watchAndDiagnose runs diagnostics once, then re-runs whenever a workflow
// file changes, until the context is cancelled.
func watchAndDiagnose(ctx context.Context, repositoryPath string, settings *config.Config, cfg DiagnoseConfig) error {
	if err := diagnoseOnce(ctx, repositoryPath, settings, cfg); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the workflows directory when it exists; fall back to the
	// repository root so creating .github/workflows is picked up too.
	watchPath := filepath.Join(repositoryPath, ".github", "workflows")
	if _, err := os.Stat(watchPath); err != nil {
		watchPath = repositoryPath
	}
	if err := watcher.Add(watchPath); err != nil {
		return fmt.Errorf("watching %s: %w", watchPath, err)
	}

	fmt.Fprintln(os.Stderr, console.FormatInfoMessage(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", watchPath)))

	var debounce *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			watchLog.Print("watch cancelled")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			watchLog.Printf("change detected: %s %s", event.Op, event.Name)
			if debounce == nil {
				debounce = time.NewTimer(watchDebounce)
			} else {
				debounce.Reset(watchDebounce)
			}
			pending = debounce.C

		case <-pending:
			pending = nil
			fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Workflow change detected, re-running diagnostics"))
			if err := diagnoseOnce(ctx, repositoryPath, settings, cfg); err != nil {
				fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			watchLog.Printf("watcher error: %v", err)
		}
	}
}
