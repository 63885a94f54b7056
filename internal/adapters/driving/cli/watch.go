package cli

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/fhir-loader/internal/connectors/filesystem"
	"github.com/custodia-labs/fhir-loader/internal/core/domain"
	"github.com/custodia-labs/fhir-loader/internal/core/ports/driving"
	"github.com/custodia-labs/fhir-loader/internal/logger"
)

var watchSettle time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [SERVER] DIRS...",
	Short: "Upload documents as they appear in directories",
	Long: `Watches directories and uploads each file that is created or changed,
once it has been quiet for the settle period. Files are filtered with the same
--format, --pattern and --recursive rules as a directory upload.

Runs until interrupted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchSettle, "settle", 500*time.Millisecond,
		"wait this long after the last change before uploading a file")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	server, dirs, err := splitArgs(settings.Server, args)
	if err != nil {
		return err
	}

	orchestrator, filter, err := buildUploader(settings)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		kind, err := filesystem.Inspect(dir)
		if err != nil {
			return err
		}
		if kind == filesystem.Missing {
			return fmt.Errorf("%w: %s does not exist", domain.ErrSourceNotFound, dir)
		}
		if kind != filesystem.Directory {
			return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
		}
		if err := watchTree(watcher, dir, filter.Recursive); err != nil {
			return err
		}
	}
	cmd.Printf("Watching %s (Ctrl+C to stop)\n", strings.Join(dirs, ", "))

	w := &dirWatcher{
		cmd:          cmd,
		watcher:      watcher,
		orchestrator: orchestrator,
		server:       server,
		filter:       filter,
		settle:       watchSettle,
		pending:      make(map[string]time.Time),
		report:       newReporter(cmd.ErrOrStderr()),
	}
	w.run(cmd.Context())

	if flags.verbose {
		w.report.Summary()
	}
	if w.report.Failed() {
		return errUploadFailed
	}
	return nil
}

// watchTree adds dir, and its visible subdirectories when recursive.
func watchTree(watcher *fsnotify.Watcher, dir string, recursive bool) error {
	if !recursive {
		return watcher.Add(dir)
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		logger.Debug("Watching %s", path)
		return watcher.Add(path)
	})
}

// dirWatcher debounces file events and uploads settled files.
type dirWatcher struct {
	cmd          *cobra.Command
	watcher      *fsnotify.Watcher
	orchestrator driving.UploadOrchestrator
	server       string
	filter       domain.DiscoveryFilter
	settle       time.Duration
	pending      map[string]time.Time
	report       *reporter
}

func (w *dirWatcher) run(ctx context.Context) {
	tick := w.settle / 2
	if tick <= 0 {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watch error: %v", err)
		case now := <-ticker.C:
			w.flush(ctx, now)
		}
	}
}

func (w *dirWatcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return
	}

	kind, err := filesystem.Inspect(event.Name)
	if err != nil || kind == filesystem.Missing {
		return
	}
	if kind == filesystem.Directory {
		if event.Has(fsnotify.Create) && w.filter.Recursive {
			if err := watchTree(w.watcher, event.Name, true); err != nil {
				logger.Warn("Watch %s: %v", event.Name, err)
			}
		}
		return
	}
	if !w.filter.Match(event.Name) {
		return
	}
	w.pending[event.Name] = time.Now()
}

// flush uploads files that have been quiet for the settle period.
func (w *dirWatcher) flush(ctx context.Context, now time.Time) {
	var ready []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.settle {
			ready = append(ready, path)
		}
	}
	slices.Sort(ready)

	for _, path := range ready {
		delete(w.pending, path)
		req := driving.UploadRequest{Server: w.server, Specs: []string{path}, Filter: w.filter}
		for result, err := range w.orchestrator.Upload(ctx, req) {
			if err != nil {
				logger.Warn("Skipping %s: %v", path, err)
				break
			}
			w.report.Result(result)
			if result.Succeeded() {
				w.cmd.Printf("Uploaded %s (%d)\n", result.Name, result.StatusCode)
			}
		}
	}
}
