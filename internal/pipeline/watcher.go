package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher rebuilds systems from abstract circuit documents as they
// land in a directory. Rapid saves are debounced so editors that
// write in bursts trigger a single rebuild.
type Watcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	pipe        *Pipeline
	dir         string
	debounceMap map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	log         *zap.Logger

	stats WatcherStats
}

// WatcherStats tracks watcher activity.
type WatcherStats struct {
	FilesCreated    int
	FilesModified   int
	FilesDeleted    int
	BuildsTriggered int
	BuildsFailed    int
	Errors          int
	LastEventTime   time.Time
	LastEventPath   string
	LastEventType   string
}

// NewWatcher creates a watcher over dir. Only *.json files are
// considered.
func NewWatcher(dir string, pipe *Pipeline, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:     watcher,
		pipe:        pipe,
		dir:         dir,
		debounceMap: make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
		log:         log,
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs until
// Stop or context cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	fail := func(err error) error {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fail(fmt.Errorf("failed to create watch directory: %w", err))
	}
	if err := w.watcher.Add(w.dir); err != nil {
		return fail(fmt.Errorf("failed to watch %s: %w", w.dir, err))
	}

	w.log.Info("watching for abstract models", zap.String("dir", w.dir))
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to drain.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.log.Warn("failed to close watcher", zap.Error(err))
	}
	w.log.Info("watcher stopped")
}

// IsWatching reports whether the event loop is running.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// Stats returns a snapshot of the watcher counters.
func (w *Watcher) Stats() WatcherStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	// Sweep the debounce map well below the settle window.
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			w.processSettled()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, ".json") {
		return
	}

	var eventType string
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = "create"
	case event.Op&fsnotify.Write != 0:
		eventType = "write"
	case event.Op&fsnotify.Remove != 0, event.Op&fsnotify.Rename != 0:
		eventType = "remove"
	default:
		return
	}

	w.log.Debug("model file event",
		zap.String("path", event.Name),
		zap.String("type", eventType))

	w.mu.Lock()
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventPath = event.Name
	w.stats.LastEventType = eventType

	switch eventType {
	case "create":
		w.stats.FilesCreated++
		w.debounceMap[event.Name] = time.Now()
	case "write":
		w.stats.FilesModified++
		w.debounceMap[event.Name] = time.Now()
	case "remove":
		w.stats.FilesDeleted++
		delete(w.debounceMap, event.Name)
	}
	w.mu.Unlock()
}

// processSettled rebuilds files whose events have settled past the
// debounce window.
func (w *Watcher) processSettled() {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, eventTime := range w.debounceMap {
		if now.Sub(eventTime) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.debounceMap, path)
		}
	}
	w.mu.Unlock()

	for _, path := range settled {
		w.rebuild(path)
	}
}

func (w *Watcher) rebuild(path string) {
	doc, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		w.log.Warn("failed to read model", zap.String("path", path), zap.Error(err))
		w.mu.Lock()
		w.stats.Errors++
		w.mu.Unlock()
		return
	}

	w.mu.Lock()
	w.stats.BuildsTriggered++
	w.mu.Unlock()

	report, err := w.pipe.BuildDocument(doc, ModelNameFromPath(path))
	if err != nil {
		w.log.Warn("rebuild failed", zap.String("path", path), zap.Error(err))
		w.mu.Lock()
		w.stats.BuildsFailed++
		w.mu.Unlock()
		return
	}

	w.log.Info("model rebuilt",
		zap.String("path", path),
		zap.String("system", report.SystemPath),
		zap.String("script", report.ScriptPath))
}

// ModelNameFromPath turns a document file name into a name the
// simulation backend accepts as an identifier.
func ModelNameFromPath(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name = b.String()
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "model_" + name
	}
	return name
}
