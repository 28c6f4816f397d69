// Package watch reports changes to a single file, debouncing bursts of
// filesystem events (editors often write, chmod and rename in quick
// succession) into one notification.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 100 * time.Millisecond

// Option customises a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the watcher waits for events to settle.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger used for watcher errors.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher watches one file through its parent directory so that
// replace-by-rename saves are seen too.
type Watcher struct {
	mu       sync.Mutex
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.Logger
	changes  chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	stopOnce sync.Once
}

// New creates a watcher for path. Nothing is watched until Start.
func New(path string, options ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: new watcher: %w", err)
	}

	w := &Watcher{
		path:     abs,
		watcher:  fsw,
		debounce: defaultDebounce,
		logger:   zap.NewNop(),
		changes:  make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w, nil
}

// Changes delivers one value per settled burst of changes. Notifications
// coalesce while the receiver is busy.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start begins watching in a background goroutine. It returns once the
// directory watch is registered.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(w.path), err)
	}
	w.running = true
	go w.run(ctx)
	return nil
}

// Stop ends the watch loop and releases the underlying watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		running := w.running
		w.mu.Unlock()

		close(w.stopCh)
		if running {
			<-w.doneCh
		}
		if err := w.watcher.Close(); err != nil {
			w.logger.Warn("watcher close failed", zap.Error(err))
		}
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(evt) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.String("path", w.path), zap.Error(err))
		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}

func (w *Watcher) relevant(evt fsnotify.Event) bool {
	if filepath.Clean(evt.Name) != w.path {
		return false
	}
	return evt.Has(fsnotify.Write) || evt.Has(fsnotify.Create) || evt.Has(fsnotify.Rename)
}
