package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Errors returned by the watcher.
var (
	// ErrWatcherClosed indicates an operation on a closed watcher.
	ErrWatcherClosed = errors.New("watcher is closed")

	// ErrAlreadyWatching indicates the source is already tracked.
	ErrAlreadyWatching = errors.New("already watching source")
)

// Result describes one regeneration triggered by the watcher.
type Result struct {
	Source string
	Output string
	Err    error
}

// Watcher regenerates sources when they change on disk.
//
// It watches the directories containing the sources, because editors often
// replace files instead of writing them in place.
type Watcher struct {
	gen      *Generator
	fsw      *fsnotify.Watcher
	debounce time.Duration
	onResult func(Result)

	mu      sync.Mutex
	sources map[string]bool
	dirs    map[string]bool
	timers  map[string]*time.Timer
	closed  bool

	fire chan string
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets how long to wait after the last change to a source
// before regenerating it.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithResultHandler registers a callback run after every regeneration.
func WithResultHandler(fn func(Result)) WatchOption {
	return func(w *Watcher) {
		w.onResult = fn
	}
}

// NewWatcher creates a watcher that regenerates with gen.
func NewWatcher(gen *Generator, opts ...WatchOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		gen:      gen,
		fsw:      fsw,
		debounce: 200 * time.Millisecond,
		sources:  make(map[string]bool),
		dirs:     make(map[string]bool),
		timers:   make(map[string]*time.Timer),
		fire:     make(chan string, 16),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Add tracks a source file.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		return err
	}
	if w.gen.IsGenerated(abs) {
		return fmt.Errorf("%s is a generated file", path)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.sources[abs] {
		return ErrAlreadyWatching
	}

	dir := filepath.Dir(abs)
	if !w.dirs[dir] {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.sources[abs] = true
	return nil
}

// Sources returns the number of tracked sources.
func (w *Watcher) Sources() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.sources)
}

// Run processes file events until ctx is cancelled or the watcher is
// closed. Generation failures are reported and logged, not returned.
func (w *Watcher) Run(ctx context.Context) error {
	log := w.gen.log.WithComponent("watcher")
	log.Info("watching %d source(s)", w.Sources())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn("fsnotify: %v", err)

		case path := <-w.fire:
			out, err := w.gen.File(path)
			if err != nil {
				log.WithField("source", path).Error("generation failed: %v", err)
			}
			if w.onResult != nil {
				w.onResult(Result{Source: path, Output: out, Err: err})
			}
		}
	}
}

// handle schedules regeneration for writes and creates of tracked sources.
func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || !w.sources[abs] {
		return
	}
	if t, ok := w.timers[abs]; ok {
		t.Stop()
	}
	w.timers[abs] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, abs)
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}
		select {
		case w.fire <- abs:
		default:
			// queue full or Run has returned
		}
	})
}

// Close stops the watcher. Pending regenerations are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for _, t := range w.timers {
		t.Stop()
	}
	w.timers = nil
	w.mu.Unlock()

	return w.fsw.Close()
}
