// Package watch re-runs an export whenever the content tree changes and,
// optionally, on a fixed interval.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/observability"
	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
)

// Triggers passed to the rebuild function.
const (
	TriggerInitial  = "initial"
	TriggerChange   = "change"
	TriggerInterval = "interval"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc performs one rebuild. Errors are logged; the watcher keeps running.
type RebuildFunc func(ctx context.Context, trigger string) error

// Options configures a Watcher.
type Options struct {
	Root     string
	Debounce time.Duration

	// Interval schedules periodic full rebuilds; zero disables them.
	Interval time.Duration

	// SkipInitial suppresses the rebuild Run performs on start.
	SkipInitial bool
}

// Watcher coalesces rebuild requests: at most one rebuild runs and at most
// one more waits behind it, however many requests arrive meanwhile.
type Watcher struct {
	opts     Options
	rebuild  RebuildFunc
	logger   *slog.Logger
	requests chan string
}

// New returns a watcher for opts.Root.
func New(opts Options, rebuild RebuildFunc, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{
		opts:     opts,
		rebuild:  rebuild,
		logger:   logger,
		requests: make(chan string, 1),
	}
}

// Trigger requests a rebuild. It never blocks; a request made while one is
// already pending is dropped.
func (w *Watcher) Trigger(trigger string) {
	select {
	case w.requests <- trigger:
	default:
		w.logger.Debug("Rebuild already pending", slog.String("trigger", trigger))
	}
}

// Run watches until ctx is canceled. It returns an error only when the
// watch cannot be set up.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return ferrors.RuntimeError("failed to start file watcher").WithCause(err).Build()
	}
	defer fsw.Close()

	if err := w.addDirs(fsw, w.opts.Root); err != nil {
		return ferrors.RuntimeError("failed to watch content root").
			WithCause(err).
			WithContext("root", w.opts.Root).
			Build()
	}

	var wg sync.WaitGroup
	defer wg.Wait()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.work(ctx)
	}()

	if !w.opts.SkipInitial {
		w.Trigger(TriggerInitial)
	}

	if w.opts.Interval > 0 {
		sched, err := w.schedule()
		if err != nil {
			return ferrors.RuntimeError("failed to schedule periodic rebuilds").WithCause(err).Build()
		}
		defer func() {
			if err := sched.Shutdown(); err != nil {
				w.logger.Warn("Scheduler shutdown failed", logfields.Error(err))
			}
		}()
	}

	deb := newDebouncer(w.opts.Debounce, func() { w.Trigger(TriggerChange) })
	defer deb.Stop()

	w.logger.Info("Watching for changes",
		logfields.Path(w.opts.Root),
		slog.Duration("debounce", w.opts.Debounce),
		slog.Duration("interval", w.opts.Interval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Watcher stopped")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev, deb)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case trigger := <-w.requests:
			w.runOnce(ctx, trigger)
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context, trigger string) {
	ctx = observability.WithTrigger(ctx, trigger)
	log := observability.Logger(ctx, w.logger)

	start := time.Now()
	log.Info("Rebuilding")
	err := w.rebuild(ctx, trigger)
	switch {
	case err == nil:
		log.Info("Rebuild finished", logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	case errors.Is(err, context.Canceled):
		log.Debug("Rebuild canceled")
	default:
		log.Warn("Rebuild failed", logfields.Error(err))
	}
}

func (w *Watcher) schedule() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	if _, err := sched.NewJob(
		gocron.DurationJob(w.opts.Interval),
		gocron.NewTask(w.Trigger, TriggerInterval),
		gocron.WithName("periodic-rebuild"),
	); err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("schedule periodic rebuild: %w", err)
	}
	sched.Start()
	return sched, nil
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event, deb *debouncer) {
	if ignored(ev.Name) || ev.Op == fsnotify.Chmod {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			if err := w.addDirs(fsw, ev.Name); err != nil {
				w.logger.Warn("Watching new directory failed", logfields.Path(ev.Name), logfields.Error(err))
			}
		}
	}
	w.logger.Debug("Change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	deb.Trigger()
}

// addDirs watches root and every non-hidden directory below it.
func (w *Watcher) addDirs(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("watch %s: %w", root, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && ignored(path) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			w.logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}
