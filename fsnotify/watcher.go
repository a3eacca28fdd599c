// Package fsnotify watches documentation directories and triggers index
// refreshes when their Markdown files change.
package fsnotify

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before a
// refresh runs.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports bursts of changes to Markdown files in one directory.
// The parent directory is watched as well so that an import replacing the
// whole directory is noticed.
type Watcher struct {
	dir      string
	ext      string
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
}

// Options configures a Watcher.
type Options struct {
	// Quiet period before fn runs; DefaultDebounce when zero.
	Debounce time.Duration

	// Extension of files that trigger a refresh; ".md" when empty.
	Ext string

	Logger *slog.Logger
}

// New starts watching dir. Call Run to deliver events and Close when done.
func New(dir string, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve absolute path: %w", err)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Ext == "" {
		opts.Ext = ".md"
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(abs); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", abs, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		dir:      abs,
		ext:      opts.Ext,
		debounce: opts.Debounce,
		logger:   opts.Logger,
		fsw:      fsw,
	}, nil
}

// Run calls fn once per burst of relevant changes until ctx is done.
// Errors from fn are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				w.logger.Debug("docs changed", "path", event.Name, "op", event.Op.String())
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "dir", w.dir, "err", err)
		case <-timer.C:
			begin := time.Now()
			err := fn(ctx)
			if err != nil {
				w.logger.Error("refresh after change", "dir", w.dir, "duration", time.Since(begin), "err", err)
			} else {
				w.logger.Info("refresh after change", "dir", w.dir, "duration", time.Since(begin))
			}
		}
	}
}

// relevant reports whether event changes the indexed content. Replacing
// the directory itself re-arms the watch on the new directory.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Clean(event.Name)
	if name == w.dir {
		if event.Has(fsnotify.Create) {
			if err := w.fsw.Add(w.dir); err != nil {
				w.logger.Warn("rewatch directory", "dir", w.dir, "err", err)
			}
		}
		return true
	}
	return filepath.Dir(name) == w.dir && strings.HasSuffix(name, w.ext)
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
