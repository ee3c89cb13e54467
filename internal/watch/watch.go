// Package watch recompiles source files when they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event for a file
// before it is recompiled.
const DefaultDebounce = 100 * time.Millisecond

// CompileFunc compiles one source file.
type CompileFunc func(ctx context.Context, src string) error

// Options tunes a Watcher.
type Options struct {
	Debounce time.Duration
	Logger   *log.Logger
	// Report is called after every compile, including failed ones.
	Report func(src string, err error)
}

// Watcher compiles a fixed set of sources once, then again after each
// write. Compiles run one at a time on the Run goroutine.
type Watcher struct {
	fsw     *fsnotify.Watcher
	sources map[string]string // absolute path -> path as given
	order   []string          // as given
	compile CompileFunc
	opts    Options
}

// New starts watching the directories containing sources. Directories are
// watched rather than files so that editors that save via rename still
// trigger a rebuild.
func New(sources []string, compile CompileFunc, opts Options) (*Watcher, error) {
	if len(sources) == 0 {
		return nil, errors.New("watch: no sources")
	}
	if compile == nil {
		return nil, errors.New("watch: nil compile func")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &Watcher{fsw: fsw, sources: make(map[string]string), compile: compile, opts: opts}
	dirs := make(map[string]struct{})
	for _, src := range sources {
		abs, err := filepath.Abs(src)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", src, err)
		}
		if _, dup := w.sources[abs]; dup {
			continue
		}
		w.sources[abs] = src
		w.order = append(w.order, src)
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = struct{}{}
	}
	return w, nil
}

// Run compiles every source, then recompiles changed ones until ctx is done.
// It closes the underlying watcher before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	for _, src := range w.order {
		if ctx.Err() != nil {
			return nil
		}
		w.build(ctx, src)
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			src, ok := w.sources[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}
			if w.opts.Logger != nil {
				w.opts.Logger.Debug("source changed", "src", src, "op", ev.Op.String())
			}
			pending[src] = struct{}{}
			timer.Reset(w.opts.Debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if w.opts.Logger != nil {
				w.opts.Logger.Warn("watch error", "err", err)
			}
		case <-timer.C:
			batch := make([]string, 0, len(pending))
			for src := range pending {
				batch = append(batch, src)
			}
			sort.Strings(batch)
			pending = make(map[string]struct{})
			for _, src := range batch {
				if ctx.Err() != nil {
					return nil
				}
				w.build(ctx, src)
			}
		}
	}
}

func (w *Watcher) build(ctx context.Context, src string) {
	err := w.compile(ctx, src)
	if w.opts.Logger != nil {
		if err != nil {
			w.opts.Logger.Debug("compile failed", "src", src)
		} else {
			w.opts.Logger.Debug("compiled", "src", src)
		}
	}
	if w.opts.Report != nil {
		w.opts.Report(src, err)
	}
}
