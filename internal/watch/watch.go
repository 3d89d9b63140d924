// Package watch recompiles a project whenever one of its sources changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-newman/internal/fileutil"
	"github.com/alnah/go-newman/internal/logging"
	"github.com/alnah/go-newman/internal/process"
)

// ErrCompile indicates the typesetter exited with an error.
var ErrCompile = errors.New("compile failed")

// Options describes the typesetter run.
type Options struct {
	Root     string        // project directory, working directory of the command
	BuildDir string        // relative to Root, passed as --outdir
	Command  string        // typesetter binary
	Args     []string      // arguments before --outdir
	Debounce time.Duration // quiet period before a rebuild
}

// compileFunc runs one build. Replaced in tests.
type compileFunc func(ctx context.Context) error

// Watcher rebuilds a project after its files change.
type Watcher struct {
	opts    Options
	logger  *logging.Logger
	compile compileFunc
}

// New creates a Watcher. A nil logger discards output.
func New(opts Options, logger *logging.Logger) *Watcher {
	if logger == nil {
		logger = logging.Discard()
	}
	w := &Watcher{opts: opts, logger: logger}
	w.compile = w.Compile
	return w
}

// Compile runs the typesetter once and logs the outcome.
func (w *Watcher) Compile(ctx context.Context) error {
	buildDir := filepath.Join(w.opts.Root, w.opts.BuildDir)
	if err := os.MkdirAll(buildDir, 0o750); err != nil {
		return fmt.Errorf("creating build directory: %w", err)
	}

	args := append(append([]string{}, w.opts.Args...), "--outdir="+w.opts.BuildDir)
	res, err := process.Run(ctx, w.opts.Root, w.opts.Command, args...)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		output := ""
		if res != nil {
			output = res.Output
		}
		w.logger.CompileFailed(err, output)
		if errors.Is(err, process.ErrCommandNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrCompile, err)
	}

	w.logger.CompileFinished(res.Duration)
	return nil
}

// Run watches the project tree until ctx is done. Compile failures are
// logged and watching continues; a missing typesetter stops the loop.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := w.addTree(fsw, w.opts.Root); err != nil {
		return err
	}

	changes := make(chan string)
	go w.forward(ctx, fsw, changes)

	return w.loop(ctx, changes)
}

// forward filters raw events into change paths. Created directories are
// added to the watch list since fsnotify is not recursive.
func (w *Watcher) forward(ctx context.Context, fsw *fsnotify.Watcher, changes chan<- string) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if ShouldIgnore(ev.Name, w.opts.Root, w.opts.BuildDir) {
				continue
			}
			if ev.Has(fsnotify.Create) && fileutil.DirExists(ev.Name) {
				if err := w.addTree(fsw, ev.Name); err != nil {
					w.logger.Warn("cannot watch directory", "path", ev.Name, "error", err)
				}
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.logger.ChangeDetected(ev.Name, ev.Op.String())
			select {
			case changes <- ev.Name:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// loop compiles once the change stream has been quiet for the debounce
// period. Bursts of changes produce a single build.
func (w *Watcher) loop(ctx context.Context, changes <-chan string) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			pending = true
			timer.Reset(w.opts.Debounce)
		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			if err := w.compile(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				if errors.Is(err, process.ErrCommandNotFound) {
					return err
				}
			}
		}
	}
}

// addTree watches dir and every directory below it that is not ignored.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.opts.Root && (d.Name() == ".git" || ShouldIgnore(path, w.opts.Root, w.opts.BuildDir)) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// ShouldIgnore reports whether a change to path must not trigger a build:
// editor lock, backup, undo and swap files, temporary files, and anything
// inside the build directory.
func ShouldIgnore(path, root, buildDir string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".#") ||
		strings.HasSuffix(name, "~") ||
		strings.Contains(name, "undo-tree") ||
		strings.HasSuffix(name, ".swp") ||
		strings.HasSuffix(name, ".tmp") {
		return true
	}

	if buildDir == "" {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	build := strings.Trim(filepath.ToSlash(buildDir), "/")
	return rel == build || strings.HasPrefix(rel, build+"/")
}
