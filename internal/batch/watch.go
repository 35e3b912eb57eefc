package batch

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/gubarz/adfmd/internal/logger"
)

// Watcher re-converts source files under a directory whenever they change.
type Watcher struct {
	conv *Converter
	src  string
	dst  string
	dir  Direction
}

// NewWatcher creates a watcher mirroring src into dst.
func (c *Converter) NewWatcher(src, dst string, dir Direction) (*Watcher, error) {
	if dir != ToADF && dir != ToMarkdown {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDirection, dir)
	}
	return &Watcher{conv: c, src: src, dst: dst, dir: dir}, nil
}

// Run watches until ctx is cancelled, sending one Result per conversion.
// The results channel is closed on return.
func (w *Watcher) Run(ctx context.Context, results chan<- Result) error {
	defer close(results)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	// fsnotify is not recursive; every directory is added on its own.
	err = afero.Walk(w.conv.Fs, w.src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.src, err)
	}
	logger.Info("watching %s for %s changes", w.src, w.dir.SourceExt())

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := w.conv.Fs.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.Add(event.Name); err != nil {
						logger.Warn("watch %s: %v", event.Name, err)
					}
					continue
				}
			}
			res, ok := w.handleEvent(event)
			if !ok {
				continue
			}
			select {
			case results <- res:
			case <-ctx.Done():
				return nil
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)
		}
	}
}

// handleEvent converts the file named by event if it is a relevant source change.
func (w *Watcher) handleEvent(event fsnotify.Event) (Result, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return Result{}, false
	}
	if !w.dir.Matches(event.Name) {
		return Result{}, false
	}

	target, err := TargetPath(w.src, w.dst, event.Name, w.dir)
	if err != nil {
		return Result{Source: event.Name, Err: err}, true
	}
	return w.conv.ConvertFile(event.Name, target, w.dir), true
}
