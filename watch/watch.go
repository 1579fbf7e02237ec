// Package watch reports writes to a set of files, coalescing the bursts of
// writes editors make when saving.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// defaultFlushDuration is the time given for multiple editor writes to settle.
const defaultFlushDuration time.Duration = 25 * time.Millisecond

// Notifier watches the directories holding a set of files and signals on
// Update when any of the files is written or recreated.
type Notifier struct {
	files         map[string]bool // cleaned file paths
	watcher       *fsnotify.Watcher
	update        chan struct{}
	flushDuration time.Duration
}

// New registers a Notifier for the given files. The directories holding the
// files are watched rather than the files themselves so that editors which
// save by renaming a new file into place are still seen.
func New(files ...string) (*Notifier, error) {
	if len(files) < 1 {
		return nil, errors.New("at least one file to watch is needed")
	}

	n := &Notifier{
		files:         map[string]bool{},
		update:        make(chan struct{}),
		flushDuration: defaultFlushDuration,
	}

	dirs := map[string]bool{}
	for _, f := range files {
		path := filepath.Clean(f)
		check, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("file %q not found: %w", path, err)
		}
		if check.IsDir() {
			return nil, fmt.Errorf("%q is a directory", path)
		}
		n.files[path] = true
		dirs[filepath.Dir(path)] = true
	}

	var err error
	n.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify new watcher error: %w", err)
	}
	for dir := range dirs {
		if err := n.watcher.Add(dir); err != nil {
			_ = n.watcher.Close()
			return nil, fmt.Errorf("fsnotify add error for dir %q: %w", dir, err)
		}
	}
	return n, nil
}

// Watch blocks until ctx is done or the underlying watcher fails, so it
// needs to be run in a goroutine. Consumers range over Update to receive
// change notices; Update is closed when Watch returns.
func (n *Notifier) Watch(ctx context.Context) error {

	// events buffers matched fsnotify events for the flush goroutine.
	events := make(chan struct{})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case err, ok := <-n.watcher.Errors:
				if !ok {
					return errors.New("unexpected close from watcher.Errors")
				}
				return fmt.Errorf("unexpected notify error: %w", err)
			case e, ok := <-n.watcher.Events:
				if !ok {
					return errors.New("unexpected close from watcher.Events")
				}
				if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
					continue
				}
				if !n.files[filepath.Clean(e.Name)] {
					continue
				}
				select {
				case events <- struct{}{}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	})

	// Stack writes arriving within flushDuration into a single update.
	g.Go(func() error {
		pending := false
		timer := time.NewTicker(n.flushDuration)
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case _, ok := <-events:
				if !ok {
					return nil
				}
				pending = true
				timer.Reset(n.flushDuration)
			case <-timer.C:
				if !pending {
					continue
				}
				select {
				case n.update <- struct{}{}:
					pending = false
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	})

	err := g.Wait()
	close(n.update)
	_ = n.watcher.Close()
	return err
}

// Update returns a channel signalling that a watched file has changed.
func (n *Notifier) Update() <-chan struct{} {
	return n.update
}
