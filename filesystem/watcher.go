package filesystem

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Export some types and values so that user need not import underlying package explicitly
type WatchEvent = fsnotify.Event
type WatchOp = fsnotify.Op

const (
	WatchOpCreate = fsnotify.Create
	WatchOpWrite  = fsnotify.Write
	WatchOpRemove = fsnotify.Remove
	WatchOpRename = fsnotify.Rename
	WatchOpChmod  = fsnotify.Chmod
)

var (
	ErrNonExistentWatch = fsnotify.ErrNonExistentWatch
	ErrEventOverflow    = fsnotify.ErrEventOverflow
)

// DefaultDebounce is a period events on same file are merged into one.
const DefaultDebounce = 100 * time.Millisecond

// Watcher notifies changes of watched files.
type Watcher interface {
	Watch(filepath string) error
	UnWatch(filepath string) error
	// Events fires once per file for a burst of changes.
	// Op of the event is union of the merged ops.
	Events() <-chan WatchEvent
	Errors() <-chan error
	Close() error
}

type watcherImpl struct {
	w            *fsnotify.Watcher
	pathResolver PathResolver
	debounce     time.Duration

	events chan WatchEvent
	errors chan error
	done   chan struct{}
}

func (wi *watcherImpl) eventLoop() {
	// Editors fire several events for one save, e.g. truncate and write.
	// Merge them per file while no more event comes in debounce period.
	// See https://github.com/fsnotify/fsnotify/issues/122
	defer func() {
		close(wi.events)
		close(wi.errors)
	}()
	timer := time.NewTimer(wi.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := make(map[string]WatchOp)
	for {
		select {
		case <-wi.done:
			return
		case ev, ok := <-wi.w.Events:
			if !ok {
				return
			}
			pending[ev.Name] |= ev.Op
			if !timer.Stop() {
				// timer may be fired and drained already.
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(wi.debounce)
		case err, ok := <-wi.w.Errors:
			if !ok {
				return
			}
			select {
			case wi.errors <- err:
			case <-wi.done:
				return
			}
		case <-timer.C:
			for name, op := range pending {
				select {
				case wi.events <- WatchEvent{Name: name, Op: op}:
				case <-wi.done:
					return
				}
				delete(pending, name)
			}
		}
	}
}

func (wi *watcherImpl) Close() error {
	select {
	case <-wi.done:
	default:
		close(wi.done)
	}
	return wi.w.Close()
}

func (wi *watcherImpl) Watch(filepath string) error {
	p, err := wi.pathResolver.ResolvePath(filepath)
	if err != nil {
		return fmt.Errorf("failed to Watch(%s): %w", filepath, err)
	}
	return wi.w.Add(p)
}

func (wi *watcherImpl) UnWatch(filepath string) error {
	p, err := wi.pathResolver.ResolvePath(filepath)
	if err != nil {
		return fmt.Errorf("failed to UnWatch(%s): %w", filepath, err)
	}
	return wi.w.Remove(p)
}

func (wi *watcherImpl) Events() <-chan WatchEvent { return wi.events }
func (wi *watcherImpl) Errors() <-chan error      { return wi.errors }

func newWatcher(pr PathResolver) (Watcher, error) {
	return newWatcherDebounce(pr, DefaultDebounce)
}

func newWatcherDebounce(pr PathResolver, debounce time.Duration) (Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("NewWatcher failed by backend fsnotify.NewWatcher(): %w", err)
	}
	wi := &watcherImpl{
		w:            w,
		pathResolver: pr,
		debounce:     debounce,
		events:       make(chan WatchEvent),
		errors:       make(chan error),
		done:         make(chan struct{}),
	}
	go wi.eventLoop()
	return wi, nil
}

// WatchLoop calls onChange for every merged event on w until ctx is canceled
// or w is closed. Errors from w are passed to onError, which may be nil.
// It returns ctx.Err() on cancel, or nil when w is closed.
func WatchLoop(ctx context.Context, w Watcher, onChange func(WatchEvent), onError func(error)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			onChange(ev)
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}
