// Package watch implements the change observer. A watched key's
// subscribers see a value that is eventually consistent with the last
// successful write, with staleness bounded by the poll interval:
// same-process writes arrive through the store's notification bus,
// cross-process writes through fsnotify on the backing database file,
// and the poll ticker backstops anything either channel misses.
package watch

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/platewise/recipebox/internal/pantry"
)

// DefaultPollInterval bounds the staleness window for writes that emit
// no notification.
const DefaultPollInterval = 500 * time.Millisecond

// Snapshot is one observation of a key. Value is nil while the key is
// absent.
type Snapshot struct {
	Key   string    `json:"key"`
	Value []byte    `json:"value"`
	At    time.Time `json:"at"`
}

// Observer republishes the current value of store keys to subscribers.
type Observer struct {
	store     *pantry.Store
	log       *zap.Logger
	interval  time.Duration
	watchPath string
}

// Option configures an Observer.
type Option func(*Observer)

// WithLogger sets the logger. Defaults to zap.NewNop().
func WithLogger(log *zap.Logger) Option {
	return func(o *Observer) { o.log = log }
}

// WithPollInterval overrides the poll interval.
func WithPollInterval(interval time.Duration) Option {
	return func(o *Observer) {
		if interval > 0 {
			o.interval = interval
		}
	}
}

// WithWatchPath enables fsnotify wakeups for writes from other
// processes. path is the backing database file; without it the
// observer relies on the bus and the poll ticker alone.
func WithWatchPath(path string) Option {
	return func(o *Observer) { o.watchPath = path }
}

// NewObserver creates an observer over the given store.
func NewObserver(store *pantry.Store, opts ...Option) *Observer {
	o := &Observer{
		store:    store,
		log:      zap.NewNop(),
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Watch subscribes to key. The returned channel carries the current
// value immediately, then a new Snapshot after every detected change.
// Byte-equal re-reads are not re-emitted. The channel closes when ctx
// is cancelled. A slow receiver only ever misses intermediate values;
// the latest observation is always delivered.
func (o *Observer) Watch(ctx context.Context, key string) <-chan Snapshot {
	out := make(chan Snapshot, 1)
	bus, cancelBus := o.store.Subscribe(key)
	fsEvents, closeFS := o.openWatcher()

	go func() {
		defer close(out)
		defer cancelBus()
		defer closeFS()

		ticker := time.NewTicker(o.interval)
		defer ticker.Stop()

		value, present := o.store.LoadRaw(key)
		emit(out, Snapshot{Key: key, Value: value, At: time.Now()})

		for {
			select {
			case <-ctx.Done():
				return
			case <-bus:
			case <-fsEvents:
			case <-ticker.C:
			}

			next, nextPresent := o.store.LoadRaw(key)
			if nextPresent == present && bytes.Equal(next, value) {
				continue
			}
			value, present = next, nextPresent
			emit(out, Snapshot{Key: key, Value: value, At: time.Now()})
		}
	}()

	return out
}

// emit delivers the snapshot, displacing an unconsumed older one so
// the receiver always sees the latest observation.
func emit(out chan Snapshot, snap Snapshot) {
	for {
		select {
		case out <- snap:
			return
		default:
			select {
			case <-out:
			default:
			}
		}
	}
}

// openWatcher starts an fsnotify watcher on the data directory and
// returns a wakeup channel filtered to the database file and its
// sidecars. Returns a nil channel (never ready) when no watch path is
// configured or the watcher cannot start; polling still covers those
// runs.
func (o *Observer) openWatcher() (<-chan struct{}, func()) {
	if o.watchPath == "" {
		return nil, func() {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		o.log.Warn("file watcher unavailable, relying on polling", zap.Error(err))
		return nil, func() {}
	}

	// SQLite writes through sidecar files (-journal, -wal) next to the
	// database, so watch the directory and filter by path prefix.
	dir := filepath.Dir(o.watchPath)
	if err := watcher.Add(dir); err != nil {
		o.log.Warn("cannot watch data directory, relying on polling",
			zap.String("dir", dir), zap.Error(err))
		watcher.Close()
		return nil, func() {}
	}

	wake := make(chan struct{}, 1)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.HasPrefix(event.Name, o.watchPath) {
					continue
				}
				select {
				case wake <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				o.log.Warn("file watcher error", zap.Error(err))
			}
		}
	}()

	return wake, func() { watcher.Close() }
}
