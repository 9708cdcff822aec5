// Package watcher reports edits to a single file, debounced, as pubsub
// events. The app uses it to hot-reload the config file.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/enrich/internal/log"
	"github.com/zjrosen/enrich/internal/pubsub"
)

// Config selects the watched file and the quiet period.
type Config struct {
	Path     string
	Debounce time.Duration
}

// DefaultConfig watches path with a 300ms debounce.
func DefaultConfig(path string) Config {
	return Config{Path: path, Debounce: 300 * time.Millisecond}
}

// Watcher publishes a pubsub.ReloadedEvent carrying the file path once
// writes to it have been quiet for the debounce period.
type Watcher struct {
	fs       *fsnotify.Watcher
	path     string
	debounce time.Duration
	broker   *pubsub.Broker[string]
	done     chan struct{}
}

// New creates a watcher; call Start to begin.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fs:       fsw,
		path:     filepath.Clean(cfg.Path),
		debounce: cfg.Debounce,
		broker:   pubsub.NewBrokerWithBuffer[string](1),
		done:     make(chan struct{}),
	}, nil
}

// Broker is where change events are published.
func (w *Watcher) Broker() *pubsub.Broker[string] {
	return w.broker
}

// Start watches the file's directory, so editors that replace the file by
// rename are still seen.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "watching", "path", w.path, "debounce", w.debounce)
	go w.loop()
	return nil
}

// Stop ends the loop and closes all subscriptions.
func (w *Watcher) Stop() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	w.broker.Close()
	return w.fs.Close()
}

func (w *Watcher) loop() {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			log.Debug(log.CatWatcher, "file changed", "path", w.path)
			w.broker.Publish(pubsub.ReloadedEvent, w.path)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err, "path", w.path)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
