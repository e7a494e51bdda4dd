package store

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// WatchDebounceDelay is the debounce delay for settings file change events.
const WatchDebounceDelay = 300 * time.Millisecond

// Watcher reloads a FileStore when its settings file changes on disk and
// notifies the host so cached resolvers can be dropped.
type Watcher struct {
	store    *FileStore
	watcher  *fsnotify.Watcher
	onReload func()
	log      zerolog.Logger
	done     chan struct{}
}

// NewWatcher starts watching the store's settings file. onReload is
// called after every successful reload; it may be nil.
func NewWatcher(fs *FileStore, onReload func(), log zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory, not the file: editors replace files on save
	// and a direct watch dies with the old inode.
	if err := fsw.Add(filepath.Dir(fs.Path())); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(fs.Path()), err)
	}

	w := &Watcher{
		store:    fs,
		watcher:  fsw,
		onReload: onReload,
		log:      log,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	// Debounce timer for rapid file changes
	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				if err := w.store.Reload(); err != nil {
					w.log.Warn().Err(err).Str("path", w.store.Path()).Msg("settings reload failed")
					return
				}
				w.log.Debug().Str("path", w.store.Path()).Msg("settings reloaded")
				if w.onReload != nil {
					w.onReload()
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("settings watcher error")

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.store.Path()) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
