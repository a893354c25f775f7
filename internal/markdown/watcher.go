package markdown

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/beamdeck/beam/internal/deck"
)

// Reload carries a re-parsed deck (or the parse failure) to the UI.
type Reload struct {
	Global deck.GlobalConfig
	Slides []deck.Slide
	Err    error
}

// Watcher re-loads a deck file whenever it changes on disk.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	reloads  chan Reload
	done     chan struct{}
	debounce time.Duration
}

// Watch starts watching the deck file at path. The containing directory is
// watched because many editors replace the file on save.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("markdown: watch: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("markdown: watch: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("markdown: watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		fsw:      fsw,
		path:     abs,
		reloads:  make(chan Reload, 1),
		done:     make(chan struct{}),
		debounce: 150 * time.Millisecond,
	}
	go w.loop()
	return w, nil
}

// Reloads returns the channel of re-parsed decks.
func (w *Watcher) Reloads() <-chan Reload { return w.reloads }

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			// Editors emit bursts of events per save; collapse them.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			global, slides, err := Load(w.path)
			select {
			case w.reloads <- Reload{Global: global, Slides: slides, Err: err}:
			case <-w.done:
				return
			}

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}
