package destinations

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangedMsg reports that the list file changed on disk.
type ChangedMsg struct{}

// Watch notifies on the returned channel when the list file is written,
// created or replaced. It watches the parent directory so atomic renames are
// seen. The channel closes when done is closed.
func Watch(path string, done <-chan struct{}) (<-chan ChangedMsg, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	events := make(chan ChangedMsg, 1)
	target := filepath.Clean(path)

	go func() {
		defer watcher.Close()
		defer close(events)

		// Debounce timer
		var debounceTimer *time.Timer
		debounceDelay := 100 * time.Millisecond
		fire := make(chan struct{}, 1)

		for {
			select {
			case <-done:
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDelay, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})

			case <-fire:
				select {
				case events <- ChangedMsg{}:
				default:
					// Pending notification not yet consumed
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return events, nil
}
