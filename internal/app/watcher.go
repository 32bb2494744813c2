package app

import (
	"os"
	"path/filepath"
	"time"
)

// FileWatcher watches the loaded atlas file for changes and triggers a
// callback when a newer version is detected. This lets the application
// offer a reload after the atlas is re-exported from an image editor.
type FileWatcher struct {
	path          string
	baseline      time.Time
	checkInterval time.Duration
	stopCh        chan struct{}
	onChange      func() // Called when a newer file is detected
}

// NewFileWatcher creates a watcher for the given file. Returns nil if the
// file cannot be stat'd.
func NewFileWatcher(path string, checkInterval time.Duration) *FileWatcher {
	// Resolve symlinks to get the actual file path. Editors that save via
	// atomic rename leave the symlink pointing at a new file.
	realPath, err := filepath.EvalSymlinks(path)
	if err == nil {
		path = realPath
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil
	}

	return &FileWatcher{
		path:          path,
		baseline:      info.ModTime(),
		checkInterval: checkInterval,
		stopCh:        make(chan struct{}),
	}
}

// OnChange sets the callback to invoke when the file changes. The callback
// is called from a background goroutine - use appropriate synchronization
// if updating UI.
func (w *FileWatcher) OnChange(callback func()) {
	w.onChange = callback
}

// Start begins watching for file changes in a background goroutine.
func (w *FileWatcher) Start() {
	// Create a fresh stop channel in case we're restarting
	w.stopCh = make(chan struct{})
	go w.watchLoop()
}

// Stop stops the watcher goroutine.
func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

// watchLoop periodically checks if the file has been modified. Unlike a
// one-shot watcher it keeps running after a hit, since an atlas can be
// re-exported many times in one session.
func (w *FileWatcher) watchLoop() {
	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			if w.checkForUpdate() {
				w.ResetBaseline()
				if w.onChange != nil {
					w.onChange()
				}
			}
		}
	}
}

// checkForUpdate returns true if the file has been modified since the
// baseline was recorded.
func (w *FileWatcher) checkForUpdate() bool {
	info, err := os.Stat(w.path)
	if err != nil {
		return false
	}
	return info.ModTime().After(w.baseline)
}

// Path returns the watched file path.
func (w *FileWatcher) Path() string {
	return w.path
}

// CurrentModTime returns the current modification time of the watched file.
func (w *FileWatcher) CurrentModTime() (time.Time, error) {
	info, err := os.Stat(w.path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// ResetBaseline updates the baseline timestamp to the file's current mod
// time. Call this after handling a change to avoid repeated notifications.
func (w *FileWatcher) ResetBaseline() {
	if info, err := os.Stat(w.path); err == nil {
		w.baseline = info.ModTime()
	}
}
