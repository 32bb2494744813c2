package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "atlas.png")
	if err := os.WriteFile(path, []byte("stub"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestNewFileWatcherMissingFile(t *testing.T) {
	if w := NewFileWatcher(filepath.Join(t.TempDir(), "gone.png"), time.Second); w != nil {
		t.Fatal("watcher for a missing file should be nil")
	}
}

func TestWatcherCheckAndReset(t *testing.T) {
	path := writeTempFile(t)
	w := NewFileWatcher(path, time.Second)
	if w == nil {
		t.Fatal("watcher is nil")
	}
	if w.checkForUpdate() {
		t.Fatal("fresh watcher already reports a change")
	}

	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if !w.checkForUpdate() {
		t.Fatal("mtime bump not detected")
	}

	w.ResetBaseline()
	if w.checkForUpdate() {
		t.Fatal("change still reported after baseline reset")
	}
}

func TestWatcherCallback(t *testing.T) {
	path := writeTempFile(t)
	w := NewFileWatcher(path, 10*time.Millisecond)
	if w == nil {
		t.Fatal("watcher is nil")
	}

	changed := make(chan struct{}, 1)
	w.OnChange(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	w.Start()
	defer w.Stop()

	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("change callback never fired")
	}
}

func TestWatcherStop(t *testing.T) {
	w := NewFileWatcher(writeTempFile(t), 10*time.Millisecond)
	if w == nil {
		t.Fatal("watcher is nil")
	}
	w.Start()
	w.Stop()
}
