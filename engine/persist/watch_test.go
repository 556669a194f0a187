package persist

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStyleWatcherSignalsAndCollapses(t *testing.T) {
	s := newTestStore(t)
	wakes := make(chan struct{}, 64)
	w, err := s.WatchStyle(func() { wakes <- struct{}{} })
	if err != nil {
		t.Fatalf("WatchStyle: %v", err)
	}
	defer w.Close()

	if w.Poll() {
		t.Fatalf("no change yet")
	}

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(s.StylePath(), []byte("text:\n  body: 15\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	select {
	case <-wakes:
	case <-time.After(3 * time.Second):
		t.Fatalf("wake callback never ran")
	}
	// let the remaining events land before polling
	time.Sleep(200 * time.Millisecond)

	if !w.Poll() {
		t.Fatalf("expected a pending change")
	}
	if w.Poll() {
		t.Fatalf("changes should collapse into a single signal")
	}
}

func TestStyleWatcherIgnoresOtherFiles(t *testing.T) {
	s := newTestStore(t)
	w, err := s.WatchStyle(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(s.Dir(), ConfigFileName), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	if w.Poll() {
		t.Fatalf("config writes must not signal a style change")
	}

	if err := os.WriteFile(s.StylePath(), []byte("text:\n  body: 15\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "style signal", w.Poll)
}

func TestStyleWatcherSeesRenameReplace(t *testing.T) {
	s := newTestStore(t)
	w, err := s.WatchStyle(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	tmp := filepath.Join(s.Dir(), "style.yaml.swp")
	if err := os.WriteFile(tmp, []byte("text:\n  body: 16\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, s.StylePath()); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "style signal after rename", w.Poll)
}

func TestStyleWatcherClose(t *testing.T) {
	s := newTestStore(t)
	w, err := s.WatchStyle(nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if w.Poll() {
		t.Fatalf("closed watcher should not report changes")
	}
}

func TestWatchStyleMissingDir(t *testing.T) {
	s := newTestStore(t)
	if err := os.RemoveAll(s.Dir()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.WatchStyle(nil); err == nil {
		t.Fatalf("expected an error watching a missing directory")
	}
}
