package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsModelAsset(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"assets/models/model.gltf", true},
		{"assets/models/model.glb", true},
		{"assets/models/model.obj", false},
		{"assets/shaders/morph.vert", false},
		{"model", false},
	}
	for _, tc := range tests {
		if got := isModelAsset(tc.path); got != tc.want {
			t.Errorf("isModelAsset(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestWatcherReportsModelChanges(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := w.Watch(dir); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	ignored := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(ignored, []byte("x"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	model := filepath.Join(dir, "model.gltf")
	if err := os.WriteFile(model, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case got := <-w.Events():
		if got != model {
			t.Errorf("event path = %q, want %q", got, model)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event received for model file")
	}
}

func TestWatchAfterCloseFails(t *testing.T) {
	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	w.Close()
	if err := w.Watch(t.TempDir()); err == nil {
		t.Error("Watch on a closed watcher succeeded")
	}
}
