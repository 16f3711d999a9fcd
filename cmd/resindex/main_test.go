package main

import (
	"os"
	"path/filepath"
	"testing"

	"raycast/internal/resindex"
)

func TestLoadMissingIndex(t *testing.T) {
	idx, err := load(filepath.Join(t.TempDir(), "resources.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(idx.Images) != 0 {
		t.Errorf("images = %v", idx.Images)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resources.json")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	idx := &resindex.Index{Images: []resindex.Entry{{ID: 3, Name: "wall.ff", Path: "/images/wall.ff"}}}
	if err := save(path, idx); err != nil {
		t.Fatal(err)
	}

	got, err := load(path)
	if err != nil {
		t.Fatal(err)
	}
	if e, ok := got.Lookup(3); !ok || e.Path != "/images/wall.ff" {
		t.Errorf("Lookup(3) = %+v, %v", e, ok)
	}

	left, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".resindex-*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 0 {
		t.Errorf("temporary files left behind: %v", left)
	}
}
