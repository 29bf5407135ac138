package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.epub")
	dst := filepath.Join(dir, "dst.epub")

	if err := os.WriteFile(src, []byte("book bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("Failed to copy: %v", err)
	}
	body, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "book bytes" {
		t.Errorf("unexpected content %q", body)
	}

	// An existing destination is never overwritten.
	if err := CopyFile(src, dst); err == nil {
		t.Error("expected copy onto an existing file to fail")
	}
}

func TestPruneEmptyDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "author")
	if err := EnsureDir(dir); err != nil {
		t.Fatal(err)
	}

	file := filepath.Join(dir, "book.epub")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	// Non-empty directories are left alone.
	if err := PruneEmptyDir(dir); err != nil {
		t.Fatal(err)
	}
	if !Exists(dir) {
		t.Fatal("directory pruned while not empty")
	}

	if err := RemoveFile(file); err != nil {
		t.Fatal(err)
	}
	if err := PruneEmptyDir(dir); err != nil {
		t.Fatal(err)
	}
	if Exists(dir) {
		t.Error("empty directory not pruned")
	}

	// Pruning a missing directory is a no-op.
	if err := PruneEmptyDir(dir); err != nil {
		t.Errorf("pruning a missing directory failed: %v", err)
	}
}

func TestEnsureDirIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := EnsureDir(dir); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDir(dir); err != nil {
		t.Errorf("second ensure failed: %v", err)
	}
}
