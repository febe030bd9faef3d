package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/clipforge/clipforge/internal/errors"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFindVideoFilesSortsAndFilters(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.mp4", "A.mkv", "notes.txt", ".hidden.mp4", "c.webm")

	files, err := FindVideoFiles(dir)
	if err != nil {
		t.Fatalf("FindVideoFiles failed: %v", err)
	}

	want := []string{"A.mkv", "b.mp4", "c.webm"}
	if len(files) != len(want) {
		t.Fatalf("got %d files, want %d: %v", len(files), len(want), files)
	}
	for i, w := range want {
		if filepath.Base(files[i]) != w {
			t.Errorf("files[%d] = %s, want %s", i, filepath.Base(files[i]), w)
		}
	}
}

func TestFindVideoFilesEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "readme.md")

	_, err := FindVideoFiles(dir)
	if err == nil {
		t.Fatal("expected error for directory without videos")
	}
	if !errors.IsNoFilesFound(err) {
		t.Errorf("expected no-files-found error, got %v", err)
	}
}

func TestFindVideoFilesMissingDirectory(t *testing.T) {
	_, err := FindVideoFiles(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !errors.IsKind(err, errors.KindPath) {
		t.Errorf("expected path error, got %v", err)
	}
}

func TestFindVideoFilesNotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.mp4")

	_, err := FindVideoFiles(filepath.Join(dir, "a.mp4"))
	if err == nil {
		t.Fatal("expected error for non-directory input")
	}
}

func TestFindVideoFilesSkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.mp4")
	if err := os.Mkdir(filepath.Join(dir, "nested.mp4"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := FindVideoFiles(dir)
	if err != nil {
		t.Fatalf("FindVideoFiles failed: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "a.mp4" {
		t.Errorf("unexpected files: %v", files)
	}
}
