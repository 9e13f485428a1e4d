package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTempSubtitlePathUnique(t *testing.T) {
	dir := t.TempDir()
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		path := TempSubtitlePath(dir)
		if !strings.HasPrefix(filepath.Base(path), "subtitle-") || !strings.HasSuffix(path, ".srt") {
			t.Fatalf("unexpected temp name: %s", path)
		}
		if _, dup := seen[path]; dup {
			t.Fatalf("duplicate temp path: %s", path)
		}
		seen[path] = struct{}{}
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("/videos/show/episode.mkv", "")
	want := filepath.Join("/videos/show", "episode-mk4.mp4")
	if got != want {
		t.Fatalf("OutputPath = %q, want %q", got, want)
	}

	got = OutputPath("/videos/movie.mkv", "/converted")
	want = filepath.Join("/converted", "movie-mk4.mp4")
	if got != want {
		t.Fatalf("OutputPath with dir = %q, want %q", got, want)
	}
}

func TestIsMKVFile(t *testing.T) {
	dir := t.TempDir()
	mkv := filepath.Join(dir, "movie.MKV")
	if err := os.WriteFile(mkv, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !IsMKVFile(mkv) {
		t.Fatal("expected .MKV file to match")
	}
	if IsMKVFile(filepath.Join(dir, "missing.mkv")) {
		t.Fatal("missing file should not match")
	}
	mp4 := filepath.Join(dir, "movie.mp4")
	if err := os.WriteFile(mp4, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if IsMKVFile(mp4) {
		t.Fatal("mp4 should not match")
	}
}

func TestFindMKVFiles(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "season1")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"a.mkv", "b.txt", filepath.Join("season1", "c.MKV")} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	files, err := FindMKVFiles(dir)
	if err != nil {
		t.Fatalf("FindMKVFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 mkv files, got %v", files)
	}
}

func TestRemoveIfExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "temp.srt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := RemoveIfExists(path); err != nil {
		t.Fatalf("remove existing: %v", err)
	}
	if err := RemoveIfExists(path); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
	if err := RemoveIfExists(""); err != nil {
		t.Fatalf("remove empty path: %v", err)
	}
}

func TestFileNonEmpty(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.srt")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if FileNonEmpty(empty) {
		t.Fatal("empty file should not count")
	}
	full := filepath.Join(dir, "full.srt")
	if err := os.WriteFile(full, []byte("1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !FileNonEmpty(full) {
		t.Fatal("non-empty file should count")
	}
}
