package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/dilaouid/mk4/internal/fileutil"
	"github.com/dilaouid/mk4/internal/pipeline"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestCollectInputsWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.mkv"))
	touch(t, filepath.Join(dir, "nested", "b.MKV"))
	touch(t, filepath.Join(dir, "nested", "ignore.mp4"))

	files, err := collectInputs([]string{dir})
	if err != nil {
		t.Fatalf("collectInputs: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
}

func TestCollectInputsDeduplicates(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "movie.mkv")
	touch(t, file)

	files, err := collectInputs([]string{file, file, dir})
	if err != nil {
		t.Fatalf("collectInputs: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %v", files)
	}
}

func TestConvertOneSkipsFileWithoutSubtitleStreams(t *testing.T) {
	original := hasSubtitleStream
	hasSubtitleStream = func(context.Context, string) bool { return false }
	t.Cleanup(func() {
		hasSubtitleStream = original
	})

	file := filepath.Join(t.TempDir(), "plain.mkv")
	touch(t, file)

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	runner := pipeline.NewRunner(pipeline.Options{})
	result, ran := convertOne(context.Background(), cmd, runner, &convertOptions{audioTrack: -1, subtitleTrack: -1}, file)
	if !ran {
		t.Fatal("a skipped file still counts toward the summary")
	}
	if result.Stage != pipeline.StageSkipped || result.Message != "no subtitle streams" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !strings.Contains(out.String(), "Skipped") {
		t.Fatalf("skip must be reported to the user: %q", out.String())
	}
	if _, err := os.Stat(fileutil.OutputPath(file, "") + ".lock"); !os.IsNotExist(err) {
		t.Fatal("no lock file may be created for a skipped file")
	}
}

func TestCollectInputsRejectsNonMKV(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "movie.avi")
	touch(t, file)

	if _, err := collectInputs([]string{file}); err == nil {
		t.Fatal("expected an error for a non-MKV argument")
	}
	if _, err := collectInputs([]string{filepath.Join(dir, "missing.mkv")}); err == nil {
		t.Fatal("expected an error for a missing path")
	}
}
