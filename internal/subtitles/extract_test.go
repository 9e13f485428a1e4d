package subtitles

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/dilaouid/mk4/internal/services"
)

// fakeExtractCommands replaces the exec seam with scripted per-call
// behavior. Each step either fails or writes content to the output path
// (the last argument of the ffmpeg invocation).
func fakeExtractCommands(t *testing.T, steps []func(outPath string) bool) *[][]string {
	t.Helper()
	var calls [][]string
	index := 0
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		calls = append(calls, append([]string(nil), args...))
		succeed := false
		if index < len(steps) {
			succeed = steps[index](args[len(args)-1])
		}
		index++
		if succeed {
			return exec.CommandContext(ctx, "true")
		}
		return exec.CommandContext(ctx, "false")
	}
	t.Cleanup(func() {
		commandContext = original
	})
	return &calls
}

func writeOutput(t *testing.T) func(string) bool {
	return func(outPath string) bool {
		if err := os.WriteFile(outPath, []byte("1\n00:00:01,000 --> 00:00:02,000\nHi\n"), 0o644); err != nil {
			t.Fatalf("write fake output: %v", err)
		}
		return true
	}
}

func TestExtractFirstMethodSucceeds(t *testing.T) {
	calls := fakeExtractCommands(t, []func(string) bool{writeOutput(t)})
	outPath := filepath.Join(t.TempDir(), "sub.srt")

	extractor := &Extractor{}
	if err := extractor.Extract(context.Background(), "/media/movie.mkv", 1, "subrip", outPath); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("expected 1 invocation, got %d", len(*calls))
	}
	args := (*calls)[0]
	found := false
	for i, arg := range args {
		if arg == "-c:s" && i+1 < len(args) && args[i+1] == "srt" {
			found = true
		}
	}
	if !found {
		t.Fatalf("first method should convert to srt, args %v", args)
	}
}

func TestExtractFallsBackToStreamCopy(t *testing.T) {
	calls := fakeExtractCommands(t, []func(string) bool{
		func(string) bool { return false },
		writeOutput(t),
	})
	outPath := filepath.Join(t.TempDir(), "sub.srt")

	extractor := &Extractor{}
	if err := extractor.Extract(context.Background(), "/media/movie.mkv", 0, "ass", outPath); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(*calls) != 2 {
		t.Fatalf("expected 2 invocations, got %d", len(*calls))
	}
	for _, arg := range (*calls)[1] {
		if arg == "-c:s" {
			t.Fatalf("fallback method must not force conversion, args %v", (*calls)[1])
		}
	}
}

func TestExtractEmptyOutputCountsAsFailure(t *testing.T) {
	fakeExtractCommands(t, []func(string) bool{
		// Exit zero but leave an empty file behind.
		func(outPath string) bool {
			if err := os.WriteFile(outPath, nil, 0o644); err != nil {
				t.Fatalf("write empty output: %v", err)
			}
			return true
		},
		func(string) bool { return false },
	})
	outPath := filepath.Join(t.TempDir(), "sub.srt")

	extractor := &Extractor{}
	err := extractor.Extract(context.Background(), "/media/movie.mkv", 0, "subrip", outPath)
	if !errors.Is(err, services.ErrExtract) {
		t.Fatalf("expected ErrExtract, got %v", err)
	}
	if _, statErr := os.Stat(outPath); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatal("failed extraction should remove its output file")
	}
}

func TestExtractRejectsBitmapCodecs(t *testing.T) {
	calls := fakeExtractCommands(t, nil)
	outPath := filepath.Join(t.TempDir(), "sub.srt")

	extractor := &Extractor{}
	err := extractor.Extract(context.Background(), "/media/movie.mkv", 0, "hdmv_pgs_subtitle", outPath)
	if !errors.Is(err, services.ErrUnsupportedSubtitle) {
		t.Fatalf("expected ErrUnsupportedSubtitle, got %v", err)
	}
	if len(*calls) != 0 {
		t.Fatal("bitmap codecs must fail fast without running ffmpeg")
	}
}

func TestExtractHonorsCancellation(t *testing.T) {
	fakeExtractCommands(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	extractor := &Extractor{}
	err := extractor.Extract(ctx, "/media/movie.mkv", 0, "subrip", filepath.Join(t.TempDir(), "sub.srt"))
	if !services.IsCancellation(err) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestIsBitmapCodec(t *testing.T) {
	for _, codec := range []string{"hdmv_pgs_subtitle", "DVD_SUBTITLE", " pgssub "} {
		if !IsBitmapCodec(codec) {
			t.Fatalf("expected %q to be bitmap", codec)
		}
	}
	for _, codec := range []string{"subrip", "ass", "mov_text", ""} {
		if IsBitmapCodec(codec) {
			t.Fatalf("expected %q to be text", codec)
		}
	}
}
