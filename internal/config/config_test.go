package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.FFmpeg.Encoder != defaultEncoder || cfg.FFmpeg.Quality != defaultQuality {
		t.Fatalf("unexpected ffmpeg defaults: %+v", cfg.FFmpeg)
	}
	if cfg.Font.Name != defaultFontName || cfg.Font.Size != defaultFontSize {
		t.Fatalf("unexpected font defaults: %+v", cfg.Font)
	}
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[ffmpeg]\nencoder = \"hevc_nvenc\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if cfg.FFmpeg.Encoder != "hevc_nvenc" {
		t.Fatalf("encoder = %q", cfg.FFmpeg.Encoder)
	}
	if cfg.FFmpeg.Quality != defaultQuality {
		t.Fatalf("quality default not applied: %d", cfg.FFmpeg.Quality)
	}
	if cfg.Font.Name != defaultFontName {
		t.Fatalf("font default not applied: %q", cfg.Font.Name)
	}
}

func TestLoadCaseInsensitiveKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[FFMPEG]\nENCODER = \"h264_amf\"\nQUALITY = 20\n\n[FONT]\nNAME = \"Verdana\"\nSIZE = 30\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FFmpeg.Encoder != "h264_amf" || cfg.FFmpeg.Quality != 20 {
		t.Fatalf("unexpected ffmpeg section: %+v", cfg.FFmpeg)
	}
	if cfg.Font.Name != "Verdana" || cfg.Font.Size != 30 {
		t.Fatalf("unexpected font section: %+v", cfg.Font)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[font]\nsize = 9000\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(path); err == nil || !strings.Contains(err.Error(), "font.size") {
		t.Fatalf("expected font.size validation error, got %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample file should exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config invalid: %v", err)
	}
}

func TestSaveWritesTOML(t *testing.T) {
	cfg := Default()
	cfg.FFmpeg.Encoder = "libx265"
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := Save(&cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load saved config: %v", err)
	}
	if loaded.FFmpeg.Encoder != "libx265" {
		t.Fatalf("encoder = %q", loaded.FFmpeg.Encoder)
	}
}
