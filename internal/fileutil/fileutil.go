// Package fileutil contains filesystem helpers shared by the pipeline and
// the CLI: temp subtitle naming, MKV discovery, and output naming.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// OutputSuffix is appended to the input stem when naming converted files.
const OutputSuffix = "-mk4.mp4"

// TempSubtitlePath returns a collision-free path for a run's temporary
// subtitle file inside dir (or the system temp directory when dir is
// empty). Concurrent runs each get their own name.
func TempSubtitlePath(dir string) string {
	if strings.TrimSpace(dir) == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, fmt.Sprintf("subtitle-%s.srt", uuid.NewString()))
}

// OutputPath derives the converted file's path from the input path,
// optionally redirected into outputDir.
func OutputPath(inputPath, outputDir string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if strings.TrimSpace(outputDir) != "" {
		return filepath.Join(outputDir, stem+OutputSuffix)
	}
	return filepath.Join(filepath.Dir(inputPath), stem+OutputSuffix)
}

// IsMKVFile reports whether path names an existing, readable .mkv file.
func IsMKVFile(path string) bool {
	if !strings.EqualFold(filepath.Ext(path), ".mkv") {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// FindMKVFiles walks dir recursively and returns every .mkv file found,
// in lexical walk order.
func FindMKVFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".mkv") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return files, nil
}

// RemoveIfExists deletes path, treating a missing file as success.
func RemoveIfExists(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// FileNonEmpty reports whether path exists and has a size above zero.
func FileNonEmpty(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}
