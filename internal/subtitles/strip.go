package subtitles

import (
	"fmt"
	"os"
	"regexp"
)

// Matches every opening font tag regardless of attributes, and every
// closing one. Nothing outside the tags is touched.
var fontTagPattern = regexp.MustCompile(`<font\b[^>]*>|</font>`)

// StripFontTags removes all font markup from text, leaving dialogue and
// line breaks intact. It is a no-op on text containing none.
func StripFontTags(text string) string {
	return fontTagPattern.ReplaceAllString(text, "")
}

// StripFile rewrites the subtitle file at path with its font markup
// removed.
func StripFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read subtitle file: %w", err)
	}
	stripped := StripFontTags(string(data))
	if stripped == string(data) {
		return nil
	}
	if err := os.WriteFile(path, []byte(stripped), 0o644); err != nil {
		return fmt.Errorf("write subtitle file: %w", err)
	}
	return nil
}
