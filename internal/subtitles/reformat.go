package subtitles

import (
	"fmt"
	"os"
	"strings"
)

// Reformat re-wraps each cue's dialogue block in a single font span
// carrying the configured name and size.
//
// Cue grammar over the flat line sequence: a line that is purely a
// decimal integer starts a cue (the cue number, emitted unchanged); the
// following line is the time-range line (passed through unchanged); all
// subsequent non-blank lines form the dialogue block, concatenated with
// their internal line breaks preserved. Each cue is followed by exactly
// one blank separator line. Lines that are not a pure integer where a
// cue number is expected pass through verbatim.
func Reformat(text, fontName string, fontSize int) string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")
	out := make([]string, 0, len(lines))

	i := 0
	for i < len(lines) {
		line := lines[i]
		if !isCueNumber(line) {
			out = append(out, line)
			i++
			continue
		}

		out = append(out, line)
		i++
		if i < len(lines) {
			out = append(out, lines[i])
			i++
		}

		var dialogue []string
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			dialogue = append(dialogue, lines[i])
			i++
		}
		for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
			i++
		}

		if len(dialogue) > 0 {
			out = append(out, fmt.Sprintf("<font size=%q face=%q>%s</font>",
				fmt.Sprint(fontSize), fontName, strings.Join(dialogue, "\n")))
		}
		out = append(out, "")
	}

	return strings.Join(out, "\n")
}

// ReformatFile rewrites the subtitle file at path with every dialogue
// block wrapped in the configured font span.
func ReformatFile(path, fontName string, fontSize int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read subtitle file: %w", err)
	}
	formatted := Reformat(string(data), fontName, fontSize)
	if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
		return fmt.Errorf("write subtitle file: %w", err)
	}
	return nil
}

func isCueNumber(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
