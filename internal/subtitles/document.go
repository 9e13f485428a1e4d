package subtitles

import "strings"

// Cue is one numbered subtitle block. Number and TimeRange are kept
// verbatim as emitted by the source track; the transformer never
// renumbers cues.
type Cue struct {
	Number    string
	TimeRange string
	Lines     []string
}

// Document is the ordered cue sequence of one subtitle track.
type Document struct {
	Cues []Cue
}

// ParseDocument reads a flat subtitle text into the cue model using the
// same grammar Reformat applies. Lines outside the grammar are dropped
// from the model (they survive Reformat itself verbatim).
func ParseDocument(text string) Document {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")

	var doc Document
	i := 0
	for i < len(lines) {
		if !isCueNumber(lines[i]) {
			i++
			continue
		}
		cue := Cue{Number: strings.TrimSpace(lines[i])}
		i++
		if i < len(lines) {
			cue.TimeRange = lines[i]
			i++
		}
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			cue.Lines = append(cue.Lines, lines[i])
			i++
		}
		doc.Cues = append(doc.Cues, cue)
	}
	return doc
}

// Render writes the document back to flat subtitle text, one blank line
// between cues.
func (d Document) Render() string {
	if len(d.Cues) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(d.Cues))
	for _, cue := range d.Cues {
		var builder strings.Builder
		builder.WriteString(cue.Number)
		builder.WriteByte('\n')
		builder.WriteString(cue.TimeRange)
		for _, line := range cue.Lines {
			builder.WriteByte('\n')
			builder.WriteString(line)
		}
		blocks = append(blocks, builder.String())
	}
	return strings.Join(blocks, "\n\n") + "\n"
}
