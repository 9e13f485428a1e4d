package subtitles

import (
	"strings"
	"testing"
)

const wellFormed = `1
00:00:01,000 --> 00:00:02,500
Hello
World

2
00:00:03,000 --> 00:00:04,000
Goodbye
`

func TestReformatWrapsDialogue(t *testing.T) {
	got := Reformat(wellFormed, "Arial", 24)
	wantFirst := "<font size=\"24\" face=\"Arial\">Hello\nWorld</font>"
	if !strings.Contains(got, wantFirst) {
		t.Fatalf("missing wrapped first cue in %q", got)
	}
	if !strings.Contains(got, "<font size=\"24\" face=\"Arial\">Goodbye</font>") {
		t.Fatalf("missing wrapped second cue in %q", got)
	}
}

func TestReformatPreservesCueNumbersAndTimeRanges(t *testing.T) {
	got := Reformat(wellFormed, "Verdana", 30)
	original := ParseDocument(wellFormed)
	reformatted := ParseDocument(got)
	if len(original.Cues) != len(reformatted.Cues) {
		t.Fatalf("cue count changed: %d -> %d", len(original.Cues), len(reformatted.Cues))
	}
	for i := range original.Cues {
		if original.Cues[i].Number != reformatted.Cues[i].Number {
			t.Fatalf("cue %d renumbered: %q -> %q", i, original.Cues[i].Number, reformatted.Cues[i].Number)
		}
		if original.Cues[i].TimeRange != reformatted.Cues[i].TimeRange {
			t.Fatalf("cue %d time range changed: %q -> %q", i, original.Cues[i].TimeRange, reformatted.Cues[i].TimeRange)
		}
	}
}

func TestReformatSingleBlankSeparator(t *testing.T) {
	messy := "1\n00:00:01,000 --> 00:00:02,000\nHi\n\n\n\n2\n00:00:03,000 --> 00:00:04,000\nBye\n"
	got := Reformat(messy, "Arial", 24)
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("expected single blank separators, got %q", got)
	}
}

func TestReformatPassesThroughMalformedLines(t *testing.T) {
	input := "WEBVTT header junk\n1\n00:00:01,000 --> 00:00:02,000\nHi\n"
	got := Reformat(input, "Arial", 24)
	if !strings.HasPrefix(got, "WEBVTT header junk\n") {
		t.Fatalf("malformed leading line not passed through: %q", got)
	}
	if !strings.Contains(got, "<font size=\"24\" face=\"Arial\">Hi</font>") {
		t.Fatalf("cue after malformed line not wrapped: %q", got)
	}
}

func TestStripReformatIdempotence(t *testing.T) {
	// strip(reformat(strip(D))) == strip(D) for well-formed input.
	tagged := `1
00:00:01,000 --> 00:00:02,500
<font color="red">Hello</font>
World

2
00:00:03,000 --> 00:00:04,000
Goodbye
`
	stripped := StripFontTags(tagged)
	reformatted := Reformat(stripped, "Arial", 24)
	if got := StripFontTags(reformatted); got != stripped {
		t.Fatalf("idempotence violated:\nwant %q\ngot  %q", stripped, got)
	}
}

func TestReformatThenReformatAfterStripStable(t *testing.T) {
	first := Reformat(StripFontTags(wellFormed), "Arial", 24)
	second := Reformat(StripFontTags(first), "Arial", 24)
	if first != second {
		t.Fatalf("strip+reformat not stable:\nfirst  %q\nsecond %q", first, second)
	}
}

func TestParseDocumentRoundTrip(t *testing.T) {
	doc := ParseDocument(wellFormed)
	if len(doc.Cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(doc.Cues))
	}
	if doc.Cues[0].Number != "1" || doc.Cues[1].Number != "2" {
		t.Fatalf("unexpected numbers: %+v", doc.Cues)
	}
	if len(doc.Cues[0].Lines) != 2 {
		t.Fatalf("expected 2 dialogue lines in first cue: %+v", doc.Cues[0])
	}
	if doc.Render() != wellFormed {
		t.Fatalf("render mismatch:\nwant %q\ngot  %q", wellFormed, doc.Render())
	}
}
