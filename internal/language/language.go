package language

import "strings"

type entry struct {
	code2   string // ISO 639-1 (2-letter)
	code3   string // ISO 639-2 primary (3-letter)
	alt3    string // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string
}

var languages = []entry{
	{"en", "eng", "", "English"},
	{"es", "spa", "", "Spanish"},
	{"fr", "fra", "fre", "French"},
	{"de", "deu", "ger", "German"},
	{"it", "ita", "", "Italian"},
	{"pt", "por", "", "Portuguese"},
	{"ja", "jpn", "", "Japanese"},
	{"ko", "kor", "", "Korean"},
	{"zh", "zho", "chi", "Chinese"},
	{"ru", "rus", "", "Russian"},
	{"ar", "ara", "", "Arabic"},
	{"hi", "hin", "", "Hindi"},
	{"nl", "nld", "dut", "Dutch"},
	{"pl", "pol", "", "Polish"},
	{"sv", "swe", "", "Swedish"},
	{"da", "dan", "", "Danish"},
	{"no", "nor", "", "Norwegian"},
	{"fi", "fin", "", "Finnish"},
	{"tr", "tur", "", "Turkish"},
	{"th", "tha", "", "Thai"},
	{"vi", "vie", "", "Vietnamese"},
	{"he", "heb", "", "Hebrew"},
	{"cs", "ces", "cze", "Czech"},
	{"hu", "hun", "", "Hungarian"},
	{"el", "ell", "gre", "Greek"},
	{"ro", "ron", "rum", "Romanian"},
	{"uk", "ukr", "", "Ukrainian"},
	{"id", "ind", "", "Indonesian"},
}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	return nil
}

// Normalize trims and lowercases a stream language tag, mapping the
// values ffprobe uses for missing metadata to "unknown".
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	switch code {
	case "", "und", "und ", "unknown":
		return "unknown"
	}
	return code
}

// DisplayName returns a human-readable language name for any recognized
// code. Returns "Unknown" for empty or undetermined input, or the
// uppercased code when the table has no entry.
func DisplayName(code string) string {
	normalized := Normalize(code)
	if normalized == "unknown" {
		return "Unknown"
	}
	if e := lookup(normalized); e != nil {
		return e.display
	}
	return strings.ToUpper(normalized)
}
