package ffprobe

import (
	"bufio"
	"context"
	"regexp"
	"strings"

	"github.com/dilaouid/mk4/internal/language"
)

// BannerStream is one stream description parsed from the human-readable
// ffmpeg banner. Indexes are per codec type, in banner order.
type BannerStream struct {
	Index       int
	CodecType   string
	Language    string
	Description string
}

// Stream #0:2(eng): Subtitle: subrip (default)
var bannerStreamPattern = regexp.MustCompile(`Stream #\d+:\d+(?:\(([^)]*)\))?: (Video|Audio|Subtitle): (.+)`)

// ScanStreams runs `ffmpeg -i` once and parses the banner's stream lines.
// ffmpeg exits non-zero when no output is given, so only an unparseable
// banner is treated as failure.
func ScanStreams(ctx context.Context, binary, path string) ([]BannerStream, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	cmd := commandContext(ctx, binary, "-hide_banner", "-i", path)
	output, _ := cmd.CombinedOutput()

	var streams []BannerStream
	perType := map[string]int{}
	found := false
	scanner := bufio.NewScanner(strings.NewReader(string(output)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "Input #") {
			found = true
		}
		matches := bannerStreamPattern.FindStringSubmatch(line)
		if matches == nil {
			continue
		}
		codecType := strings.ToLower(matches[2])
		streams = append(streams, BannerStream{
			Index:       perType[codecType],
			CodecType:   codecType,
			Language:    language.Normalize(matches[1]),
			Description: strings.TrimSpace(matches[3]),
		})
		perType[codecType]++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !found && len(streams) == 0 {
		return nil, errNoBanner(path, output)
	}
	return streams, nil
}

func errNoBanner(path string, output []byte) error {
	detail := strings.TrimSpace(string(output))
	if len(detail) > 200 {
		detail = detail[:200]
	}
	return &bannerError{path: path, detail: detail}
}

type bannerError struct {
	path   string
	detail string
}

func (e *bannerError) Error() string {
	if e.detail == "" {
		return "ffmpeg banner scan: no input recognized for " + e.path
	}
	return "ffmpeg banner scan: " + e.detail
}
