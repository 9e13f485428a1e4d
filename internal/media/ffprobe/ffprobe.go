package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	"github.com/dilaouid/mk4/internal/language"
	"github.com/dilaouid/mk4/internal/services"
)

// Test seam mirroring os/exec so probes can be faked without a binary.
var commandContext = exec.CommandContext

// MediaFile is the probed inventory of one container.
type MediaFile struct {
	Path     string
	Duration float64 // seconds; 0 when undeterminable
	Streams  []Stream
}

// Stream describes a single stream in the media container. Index is
// 0-based and scoped per codec type, matching ffmpeg's 0:a:N / 0:s:N
// stream specifiers.
type Stream struct {
	Index     int
	CodecType string
	CodecName string
	Language  string
	Default   bool
}

type probePayload struct {
	Streams []struct {
		CodecName   string `json:"codec_name"`
		CodecType   string `json:"codec_type"`
		Disposition struct {
			Default int `json:"default"`
		} `json:"disposition"`
		Tags struct {
			Language string `json:"language"`
		} `json:"tags"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe executes ffprobe against the provided path and decodes the JSON
// response into a MediaFile. The result is derived fresh on every call.
func Probe(ctx context.Context, binary, path string) (MediaFile, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return MediaFile{}, services.Wrap(services.ErrProbe, "probing", "inspect", "empty path", nil)
	}

	cmd := commandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		return MediaFile{}, services.Wrap(services.ErrProbe, "probing", "inspect", commandFailureDetail(err), err)
	}

	var payload probePayload
	if err := json.Unmarshal(output, &payload); err != nil {
		return MediaFile{}, services.Wrap(services.ErrProbe, "probing", "parse", "malformed ffprobe JSON", err)
	}

	file := MediaFile{Path: path, Duration: parseSeconds(payload.Format.Duration)}
	perType := map[string]int{}
	for _, raw := range payload.Streams {
		codecType := strings.ToLower(strings.TrimSpace(raw.CodecType))
		switch codecType {
		case "video", "audio", "subtitle":
		default:
			continue
		}
		file.Streams = append(file.Streams, Stream{
			Index:     perType[codecType],
			CodecType: codecType,
			CodecName: strings.TrimSpace(raw.CodecName),
			Language:  language.Normalize(raw.Tags.Language),
			Default:   raw.Disposition.Default != 0,
		})
		perType[codecType]++
	}
	return file, nil
}

// HasSubtitleStream reports whether the container carries at least one
// subtitle stream. It prefers the cheap banner scan and only falls back
// to the structured probe when the scan is unusable.
func HasSubtitleStream(ctx context.Context, path string) bool {
	if lines, err := ScanStreams(ctx, "ffmpeg", path); err == nil {
		for _, line := range lines {
			if line.CodecType == "subtitle" {
				return true
			}
		}
		return false
	}
	file, err := Probe(ctx, "", path)
	if err != nil {
		return false
	}
	return len(file.SubtitleStreams()) > 0
}

// SubtitleStreams returns the subtitle streams in probe order.
func (m MediaFile) SubtitleStreams() []Stream {
	return m.streamsOfType("subtitle")
}

// AudioStreams returns the audio streams in probe order.
func (m MediaFile) AudioStreams() []Stream {
	return m.streamsOfType("audio")
}

// VideoStreams returns the video streams in probe order.
func (m MediaFile) VideoStreams() []Stream {
	return m.streamsOfType("video")
}

// DefaultStreamIndex returns the per-type index of the default-flagged
// stream of the given type, or 0 when none is flagged.
func (m MediaFile) DefaultStreamIndex(codecType string) int {
	for _, stream := range m.streamsOfType(codecType) {
		if stream.Default {
			return stream.Index
		}
	}
	return 0
}

func (m MediaFile) streamsOfType(codecType string) []Stream {
	var matched []Stream
	for _, stream := range m.Streams {
		if stream.CodecType == codecType {
			matched = append(matched, stream)
		}
	}
	return matched
}

func parseSeconds(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}

func commandFailureDetail(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if detail := strings.TrimSpace(string(exitErr.Stderr)); detail != "" {
			return detail
		}
	}
	return "ffprobe invocation failed"
}
