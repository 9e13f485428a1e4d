package encoding

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// subtitleMode selects how a fallback tier burns subtitles into the video.
type subtitleMode int

const (
	subtitleEscaped subtitleMode = iota // filter path escaped for filter-argument syntax
	subtitlePlain                       // raw path, for hosts where escaping breaks the filter
	subtitleNone                        // no burn at all; degraded output
)

// buildArgs constructs the full ffmpeg argument list for one tier.
// Exactly one audio stream and one video stream are mapped; audio is
// always re-encoded to AAC.
func buildArgs(job Job, mode subtitleMode) []string {
	args := []string{
		"-y", "-hide_banner", "-v", "error",
		"-nostats", "-progress", "pipe:1",
		"-i", job.InputPath,
	}

	switch mode {
	case subtitleEscaped:
		args = append(args, "-vf", "subtitles="+escapeFilterPath(job.SubtitlePath))
	case subtitlePlain:
		args = append(args, "-vf", "subtitles="+filepath.ToSlash(job.SubtitlePath))
	case subtitleNone:
	}

	args = append(args, "-c:v", job.Encoder, "-pix_fmt", "yuv420p")
	args = append(args, qualityArgs(job.Encoder, job.Quality)...)
	args = append(args,
		"-c:a", "aac",
		"-map", fmt.Sprintf("0:a:%d", job.AudioTrack),
		"-map", "0:v:0",
		job.OutputPath,
	)
	return args
}

// qualityArgs picks the rate-control flag for the encoder family: nvenc
// encoders take constrained quality, amf encoders take a fixed qp pair
// for P- and I-frames, everything else takes a constant rate factor.
func qualityArgs(encoder string, quality int) []string {
	value := strconv.Itoa(quality)
	switch {
	case strings.HasSuffix(encoder, "nvenc"):
		return []string{"-cq", value}
	case strings.HasSuffix(encoder, "amf"):
		return []string{"-rc", "cqp", "-qp_p", value, "-qp_i", value}
	default:
		return []string{"-crf", value}
	}
}

// escapeFilterPath makes a filesystem path safe inside a filter argument:
// separators are normalized, then backslashes and colons are escaped for
// the filter-argument syntax.
func escapeFilterPath(path string) string {
	normalized := filepath.ToSlash(path)
	normalized = strings.ReplaceAll(normalized, `\`, `\\`)
	return strings.ReplaceAll(normalized, ":", `\:`)
}
