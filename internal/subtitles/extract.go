package subtitles

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/dilaouid/mk4/internal/fileutil"
	"github.com/dilaouid/mk4/internal/logging"
	"github.com/dilaouid/mk4/internal/services"
)

// Test seam mirroring os/exec so extraction can be faked without ffmpeg.
var commandContext = exec.CommandContext

// Bitmap subtitle codecs cannot be converted to the text format this
// pipeline manipulates. Non-exhaustive denylist.
var bitmapCodecs = map[string]struct{}{
	"hdmv_pgs_subtitle": {},
	"pgssub":            {},
	"dvd_subtitle":      {},
	"dvdsub":            {},
	"dvb_subtitle":      {},
	"dvbsub":            {},
	"xsub":              {},
}

// IsBitmapCodec reports whether the probed subtitle codec is image-based.
func IsBitmapCodec(codecName string) bool {
	_, ok := bitmapCodecs[strings.ToLower(strings.TrimSpace(codecName))]
	return ok
}

// Extractor pulls one subtitle stream out of a container as an SRT file.
type Extractor struct {
	Binary string
	Logger *slog.Logger
}

type extractMethod struct {
	name string
	args func(inputPath string, streamIndex int, outPath string) []string
}

// The ordered fallback strategies: explicit conversion to SRT first,
// stream passthrough second.
var extractMethods = []extractMethod{
	{
		name: "convert-to-srt",
		args: func(inputPath string, streamIndex int, outPath string) []string {
			return []string{
				"-y", "-hide_banner", "-loglevel", "error",
				"-i", inputPath,
				"-map", fmt.Sprintf("0:s:%d", streamIndex),
				"-c:s", "srt",
				outPath,
			}
		},
	},
	{
		name: "stream-copy",
		args: func(inputPath string, streamIndex int, outPath string) []string {
			return []string{
				"-y", "-hide_banner", "-loglevel", "error",
				"-i", inputPath,
				"-map", fmt.Sprintf("0:s:%d", streamIndex),
				outPath,
			}
		},
	},
}

// Extract writes the selected subtitle stream to outPath. codecName is
// the probed codec of that stream; bitmap codecs fail fast. Each method
// in turn must exit zero and leave a non-empty file behind to count as
// success.
func (e *Extractor) Extract(ctx context.Context, inputPath string, streamIndex int, codecName, outPath string) error {
	if streamIndex < 0 {
		return services.Wrap(services.ErrExtract, "extracting", "select stream", fmt.Sprintf("invalid subtitle index %d", streamIndex), nil)
	}
	if IsBitmapCodec(codecName) {
		return services.Wrap(services.ErrUnsupportedSubtitle, "extracting", "select stream",
			fmt.Sprintf("bitmap subtitle codec %q cannot be converted to text", codecName), nil)
	}

	binary := strings.TrimSpace(e.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	logger := e.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	var lastDetail string
	for _, method := range extractMethods {
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd := commandContext(ctx, binary, method.args(inputPath, streamIndex, outPath)...)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		runErr := cmd.Run()

		if runErr == nil && fileutil.FileNonEmpty(outPath) {
			logger.Info("subtitle track extracted",
				logging.String("method", method.name),
				logging.Int("subtitle_index", streamIndex),
				logging.String("output", outPath),
			)
			return nil
		}

		lastDetail = strings.TrimSpace(stderr.String())
		if lastDetail == "" && runErr != nil {
			lastDetail = runErr.Error()
		}
		if lastDetail == "" {
			lastDetail = "extractor produced an empty file"
		}
		logger.Warn("subtitle extraction method failed",
			logging.String("method", method.name),
			logging.Int("subtitle_index", streamIndex),
			logging.String("detail", lastDetail),
		)
		_ = fileutil.RemoveIfExists(outPath)
	}

	return services.Wrap(services.ErrExtract, "extracting", "run ffmpeg", lastDetail, nil)
}
