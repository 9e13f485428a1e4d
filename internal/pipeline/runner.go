package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dilaouid/mk4/internal/config"
	"github.com/dilaouid/mk4/internal/encoding"
	"github.com/dilaouid/mk4/internal/fileutil"
	"github.com/dilaouid/mk4/internal/logging"
	"github.com/dilaouid/mk4/internal/media/ffprobe"
	"github.com/dilaouid/mk4/internal/services"
	"github.com/dilaouid/mk4/internal/subtitles"
)

// subtitleExtractor pulls one subtitle stream out of a container.
type subtitleExtractor interface {
	Extract(ctx context.Context, inputPath string, streamIndex int, codecName, outPath string) error
}

// encodeRunner drives the final encode through its fallback ladder.
type encodeRunner interface {
	Encode(ctx context.Context, job encoding.Job, onProgress func(float64)) (encoding.Outcome, error)
}

type probeFunc func(ctx context.Context, binary, path string) (ffprobe.MediaFile, error)

// Options configures a Runner. Zero-value fields fall back to the real
// binaries and stage implementations.
type Options struct {
	Config        *config.Config
	Logger        *slog.Logger
	Publisher     *Publisher
	FFmpegBinary  string
	FFprobeBinary string
	TempDir       string

	// Stage overrides for tests.
	Probe     probeFunc
	Extractor subtitleExtractor
	Encoder   encodeRunner
}

// Runner converts MKV files one at a time. The configuration is copied
// at construction: reloading config never changes runs already built.
type Runner struct {
	cfg           config.Config
	logger        *slog.Logger
	publisher     *Publisher
	ffprobeBinary string
	tempDir       string

	probe     probeFunc
	extractor subtitleExtractor
	encoder   encodeRunner
}

// NewRunner builds a Runner from opts, wiring the real probe, extractor,
// and encoder wherever opts leaves them unset.
func NewRunner(opts Options) *Runner {
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	runner := &Runner{
		cfg:           cfg,
		logger:        logger,
		publisher:     opts.Publisher,
		ffprobeBinary: opts.FFprobeBinary,
		tempDir:       opts.TempDir,
		probe:         opts.Probe,
		extractor:     opts.Extractor,
		encoder:       opts.Encoder,
	}
	if runner.probe == nil {
		runner.probe = ffprobe.Probe
	}
	if runner.extractor == nil {
		runner.extractor = &subtitles.Extractor{Binary: opts.FFmpegBinary, Logger: logger}
	}
	if runner.encoder == nil {
		runner.encoder = &encoding.Orchestrator{Binary: opts.FFmpegBinary, Logger: logger}
	}
	return runner
}

// Request names one file to convert. AudioTrack and SubtitleTrack are
// per-type stream indexes; negative values select the stream flagged
// default in the container (or the first one).
type Request struct {
	Path          string
	AudioTrack    int
	SubtitleTrack int
	OutputDir     string
}

// Result is the terminal state of one run.
type Result struct {
	RunID      string
	Path       string
	OutputPath string
	Stage      Stage
	Degraded   bool
	Message    string
	Err        error
}

// Converted reports whether the run produced an output file.
func (r Result) Converted() bool {
	return r.Stage == StageDone
}

// Run converts one file end to end. Skips (no subtitles, bitmap-only
// subtitles, unreadable container) are not errors; Result.Err is set
// only for genuine failures.
func (r *Runner) Run(ctx context.Context, req Request) Result {
	runID := uuid.NewString()
	logger := r.logger.With(
		logging.String("run_id", runID),
		logging.String("source", req.Path),
	)
	result := Result{RunID: runID, Path: req.Path}

	publish := func(stage Stage, local float64, message string) {
		if r.publisher == nil {
			return
		}
		r.publisher.Publish(Event{
			RunID:    runID,
			Path:     req.Path,
			Stage:    stage,
			Fraction: overallFraction(stage, local),
			Message:  message,
		})
	}

	skip := func(message string) Result {
		logger.Warn("skipping file", logging.String("reason", message))
		result.Stage = StageSkipped
		result.Message = message
		publish(StageSkipped, 0, message)
		return result
	}
	fail := func(err error) Result {
		_ = fileutil.RemoveIfExists(result.OutputPath)
		if services.IsCancellation(err) {
			logger.Info("run cancelled")
			result.Stage = StageCancelled
			result.Err = err
			publish(StageCancelled, 0, "cancelled")
			return result
		}
		logger.Error("run failed", logging.Error(err))
		result.Stage = StageFailed
		result.Err = err
		publish(StageFailed, 0, err.Error())
		return result
	}

	logger.Info("starting conversion")
	publish(StageProbing, 0, "")

	media, err := r.probe(ctx, r.ffprobeBinary, req.Path)
	if err != nil {
		if services.IsCancellation(err) {
			return fail(err)
		}
		// An unreadable container is a skip, not a hard failure: the
		// rest of a batch should still convert.
		return skip("cannot inspect file: " + err.Error())
	}

	subtitleStreams := media.SubtitleStreams()
	if len(subtitleStreams) == 0 {
		return skip("no subtitle streams")
	}

	subtitleTrack := req.SubtitleTrack
	if subtitleTrack < 0 {
		subtitleTrack = media.DefaultStreamIndex("subtitle")
	}
	if subtitleTrack >= len(subtitleStreams) {
		return fail(services.Wrap(services.ErrExtract, "probing", "select stream",
			fmt.Sprintf("subtitle track %d does not exist (%d available)", subtitleTrack, len(subtitleStreams)), nil))
	}
	codec := subtitleStreams[subtitleTrack].CodecName

	audioStreams := media.AudioStreams()
	audioTrack := req.AudioTrack
	if audioTrack < 0 {
		audioTrack = media.DefaultStreamIndex("audio")
	}
	if len(audioStreams) == 0 {
		return skip("no audio streams")
	}
	if audioTrack >= len(audioStreams) {
		return fail(services.Wrap(services.ErrEncodeFailed, "probing", "select stream",
			fmt.Sprintf("audio track %d does not exist (%d available)", audioTrack, len(audioStreams)), nil))
	}

	subtitlePath := fileutil.TempSubtitlePath(r.tempDir)
	defer func() {
		_ = fileutil.RemoveIfExists(subtitlePath)
	}()
	result.OutputPath = fileutil.OutputPath(req.Path, req.OutputDir)

	logger.Info("streams selected",
		logging.Int("subtitle_track", subtitleTrack),
		logging.String("subtitle_codec", codec),
		logging.Int("audio_track", audioTrack),
	)

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	publish(StageExtracting, 0, "")
	if err := r.extractor.Extract(ctx, req.Path, subtitleTrack, codec, subtitlePath); err != nil {
		if errors.Is(err, services.ErrUnsupportedSubtitle) {
			return skip(err.Error())
		}
		return fail(err)
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	publish(StageStripping, 0, "")
	if err := subtitles.StripFile(subtitlePath); err != nil {
		return fail(services.Wrap(services.ErrTransform, "stripping", "rewrite subtitle", "", err))
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	publish(StageReformatting, 0, "")
	if err := subtitles.ReformatFile(subtitlePath, r.cfg.Font.Name, r.cfg.Font.Size); err != nil {
		return fail(services.Wrap(services.ErrTransform, "reformatting", "rewrite subtitle", "", err))
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	publish(StageEncoding, 0, "")
	job := encoding.Job{
		InputPath:    req.Path,
		SubtitlePath: subtitlePath,
		OutputPath:   result.OutputPath,
		AudioTrack:   audioTrack,
		Duration:     media.Duration,
		Encoder:      r.cfg.FFmpeg.Encoder,
		Quality:      r.cfg.FFmpeg.Quality,
	}
	outcome, err := r.encoder.Encode(ctx, job, func(fraction float64) {
		publish(StageEncoding, fraction, "")
	})
	if err != nil {
		return fail(err)
	}

	result.Stage = StageDone
	result.Degraded = outcome.Status == encoding.StatusDegraded
	if result.Degraded {
		result.Message = "converted without subtitles"
	}
	logger.Info("conversion finished",
		logging.String("output", result.OutputPath),
		logging.String("tier", outcome.Tier),
		logging.Bool("degraded", result.Degraded),
	)
	publish(StageDone, 1, result.Message)
	return result
}
