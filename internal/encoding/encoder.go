package encoding

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/dilaouid/mk4/internal/fileutil"
	"github.com/dilaouid/mk4/internal/logging"
	"github.com/dilaouid/mk4/internal/services"
)

// Test seam mirroring os/exec so encodes can be faked without ffmpeg.
var commandContext = exec.CommandContext

// Interval between synthetic progress checks while the side channel is
// quiet.
var tickInterval = 500 * time.Millisecond

// Orchestrator drives the external encoder through the fallback ladder.
type Orchestrator struct {
	Binary string
	Logger *slog.Logger
}

type encodeTier struct {
	name     string
	mode     subtitleMode
	degraded bool
}

// The ordered fallback ladder: burn with an escaped filter path, burn
// with the plain path, then drop the burn entirely.
var fallbackTiers = []encodeTier{
	{name: "subtitles-escaped", mode: subtitleEscaped},
	{name: "subtitles-plain", mode: subtitlePlain},
	{name: "no-subtitles", mode: subtitleNone, degraded: true},
}

// Encode runs the job through the fallback ladder, reporting normalized
// progress fractions through onProgress. The temporary subtitle file is
// removed on every terminal outcome; partial output files never survive
// a failed or cancelled attempt.
func (o *Orchestrator) Encode(ctx context.Context, job Job, onProgress func(float64)) (Outcome, error) {
	defer func() {
		_ = fileutil.RemoveIfExists(job.SubtitlePath)
	}()

	logger := o.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	var lastDetail string
	for _, tier := range fallbackTiers {
		if err := ctx.Err(); err != nil {
			_ = fileutil.RemoveIfExists(job.OutputPath)
			return Outcome{Status: StatusCancelled, Tier: tier.name}, err
		}

		detail, err := o.runTier(ctx, job, tier, onProgress)
		if err == nil {
			if onProgress != nil {
				onProgress(1.0)
			}
			status := StatusSuccess
			if tier.degraded {
				status = StatusDegraded
				logger.Warn("encode succeeded without subtitles",
					logging.String("tier", tier.name),
					logging.String("output", job.OutputPath),
				)
			} else {
				logger.Info("encode finished",
					logging.String("tier", tier.name),
					logging.String("output", job.OutputPath),
				)
			}
			return Outcome{Status: status, Tier: tier.name}, nil
		}

		_ = fileutil.RemoveIfExists(job.OutputPath)
		if services.IsCancellation(err) {
			return Outcome{Status: StatusCancelled, Tier: tier.name}, err
		}

		lastDetail = detail
		logger.Warn("encode tier failed",
			logging.String("tier", tier.name),
			logging.String("detail", detail),
		)
	}

	return Outcome{Status: StatusFailed}, services.Wrap(services.ErrEncodeFailed, "encoding", "run ffmpeg", lastDetail, nil)
}

// runTier starts one encode command and pumps its progress side channel
// until exit. Cancellation is observed at every progress read so an
// in-flight encode dies immediately instead of being waited out.
func (o *Orchestrator) runTier(ctx context.Context, job Job, tier encodeTier, onProgress func(float64)) (string, error) {
	binary := strings.TrimSpace(o.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}

	cmd := commandContext(ctx, binary, buildArgs(job, tier.mode)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("stdout pipe: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start %s: %w", binary, err)
	}

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	report := func(fraction float64) {
		if onProgress != nil {
			onProgress(fraction)
		}
	}

	tracker := newProgressTracker(job.Duration, time.Now())
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for open := true; open; {
		select {
		case line, ok := <-lines:
			if !ok {
				open = false
				break
			}
			if fraction, updated := tracker.ObserveLine(line, time.Now()); updated {
				report(fraction)
			}
		case now := <-ticker.C:
			if fraction, updated := tracker.Synthesize(now); updated {
				report(fraction)
			}
		case <-ctx.Done():
			if cmd.Process != nil {
				_ = cmd.Process.Kill()
			}
			for range lines {
			}
			_ = cmd.Wait()
			return "", ctx.Err()
		}
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return stderrTail(&stderr), fmt.Errorf("%s exited: %w", binary, err)
	}
	return "", nil
}

func stderrTail(buf *bytes.Buffer) string {
	text := strings.TrimSpace(buf.String())
	if len(text) > 500 {
		text = text[len(text)-500:]
	}
	if text == "" {
		return "no error output"
	}
	return text
}
