package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/dilaouid/mk4/internal/deps"
	"github.com/dilaouid/mk4/internal/fileutil"
	"github.com/dilaouid/mk4/internal/logging"
	"github.com/dilaouid/mk4/internal/media/ffprobe"
	"github.com/dilaouid/mk4/internal/pipeline"
)

// Cheap existence check run before locking and prompting; swapped out
// in tests.
var hasSubtitleStream = ffprobe.HasSubtitleStream

type convertOptions struct {
	deleteSource  bool
	audioTrack    int
	subtitleTrack int
	outputDir     string
}

func runConvert(cmd *cobra.Command, cctx *commandContext, opts *convertOptions, args []string) error {
	cfg, err := cctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := cctx.ensureLogger()
	if err != nil {
		return err
	}

	statuses := deps.CheckBinaries(deps.Required())
	if missing := deps.MissingRequired(statuses); len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s (run `mk4 deps` for details)", strings.Join(missing, ", "))
	}

	files, err := collectInputs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no MKV files found in the given paths")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	publisher := pipeline.NewPublisher()
	defer publisher.Close()

	renderer := newConversionRenderer(cmd.OutOrStdout())
	events, unsubscribe := publisher.Subscribe()
	rendererDone := make(chan struct{})
	go renderer.consume(events, rendererDone)

	runner := pipeline.NewRunner(pipeline.Options{
		Config:    cfg,
		Logger:    logger,
		Publisher: publisher,
	})

	var results []pipeline.Result
	cancelled := false
	for _, file := range files {
		if ctx.Err() != nil {
			cancelled = true
			break
		}

		result, ran := convertOne(ctx, cmd, runner, opts, file)
		if !ran {
			continue
		}
		results = append(results, result)

		if result.Stage == pipeline.StageCancelled {
			cancelled = true
			break
		}
		if result.Converted() && opts.deleteSource {
			if removeErr := os.Remove(file); removeErr != nil {
				logger.Warn("could not delete source file",
					logging.String("source", file),
					logging.Error(removeErr),
				)
			} else {
				logger.Info("source file deleted", logging.String("source", file))
			}
		}
	}

	unsubscribe()
	<-rendererDone

	printSummary(cmd, results)
	if cancelled {
		return context.Canceled
	}
	if failed := countStage(results, pipeline.StageFailed); failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(results))
	}
	return nil
}

// convertOne runs a single file, guarded by an advisory lock on the
// output so concurrent mk4 invocations never write the same file. The
// second return value is false when the file was not processed at all.
func convertOne(ctx context.Context, cmd *cobra.Command, runner *pipeline.Runner, opts *convertOptions, file string) (pipeline.Result, bool) {
	if !hasSubtitleStream(ctx, file) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: Skipped (no subtitle streams)\n", filepath.Base(file))
		return pipeline.Result{
			Path:    file,
			Stage:   pipeline.StageSkipped,
			Message: "no subtitle streams",
		}, true
	}

	outputPath := fileutil.OutputPath(file, opts.outputDir)
	lock := flock.New(outputPath + ".lock")
	locked, err := lock.TryLock()
	if err == nil && !locked {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: another mk4 instance is converting it\n", file)
		return pipeline.Result{}, false
	}
	if err == nil {
		defer func() {
			_ = lock.Unlock()
			_ = fileutil.RemoveIfExists(lock.Path())
		}()
	}

	audioTrack, subtitleTrack := selectTracks(ctx, cmd, file, opts.audioTrack, opts.subtitleTrack)
	result := runner.Run(ctx, pipeline.Request{
		Path:          file,
		AudioTrack:    audioTrack,
		SubtitleTrack: subtitleTrack,
		OutputDir:     opts.outputDir,
	})
	return result, true
}

// collectInputs expands the command arguments into a deduplicated list
// of MKV files: directories are walked recursively, files are taken
// as-is when they are readable MKVs.
func collectInputs(args []string) ([]string, error) {
	seen := map[string]struct{}{}
	var files []string
	add := func(path string) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}
		if info.IsDir() {
			found, err := fileutil.FindMKVFiles(arg)
			if err != nil {
				return nil, err
			}
			for _, file := range found {
				add(file)
			}
			continue
		}
		if !fileutil.IsMKVFile(arg) {
			return nil, fmt.Errorf("%s is not an MKV file", arg)
		}
		add(arg)
	}
	return files, nil
}

func countStage(results []pipeline.Result, stage pipeline.Stage) int {
	count := 0
	for _, result := range results {
		if result.Stage == stage {
			count++
		}
	}
	return count
}

func printSummary(cmd *cobra.Command, results []pipeline.Result) {
	if len(results) < 2 {
		return
	}

	rows := make([][]string, 0, len(results))
	for _, result := range results {
		outcome := string(result.Stage)
		if result.Degraded {
			outcome = "done (no subtitles)"
		}
		detail := result.Message
		if result.Err != nil {
			detail = result.Err.Error()
		}
		rows = append(rows, []string{filepath.Base(result.Path), outcome, detail})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable(
		[]string{"File", "Outcome", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	))
}
