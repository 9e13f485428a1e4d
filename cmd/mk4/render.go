package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dilaouid/mk4/internal/pipeline"
)

const barScale = 1000

// conversionRenderer turns pipeline events into terminal output: a live
// progress bar per file on a TTY, one line per outcome otherwise.
type conversionRenderer struct {
	out         io.Writer
	interactive bool

	bar        *progressbar.ProgressBar
	currentRun string
	stageTitle cases.Caser
}

func newConversionRenderer(out io.Writer) *conversionRenderer {
	return &conversionRenderer{
		out:         out,
		interactive: stdoutIsTerminal(),
		stageTitle:  cases.Title(language.Und),
	}
}

// consume drains events until the channel closes, then signals done.
func (r *conversionRenderer) consume(events <-chan pipeline.Event, done chan<- struct{}) {
	defer close(done)
	for event := range events {
		r.observe(event)
	}
	r.finishBar()
}

func (r *conversionRenderer) observe(event pipeline.Event) {
	if event.Stage.Terminal() {
		r.finishBar()
		r.printOutcome(event)
		return
	}
	if !r.interactive {
		return
	}

	if event.RunID != r.currentRun {
		r.finishBar()
		r.currentRun = event.RunID
		r.bar = progressbar.NewOptions(barScale,
			progressbar.OptionSetWriter(r.out),
			progressbar.OptionSetDescription(filepath.Base(event.Path)),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = r.bar.Set(int(event.Fraction * barScale))
}

func (r *conversionRenderer) printOutcome(event pipeline.Event) {
	label := r.stageTitle.String(string(event.Stage))
	if event.Message != "" {
		fmt.Fprintf(r.out, "%s: %s (%s)\n", filepath.Base(event.Path), label, event.Message)
		return
	}
	fmt.Fprintf(r.out, "%s: %s\n", filepath.Base(event.Path), label)
}

func (r *conversionRenderer) finishBar() {
	if r.bar == nil {
		return
	}
	_ = r.bar.Finish()
	r.bar = nil
	r.currentRun = ""
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
