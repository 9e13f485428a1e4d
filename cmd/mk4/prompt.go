package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dilaouid/mk4/internal/language"
	"github.com/dilaouid/mk4/internal/media/ffprobe"
)

// selectTracks resolves the audio and subtitle track for one file.
// Explicit flags win; otherwise, on an interactive terminal with more
// than one candidate stream, the user picks from a table. In every
// other case -1 is passed through and the pipeline uses the container
// default.
func selectTracks(ctx context.Context, cmd *cobra.Command, path string, audioFlag, subtitleFlag int) (int, int) {
	if (audioFlag >= 0 && subtitleFlag >= 0) || !stdinIsTerminal() {
		return audioFlag, subtitleFlag
	}

	media, err := ffprobe.Probe(ctx, "", path)
	if err != nil {
		return audioFlag, subtitleFlag
	}

	audio := audioFlag
	if audio < 0 {
		audio = promptTrack(cmd, "audio", media.AudioStreams(), media.DefaultStreamIndex("audio"))
	}
	subtitle := subtitleFlag
	if subtitle < 0 {
		subtitle = promptTrack(cmd, "subtitle", media.SubtitleStreams(), media.DefaultStreamIndex("subtitle"))
	}
	return audio, subtitle
}

// promptTrack asks the user to choose among streams, defaulting to the
// container's default track on blank or invalid input. A single
// candidate is returned without prompting.
func promptTrack(cmd *cobra.Command, kind string, streams []ffprobe.Stream, defaultIndex int) int {
	if len(streams) < 2 {
		return defaultIndex
	}

	rows := make([][]string, 0, len(streams))
	for _, stream := range streams {
		rows = append(rows, []string{
			strconv.Itoa(stream.Index),
			stream.CodecName,
			language.DisplayName(stream.Language),
			yesNo(stream.Default),
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"Track", "Codec", "Language", "Default"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	))
	fmt.Fprintf(out, "Select %s track [%d]: ", kind, defaultIndex)

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return defaultIndex
	}
	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || choice < 0 || choice >= len(streams) {
		return defaultIndex
	}
	return choice
}
