package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dilaouid/mk4/internal/language"
	"github.com/dilaouid/mk4/internal/media/ffprobe"
	"github.com/dilaouid/mk4/internal/subtitles"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "probe <file>",
		Short:       "Show the streams mk4 would work with",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			media, err := ffprobe.Probe(cmd.Context(), "", args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File: %s\n", media.Path)
			if media.Duration > 0 {
				fmt.Fprintf(out, "Duration: %s\n", time.Duration(media.Duration*float64(time.Second)).Round(time.Second))
			}
			fmt.Fprintln(out)

			rows := make([][]string, 0, len(media.Streams))
			for _, stream := range media.Streams {
				note := ""
				if stream.CodecType == "subtitle" && subtitles.IsBitmapCodec(stream.CodecName) {
					note = "bitmap, cannot burn in"
				}
				rows = append(rows, []string{
					stream.CodecType,
					strconv.Itoa(stream.Index),
					stream.CodecName,
					language.DisplayName(stream.Language),
					yesNo(stream.Default),
					note,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Type", "Track", "Codec", "Language", "Default", "Notes"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))

			if len(media.SubtitleStreams()) == 0 {
				fmt.Fprintln(out, "No subtitle streams: mk4 would skip this file.")
			}
			return nil
		},
	}
}
