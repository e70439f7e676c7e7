package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"chapterize/internal/chapters"
	"chapterize/internal/inputs"
	"chapterize/internal/media/ffmetadata"
	"chapterize/internal/proc"
	"chapterize/internal/services"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <glob>",
		Short: "Show the chapters a merge would produce without encoding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			paths, err := inputs.Resolve(args[0])
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return services.Wrap(services.ErrNoInputFiles, "resolve", "", args[0], nil)
			}

			prober := chapters.ToolProber{
				Runner:  proc.NewExec(logger),
				FFprobe: cfg.FFprobeBinary(),
				FFmpeg:  cfg.FFmpegBinary(),
			}
			tracks, planned, err := chapters.NewPlanner(prober, logger).Plan(cmd.Context(), paths)
			if err != nil {
				return err
			}

			album := ffmetadata.AlbumFromTags(tracks[0].Tags)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title:  %s\nArtist: %s\n", album.Title, album.Artist)

			rows := make([][]string, 0, len(planned))
			for i, chapter := range planned {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					formatClock(chapter.Start),
					formatClock(chapter.End),
					formatClock(chapter.Duration()),
					chapter.Title,
					filepath.Base(chapter.Path),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Start", "End", "Length", "Title", "File"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignLeft, alignLeft},
				[]string{"", "", "", formatClock(chapters.Total(planned)), fmt.Sprintf("%d chapters", len(planned)), ""},
			))
			return nil
		},
	}
}
