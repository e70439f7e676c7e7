package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chapterize/internal/logging"
	"chapterize/internal/merge"
	"chapterize/internal/preflight"
	"chapterize/internal/services"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var cover string
	var encoder string
	var overwrite bool
	var skipChecks bool

	cmd := &cobra.Command{
		Use:   "merge <output> <glob>",
		Short: "Merge audio tracks into one chapterized audiobook",
		Long: "Merge every file matching <glob> into <output>, one chapter per track.\n\n" +
			"Quote the glob so the shell does not expand it; \"**\" descends into subdirectories.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			if !skipChecks {
				if err := requireTools(preflight.RunAll(cfg)); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			printer := newProgressPrinter(out, isTerminal(out))
			defer printer.Finish()

			opts := []merge.Option{
				merge.WithProgressSink(printer.Progress),
				merge.WithStatusWriter(printer),
			}
			if cfg.History.Enabled {
				store, err := ctx.openHistory()
				if err != nil {
					logging.WarnWithContext(logger, "history unavailable", "history_open_failed",
						logging.Error(err),
						logging.String(logging.FieldImpact, "this merge will not be recorded"),
						logging.String(logging.FieldErrorHint, "run chapterize history clear or delete history.db"),
					)
				} else {
					defer store.Close()
					opts = append(opts, merge.WithRecorder(store))
				}
			}

			merger, err := merge.New(cfg, logger, opts...)
			if err != nil {
				return err
			}
			result, err := merger.Merge(cmd.Context(), merge.Request{
				Output:    args[0],
				Pattern:   args[1],
				Cover:     cover,
				Encoder:   encoder,
				Overwrite: overwrite,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Audiobook created at %s with %d chapters (%s, %s)\n",
				result.Output,
				len(result.Chapters),
				formatClock(result.Duration),
				formatSize(result.SizeBytes),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&cover, "cover", "", "Image to attach as cover art")
	cmd.Flags().StringVar(&encoder, "encoder", "", "Override the configured audio encoder")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace the output if it already exists")
	cmd.Flags().BoolVar(&skipChecks, "skip-checks", false, "Skip the tool and directory checks before merging")
	return cmd
}

func requireTools(results []preflight.Result) error {
	failed := preflight.Failed(results)
	if len(failed) == 0 {
		return nil
	}
	details := make([]string, 0, len(failed))
	for _, r := range failed {
		details = append(details, r.Name+": "+r.Detail)
	}
	return services.Wrap(services.ErrConfiguration, "preflight", "", strings.Join(details, "; "), nil)
}
