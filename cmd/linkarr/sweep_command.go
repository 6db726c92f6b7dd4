package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"linkarr/internal/sweep"
)

func newSweepCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Remove broken library symlinks and prune empty directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			result, err := sweep.New(logger, dryRun).Sweep(cfg.Paths.LibraryDir)
			if err != nil {
				return fmt.Errorf("sweep: %w", err)
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintln(out, "Dry run: nothing was removed.")
			}
			fmt.Fprintf(out, "Removed %d broken links, pruned %d empty directories (%d errors)\n",
				result.RemovedLinks, result.PrunedDirs, result.Errors)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be removed without deleting anything")
	return cmd
}
