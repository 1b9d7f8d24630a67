package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"fileman/internal/logging"
	"fileman/internal/organize"
)

type organizeJSONResult struct {
	RunID      string  `json:"run_id"`
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Scheme     string  `json:"scheme"`
	DryRun     bool    `json:"dry_run"`
	Moved      int     `json:"moved"`
	Skipped    int     `json:"skipped"`
	Failed     int     `json:"failed"`
	BytesMoved int64   `json:"bytes_moved"`
	DurationMS int64   `json:"duration_ms"`
	Planned    []move  `json:"planned,omitempty"`
	Errors     []issue `json:"errors,omitempty"`
}

type move struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type issue struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var jsonOut bool
	var onConflict string
	var schemeFlag string
	var monthCase string

	cmd := &cobra.Command{
		Use:   "organize <source> <target>",
		Short: "Move files into a target tree grouped by modification time",
		Long: `Organize walks the source directory, derives a destination folder under the
target from each file's last-modification time (2023-06-15 lands in 2023/06
with the default scheme), and moves the file there. Per-file failures are
reported and counted but do not stop the run.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			runCfg := *cfg
			if flag := strings.TrimSpace(schemeFlag); flag != "" {
				runCfg.Organize.Scheme = strings.ToLower(flag)
			}
			if flag := strings.TrimSpace(onConflict); flag != "" {
				runCfg.Organize.OnConflict = strings.ToLower(flag)
			}
			if flag := strings.TrimSpace(monthCase); flag != "" {
				runCfg.Organize.MonthCase = strings.ToLower(flag)
			}
			if err := runCfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(&runCfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			store, err := ctx.openHistory(cmd.Context(), &runCfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			if store != nil {
				defer store.Close()
			}

			organizer := organize.New(&runCfg, store, logger)
			summary, err := organizer.Run(cmd.Context(), args[0], args[1], dryRun)
			if err != nil {
				return err
			}

			if jsonOut {
				if err := writeJSON(cmd, summaryToJSON(summary)); err != nil {
					return err
				}
			} else if dryRun {
				printPlan(cmd, summary)
			} else {
				printSummary(cmd, summary)
			}

			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d files could not be moved (see log for details)",
					summary.Failed, summary.Failed+summary.Moved+summary.Skipped)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the plan without moving anything")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit a machine-readable summary")
	cmd.Flags().StringVar(&onConflict, "on-conflict", "", "Collision policy: rename, skip, or overwrite")
	cmd.Flags().StringVar(&schemeFlag, "scheme", "", "Grouping scheme: year/month, year/month/day, or year/month-name")
	cmd.Flags().StringVar(&monthCase, "month-case", "", "Month label casing for year/month-name: title, upper, or lower")

	return cmd
}

func printPlan(cmd *cobra.Command, summary *organize.Summary) {
	out := cmd.OutOrStdout()
	if summary.Plan == nil || len(summary.Plan.Moves) == 0 {
		fmt.Fprintln(out, "Nothing to organize")
		return
	}

	rows := make([][]string, 0, len(summary.Plan.Moves))
	for _, planned := range summary.Plan.Moves {
		rows = append(rows, []string{planned.Source, planned.Dest, humanize.IBytes(uint64(planned.Size))})
	}
	writeTable(cmd, []string{"From", "To", "Size"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight})
	fmt.Fprintf(out, "Would move %d files (%s)\n",
		len(summary.Plan.Moves), humanize.IBytes(uint64(summary.Plan.TotalBytes())))
}

func printSummary(cmd *cobra.Command, summary *organize.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Moved %d files (%s) in %s\n",
		summary.Moved, humanize.IBytes(uint64(summary.BytesMoved)), summary.Duration.Round(time.Millisecond))
	if summary.Skipped > 0 {
		fmt.Fprintf(out, "Skipped %d files\n", summary.Skipped)
	}
	for _, failure := range summary.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "failed: %s: %v\n", failure.Source, failure.Err)
	}
}

func summaryToJSON(summary *organize.Summary) organizeJSONResult {
	result := organizeJSONResult{
		RunID:      summary.RunID,
		Source:     summary.Source,
		Target:     summary.Target,
		Scheme:     summary.Scheme,
		DryRun:     summary.DryRun,
		Moved:      summary.Moved,
		Skipped:    summary.Skipped,
		Failed:     summary.Failed,
		BytesMoved: summary.BytesMoved,
		DurationMS: summary.Duration.Milliseconds(),
	}
	if summary.DryRun && summary.Plan != nil {
		for _, planned := range summary.Plan.Moves {
			result.Planned = append(result.Planned, move{From: planned.Source, To: planned.Dest})
		}
	}
	for _, failure := range summary.Failures {
		result.Errors = append(result.Errors, issue{Source: failure.Source, Error: failure.Err.Error()})
	}
	return result
}
