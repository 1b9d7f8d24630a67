package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"fileman/internal/history"
	"fileman/internal/services"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past organize runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(ctx, cmd, limit, jsonOut)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable output")

	cmd.AddCommand(newHistoryListCommand(ctx))
	cmd.AddCommand(newHistoryShowCommand(ctx))
	cmd.AddCommand(newHistoryClearCommand(ctx))
	return cmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(ctx, cmd, limit, jsonOut)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable output")

	return cmd
}

func runHistoryList(ctx *commandContext, cmd *cobra.Command, limit int, jsonOut bool) error {
	store, err := requireHistory(ctx, cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if jsonOut {
		return writeJSON(cmd, runsToJSON(runs))
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortID(run.ID),
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Source,
			run.Target,
			strconv.FormatInt(run.Moved, 10),
			strconv.FormatInt(run.Skipped, 10),
			strconv.FormatInt(run.Failed, 10),
			humanize.IBytes(uint64(run.BytesMoved)),
		})
	}
	writeTable(cmd,
		[]string{"Run", "Started", "Source", "Target", "Moved", "Skipped", "Failed", "Bytes"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight})
	return nil
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <run>",
		Short: "Show the files touched by a run (full or prefix run id)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := requireHistory(ctx, cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.FindRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			moves, err := store.RunMoves(cmd.Context(), run.ID)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, runDetailToJSON(run, moves))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s\n", run.ID)
			fmt.Fprintf(out, "  Started:  %s\n", run.StartedAt.Local().Format(time.RFC1123))
			if run.Finished() {
				fmt.Fprintf(out, "  Finished: %s\n", run.FinishedAt.Local().Format(time.RFC1123))
			}
			fmt.Fprintf(out, "  Source:   %s\n", run.Source)
			fmt.Fprintf(out, "  Target:   %s\n", run.Target)
			fmt.Fprintf(out, "  Scheme:   %s\n", run.Scheme)
			fmt.Fprintf(out, "  Result:   %d moved, %d skipped, %d failed (%s)\n",
				run.Moved, run.Skipped, run.Failed, humanize.IBytes(uint64(run.BytesMoved)))

			if len(moves) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(moves))
			for _, move := range moves {
				detail := move.DestPath
				if move.Error != "" {
					detail = move.Error
				}
				rows = append(rows, []string{string(move.Outcome), move.SourcePath, detail})
			}
			writeTable(cmd,
				[]string{"Outcome", "Source", "Destination"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft})
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable output")

	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := requireHistory(ctx, cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
			return nil
		},
	}
}

func requireHistory(ctx *commandContext, cmd *cobra.Command) (*history.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := ctx.openHistory(cmd.Context(), cfg)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, services.Wrap(services.ErrConfiguration, "history", "open",
			"history is disabled in the configuration", nil)
	}
	return store, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type runJSON struct {
	ID         string `json:"id"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at,omitempty"`
	Source     string `json:"source"`
	Target     string `json:"target"`
	Scheme     string `json:"scheme"`
	Moved      int64  `json:"moved"`
	Skipped    int64  `json:"skipped"`
	Failed     int64  `json:"failed"`
	BytesMoved int64  `json:"bytes_moved"`
}

type runDetailJSON struct {
	runJSON
	Moves []moveJSON `json:"moves"`
}

type moveJSON struct {
	Outcome string `json:"outcome"`
	Source  string `json:"source"`
	Dest    string `json:"dest,omitempty"`
	Size    int64  `json:"size"`
	ModTime string `json:"mod_time"`
	Error   string `json:"error,omitempty"`
}

func runsToJSON(runs []history.Run) []runJSON {
	out := make([]runJSON, 0, len(runs))
	for _, run := range runs {
		out = append(out, runToJSON(run))
	}
	return out
}

func runToJSON(run history.Run) runJSON {
	encoded := runJSON{
		ID:         run.ID,
		StartedAt:  run.StartedAt.Format(time.RFC3339),
		Source:     run.Source,
		Target:     run.Target,
		Scheme:     run.Scheme,
		Moved:      run.Moved,
		Skipped:    run.Skipped,
		Failed:     run.Failed,
		BytesMoved: run.BytesMoved,
	}
	if run.Finished() {
		encoded.FinishedAt = run.FinishedAt.Format(time.RFC3339)
	}
	return encoded
}

func runDetailToJSON(run *history.Run, moves []history.Move) runDetailJSON {
	detail := runDetailJSON{runJSON: runToJSON(*run), Moves: make([]moveJSON, 0, len(moves))}
	for _, move := range moves {
		detail.Moves = append(detail.Moves, moveJSON{
			Outcome: string(move.Outcome),
			Source:  move.SourcePath,
			Dest:    move.DestPath,
			Size:    move.Size,
			ModTime: move.ModTime.Format(time.RFC3339),
			Error:   move.Error,
		})
	}
	return detail
}
