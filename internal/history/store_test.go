package history_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"fileman/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBeginFinishRunRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.BeginRun(ctx, "/src", "/dst", "year/month")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if run.ID == "" {
		t.Fatal("expected run ID")
	}

	run.Moved = 3
	run.Skipped = 1
	run.BytesMoved = 4096
	if err := store.FinishRun(ctx, run); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.ID != run.ID || got.Moved != 3 || got.Skipped != 1 || got.BytesMoved != 4096 {
		t.Fatalf("unexpected run: %+v", got)
	}
	if !got.Finished() {
		t.Fatal("expected finished run")
	}
	if got.Source != "/src" || got.Target != "/dst" || got.Scheme != "year/month" {
		t.Fatalf("unexpected run fields: %+v", got)
	}
}

func TestRecordAndListMoves(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.BeginRun(ctx, "/src", "/dst", "year/month")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	modTime := time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)
	moves := []history.Move{
		{SourcePath: "/src/a.txt", DestPath: "/dst/2023/06/a.txt", Size: 11, ModTime: modTime, Outcome: history.OutcomeMoved},
		{SourcePath: "/src/b.txt", ModTime: modTime, Outcome: history.OutcomeSkipped},
		{SourcePath: "/src/c.txt", ModTime: modTime, Outcome: history.OutcomeFailed, Error: "permission denied"},
	}
	for _, move := range moves {
		if err := store.RecordMove(ctx, run.ID, move); err != nil {
			t.Fatalf("RecordMove: %v", err)
		}
	}

	got, err := store.RunMoves(ctx, run.ID)
	if err != nil {
		t.Fatalf("RunMoves: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 moves, got %d", len(got))
	}
	if got[0].Outcome != history.OutcomeMoved || got[0].DestPath != "/dst/2023/06/a.txt" {
		t.Fatalf("unexpected first move: %+v", got[0])
	}
	if got[1].Outcome != history.OutcomeSkipped || got[1].DestPath != "" {
		t.Fatalf("unexpected second move: %+v", got[1])
	}
	if got[2].Outcome != history.OutcomeFailed || got[2].Error != "permission denied" {
		t.Fatalf("unexpected third move: %+v", got[2])
	}
	if !got[0].ModTime.Equal(modTime) {
		t.Fatalf("mod time mangled: %v", got[0].ModTime)
	}
}

func TestFindRunByPrefix(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.BeginRun(ctx, "/src", "/dst", "year/month")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	found, err := store.FindRun(ctx, run.ID[:8])
	if err != nil {
		t.Fatalf("FindRun: %v", err)
	}
	if found.ID != run.ID {
		t.Fatalf("expected run %s, got %s", run.ID, found.ID)
	}

	if _, err := store.FindRun(ctx, "zzzzzzzz"); !errors.Is(err, history.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestClearRemovesRunsAndMoves(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.BeginRun(ctx, "/src", "/dst", "year/month")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if err := store.RecordMove(ctx, run.ID, history.Move{SourcePath: "/src/a", ModTime: time.Now(), Outcome: history.OutcomeMoved}); err != nil {
		t.Fatalf("RecordMove: %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs after clear, got %d", len(runs))
	}
	moves, err := store.RunMoves(ctx, run.ID)
	if err != nil {
		t.Fatalf("RunMoves: %v", err)
	}
	if len(moves) != 0 {
		t.Fatalf("expected cascade delete of moves, got %d", len(moves))
	}
}

func TestPruneKeepsRecentRuns(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.BeginRun(ctx, "/src", "/dst", "year/month"); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	pruned, err := store.Prune(ctx, 30)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if pruned != 0 {
		t.Fatalf("expected nothing pruned, got %d", pruned)
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected run to survive pruning, got %d", len(runs))
	}
}

func TestPruneZeroRetentionIsNoop(t *testing.T) {
	store := openStore(t)
	if _, err := store.Prune(context.Background(), 0); err != nil {
		t.Fatalf("Prune: %v", err)
	}
}

func TestReopenExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	run, err := store.BeginRun(context.Background(), "/src", "/dst", "year/month")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	found, err := reopened.FindRun(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("FindRun after reopen: %v", err)
	}
	if found.ID != run.ID {
		t.Fatalf("expected persisted run, got %+v", found)
	}
}
