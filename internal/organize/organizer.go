package organize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"fileman/internal/config"
	"fileman/internal/fileutil"
	"fileman/internal/history"
	"fileman/internal/logging"
	"fileman/internal/scan"
	"fileman/internal/services"
)

// lockFileName is created inside the target so concurrent runs against the
// same target fail fast instead of racing on directory creation.
const lockFileName = ".fileman.lock"

const maxRenameAttempts = 10000

// MoveError records one per-file failure inside an otherwise continuing run.
type MoveError struct {
	Source string
	Dest   string
	Err    error
}

// Summary is the user-visible result of a run.
type Summary struct {
	RunID      string
	Source     string
	Target     string
	Scheme     string
	DryRun     bool
	Moved      int
	Skipped    int
	Failed     int
	BytesMoved int64
	Duration   time.Duration
	Plan       *Plan
	Failures   []MoveError
}

// Organizer relocates files from a source tree into the timestamp-keyed
// target tree. A nil history store disables journaling.
type Organizer struct {
	cfg    *config.Config
	store  *history.Store
	logger *slog.Logger
}

// New constructs an organizer with a component-scoped logger.
func New(cfg *config.Config, store *history.Store, logger *slog.Logger) *Organizer {
	return &Organizer{
		cfg:    cfg,
		store:  store,
		logger: logging.NewComponentLogger(logger, "organizer"),
	}
}

// Run walks source, derives a destination for every file from its
// modification time, and moves each file into the target tree. Source-level
// problems abort; per-file failures are logged, counted, and journaled while
// the run continues. With dryRun set nothing is mutated or journaled.
func (o *Organizer) Run(ctx context.Context, source, target string, dryRun bool) (*Summary, error) {
	started := time.Now()

	source, target, err := o.resolveRoots(source, target, dryRun)
	if err != nil {
		return nil, err
	}

	scheme, err := ParseScheme(o.cfg.Organize.Scheme, o.cfg.Organize.MonthCase)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "organizer", "parse scheme", err.Error(), nil)
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, o.logger)

	var lock *flock.Flock
	if !dryRun {
		lock = flock.New(filepath.Join(target, lockFileName))
		ok, err := lock.TryLock()
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "organizer", "acquire lock", "Failed to acquire target lock", err)
		}
		if !ok {
			return nil, services.Wrap(services.ErrValidation, "organizer", "acquire lock",
				"Another organize run is already working on "+target, nil)
		}
		defer func() { _ = lock.Unlock() }()
	}

	logger.Info(
		"starting organize run",
		logging.String("source", source),
		logging.String("target", target),
		logging.String("scheme", scheme.String()),
		logging.Bool("dry_run", dryRun),
	)

	entries, err := scan.Collect(source, scan.Options{
		MaxDepth:       o.cfg.Organize.MaxDepth,
		IncludeHidden:  o.cfg.Organize.IncludeHidden,
		FollowSymlinks: o.cfg.Organize.FollowSymlinks,
		Skip:           skipSubtree(target),
	})
	if err != nil {
		return nil, err
	}

	plan := BuildPlan(entries, target, scheme)
	summary := &Summary{
		RunID:  runID,
		Source: source,
		Target: target,
		Scheme: scheme.String(),
		DryRun: dryRun,
		Plan:   plan,
	}

	if dryRun {
		summary.Duration = time.Since(started)
		logger.Info("dry run complete", logging.Int("planned_moves", len(plan.Moves)))
		return summary, nil
	}

	var run *history.Run
	if o.store != nil {
		run, err = o.store.BeginRun(ctx, source, target, scheme.String())
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "organizer", "begin run", "Failed to open history journal", err)
		}
		summary.RunID = run.ID
		ctx = services.WithRunID(ctx, run.ID)
		logger = logging.WithContext(ctx, o.logger)
	}

	for _, move := range plan.Moves {
		outcome, finalDest, moveErr := o.executeMove(move)
		switch outcome {
		case history.OutcomeMoved:
			summary.Moved++
			summary.BytesMoved += move.Size
			logger.Debug(
				"moved file",
				logging.String("from", move.Source),
				logging.String("to", finalDest),
			)
		case history.OutcomeSkipped:
			summary.Skipped++
			logger.Debug("skipped file", logging.String("source", move.Source))
		case history.OutcomeFailed:
			summary.Failed++
			summary.Failures = append(summary.Failures, MoveError{Source: move.Source, Dest: move.Dest, Err: moveErr})
			logger.Error(
				"failed to move file",
				logging.String("source", move.Source),
				logging.String("dest", move.Dest),
				logging.Error(moveErr),
			)
		}
		o.journal(ctx, logger, run, move, outcome, finalDest, moveErr)
	}

	if run != nil {
		run.Moved = int64(summary.Moved)
		run.Skipped = int64(summary.Skipped)
		run.Failed = int64(summary.Failed)
		run.BytesMoved = summary.BytesMoved
		if err := o.store.FinishRun(ctx, run); err != nil {
			logger.Warn("failed to finalize history run", logging.Error(err))
		}
	}

	summary.Duration = time.Since(started)
	logger.Info(
		"organize run complete",
		logging.Int("moved", summary.Moved),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Int64("bytes_moved", summary.BytesMoved),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func (o *Organizer) resolveRoots(source, target string, dryRun bool) (string, string, error) {
	source, err := filepath.Abs(source)
	if err != nil {
		return "", "", services.Wrap(services.ErrValidation, "organizer", "resolve source", "Invalid source path", err)
	}
	target, err = filepath.Abs(target)
	if err != nil {
		return "", "", services.Wrap(services.ErrValidation, "organizer", "resolve target", "Invalid target path", err)
	}

	info, err := os.Stat(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", services.Wrap(services.ErrNotFound, "organizer", "validate source", "Source directory does not exist: "+source, err)
		}
		if errors.Is(err, fs.ErrPermission) {
			return "", "", services.Wrap(services.ErrPermission, "organizer", "validate source", "Source directory is not accessible: "+source, err)
		}
		return "", "", err
	}
	if !info.IsDir() {
		return "", "", services.Wrap(services.ErrValidation, "organizer", "validate source", "Source path is not a directory: "+source, nil)
	}

	if !dryRun {
		if err := os.MkdirAll(target, 0o755); err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return "", "", services.Wrap(services.ErrPermission, "organizer", "create target", "Target directory is not writable: "+target, err)
			}
			return "", "", services.Wrap(services.ErrValidation, "organizer", "create target", "Failed to create target directory", err)
		}
	}
	return source, target, nil
}

// executeMove applies the conflict policy and relocates one file. It returns
// the outcome, the path the file actually landed at, and the failure if any.
func (o *Organizer) executeMove(move PlannedMove) (history.Outcome, string, error) {
	if move.Source == move.Dest {
		return history.OutcomeSkipped, "", nil
	}

	dest := move.Dest
	if _, err := os.Stat(dest); err == nil {
		switch o.cfg.Organize.OnConflict {
		case config.ConflictSkip:
			return history.OutcomeSkipped, "", nil
		case config.ConflictOverwrite:
			// fall through to the move; rename replaces the destination
		default:
			allocated, allocErr := allocateDest(dest)
			if allocErr != nil {
				return history.OutcomeFailed, "", services.Wrap(services.ErrConflict, "organizer", "allocate name", "Unable to allocate conflict-free name for "+dest, allocErr)
			}
			dest = allocated
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return history.OutcomeFailed, "", services.Wrap(services.ErrMoveFailed, "organizer", "check destination", "Failed to inspect destination", err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return history.OutcomeFailed, "", services.Wrap(services.ErrPermission, "organizer", "create destination dir", "Destination directory is not writable", err)
		}
		return history.OutcomeFailed, "", services.Wrap(services.ErrMoveFailed, "organizer", "create destination dir", "Failed to create destination directory", err)
	}

	if err := fileutil.MoveFile(move.Source, dest, o.cfg.Organize.VerifyCopies); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return history.OutcomeFailed, "", services.Wrap(services.ErrPermission, "organizer", "move file", "Permission denied moving "+move.Source, err)
		}
		return history.OutcomeFailed, "", services.Wrap(services.ErrMoveFailed, "organizer", "move file", "Failed to move "+move.Source, err)
	}
	return history.OutcomeMoved, dest, nil
}

func (o *Organizer) journal(ctx context.Context, logger *slog.Logger, run *history.Run, move PlannedMove, outcome history.Outcome, finalDest string, moveErr error) {
	if o.store == nil || run == nil {
		return
	}
	record := history.Move{
		SourcePath: move.Source,
		DestPath:   finalDest,
		Size:       move.Size,
		ModTime:    move.ModTime,
		Outcome:    outcome,
	}
	if moveErr != nil {
		record.Error = moveErr.Error()
	}
	if err := o.store.RecordMove(ctx, run.ID, record); err != nil {
		logger.Warn("failed to journal move", logging.Error(err))
	}
}

// allocateDest finds the first free name-N.ext variant of dest.
func allocateDest(dest string) (string, error) {
	dir := filepath.Dir(dest)
	base := filepath.Base(dest)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for attempt := 1; attempt <= maxRenameAttempts; attempt++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, attempt, ext))
		if _, err := os.Stat(candidate); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return candidate, nil
			}
			return "", err
		}
	}
	return "", fmt.Errorf("exhausted rename slots for %s", dest)
}

// skipSubtree prunes the target tree during scanning so a target nested under
// the source never gets re-walked.
func skipSubtree(target string) func(string) bool {
	return func(dir string) bool {
		rel, err := filepath.Rel(target, dir)
		if err != nil {
			return false
		}
		return rel == "." || !strings.HasPrefix(rel, "..")
	}
}
