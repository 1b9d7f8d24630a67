package history

import "time"

// Outcome classifies how a single file fared during a run.
type Outcome string

const (
	OutcomeMoved   Outcome = "moved"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Run is one organize invocation.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Source     string
	Target     string
	Scheme     string
	Moved      int64
	Skipped    int64
	Failed     int64
	BytesMoved int64
}

// Finished reports whether the run recorded a completion time.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Move is one journaled file operation within a run.
type Move struct {
	ID         int64
	RunID      string
	SourcePath string
	DestPath   string
	Size       int64
	ModTime    time.Time
	Outcome    Outcome
	Error      string
}
