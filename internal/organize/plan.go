package organize

import (
	"path/filepath"
	"time"

	"fileman/internal/scan"
)

// PlannedMove pairs one source file with its timestamp-derived destination.
type PlannedMove struct {
	Source  string
	Dest    string
	Size    int64
	ModTime time.Time
}

// Plan is the full mapping computed for one run. It is derived, never
// persisted; executing it is what mutates the filesystem.
type Plan struct {
	Target string
	Moves  []PlannedMove
}

// TotalBytes sums the sizes of every planned move.
func (p *Plan) TotalBytes() int64 {
	var total int64
	for _, move := range p.Moves {
		total += move.Size
	}
	return total
}

// BuildPlan derives the destination for every scanned entry. The destination
// is a pure function of the entry's modification time, the target root, and
// the scheme; base names are preserved.
func BuildPlan(entries []scan.Entry, target string, scheme Scheme) *Plan {
	plan := &Plan{Target: target, Moves: make([]PlannedMove, 0, len(entries))}
	for _, entry := range entries {
		dest := filepath.Join(target, scheme.Rel(entry.ModTime), filepath.Base(entry.Path))
		plan.Moves = append(plan.Moves, PlannedMove{
			Source:  entry.Path,
			Dest:    dest,
			Size:    entry.Size,
			ModTime: entry.ModTime,
		})
	}
	return plan
}
