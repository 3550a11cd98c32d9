package phase

import "time"

// Transition marks the moment the benchmark entered a phase.
type Transition struct {
	Time  time.Time
	Phase Phase
	Run   int
}

// Timeline is the ordered list of phase transitions extracted from a
// benchmark log. The first entry is synthetic: it repeats the time of the
// first real transition with the PreTest phase and run 0, so rows recorded
// before the benchmark started still get a tag.
type Timeline []Transition

// Tag returns the run number and phase active at the given time. The scan
// starts at the supplied cursor and only moves forward, so callers feeding
// timestamps in file order pay a single pass over the timeline. A row
// stamped exactly on a transition belongs to the phase that ends there.
func (t Timeline) Tag(stamp time.Time, cursor int) (run int, current Phase, next int) {
	for cursor+1 < len(t) && stamp.After(t[cursor+1].Time) {
		cursor++
	}
	entry := t[cursor]
	return entry.Run, entry.Phase, cursor
}
