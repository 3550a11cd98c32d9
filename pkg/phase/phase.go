package phase

import "fmt"

// Phase identifies one stage of a SPEC SFS 2014 benchmark iteration.
type Phase int

// Benchmark phases in execution order. PreTest covers everything recorded
// before the first marker found in the benchmark log.
const (
	PreTest Phase = iota
	Pre
	Init
	Warmup
	Run
	RunTail
	Post
)

// labels are the tags written to output files. The numeric prefix keeps
// lexical sorting aligned with execution order.
var labels = [...]string{
	"00_PRE_TEST",
	"01_PRE",
	"02_INIT",
	"03_WARMUP",
	"04_RUN",
	"05_RUN_TAIL",
	"06_POST",
}

// String returns the output label of the phase, e.g. "04_RUN".
func (p Phase) String() string {
	if p < PreTest || p > Post {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return labels[p]
}

// Set is a set of phases. Used to restrict which rows reach the output.
type Set uint8

// NewSet returns a Set containing the given phases.
func NewSet(phases ...Phase) Set {
	var set Set
	for _, p := range phases {
		set = set.Add(p)
	}
	return set
}

// Add returns a copy of the set with given phase included.
func (s Set) Add(p Phase) Set {
	return s | 1<<uint(p)
}

// Contains tells whether the phase is a member of the set.
func (s Set) Contains(p Phase) bool {
	return s&(1<<uint(p)) != 0
}

// Empty tells whether the set has no members.
func (s Set) Empty() bool {
	return s == 0
}
