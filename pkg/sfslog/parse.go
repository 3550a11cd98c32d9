package sfslog

import (
	"bufio"
	"io"
	"os"
	"regexp"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/powernap/tag2014/pkg/phase"
	"github.com/powernap/tag2014/pkg/utils/timeparse"
)

// Options adjust how the benchmark log is interpreted.
type Options struct {
	// MergeRunTail folds the tail of the measurement interval into the RUN
	// phase by ignoring the "90 percent complete" marker.
	MergeRunTail bool
}

// transitionPattern binds a log line shape to the phase it announces. The
// timestamp is always the first capture group.
type transitionPattern struct {
	regex  *regexp.Regexp
	phase  phase.Phase
	newRun bool
}

// transitionPatterns cover the marker lines the SFS 2014 manager writes to
// its log. Every pattern is tried against every line; a line may announce
// more than one transition.
var transitionPatterns = []transitionPattern{
	{regexp.MustCompile(`^\s*Waiting to finish initialization\. (.+)$`), phase.Init, false},
	{regexp.MustCompile(`^\s*(.+) Starting WARM phase.*$`), phase.Warmup, false},
	{regexp.MustCompile(`^\s*(.+) Starting RUN phase.*$`), phase.Run, false},
	{regexp.MustCompile(`^\s*(.+) Run 90 percent complete.*$`), phase.RunTail, false},
	{regexp.MustCompile(`^\s*Tests finished: (.+)$`), phase.Post, false},
	{regexp.MustCompile(`^<<< (.+): Starting.*$`), phase.Pre, true},
}

func matchNotFound(match []string) bool {
	return match == nil || len(match) < 2 || len(match[1]) == 0
}

// File parses the benchmark log at the given path.
func File(path string, options Options) (phase.Timeline, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening benchmark log %q failed", path)
	}
	defer file.Close()
	return Parse(file, options)
}

// Parse extracts the phase timeline from a benchmark log. Marker lines whose
// timestamp does not parse are reported and skipped. A log without a single
// usable marker yields an error: no row could ever be tagged against it.
func Parse(reader io.Reader, options Options) (phase.Timeline, error) {
	var timeline phase.Timeline
	run := 0

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := scanner.Text()
		for _, pattern := range transitionPatterns {
			match := pattern.regex.FindStringSubmatch(line)
			if matchNotFound(match) {
				continue
			}
			if options.MergeRunTail && pattern.phase == phase.RunTail {
				continue
			}
			stamp, err := timeparse.Parse(match[1])
			if err != nil {
				log.Warnf("Bad date %q in benchmark log line %q", match[1], line)
				continue
			}
			if pattern.newRun {
				run++
			}
			if last := len(timeline) - 1; last >= 0 && stamp.Before(timeline[last].Time) {
				log.Warnf("Benchmark log goes back in time at line %q", line)
			}
			timeline = append(timeline, phase.Transition{Time: stamp, Phase: pattern.phase, Run: run})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading benchmark log failed")
	}

	if len(timeline) == 0 {
		return nil, errors.New("no phase transitions found in benchmark log")
	}

	// Everything recorded before the first marker belongs to the pre test
	// period of run 0.
	head := phase.Transition{Time: timeline[0].Time, Phase: phase.PreTest, Run: 0}
	return append(phase.Timeline{head}, timeline...), nil
}
