package visualization

import (
	"strconv"

	"github.com/powernap/tag2014/pkg/phase"
)

const timeFormat = "2006-01-02 15:04:05"

// TimelineTable builds a table model of a phase timeline for terminal
// display.
func TimelineTable(timeline phase.Timeline) *Table {
	data := make([][]string, 0, len(timeline))
	for index, transition := range timeline {
		data = append(data, []string{
			strconv.Itoa(index),
			transition.Time.Format(timeFormat),
			strconv.Itoa(transition.Run),
			transition.Phase.String(),
		})
	}
	return NewTable([]string{"#", "Time", "Run", "Phase"}, data)
}
