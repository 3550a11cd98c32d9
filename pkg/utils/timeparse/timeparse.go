package timeparse

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

// clockOnly recognizes bare time-of-day stamps that carry no date at all, as
// written by some probe and collector exports. They must not reach the
// generic parser: a dotted clock such as "10.30.05" would be mistaken for a
// month.day.year date.
var clockOnly = regexp.MustCompile(`^\d{1,2}[:.]\d{1,2}[:.]\d{1,2}\s*(?:[AP]M)?$`)

// dottedClock finds a dotted clock at the end of a dated stamp, so it can be
// rewritten with colons for the generic parser.
var dottedClock = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{1,2})(\s*[AP]M)?$`)

// clockLayouts resolve bare clocks to January 1 of year 0, so values from
// one file still order correctly among themselves.
var clockLayouts = []string{
	"15:04:05",
	"15.04.05",
	"3:04:05 PM",
	"3.04.05 PM",
	"3:04:05PM",
	"3.04.05PM",
}

// Parse interprets a timestamp in any of the shapes found in benchmark logs
// and measurement files, e.g. "2020-01-06 10:00:00", "01/06/2020, 10:00:05 AM"
// or "10:00:05". The format is guessed from the value itself.
func Parse(text string) (time.Time, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return time.Time{}, errors.New("empty timestamp")
	}

	if clockOnly.MatchString(trimmed) {
		return parseClock(trimmed)
	}

	stamp, err := dateparse.ParseLocal(trimmed)
	if err == nil {
		return stamp, nil
	}

	// Commas between date and clock and dotted clocks defeat the generic
	// parser; retry with those shapes normalized away.
	plain := strings.Join(strings.Fields(strings.Replace(trimmed, ",", " ", -1)), " ")
	plain = dottedClock.ReplaceAllString(plain, "$1:$2:$3$4")
	if plain != trimmed {
		if stamp, retryErr := dateparse.ParseLocal(plain); retryErr == nil {
			return stamp, nil
		}
	}

	return time.Time{}, errors.Wrapf(err, "cannot parse timestamp %q", trimmed)
}

func parseClock(text string) (time.Time, error) {
	for _, layout := range clockLayouts {
		if clock, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return clock, nil
		}
	}
	return time.Time{}, errors.Errorf("cannot parse clock %q", text)
}
