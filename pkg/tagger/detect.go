package tagger

import (
	"regexp"

	log "github.com/sirupsen/logrus"
)

// Timestamp column discovery. The first row that offers either one full
// timestamp cell or a date cell plus a clock cell decides the columns for
// the whole file. Rows that decide nothing are dropped and discovery moves
// on to the next row.
var (
	fullStampRegex  = regexp.MustCompile(`^\s*\d{1,4}[/\-.]\d{1,4}[/\-.]\d{1,4},?\s+\d{1,2}[:.]\d{1,2}([:.]\d{1,2})?\s*([AP]M)?(.+)$`)
	dateStampRegex  = regexp.MustCompile(`^\s*\d{1,4}[/\-.]\d{1,4}[/\-.]\d{1,4}(.+)$`)
	clockStampRegex = regexp.MustCompile(`^\s*\d{1,2}[:.]\d{1,2}[:.]\d{1,2}\s*([AP]M)?(.+)$`)

	// Bare IPv4 addresses look like dotted dates and dotted clocks. They are
	// common in probe exports and must never be picked as timestamps.
	addressRegex = regexp.MustCompile(`^\s*\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\s*$`)
)

// detector holds timestamp column discovery state across rows. Once
// resolved the columns stay fixed for the rest of the file.
type detector struct {
	resolved bool
	columns  []int
}

// examine inspects a row for timestamp columns. It returns true once
// columns are known. A full timestamp cell wins over split date and clock
// cells found in the same row.
func (d *detector) examine(fields []string) bool {
	if d.resolved {
		return true
	}

	fullColumn, dateColumn, clockColumn := -1, -1, -1
	for i, cell := range fields {
		switch {
		case fullStampRegex.MatchString(cell):
			fullColumn = i
		case dateColumn < 0 && dateStampRegex.MatchString(cell) && !addressRegex.MatchString(cell):
			dateColumn = i
		case clockColumn < 0 && clockStampRegex.MatchString(cell) && !addressRegex.MatchString(cell):
			clockColumn = i
		}
		if fullColumn >= 0 {
			// Only discover one full timestamp.
			break
		}
	}

	switch {
	case fullColumn >= 0:
		d.columns = []int{fullColumn}
		log.Infof("Discovered a timestamp field at index %d", fullColumn)
	case dateColumn >= 0 && clockColumn >= 0:
		d.columns = []int{dateColumn, clockColumn}
		log.Infof("Discovered a date-only timestamp field at index %d", dateColumn)
		log.Infof("Discovered a time-only timestamp field at index %d", clockColumn)
	default:
		log.Debug("Couldn't find a full timestamp, skipping row...")
		return false
	}

	d.resolved = true
	return true
}
