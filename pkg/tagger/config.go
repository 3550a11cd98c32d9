package tagger

import (
	"time"

	"github.com/pkg/errors"

	"github.com/powernap/tag2014/pkg/phase"
)

// Format tells how a measurement file is laid out.
type Format int

// Supported measurement file families.
const (
	// FormatAnalyzer is a Unisphere Analyzer archive dump: the object name
	// sits in the first column and the timestamp in the second.
	FormatAnalyzer Format = iota
	// FormatCSV is a generic export. Timestamp columns are given explicitly
	// or discovered from the data.
	FormatCSV
	// FormatSFlow is an sflowtool counter export prefixed with the
	// collector's receive date and time.
	FormatSFlow
	// FormatPivot is a generic export carrying an object name column. A
	// change of the object name rewinds the phase scan, as the file holds
	// one full time series per object.
	FormatPivot
)

// Analyzer dumps keep the object name and the timestamp in fixed columns.
const (
	analyzerObjectColumn    = 0
	analyzerTimestampColumn = 1
)

// Config controls a single tagging pass.
type Config struct {
	Format Format

	// TimestampColumns are explicit timestamp column indexes, joined in the
	// given order to form the timestamp of a row. When empty, the columns
	// are discovered from the data.
	TimestampColumns []int

	// ObjectColumn is the object name column of pivoted input.
	ObjectColumn int

	// TimeShift is added to every data timestamp before classification, to
	// compensate clock drift between the benchmark driver and the probe
	// that produced the measurement file.
	TimeShift time.Duration

	// Keep restricts the output to the given phases. An empty set keeps
	// every row.
	Keep phase.Set
}

// DefaultConfig returns a Config for generic CSV input with timestamp
// column discovery enabled.
func DefaultConfig() Config {
	return Config{
		Format:       FormatCSV,
		ObjectColumn: -1,
	}
}

// Validate rejects configurations no tagging pass could honor.
func (c Config) Validate() error {
	switch c.Format {
	case FormatAnalyzer, FormatCSV, FormatSFlow, FormatPivot:
	default:
		return errors.Errorf("unknown measurement format %d", c.Format)
	}

	for _, column := range c.TimestampColumns {
		if column < 0 {
			return errors.Errorf("negative timestamp column index %d", column)
		}
	}

	switch c.Format {
	case FormatPivot:
		if c.ObjectColumn < 0 {
			return errors.New("pivoted input requires the object name column index")
		}
	case FormatAnalyzer:
		if len(c.TimestampColumns) > 0 {
			return errors.New("analyzer input has a fixed timestamp column")
		}
	case FormatSFlow:
		if len(c.TimestampColumns) > 0 {
			return errors.New("counter input has fixed timestamp columns")
		}
	}

	return nil
}
