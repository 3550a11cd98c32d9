package tagger

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/powernap/tag2014/pkg/phase"
	"github.com/powernap/tag2014/pkg/sflow"
	"github.com/powernap/tag2014/pkg/utils/timeparse"
)

// RowReader delivers measurement rows. Satisfied by *csv.Reader.
type RowReader interface {
	Read() ([]string, error)
}

// RowWriter accepts tagged output rows. Satisfied by *csv.Writer.
type RowWriter interface {
	Write(record []string) error
}

// TaggedRow is one measurement row with its classification attached.
type TaggedRow struct {
	Run     int
	Phase   phase.Phase
	Fields  []string
	Derived []string
}

// Render returns the output record: tag columns first, then the original
// fields, then any derived fields.
func (r TaggedRow) Render() []string {
	record := make([]string, 0, 2+len(r.Fields)+len(r.Derived))
	record = append(record, strconv.Itoa(r.Run), r.Phase.String())
	record = append(record, r.Fields...)
	return append(record, r.Derived...)
}

// Stats counts the rows seen and dropped during one tagging pass.
type Stats struct {
	Rows       int // data rows read
	Written    int // rows written out
	Undetected int // rows dropped before timestamp columns were discovered
	BadStamps  int // rows dropped for a missing or unparsable timestamp
	BadShape   int // rows dropped for a truncated record or a bad field count
	Foreign    int // records discarded for not being counter samples
	Malformed  int // rows the reader could not decode
}

// analyzerColumns is the fixed timestamp column set of analyzer dumps.
var analyzerColumns = []int{analyzerTimestampColumn}

// counterColumns is the fixed timestamp column set of counter exports.
var counterColumns = []int{sflow.FieldDate, sflow.FieldTime}

// Tagger assigns (run, phase) tags to measurement rows. It keeps the scan
// cursor, the discovered timestamp columns and the counter baselines between
// rows, so one Tagger handles exactly one input file.
type Tagger struct {
	timeline phase.Timeline
	config   Config

	cursor     int
	object     string
	haveObject bool
	detector   detector
	rates      *sflow.RateTable
	stats      Stats
}

// New returns a Tagger classifying rows against the given timeline.
func New(timeline phase.Timeline, config Config) (*Tagger, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if len(timeline) == 0 {
		return nil, errors.New("empty phase timeline")
	}

	t := &Tagger{
		timeline: timeline,
		config:   config,
	}
	if config.Format == FormatSFlow {
		t.rates = sflow.NewRateTable()
	}
	return t, nil
}

// Run copies rows from the reader to the writer, tagging each with the run
// number and phase active at its timestamp. Rows that cannot be placed on
// the timeline are dropped and counted. Run returns once the reader is
// drained; only reader and writer failures abort the pass early.
func (t *Tagger) Run(reader RowReader, writer RowWriter) (Stats, error) {
	header, err := t.headerRow(reader)
	if err != nil {
		return t.stats, err
	}
	if err := writer.Write(header); err != nil {
		return t.stats, errors.Wrap(err, "writing header row failed")
	}

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if _, malformed := err.(*csv.ParseError); malformed {
				log.Debugf("Skipping undecodable row: %v", err)
				t.stats.Malformed++
				continue
			}
			return t.stats, errors.Wrap(err, "reading measurement data failed")
		}
		t.stats.Rows++

		tagged, ok := t.tagRow(fields)
		if !ok {
			continue
		}
		if !t.keep(tagged.Phase) {
			continue
		}
		if err := writer.Write(tagged.Render()); err != nil {
			return t.stats, errors.Wrap(err, "writing tagged row failed")
		}
		t.stats.Written++
	}

	return t.stats, nil
}

// headerRow builds the output header. Counter exports carry no header row,
// so one is synthesized from the schema; every other family reuses the
// input's first row.
func (t *Tagger) headerRow(reader RowReader) ([]string, error) {
	if t.config.Format == FormatSFlow {
		header := append([]string{"Run", "Phase"}, sflow.FieldNames...)
		return append(header, sflow.TotalFieldName), nil
	}

	fields, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading header row failed")
	}
	return append([]string{"Run", "Phase"}, fields...), nil
}

func (t *Tagger) tagRow(fields []string) (TaggedRow, bool) {
	if t.config.Format == FormatSFlow {
		return t.tagCounterRow(fields)
	}
	return t.tagMeasurementRow(fields)
}

func (t *Tagger) tagMeasurementRow(fields []string) (TaggedRow, bool) {
	if !t.rewindOnObjectChange(fields) {
		t.stats.BadShape++
		return TaggedRow{}, false
	}

	columns := t.config.TimestampColumns
	switch {
	case t.config.Format == FormatAnalyzer:
		columns = analyzerColumns
	case len(columns) == 0:
		if !t.detector.examine(fields) {
			t.stats.Undetected++
			return TaggedRow{}, false
		}
		columns = t.detector.columns
	}

	stamp, err := t.stampAt(fields, columns)
	if err != nil {
		log.Debugf("Dropping row with unusable timestamp: %v", err)
		t.stats.BadStamps++
		return TaggedRow{}, false
	}

	run, current := t.classify(stamp)
	return TaggedRow{Run: run, Phase: current, Fields: fields}, true
}

// tagCounterRow handles sflowtool output: keep counter samples, enforce the
// record shape, then rate the counters after classification.
func (t *Tagger) tagCounterRow(fields []string) (TaggedRow, bool) {
	if len(fields) <= sflow.FieldType || fields[sflow.FieldType] != sflow.RecordTypeCounter {
		t.stats.Foreign++
		return TaggedRow{}, false
	}
	if len(fields) != sflow.FieldCount {
		log.Debugf("Dropping counter record with %d fields, expected %d", len(fields), sflow.FieldCount)
		t.rates.Reset()
		t.stats.BadShape++
		return TaggedRow{}, false
	}

	stamp, err := t.stampAt(fields, counterColumns)
	if err != nil {
		log.Debugf("Dropping counter record with unusable timestamp: %v", err)
		t.stats.BadStamps++
		return TaggedRow{}, false
	}

	run, current := t.classify(stamp)
	total := t.rates.Apply(fields, stamp)
	return TaggedRow{Run: run, Phase: current, Fields: fields, Derived: []string{total}}, true
}

// rewindOnObjectChange restarts the phase scan when the object name column
// changes, since analyzer and pivoted files hold one full time series per
// object. Returns false when the row has no object column to look at.
func (t *Tagger) rewindOnObjectChange(fields []string) bool {
	column := -1
	switch t.config.Format {
	case FormatAnalyzer:
		column = analyzerObjectColumn
	case FormatPivot:
		column = t.config.ObjectColumn
	default:
		return true
	}

	if column >= len(fields) {
		return false
	}
	name := fields[column]
	if t.haveObject && name == t.object {
		return true
	}
	if t.haveObject {
		t.cursor = 0
	}
	t.object = name
	t.haveObject = true
	return true
}

// stampAt joins the given columns into the timestamp of the row and applies
// the configured time shift.
func (t *Tagger) stampAt(fields []string, columns []int) (time.Time, error) {
	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		if column >= len(fields) {
			return time.Time{}, errors.Errorf("row has no column %d", column)
		}
		parts = append(parts, fields[column])
	}

	stamp, err := timeparse.Parse(strings.Join(parts, " "))
	if err != nil {
		return time.Time{}, err
	}
	return stamp.Add(t.config.TimeShift), nil
}

func (t *Tagger) classify(stamp time.Time) (int, phase.Phase) {
	run, current, cursor := t.timeline.Tag(stamp, t.cursor)
	t.cursor = cursor
	return run, current
}

func (t *Tagger) keep(current phase.Phase) bool {
	if t.config.Keep.Empty() {
		return true
	}
	return t.config.Keep.Contains(current)
}
