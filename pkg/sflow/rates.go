package sflow

import (
	"strconv"
	"time"
)

// NoValue is emitted in place of a rate that cannot be computed yet.
const NoValue = "NA"

// TotalFieldName names the derived throughput column appended to every
// tagged counter record.
const TotalFieldName = "TotalMbps"

// rateFields are the cumulative counters reported as per second rates.
// Multicast and broadcast packet counts pass through untouched.
var rateFields = [...]int{
	FieldInOctets,
	FieldInUcastPkts,
	FieldInDiscards,
	FieldInErrors,
	FieldInUnknownProtos,
	FieldOutOctets,
	FieldOutUcastPkts,
	FieldOutDiscards,
	FieldOutErrors,
}

// counterKey identifies one counter of one interface of one agent.
type counterKey struct {
	agent   string
	ifIndex string
	field   int
}

// reading remembers the last accepted value of one counter.
type reading struct {
	value uint64
	seen  time.Time
}

// RateTable turns cumulative interface counters into per second rates by
// remembering the previous reading of every (agent, interface, counter).
type RateTable struct {
	last map[counterKey]reading
}

// NewRateTable returns an empty RateTable.
func NewRateTable() *RateTable {
	return &RateTable{last: map[counterKey]reading{}}
}

// Reset forgets every remembered reading. Called when the record stream
// loses its shape, since field values can no longer be trusted to line up
// with earlier ones.
func (r *RateTable) Reset() {
	r.last = map[counterKey]reading{}
}

// Apply rewrites the cumulative counters in fields with per second rates
// computed against the previous reading of the same interface, and returns
// the derived total throughput in megabits per second. Counters seen for the
// first time yield NoValue. A counter that does not parse yields NoValue and
// drops its remembered reading, so the next interval starts from scratch.
func (r *RateTable) Apply(fields []string, stamp time.Time) (total string) {
	agent := fields[FieldAgent]
	ifIndex := fields[FieldIfIndex]

	rates := map[int]float64{}
	for _, field := range rateFields {
		key := counterKey{agent: agent, ifIndex: ifIndex, field: field}

		value, err := strconv.ParseUint(fields[field], 10, 64)
		if err != nil {
			fields[field] = NoValue
			delete(r.last, key)
			continue
		}

		previous, known := r.last[key]
		r.last[key] = reading{value: value, seen: stamp}
		if !known {
			fields[field] = NoValue
			continue
		}

		interval := stamp.Sub(previous.seen).Seconds()
		if interval <= 0 {
			fields[field] = NoValue
			continue
		}

		// A counter reset shows up as a negative rate rather than a wrapped
		// unsigned difference.
		rate := (float64(value) - float64(previous.value)) / interval
		rates[field] = rate
		fields[field] = formatRate(rate)
	}

	in, inKnown := rates[FieldInOctets]
	out, outKnown := rates[FieldOutOctets]
	if !inKnown || !outKnown {
		return NoValue
	}
	return formatRate((in + out) * 8 / 1e6)
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 3, 64)
}
