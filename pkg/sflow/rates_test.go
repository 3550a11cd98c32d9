package sflow

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func counterRecord(values map[int]string) []string {
	fields := []string{
		"2020-01-06", "10:00:00", RecordTypeCounter, "192.168.1.5", "1001",
		"6", "10000000000", "0", "1",
		"0", "0", "0", "0", "0", "0", "0",
		"0", "0", "0", "0", "0", "0", "2",
	}
	for index, value := range values {
		fields[index] = value
	}
	return fields
}

func TestRateTable(t *testing.T) {
	start := time.Date(2020, 1, 6, 10, 0, 0, 0, time.UTC)

	Convey("While rating counter samples", t, func() {
		table := NewRateTable()

		Convey("The first sample of an interface has no rates", func() {
			fields := counterRecord(map[int]string{FieldInOctets: "1000"})
			total := table.Apply(fields, start)

			So(total, ShouldEqual, NoValue)
			So(fields[FieldInOctets], ShouldEqual, NoValue)
			So(fields[FieldOutOctets], ShouldEqual, NoValue)

			Convey("Non counter fields pass through untouched", func() {
				So(fields[FieldAgent], ShouldEqual, "192.168.1.5")
				So(fields[FieldIfSpeed], ShouldEqual, "10000000000")
				So(fields[FieldInMulticastPkts], ShouldEqual, "0")
			})
		})

		Convey("The second sample yields per second rates and the total", func() {
			table.Apply(counterRecord(map[int]string{
				FieldInOctets:    "0",
				FieldOutOctets:   "0",
				FieldInUcastPkts: "1000",
			}), start)

			fields := counterRecord(map[int]string{
				FieldInOctets:    "30000000",
				FieldOutOctets:   "7500000",
				FieldInUcastPkts: "1900",
			})
			total := table.Apply(fields, start.Add(30*time.Second))

			So(fields[FieldInOctets], ShouldEqual, "1000000.000")
			So(fields[FieldOutOctets], ShouldEqual, "250000.000")
			So(fields[FieldInUcastPkts], ShouldEqual, "30.000")
			So(total, ShouldEqual, "10.000")
		})

		Convey("A counter that goes backwards rates negative", func() {
			table.Apply(counterRecord(map[int]string{FieldInOctets: "30000000"}), start)

			fields := counterRecord(map[int]string{FieldInOctets: "1000"})
			table.Apply(fields, start.Add(30*time.Second))

			So(fields[FieldInOctets], ShouldEqual, "-999966.667")
		})

		Convey("A corrupted counter invalidates only its own baseline", func() {
			table.Apply(counterRecord(map[int]string{
				FieldInOctets:  "0",
				FieldOutOctets: "0",
			}), start)

			fields := counterRecord(map[int]string{
				FieldInOctets:  "garbage",
				FieldOutOctets: "3000",
			})
			total := table.Apply(fields, start.Add(30*time.Second))
			So(fields[FieldInOctets], ShouldEqual, NoValue)
			So(fields[FieldOutOctets], ShouldEqual, "100.000")
			So(total, ShouldEqual, NoValue)

			Convey("The next good reading starts the interval from scratch", func() {
				fields := counterRecord(map[int]string{
					FieldInOctets:  "6000",
					FieldOutOctets: "6000",
				})
				total := table.Apply(fields, start.Add(60*time.Second))
				So(fields[FieldInOctets], ShouldEqual, NoValue)
				So(fields[FieldOutOctets], ShouldEqual, "100.000")
				So(total, ShouldEqual, NoValue)

				fields = counterRecord(map[int]string{
					FieldInOctets:  "9000",
					FieldOutOctets: "9000",
				})
				total = table.Apply(fields, start.Add(90*time.Second))
				So(fields[FieldInOctets], ShouldEqual, "100.000")
				So(fields[FieldOutOctets], ShouldEqual, "100.000")
				So(total, ShouldEqual, "0.002")
			})
		})

		Convey("Interfaces keep independent baselines", func() {
			table.Apply(counterRecord(map[int]string{FieldInOctets: "0"}), start)
			table.Apply(counterRecord(map[int]string{FieldIfIndex: "2002", FieldInOctets: "90000"}), start)

			first := counterRecord(map[int]string{FieldInOctets: "3000"})
			table.Apply(first, start.Add(30*time.Second))
			second := counterRecord(map[int]string{FieldIfIndex: "2002", FieldInOctets: "93000"})
			table.Apply(second, start.Add(30*time.Second))

			So(first[FieldInOctets], ShouldEqual, "100.000")
			So(second[FieldInOctets], ShouldEqual, "100.000")
		})

		Convey("A repeated timestamp cannot produce a rate", func() {
			table.Apply(counterRecord(map[int]string{FieldInOctets: "0"}), start)

			fields := counterRecord(map[int]string{FieldInOctets: "3000"})
			table.Apply(fields, start)

			So(fields[FieldInOctets], ShouldEqual, NoValue)
		})

		Convey("Reset drops every baseline", func() {
			table.Apply(counterRecord(nil), start)
			table.Reset()

			fields := counterRecord(map[int]string{FieldInOctets: "3000"})
			table.Apply(fields, start.Add(30*time.Second))

			So(fields[FieldInOctets], ShouldEqual, NoValue)
		})
	})
}
