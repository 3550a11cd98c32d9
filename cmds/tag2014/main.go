package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/powernap/tag2014/pkg/conf"
	"github.com/powernap/tag2014/pkg/phase"
	"github.com/powernap/tag2014/pkg/sfslog"
	"github.com/powernap/tag2014/pkg/tagger"
	"github.com/powernap/tag2014/pkg/utils/err_collection"
	"github.com/powernap/tag2014/pkg/utils/errutil"
	"github.com/powernap/tag2014/pkg/utils/uuid"
	"github.com/powernap/tag2014/pkg/visualization"
)

var (
	// Input format selection. Exactly one format has to be given.
	analyzerFlag = conf.NewBoolFlag("analyzer", "Input is a Unisphere Analyzer archive dump.", false)
	csvFlag      = conf.NewBoolFlag("csv", "Input is a generic CSV export.", false)
	sflowFlag    = conf.NewBoolFlag("sflow", "Input is an sflowtool counter export.", false)
	pivotColFlag = conf.NewIntFlag("pivot_col",
		"Input is a pivoted CSV export carrying the object name in this column (zero based).", -1)

	// Input and output files.
	inputFlag  = conf.NewFileFlag("input", "Measurement file to tag. Required.", "")
	sfslogFlag = conf.NewFileFlag("sfslog", "Benchmark log with the phase transition markers. Required.", "")
	outputFlag = conf.NewStringFlag("output", "File for the tagged rows. Empty means standard output.", "")

	// Row classification tuning.
	tsFieldFlag = conf.NewSliceFlag("ts_field",
		"Timestamp column of the input (zero based). Give twice for split date and time columns, date first.")
	timeShiftFlag = conf.NewIntFlag("time_shift",
		"Seconds to add to every data timestamp before classification, may be negative.", 0)

	// Output restriction.
	warmupFlag       = conf.NewBoolFlag("warmup", "Restrict output to warmup rows (combines with --run and --run_tail).", false)
	runFlag          = conf.NewBoolFlag("run", "Restrict output to measurement rows (combines with --warmup and --run_tail).", false)
	runTailFlag      = conf.NewBoolFlag("run_tail", "Restrict output to run tail rows (combines with --warmup and --run).", false)
	mergeRunTailFlag = conf.NewBoolFlag("merge_run_tail", "Treat the run tail as part of the measurement phase.", false)

	// Diagnostics.
	showTimelineFlag = conf.NewBoolFlag("show_timeline", "Print the extracted phase timeline before tagging.", false)
	configDumpFlag   = conf.NewBoolFlag("config_dump", "Dump the configuration in environment form and exit.", false)
)

func main() {
	conf.SetAppName("tag2014")
	conf.SetHelp(`Tags rows of benchmark measurement files with the SPEC SFS 2014 run and phase active when each row was recorded.
Phase transitions are extracted from the benchmark log, then every measurement row is classified by its timestamp.`)

	errutil.CheckWithContext(conf.ParseFlags(), "invalid command line")

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.100"})
	log.SetOutput(os.Stderr)
	log.SetLevel(conf.LogLevel())

	if configDumpFlag.Value() {
		fmt.Println(conf.DumpConfig())
		os.Exit(0)
	}

	log.Info("Starting ", conf.AppName(), " with uid ", uuid.New())
	errutil.Check(run())
}

func run() (err error) {
	config, err := configFromFlags()
	if err != nil {
		return err
	}

	options := sfslog.Options{MergeRunTail: mergeRunTailFlag.Value()}
	timeline, err := sfslog.File(sfslogFlag.Value(), options)
	if err != nil {
		return err
	}
	log.Infof("Extracted %d phase transitions covering %d runs from %q",
		len(timeline)-1, timeline[len(timeline)-1].Run, sfslogFlag.Value())

	if showTimelineFlag.Value() {
		errutil.Check(visualization.DrawTable(os.Stderr, visualization.TimelineTable(timeline)))
	}

	engine, err := tagger.New(timeline, config)
	if err != nil {
		return err
	}

	input, err := os.Open(inputFlag.Value())
	if err != nil {
		return errors.Wrapf(err, "could not open measurement file %q", inputFlag.Value())
	}
	defer func() {
		var errCollection errcollection.ErrorCollection
		errCollection.Add(err)
		errCollection.Add(errors.Wrap(input.Close(), "closing measurement file failed"))
		err = errCollection.GetErrIfAny()
	}()

	output := os.Stdout
	if outputFlag.Value() != "" {
		output, err = os.Create(outputFlag.Value())
		if err != nil {
			return errors.Wrapf(err, "could not create output file %q", outputFlag.Value())
		}
		defer func() {
			var errCollection errcollection.ErrorCollection
			errCollection.Add(err)
			errCollection.Add(errors.Wrap(output.Close(), "closing output file failed"))
			err = errCollection.GetErrIfAny()
		}()
	}

	reader := csv.NewReader(input)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	writer := csv.NewWriter(output)

	stats, err := engine.Run(reader, writer)
	if err != nil {
		return err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrap(err, "flushing tagged rows failed")
	}

	log.Infof("Tagged %d of %d rows", stats.Written, stats.Rows)
	dropped := stats.Undetected + stats.BadStamps + stats.BadShape + stats.Foreign + stats.Malformed
	if dropped > 0 {
		log.Infof("Dropped %d rows: %d before timestamp discovery, %d bad timestamps, %d bad shape, %d foreign records, %d undecodable",
			dropped, stats.Undetected, stats.BadStamps, stats.BadShape, stats.Foreign, stats.Malformed)
	}
	return nil
}

func configFromFlags() (tagger.Config, error) {
	config := tagger.DefaultConfig()

	format, err := formatFromFlags()
	if err != nil {
		return config, err
	}
	config.Format = format

	if inputFlag.Value() == "" {
		return config, errors.New("Must specify an input file")
	}
	if sfslogFlag.Value() == "" {
		return config, errors.New("Must specify an sfslog file")
	}

	columns, err := timestampColumns()
	if err != nil {
		return config, err
	}
	config.TimestampColumns = columns

	if pivotColFlag.Value() >= 0 {
		config.ObjectColumn = pivotColFlag.Value()
	}
	config.TimeShift = time.Duration(timeShiftFlag.Value()) * time.Second
	config.Keep = keepSet()

	if runTailFlag.Value() && mergeRunTailFlag.Value() {
		log.Warn("Run tail rows are merged into the measurement phase, --run_tail alone will match nothing")
	}

	return config, nil
}

func formatFromFlags() (tagger.Format, error) {
	selected := 0
	format := tagger.FormatCSV
	if analyzerFlag.Value() {
		selected++
		format = tagger.FormatAnalyzer
	}
	if csvFlag.Value() {
		selected++
		format = tagger.FormatCSV
	}
	if sflowFlag.Value() {
		selected++
		format = tagger.FormatSFlow
	}
	if pivotColFlag.Value() >= 0 {
		selected++
		format = tagger.FormatPivot
	}

	if selected == 0 {
		return format, errors.New("Must specify a file type (--analyzer, --csv, --sflow or --pivot_col)")
	}
	if selected > 1 {
		return format, errors.New("Can only specify one file format type")
	}
	return format, nil
}

func timestampColumns() ([]int, error) {
	var columns []int
	for _, field := range tsFieldFlag.Value() {
		column, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(err, "Unable to parse timestamp field string %q", field)
		}
		columns = append(columns, column)
	}
	return columns, nil
}

func keepSet() phase.Set {
	var keep phase.Set
	if warmupFlag.Value() {
		keep = keep.Add(phase.Warmup)
	}
	if runFlag.Value() {
		keep = keep.Add(phase.Run)
	}
	if runTailFlag.Value() {
		keep = keep.Add(phase.RunTail)
	}
	return keep
}
