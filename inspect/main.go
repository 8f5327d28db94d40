package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/next-exp/centralmult_go/internal/logging"
	centralmult "github.com/next-exp/centralmult_go/pkg"
)

var configuration centralmult.Configuration
var logger logging.Logger

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	fileIn := flag.String("in", "", "Input HDF5 file, overrides file_in")
	printOption := flag.String("print", "", "Print option for the merged histogram: \"\", range or all")
	flag.Parse()

	var err error
	configuration, err = centralmult.LoadConfiguration(*configFilename)
	logger = logging.New(os.Stdout, os.Stderr, logging.ParseLevel(configuration.LogLevel))
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	if *fileIn != "" {
		configuration.FileIn = *fileIn
	}
	centralmult.SetConfiguration(configuration)
	centralmult.SetLogger(logger)

	if configuration.Verbosity > 0 {
		centralmult.PrintConfiguration(configuration, logger)
	}

	if err := run(*printOption); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(printOption string) error {
	start := time.Now()
	info, events, err := centralmult.ReadFile(configuration.FileIn)
	if err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("Run %d: %d events", info.RunNumber, len(events)), "main")

	merged, err := mergedRecord(info, events, configuration.NumWorkers)
	if err != nil {
		return err
	}
	fmt.Print(merged.DescribeContents(printOption))

	hist := merged.MustHistogram()
	points := DNdEta(hist)
	for _, p := range points {
		logger.Info(fmt.Sprintf("eta %6.2f  dN/deta %8.3f +- %.3f  (%g events)", p.Eta, p.Value, p.Error, p.Events), "dndeta")
	}
	dndeta := DNdEtaH1D(hist.XAxis(), points, merged.DisplayName()+"DNdEta")

	if configuration.YodaOut != "" {
		if err := writeYODA(configuration.YodaOut, merged, dndeta.MarshalYODA); err != nil {
			return err
		}
	}
	if configuration.PlotOut != "" {
		title := fmt.Sprintf("%s run %d", merged.DisplayName(), info.RunNumber)
		if err := savePlot(dndeta, title, configuration.PlotOut); err != nil {
			return fmt.Errorf("error saving plot: %w", err)
		}
	}

	logger.Info(fmt.Sprintf("Total time: %d ms", time.Since(start).Milliseconds()), "main")
	return nil
}

// mergedRecord sums every stored event into a single record. It keeps the
// correction flags shared by all events.
func mergedRecord(info centralmult.RunInfo, events []centralmult.StoredEvent, nWorkers int) (*centralmult.Record, error) {
	if len(events) == 0 {
		return nil, centralmult.ErrNoRecords
	}
	sum, err := mergeParallel(events, nWorkers)
	if err != nil {
		return nil, err
	}

	record := centralmult.NewRecord(info.Simulated)
	if err := record.Init(sum.XAxis()); err != nil {
		return nil, err
	}
	if err := record.MustHistogram().Add(sum); err != nil {
		return nil, err
	}

	common := events[0].Record.Corrections()
	for _, evt := range events[1:] {
		common &= evt.Record.Corrections()
	}
	record.SetCorrected(common)
	return record, nil
}

func writeYODA(filename string, merged *centralmult.Record, extra ...func() ([]byte, error)) error {
	var buf bytes.Buffer
	data, err := merged.MarshalYODA()
	if err != nil {
		return err
	}
	buf.Write(data)
	for _, marshal := range extra {
		data, err := marshal()
		if err != nil {
			return err
		}
		buf.Write(data)
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		return &centralmult.ErrOpenFile{Filename: filename, Err: err}
	}
	return nil
}
