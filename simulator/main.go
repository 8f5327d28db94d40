package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	sqlx "github.com/jmoiron/sqlx"
	"github.com/next-exp/centralmult_go/internal/logging"
	centralmult "github.com/next-exp/centralmult_go/pkg"
)

var dbConn *sqlx.DB
var configuration centralmult.Configuration
var logger logging.Logger

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = centralmult.LoadConfiguration(*configFilename)
	logger = logging.New(os.Stdout, os.Stderr, logging.ParseLevel(configuration.LogLevel))
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	centralmult.SetConfiguration(configuration)
	centralmult.SetLogger(logger)

	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Reading configuration file: %s", *configFilename), "main")
		centralmult.PrintConfiguration(configuration, logger)
	}

	if err := run(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	etaAxis, corrections, err := analysisSetup()
	if err != nil {
		return err
	}

	writer, err := centralmult.NewWriter(configuration.FileOut, configuration.RunNumber)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}

	generator := Generator{
		Seed:             configuration.Seed,
		MeanMultiplicity: configuration.MeanMultiplicity,
		VertexSigma:      configuration.VertexSigma,
		Corrections:      corrections,
	}

	start := time.Now()
	written, pipelineErr := runPipeline(generator, etaAxis, configuration.Simulated,
		configuration.NumWorkers, configuration.MaxEvents, writer)
	closeErr := writer.Close()

	duration := time.Since(start)
	logger.Info(fmt.Sprintf("Events written: %d in %d ms", written, duration.Milliseconds()), "main")

	if pipelineErr != nil {
		return pipelineErr
	}
	if closeErr != nil {
		return fmt.Errorf("error closing output file: %w", closeErr)
	}
	return nil
}

// analysisSetup returns the eta binning and the correction flags to use,
// from the condition database unless no_db is set.
func analysisSetup() (centralmult.Axis, centralmult.Corrections, error) {
	if configuration.NoDB {
		etaAxis, err := configuration.EtaAxis()
		return etaAxis, configuration.Corrections, err
	}

	var err error
	dbConn, err = centralmult.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
	if err != nil {
		return centralmult.Axis{}, 0, fmt.Errorf("Error connection to database: %w", err)
	}
	defer dbConn.Close()

	etaAxis, err := centralmult.LoadEtaAxis(dbConn, configuration.RunNumber)
	if err != nil {
		return centralmult.Axis{}, 0, fmt.Errorf("error getting eta axis from database: %w", err)
	}
	corrections, err := centralmult.LoadCorrections(dbConn, configuration.RunNumber)
	if err != nil {
		return centralmult.Axis{}, 0, fmt.Errorf("error getting corrections from database: %w", err)
	}
	return etaAxis, corrections.Set(configuration.Corrections), nil
}
