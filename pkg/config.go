package centralmult

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

type Configuration struct {
	MaxEvents        int         `json:"max_events" env:"CENTRALMULT_MAX_EVENTS"`
	Verbosity        int         `json:"verbosity" env:"CENTRALMULT_VERBOSITY"`
	LogLevel         string      `json:"log_level" env:"CENTRALMULT_LOG_LEVEL"`
	FileIn           string      `json:"file_in" env:"CENTRALMULT_FILE_IN"`
	FileOut          string      `json:"file_out" env:"CENTRALMULT_FILE_OUT"`
	YodaOut          string      `json:"yoda_out" env:"CENTRALMULT_YODA_OUT"`
	PlotOut          string      `json:"plot_out" env:"CENTRALMULT_PLOT_OUT"`
	NoDB             bool        `json:"no_db" env:"CENTRALMULT_NO_DB"`
	Host             string      `json:"host" env:"CENTRALMULT_DB_HOST"`
	User             string      `json:"user" env:"CENTRALMULT_DB_USER"`
	Passwd           string      `json:"pass" env:"CENTRALMULT_DB_PASS"`
	DBName           string      `json:"dbname" env:"CENTRALMULT_DB_NAME"`
	RunNumber        int         `json:"run_number" env:"CENTRALMULT_RUN_NUMBER"`
	NumWorkers       int         `json:"num_workers" env:"CENTRALMULT_NUM_WORKERS"`
	CompressionLevel int         `json:"compression_level" env:"CENTRALMULT_COMPRESSION_LEVEL"`
	EtaBins          int         `json:"eta_bins" env:"CENTRALMULT_ETA_BINS"`
	EtaMin           float64     `json:"eta_min" env:"CENTRALMULT_ETA_MIN"`
	EtaMax           float64     `json:"eta_max" env:"CENTRALMULT_ETA_MAX"`
	Simulated        bool        `json:"simulated" env:"CENTRALMULT_SIMULATED"`
	Seed             uint64      `json:"seed" env:"CENTRALMULT_SEED"`
	MeanMultiplicity float64     `json:"mean_multiplicity" env:"CENTRALMULT_MEAN_MULTIPLICITY"`
	VertexSigma      float64     `json:"vertex_sigma" env:"CENTRALMULT_VERTEX_SIGMA"`
	Corrections      Corrections `json:"corrections" env:"CENTRALMULT_CORRECTIONS"`
}

var configuration = DefaultConfiguration()

// DefaultConfiguration holds the values used when a field is missing
// from the configuration file.
func DefaultConfiguration() Configuration {
	return Configuration{
		MaxEvents:        1000,
		Verbosity:        0,
		LogLevel:         "info",
		FileOut:          "centralmult.h5",
		NoDB:             true,
		Host:             "next.ific.uv.es",
		User:             "nextreader",
		Passwd:           "readonly",
		DBName:           "NEXT100DB",
		NumWorkers:       1,
		CompressionLevel: 4,
		EtaBins:          200,
		EtaMin:           -4,
		EtaMax:           6,
		Simulated:        true,
		Seed:             1,
		MeanMultiplicity: 50,
		VertexSigma:      5,
	}
}

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}

// EtaAxis is the eta binning configured by hand, used when the
// condition database is not read.
func (c Configuration) EtaAxis() (Axis, error) {
	return NewAxis(c.EtaBins, c.EtaMin, c.EtaMax)
}

// LoadConfiguration reads a JSON configuration file on top of the defaults
// and then applies the CENTRALMULT_* environment variables. An empty
// filename skips the file.
func LoadConfiguration(filename string) (Configuration, error) {
	config := DefaultConfiguration()

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return config, err
		}
		if err := json.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("error parsing %s: %w", filename, err)
		}
	}
	if err := env.Parse(&config); err != nil {
		return config, fmt.Errorf("error parsing environment: %w", err)
	}
	return config, nil
}

func PrintConfiguration(config Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("YODA out: %s", config.YodaOut), "config")
	logger.Info(fmt.Sprintf("Plot out: %s", config.PlotOut), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Log level: %s", config.LogLevel), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Eta axis: %d bins [%g, %g]", config.EtaBins, config.EtaMin, config.EtaMax), "config")
	logger.Info(fmt.Sprintf("Simulated: %t", config.Simulated), "config")
	logger.Info(fmt.Sprintf("Seed: %d", config.Seed), "config")
	logger.Info(fmt.Sprintf("Mean multiplicity: %g", config.MeanMultiplicity), "config")
	logger.Info(fmt.Sprintf("Vertex sigma: %g", config.VertexSigma), "config")
	logger.Info(fmt.Sprintf("Corrections: %v", config.Corrections), "config")
}
