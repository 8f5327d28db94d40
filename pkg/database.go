package centralmult

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

type EtaAxisEntry struct {
	NBins  int     `db:"NBins"`
	EtaMin float64 `db:"EtaMin"`
	EtaMax float64 `db:"EtaMax"`
}

type CorrectionEntry struct {
	Name string `db:"Name"`
}

// LoadEtaAxis reads the eta binning valid for a run.
func LoadEtaAxis(db *sqlx.DB, runNumber int) (Axis, error) {
	query := "SELECT NBins, EtaMin, EtaMax FROM EtaAxis WHERE MinRun <= ? and MaxRun >= ?"
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Reading eta axis for run %d from database", runNumber), "database")
	}
	if configuration.Verbosity > 2 {
		logger.Info(fmt.Sprintf("Query: %s", query), "database")
	}

	rows, err := db.Queryx(query, runNumber, runNumber)
	if err != nil {
		return Axis{}, fmt.Errorf("error querying database: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Axis{}, fmt.Errorf("error reading eta axis: %w", err)
		}
		return Axis{}, fmt.Errorf("no eta axis for run %d", runNumber)
	}
	result := EtaAxisEntry{}
	if err := rows.StructScan(&result); err != nil {
		return Axis{}, fmt.Errorf("error scanning DB row: %w", err)
	}
	return NewAxis(result.NBins, result.EtaMin, result.EtaMax)
}

// LoadCorrections reads which corrections the producer applies for a run.
func LoadCorrections(db *sqlx.DB, runNumber int) (Corrections, error) {
	query := "SELECT Name FROM AppliedCorrections WHERE MinRun <= ? and MaxRun >= ? ORDER BY Name"
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Reading corrections for run %d from database", runNumber), "database")
	}
	if configuration.Verbosity > 2 {
		logger.Info(fmt.Sprintf("Query: %s", query), "database")
	}

	rows, err := db.Queryx(query, runNumber, runNumber)
	if err != nil {
		return NoCorrections, fmt.Errorf("error querying database: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		result := CorrectionEntry{}
		if err := rows.StructScan(&result); err != nil {
			return NoCorrections, fmt.Errorf("error scanning DB row: %w", err)
		}
		names = append(names, result.Name)
	}
	if err := rows.Err(); err != nil {
		return NoCorrections, fmt.Errorf("error reading corrections: %w", err)
	}
	return ParseCorrections(names)
}
