package centralmult

import (
	"errors"
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

// Writer stores one record per event in an HDF5 file:
//
//	/Run/runInfo            run number and origin
//	/CentralMult/axes       eta and phi binning
//	/CentralMult/events     event number, correction flags, entries
//	/CentralMult/hist       (events, eta cells, phi cells) sum of weights
//	/CentralMult/sumw2      same shape, sum of squared weights
//
// The cell arrays include under- and overflow, so the acceptance row is
// stored with the signal.
type Writer struct {
	File         *hdf5.File
	Filename     string
	RunNumber    int
	FirstEvt     bool
	RunGroup     *hdf5.Group
	MultGroup    *hdf5.Group
	RunInfoTable *hdf5.Dataset
	AxesTable    *hdf5.Dataset
	EventTable   *hdf5.Dataset
	HistArray    *hdf5.Dataset
	Sumw2Array   *hdf5.Dataset
	EtaAxis      Axis
	PhiAxis      Axis
	Simulated    bool
	EvtCounter   int
}

func NewWriter(filename string, runNumber int) (*Writer, error) {
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Creating file: %s", filename), "hdf5writer")
	}

	var err error
	writer := &Writer{Filename: filename, RunNumber: runNumber}
	if writer.File, err = openFile(filename); err != nil {
		return nil, err
	}
	if writer.RunGroup, err = createGroup(writer.File, "Run"); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if writer.MultGroup, err = createGroup(writer.File, "CentralMult"); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if writer.RunInfoTable, err = createTable(writer.RunGroup, "runInfo", RunInfoHDF5{}); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if writer.AxesTable, err = createTable(writer.MultGroup, "axes", AxisHDF5{}); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if writer.EventTable, err = createTable(writer.MultGroup, "events", EventHDF5{}); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	return writer, nil
}

// WriteEvent appends one record. The binning and origin of the first
// record are fixed for the whole file.
func (w *Writer) WriteEvent(record Persistable, evtNumber int) error {
	hist, err := record.Histogram()
	if err != nil {
		return fmt.Errorf("error writing event %d: %w", evtNumber, err)
	}

	if !w.FirstEvt {
		if err := w.writeHeader(record, hist); err != nil {
			return err
		}
		w.FirstEvt = true
	}

	if !hist.XAxis().Equal(w.EtaAxis) || !hist.YAxis().Equal(w.PhiAxis) {
		return fmt.Errorf("error writing event %d: %w", evtNumber, &ErrBinningMismatch{
			Want: [2]Axis{w.EtaAxis, w.PhiAxis},
			Got:  [2]Axis{hist.XAxis(), hist.YAxis()},
		})
	}
	if record.IsSimulated() != w.Simulated {
		return fmt.Errorf("error writing event %d: %s record in a %s file",
			evtNumber, record.DisplayName(), recordName(w.Simulated))
	}

	err = writeEntryToTable(w.EventTable, EventHDF5{
		evt_number:  int32(evtNumber),
		corrections: uint32(record.Corrections()),
		entries:     hist.Entries(),
	}, w.EvtCounter)
	if err != nil {
		return fmt.Errorf("error writing event table: %w", err)
	}

	nx := w.EtaAxis.NBins + 2
	ny := w.PhiAxis.NBins + 2
	sumw, sumw2 := hist.rawCells()
	if err := write3dArray(w.HistArray, &sumw, w.EvtCounter, nx, ny); err != nil {
		return fmt.Errorf("error writing histogram: %w", err)
	}
	if err := write3dArray(w.Sumw2Array, &sumw2, w.EvtCounter, nx, ny); err != nil {
		return fmt.Errorf("error writing squared weights: %w", err)
	}

	w.EvtCounter++
	return nil
}

func (w *Writer) writeHeader(record Persistable, hist *Hist2D) error {
	w.EtaAxis = hist.XAxis()
	w.PhiAxis = hist.YAxis()
	w.Simulated = record.IsSimulated()

	isMC := int32(0)
	if w.Simulated {
		isMC = 1
	}
	err := writeEntryToTable(w.RunInfoTable, RunInfoHDF5{run_number: int32(w.RunNumber), is_mc: isMC}, 0)
	if err != nil {
		return fmt.Errorf("error writing run info: %w", err)
	}

	axes := []AxisHDF5{
		{name: convertToHdf5String("eta"), nbins: int32(w.EtaAxis.NBins), min: w.EtaAxis.Min, max: w.EtaAxis.Max},
		{name: convertToHdf5String("phi"), nbins: int32(w.PhiAxis.NBins), min: w.PhiAxis.Min, max: w.PhiAxis.Max},
	}
	if err := writeArrayToTable(w.AxesTable, &axes, 0); err != nil {
		return fmt.Errorf("error writing axes: %w", err)
	}

	nx := w.EtaAxis.NBins + 2
	ny := w.PhiAxis.NBins + 2
	if w.HistArray, err = create3dArray(w.MultGroup, "hist", nx, ny); err != nil {
		return err
	}
	if w.Sumw2Array, err = create3dArray(w.MultGroup, "sumw2", nx, ny); err != nil {
		return err
	}
	return nil
}

func recordName(simulated bool) string {
	if simulated {
		return RECORD_NAME_MC
	}
	return RECORD_NAME
}

func (w *Writer) Close() error {
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Closing file %s", w.Filename), "hdf5writer")
	}
	var errs []error

	closers := []struct {
		name   string
		closer interface{ Close() error }
	}{
		{"histogram array", w.HistArray},
		{"squared weights array", w.Sumw2Array},
		{"event table", w.EventTable},
		{"axes table", w.AxesTable},
		{"run info table", w.RunInfoTable},
		{"central mult group", w.MultGroup},
		{"run group", w.RunGroup},
		{"file", w.File},
	}
	for _, c := range closers {
		if isNilCloser(c.closer) {
			continue
		}
		if err := c.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s: %w", c.name, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func isNilCloser(c interface{ Close() error }) bool {
	switch v := c.(type) {
	case *hdf5.Dataset:
		return v == nil
	case *hdf5.Group:
		return v == nil
	case *hdf5.File:
		return v == nil
	}
	return c == nil
}
