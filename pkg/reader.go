package centralmult

import (
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
	"golang.org/x/exp/slices"
)

type RunInfo struct {
	RunNumber int
	Simulated bool
}

// StoredEvent is one record read back from a file written by Writer.
type StoredEvent struct {
	EventNumber int
	Record      *Record
}

// ReadFile loads every record stored in filename.
func ReadFile(filename string) (RunInfo, []StoredEvent, error) {
	file, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return RunInfo{}, nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	defer file.Close()

	runGroup, err := file.OpenGroup("Run")
	if err != nil {
		return RunInfo{}, nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	defer runGroup.Close()

	runInfoRows, err := readTable[RunInfoHDF5](runGroup, "runInfo")
	if err != nil {
		return RunInfo{}, nil, err
	}
	if len(runInfoRows) == 0 {
		// file closed before the first event
		return RunInfo{}, []StoredEvent{}, nil
	}
	info := RunInfo{
		RunNumber: int(runInfoRows[0].run_number),
		Simulated: runInfoRows[0].is_mc != 0,
	}

	multGroup, err := file.OpenGroup("CentralMult")
	if err != nil {
		return info, nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	defer multGroup.Close()

	etaAxis, phiAxis, err := readAxes(multGroup)
	if err != nil {
		return info, nil, err
	}
	if !phiAxis.Equal(PhiAxis()) {
		return info, nil, &ErrBinningMismatch{
			Want: [2]Axis{etaAxis, PhiAxis()},
			Got:  [2]Axis{etaAxis, phiAxis},
		}
	}

	events, err := readTable[EventHDF5](multGroup, "events")
	if err != nil {
		return info, nil, err
	}
	sumw, dims, err := read3dArray(multGroup, "hist")
	if err != nil {
		return info, nil, err
	}
	sumw2, dims2, err := read3dArray(multGroup, "sumw2")
	if err != nil {
		return info, nil, err
	}

	nx := uint(etaAxis.NBins + 2)
	ny := uint(phiAxis.NBins + 2)
	wantDims := []uint{uint(len(events)), nx, ny}
	if !slices.Equal(dims, wantDims) || !slices.Equal(dims2, wantDims) {
		return info, nil, &ErrReadDataset{
			DatasetName: "hist",
			Err:         fmt.Errorf("shape %v / %v does not match %v", dims, dims2, wantDims),
		}
	}

	cells := int(nx * ny)
	stored := make([]StoredEvent, len(events))
	for i, evt := range events {
		record := NewRecord(info.Simulated)
		if err := record.Init(etaAxis); err != nil {
			return info, nil, err
		}
		record.SetCorrected(FromBits(evt.corrections))
		lo, hi := i*cells, (i+1)*cells
		if err := record.hist.setRawCells(sumw[lo:hi], sumw2[lo:hi], evt.entries); err != nil {
			return info, nil, &ErrReadDataset{DatasetName: "hist", Err: err}
		}
		stored[i] = StoredEvent{EventNumber: int(evt.evt_number), Record: record}
	}

	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Read %d events of run %d from %s", len(stored), info.RunNumber, filename), "hdf5reader")
	}
	return info, stored, nil
}

func readAxes(group *hdf5.Group) (Axis, Axis, error) {
	rows, err := readTable[AxisHDF5](group, "axes")
	if err != nil {
		return Axis{}, Axis{}, err
	}
	axes := make(map[string]Axis, len(rows))
	for _, row := range rows {
		axis, err := NewAxis(int(row.nbins), row.min, row.max)
		if err != nil {
			return Axis{}, Axis{}, &ErrReadDataset{DatasetName: "axes", Err: err}
		}
		axes[convertFromHdf5String(row.name)] = axis
	}
	eta, okEta := axes["eta"]
	phi, okPhi := axes["phi"]
	if !okEta || !okPhi {
		return Axis{}, Axis{}, &ErrReadDataset{DatasetName: "axes", Err: fmt.Errorf("missing eta or phi axis")}
	}
	return eta, phi, nil
}
