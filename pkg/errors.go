package centralmult

import (
	"errors"
	"fmt"
)

var (
	ErrNotInitialized = errors.New("record used before Init")
	ErrInvalidAxis    = errors.New("invalid axis")
	ErrNoRecords      = errors.New("no records to merge")
)

// ErrBinningMismatch is returned when adding histograms with different axes.
type ErrBinningMismatch struct {
	Want [2]Axis
	Got  [2]Axis
}

func (e *ErrBinningMismatch) Error() string {
	return fmt.Sprintf("binning mismatch: want eta %v phi %v, got eta %v phi %v",
		e.Want[0], e.Want[1], e.Got[0], e.Got[1])
}

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error {
	return e.Err
}

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

func (e *ErrCreateGroup) Unwrap() error {
	return e.Err
}

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}

func (e *ErrCreateTable) Unwrap() error {
	return e.Err
}

// ErrReadDataset represents an error when reading back a dataset.
type ErrReadDataset struct {
	DatasetName string
	Err         error
}

func (e *ErrReadDataset) Error() string {
	return fmt.Sprintf("error reading dataset %q: %v", e.DatasetName, e.Err)
}

func (e *ErrReadDataset) Unwrap() error {
	return e.Err
}
