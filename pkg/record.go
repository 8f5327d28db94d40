package centralmult

import (
	"fmt"
	"strings"
)

const (
	RECORD_NAME    = "CentralClusters"
	RECORD_NAME_MC = "CentralClustersMC"
)

// Inspectable is implemented by objects that can be identified and
// rendered by inspection tooling.
type Inspectable interface {
	DisplayName() string
	DescribeContents(option string) string
}

// Persistable exposes the full state needed to serialise a record.
type Persistable interface {
	DisplayName() string
	IsSimulated() bool
	Corrections() Corrections
	Histogram() (*Hist2D, error)
}

// Record holds d2N/(deta dphi) of the central region for one event.
//
// The eta acceptance of the event is stored in the phi-underflow row of
// the histogram, not in a separate field. To build the final distribution
// sum the records cell by cell and divide the regular bins by the
// acceptance row (weighted by the number of events).
//
// A Record is not safe for concurrent use; give each worker its own.
type Record struct {
	simulated   bool
	corrections Corrections
	hist        *Hist2D
}

// NewRecord returns an uninitialized record. Call Init before use.
func NewRecord(simulated bool) *Record {
	return &Record{simulated: simulated}
}

// Init fixes the binning: etaAxis as given and PhiAxis() in azimuth.
// Any previous binning and content is discarded.
func (r *Record) Init(etaAxis Axis) error {
	if err := etaAxis.Validate(); err != nil {
		return fmt.Errorf("error initializing %s: %w", r.DisplayName(), err)
	}
	r.hist = NewHist2D(etaAxis, PhiAxis())
	return nil
}

func (r *Record) IsInitialized() bool {
	return r.hist != nil
}

// Histogram gives direct access to the accumulator, for filling or
// reading. Out of range fills are the caller's responsibility.
func (r *Record) Histogram() (*Hist2D, error) {
	if r.hist == nil {
		return nil, fmt.Errorf("%s: %w", r.DisplayName(), ErrNotInitialized)
	}
	return r.hist, nil
}

// MustHistogram is Histogram for callers that already checked Init.
func (r *Record) MustHistogram() *Hist2D {
	h, err := r.Histogram()
	if err != nil {
		panic(err)
	}
	return h
}

// ClearEvent zeroes every cell, acceptance row included, before the
// record is reused for the next event. Binning, origin and correction
// flags are kept.
func (r *Record) ClearEvent() {
	if r.hist == nil {
		return
	}
	r.hist.Reset()
}

func (r *Record) IsSimulated() bool {
	return r.simulated
}

func (r *Record) Corrections() Corrections {
	return r.corrections
}

func (r *Record) SetCorrected(c Corrections) {
	r.corrections = r.corrections.Set(c)
}

func (r *Record) ClearCorrected(c Corrections) {
	r.corrections = r.corrections.Clear(c)
}

func (r *Record) IsSecondaryCorrected() bool {
	return r.corrections.Has(SecondaryCorrection)
}

func (r *Record) IsAcceptanceCorrected() bool {
	return r.corrections.Has(AcceptanceCorrection)
}

func (r *Record) IsEmpiricalCorrected() bool {
	return r.corrections.Has(EmpiricalCorrection)
}

func (r *Record) DisplayName() string {
	if r.simulated {
		return RECORD_NAME_MC
	}
	return RECORD_NAME
}

// DescribeContents returns a printable summary. The option is passed
// verbatim to Hist2D.Print.
func (r *Record) DescribeContents(option string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (corrections: %v)\n", r.DisplayName(), r.corrections)
	if r.hist == nil {
		sb.WriteString(" not initialized\n")
		return sb.String()
	}
	sb.WriteString(r.hist.Print(option))
	return sb.String()
}
