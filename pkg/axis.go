package centralmult

import (
	"fmt"
	"math"
)

// Number of azimuthal bins used by every record
const PHI_BINS = 20

// Axis is a uniformly binned axis. Bin 0 is the underflow bin,
// bins 1..NBins are the regular bins and NBins+1 is the overflow bin.
type Axis struct {
	NBins int     `json:"nbins"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

func NewAxis(nbins int, min float64, max float64) (Axis, error) {
	axis := Axis{NBins: nbins, Min: min, Max: max}
	if err := axis.Validate(); err != nil {
		return Axis{}, err
	}
	return axis, nil
}

// PhiAxis returns the fixed azimuthal binning shared by all records.
func PhiAxis() Axis {
	return Axis{NBins: PHI_BINS, Min: 0, Max: 2 * math.Pi}
}

func (a Axis) Validate() error {
	if a.NBins <= 0 {
		return fmt.Errorf("%w: %d bins", ErrInvalidAxis, a.NBins)
	}
	if math.IsNaN(a.Min) || math.IsInf(a.Min, 0) || math.IsNaN(a.Max) || math.IsInf(a.Max, 0) {
		return fmt.Errorf("%w: non-finite limits [%g, %g]", ErrInvalidAxis, a.Min, a.Max)
	}
	if a.Max <= a.Min {
		return fmt.Errorf("%w: empty range [%g, %g]", ErrInvalidAxis, a.Min, a.Max)
	}
	return nil
}

func (a Axis) BinWidth() float64 {
	return (a.Max - a.Min) / float64(a.NBins)
}

// FindBin returns the bin number holding x, including 0 and NBins+1
// for values outside the axis range.
func (a Axis) FindBin(x float64) int {
	if x < a.Min {
		return 0
	}
	if x >= a.Max {
		return a.NBins + 1
	}
	bin := 1 + int(float64(a.NBins)*(x-a.Min)/(a.Max-a.Min))
	// rounding can push values just below Max into the overflow
	if bin > a.NBins {
		bin = a.NBins
	}
	return bin
}

func (a Axis) BinLowEdge(bin int) float64 {
	return a.Min + float64(bin-1)*a.BinWidth()
}

func (a Axis) BinUpEdge(bin int) float64 {
	return a.Min + float64(bin)*a.BinWidth()
}

func (a Axis) BinCenter(bin int) float64 {
	return a.Min + (float64(bin)-0.5)*a.BinWidth()
}

func (a Axis) Equal(other Axis) bool {
	return a.NBins == other.NBins && a.Min == other.Min && a.Max == other.Max
}

func (a Axis) String() string {
	return fmt.Sprintf("%d bins [%g, %g]", a.NBins, a.Min, a.Max)
}
