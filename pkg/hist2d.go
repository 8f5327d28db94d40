package centralmult

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Hist2D is a weighted 2D accumulator over (eta, phi).
//
// Cells are indexed like the axes: (0, *) and (NBins+1, *) are the eta
// under- and overflow, (*, 0) is the phi underflow. The phi axis is
// periodic, Fill wraps phi into the axis range, so the phi-underflow row
// is never written by Fill. That row holds the acceptance of the event
// (see acceptance.go) and must not be treated as a discard bin.
type Hist2D struct {
	xaxis   Axis
	yaxis   Axis
	sumw    *mat.Dense
	sumw2   *mat.Dense
	entries int64
}

func NewHist2D(xaxis Axis, yaxis Axis) *Hist2D {
	rows := xaxis.NBins + 2
	cols := yaxis.NBins + 2
	return &Hist2D{
		xaxis: xaxis,
		yaxis: yaxis,
		sumw:  mat.NewDense(rows, cols, nil),
		sumw2: mat.NewDense(rows, cols, nil),
	}
}

func (h *Hist2D) XAxis() Axis {
	return h.xaxis
}

func (h *Hist2D) YAxis() Axis {
	return h.yaxis
}

func (h *Hist2D) Entries() int64 {
	return h.entries
}

// Fill adds weight w at (x, y). NaN coordinates are ignored.
func (h *Hist2D) Fill(x float64, y float64, w float64) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(y, 0) {
		return
	}
	ix := h.xaxis.FindBin(x)
	iy := h.yaxis.FindBin(h.wrapY(y))
	h.sumw.Set(ix, iy, h.sumw.At(ix, iy)+w)
	h.sumw2.Set(ix, iy, h.sumw2.At(ix, iy)+w*w)
	h.entries++
}

func (h *Hist2D) wrapY(y float64) float64 {
	width := h.yaxis.Max - h.yaxis.Min
	wrapped := math.Mod(y-h.yaxis.Min, width)
	if wrapped < 0 {
		wrapped += width
	}
	// Mod of a tiny negative number can come back as exactly width
	if wrapped >= width {
		wrapped = 0
	}
	return h.yaxis.Min + wrapped
}

func (h *Hist2D) BinContent(ix int, iy int) float64 {
	return h.sumw.At(ix, iy)
}

// SetBinContent overwrites a cell. The squared weight is set to v*v,
// matching a single fill of weight v.
func (h *Hist2D) SetBinContent(ix int, iy int, v float64) {
	h.sumw.Set(ix, iy, v)
	h.sumw2.Set(ix, iy, v*v)
}

func (h *Hist2D) BinError(ix int, iy int) float64 {
	return math.Sqrt(h.sumw2.At(ix, iy))
}

// RegularSum is the sum of weights over the regular bins only.
func (h *Hist2D) RegularSum() float64 {
	regular := h.sumw.Slice(1, h.xaxis.NBins+1, 1, h.yaxis.NBins+1)
	return mat.Sum(regular)
}

// TotalSum includes every cell, outflows and acceptance row included.
func (h *Hist2D) TotalSum() float64 {
	return mat.Sum(h.sumw)
}

// Reset zeroes all cells and the entries counter. Binning is kept.
func (h *Hist2D) Reset() {
	h.sumw.Zero()
	h.sumw2.Zero()
	h.entries = 0
}

func (h *Hist2D) SameBinning(other *Hist2D) bool {
	return h.xaxis.Equal(other.xaxis) && h.yaxis.Equal(other.yaxis)
}

// Add sums other into h cell by cell, under- and overflow included, so the
// signal and the acceptance rows are accumulated in parallel.
func (h *Hist2D) Add(other *Hist2D) error {
	if !h.SameBinning(other) {
		return &ErrBinningMismatch{
			Want: [2]Axis{h.xaxis, h.yaxis},
			Got:  [2]Axis{other.xaxis, other.yaxis},
		}
	}
	h.sumw.Add(h.sumw, other.sumw)
	h.sumw2.Add(h.sumw2, other.sumw2)
	h.entries += other.entries
	return nil
}

func (h *Hist2D) Clone() *Hist2D {
	clone := &Hist2D{
		xaxis:   h.xaxis,
		yaxis:   h.yaxis,
		sumw:    &mat.Dense{},
		sumw2:   &mat.Dense{},
		entries: h.entries,
	}
	clone.sumw.CloneFrom(h.sumw)
	clone.sumw2.CloneFrom(h.sumw2)
	return clone
}

// Equal reports whether both histograms have the same binning and
// identical cell contents.
func (h *Hist2D) Equal(other *Hist2D) bool {
	return h.SameBinning(other) &&
		h.entries == other.entries &&
		mat.Equal(h.sumw, other.sumw) &&
		mat.Equal(h.sumw2, other.sumw2)
}

// EqualApprox is Equal with a relative tolerance on the cells.
func (h *Hist2D) EqualApprox(other *Hist2D, epsilon float64) bool {
	return h.SameBinning(other) &&
		h.entries == other.entries &&
		mat.EqualApprox(h.sumw, other.sumw, epsilon) &&
		mat.EqualApprox(h.sumw2, other.sumw2, epsilon)
}

// Print formats the histogram. Options: "" summary only, "range" adds the
// regular bins, "all" adds every cell including under- and overflow.
func (h *Hist2D) Print(option string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hist2D eta: %v, phi: %v, entries: %d, regular sum: %g, acceptance sum: %g\n",
		h.xaxis, h.yaxis, h.entries, h.RegularSum(), h.AcceptanceSum())

	switch strings.ToLower(strings.TrimSpace(option)) {
	case "range":
		h.printCells(&sb, 1, h.xaxis.NBins, 1, h.yaxis.NBins)
	case "all":
		h.printCells(&sb, 0, h.xaxis.NBins+1, 0, h.yaxis.NBins+1)
	}
	return sb.String()
}

func (h *Hist2D) printCells(sb *strings.Builder, ixFirst int, ixLast int, iyFirst int, iyLast int) {
	for ix := ixFirst; ix <= ixLast; ix++ {
		for iy := iyFirst; iy <= iyLast; iy++ {
			fmt.Fprintf(sb, " cell[%d,%d] eta=%.4g phi=%.4g content=%g error=%g\n",
				ix, iy, h.xaxis.BinCenter(ix), h.yaxis.BinCenter(iy),
				h.sumw.At(ix, iy), h.BinError(ix, iy))
		}
	}
}

// flatten copies the cells of m in row-major order (eta major).
func flatten(m *mat.Dense) []float64 {
	raw := m.RawMatrix()
	data := make([]float64, 0, raw.Rows*raw.Cols)
	for i := 0; i < raw.Rows; i++ {
		data = append(data, raw.Data[i*raw.Stride:i*raw.Stride+raw.Cols]...)
	}
	return data
}

func (h *Hist2D) rawCells() ([]float64, []float64) {
	return flatten(h.sumw), flatten(h.sumw2)
}

func (h *Hist2D) setRawCells(sumw []float64, sumw2 []float64, entries int64) error {
	rows, cols := h.sumw.Dims()
	if len(sumw) != rows*cols || len(sumw2) != rows*cols {
		return fmt.Errorf("expected %d cells, got %d and %d", rows*cols, len(sumw), len(sumw2))
	}
	h.sumw = mat.NewDense(rows, cols, append([]float64(nil), sumw...))
	h.sumw2 = mat.NewDense(rows, cols, append([]float64(nil), sumw2...))
	h.entries = entries
	return nil
}
