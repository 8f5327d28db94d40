package centralmult

import "golang.org/x/exp/slices"

// The eta acceptance of an event is stored in the phi-underflow cell of
// every eta column, cell (ix, 0). Summing many events cell by cell gives
// the signal in the regular bins and, in that row, the number of events
// that had eta bin ix instrumented. Both are needed to normalise the final
// distribution, so the row must survive any change to the accumulator.
const ACCEPTANCE_ROW = 0

func (h *Hist2D) Acceptance(ix int) float64 {
	return h.sumw.At(ix, ACCEPTANCE_ROW)
}

func (h *Hist2D) SetAcceptance(ix int, v float64) {
	h.sumw.Set(ix, ACCEPTANCE_ROW, v)
	h.sumw2.Set(ix, ACCEPTANCE_ROW, v*v)
}

func (h *Hist2D) AddAcceptance(ix int, v float64) {
	h.sumw.Set(ix, ACCEPTANCE_ROW, h.sumw.At(ix, ACCEPTANCE_ROW)+v)
	h.sumw2.Set(ix, ACCEPTANCE_ROW, h.sumw2.At(ix, ACCEPTANCE_ROW)+v*v)
}

// MarkAcceptance adds v to the acceptance of the eta bin holding eta.
// Values outside the eta range are ignored.
func (h *Hist2D) MarkAcceptance(eta float64, v float64) {
	ix := h.xaxis.FindBin(eta)
	if ix < 1 || ix > h.xaxis.NBins {
		return
	}
	h.AddAcceptance(ix, v)
}

// AcceptanceSum sums the acceptance row over the regular eta bins.
func (h *Hist2D) AcceptanceSum() float64 {
	sum := 0.0
	for _, v := range h.AcceptanceRow() {
		sum += v
	}
	return sum
}

// AcceptanceRow returns a copy of the acceptance of the regular eta bins,
// index 0 being eta bin 1.
func (h *Hist2D) AcceptanceRow() []float64 {
	row := make([]float64, h.xaxis.NBins)
	for ix := 1; ix <= h.xaxis.NBins; ix++ {
		row[ix-1] = h.sumw.At(ix, ACCEPTANCE_ROW)
	}
	return row
}

// AcceptedRange returns the first and last eta bin with non-zero
// acceptance.
func (h *Hist2D) AcceptedRange() (int, int, bool) {
	row := h.AcceptanceRow()
	nonZero := func(v float64) bool { return v != 0 }
	first := slices.IndexFunc(row, nonZero)
	if first < 0 {
		return 0, 0, false
	}
	last := first
	for i := len(row) - 1; i > first; i-- {
		if row[i] != 0 {
			last = i
			break
		}
	}
	return first + 1, last + 1, true
}
