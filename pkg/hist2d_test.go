package centralmult_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	centralmult "github.com/next-exp/centralmult_go/pkg"
)

func newTestHist(t *testing.T) *centralmult.Hist2D {
	t.Helper()
	eta, err := centralmult.NewAxis(20, -4, 6)
	require.NoError(t, err)
	return centralmult.NewHist2D(eta, centralmult.PhiAxis())
}

func Test_Hist2D_FillWrapsPhi(t *testing.T) {
	h := newTestHist(t)

	h.Fill(0.1, -0.1, 1)
	h.Fill(0.1, 2*math.Pi, 1)
	h.Fill(0.1, 2*math.Pi+1.0, 1)

	assert.Equal(t, 3.0, h.RegularSum())
	assert.Equal(t, 0.0, h.AcceptanceSum())
	ix := h.XAxis().FindBin(0.1)
	assert.Equal(t, 0.0, h.BinContent(ix, 0), "fills must never reach the acceptance row")
	assert.Equal(t, 1.0, h.BinContent(ix, centralmult.PHI_BINS))
	assert.Equal(t, 1.0, h.BinContent(ix, 1))
	assert.Equal(t, int64(3), h.Entries())
}

func Test_Hist2D_FillOutsideEtaGoesToOutflow(t *testing.T) {
	h := newTestHist(t)

	h.Fill(-10, 1, 2)
	h.Fill(10, 1, 3)

	assert.Equal(t, 0.0, h.RegularSum())
	assert.Equal(t, 0.0, h.AcceptanceSum())
	assert.Equal(t, 5.0, h.TotalSum())
}

func Test_Hist2D_FillIgnoresNaN(t *testing.T) {
	h := newTestHist(t)

	h.Fill(math.NaN(), 1, 1)
	h.Fill(0, math.NaN(), 1)

	assert.Equal(t, 0.0, h.TotalSum())
	assert.Equal(t, int64(0), h.Entries())
}

func Test_Hist2D_BinError(t *testing.T) {
	h := newTestHist(t)

	h.Fill(0.1, 1, 3)
	h.Fill(0.1, 1, 4)

	ix := h.XAxis().FindBin(0.1)
	iy := h.YAxis().FindBin(1)
	assert.Equal(t, 7.0, h.BinContent(ix, iy))
	assert.InDelta(t, 5.0, h.BinError(ix, iy), 1e-12)
}

func Test_Hist2D_AddRejectsDifferentBinning(t *testing.T) {
	h := newTestHist(t)
	other, err := centralmult.NewAxis(10, -4, 6)
	require.NoError(t, err)

	err = h.Add(centralmult.NewHist2D(other, centralmult.PhiAxis()))

	var mismatch *centralmult.ErrBinningMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 20, mismatch.Want[0].NBins)
	assert.Equal(t, 10, mismatch.Got[0].NBins)
}

func Test_Hist2D_CloneIsIndependent(t *testing.T) {
	h := newTestHist(t)
	h.Fill(0.1, 1, 3)

	clone := h.Clone()
	h.Fill(0.1, 1, 3)

	assert.Equal(t, 3.0, clone.RegularSum())
	assert.Equal(t, 6.0, h.RegularSum())
}

func Test_Hist2D_Print(t *testing.T) {
	h := newTestHist(t)
	h.Fill(0.1, 1, 3)
	h.MarkAcceptance(0.1, 1)

	summary := h.Print("")
	assert.Contains(t, summary, "regular sum: 3")
	assert.Contains(t, summary, "acceptance sum: 1")
	assert.Equal(t, 1, strings.Count(summary, "\n"))

	regular := h.Print("range")
	assert.Equal(t, 1+20*centralmult.PHI_BINS, strings.Count(regular, "\n"))

	all := h.Print("ALL")
	assert.Equal(t, 1+22*(centralmult.PHI_BINS+2), strings.Count(all, "\n"))
}
