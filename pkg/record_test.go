package centralmult_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	centralmult "github.com/next-exp/centralmult_go/pkg"
)

func newInitializedRecord(t *testing.T, simulated bool) *centralmult.Record {
	t.Helper()
	eta, err := centralmult.NewAxis(20, -4, 6)
	require.NoError(t, err)
	record := centralmult.NewRecord(simulated)
	require.NoError(t, record.Init(eta))
	return record
}

func Test_Record_FillAndClearScenario(t *testing.T) {
	record := newInitializedRecord(t, false)
	h, err := record.Histogram()
	require.NoError(t, err)

	h.Fill(0.1, 1.0, 3.0)
	h.SetAcceptance(h.XAxis().FindBin(0.1), 1.0)

	assert.Equal(t, 3.0, h.RegularSum())
	assert.Equal(t, 1.0, h.AcceptanceSum())
	assert.False(t, record.IsSecondaryCorrected())
	assert.False(t, record.IsAcceptanceCorrected())
	assert.False(t, record.IsEmpiricalCorrected())

	record.ClearEvent()

	assert.Equal(t, 0.0, h.RegularSum())
	assert.Equal(t, 0.0, h.AcceptanceSum())
	assert.Equal(t, 0.0, h.TotalSum())
	assert.Equal(t, 20, h.XAxis().NBins)
	assert.Equal(t, -4.0, h.XAxis().Min)
	assert.Equal(t, 6.0, h.XAxis().Max)
}

func Test_Record_UseBeforeInit(t *testing.T) {
	record := centralmult.NewRecord(false)

	_, err := record.Histogram()
	assert.ErrorIs(t, err, centralmult.ErrNotInitialized)
	assert.Panics(t, func() { record.MustHistogram() })
	assert.False(t, record.IsInitialized())
	assert.NotPanics(t, record.ClearEvent)
	assert.Contains(t, record.DescribeContents(""), "not initialized")
}

func Test_Record_InitRejectsInvalidAxis(t *testing.T) {
	record := centralmult.NewRecord(false)

	err := record.Init(centralmult.Axis{NBins: 0, Min: -4, Max: 6})

	assert.ErrorIs(t, err, centralmult.ErrInvalidAxis)
	assert.False(t, record.IsInitialized())
}

func Test_Record_InitDiscardsPreviousBinningAndContent(t *testing.T) {
	record := newInitializedRecord(t, true)
	record.MustHistogram().Fill(0.1, 1.0, 3.0)

	eta, err := centralmult.NewAxis(10, -2, 2)
	require.NoError(t, err)
	require.NoError(t, record.Init(eta))

	h := record.MustHistogram()
	assert.True(t, h.XAxis().Equal(eta))
	assert.True(t, h.YAxis().Equal(centralmult.PhiAxis()))
	assert.Equal(t, 0.0, h.TotalSum())
	assert.True(t, record.IsSimulated())
}

func Test_Record_AcceptanceAndSignalStaySeparate(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	record := newInitializedRecord(t, false)
	h := record.MustHistogram()

	signal, acceptance := 0.0, 0.0
	for i := 0; i < 1000; i++ {
		eta := -4 + 10*rng.Float64()
		phi := -10 + 20*rng.Float64()
		w := rng.Float64()
		h.Fill(eta, phi, w)
		signal += w

		if i%10 == 0 {
			acc := float64(rng.Intn(3))
			h.MarkAcceptance(eta, acc)
			acceptance += acc
		}
	}

	assert.InDelta(t, signal, h.RegularSum(), 1e-9)
	assert.InDelta(t, acceptance, h.AcceptanceSum(), 1e-9)
	assert.InDelta(t, signal+acceptance, h.TotalSum(), 1e-9)
}

func Test_Record_ClearEventIsIdempotent(t *testing.T) {
	record := newInitializedRecord(t, true)
	record.SetCorrected(centralmult.SecondaryCorrection)
	h := record.MustHistogram()
	h.Fill(0.1, 1.0, 3.0)
	h.MarkAcceptance(0.1, 1.0)
	axis := h.XAxis()

	record.ClearEvent()
	once := h.Clone()
	record.ClearEvent()

	assert.True(t, once.Equal(h))
	assert.Equal(t, 0.0, h.TotalSum())
	assert.Equal(t, int64(0), h.Entries())
	assert.True(t, h.XAxis().Equal(axis))
	assert.True(t, record.IsSimulated())
	assert.True(t, record.IsSecondaryCorrected(), "flags survive ClearEvent")
}

func Test_Record_FlagsAreIndependent(t *testing.T) {
	all := []centralmult.Corrections{
		centralmult.SecondaryCorrection,
		centralmult.AcceptanceCorrection,
		centralmult.EmpiricalCorrection,
	}
	for subset := 0; subset < 1<<len(all); subset++ {
		record := newInitializedRecord(t, false)
		h := record.MustHistogram()
		h.Fill(0.1, 1.0, 3.0)
		before := h.Clone()

		for i, c := range all {
			if subset&(1<<i) != 0 {
				record.SetCorrected(c)
			}
		}

		assert.Equal(t, subset&1 != 0, record.IsSecondaryCorrected(), "subset %03b", subset)
		assert.Equal(t, subset&2 != 0, record.IsAcceptanceCorrected(), "subset %03b", subset)
		assert.Equal(t, subset&4 != 0, record.IsEmpiricalCorrected(), "subset %03b", subset)
		assert.True(t, before.Equal(h), "flags must not touch the histogram")
	}
}

func Test_Record_ClearCorrected(t *testing.T) {
	record := newInitializedRecord(t, false)
	record.SetCorrected(centralmult.SecondaryCorrection | centralmult.EmpiricalCorrection)

	record.ClearCorrected(centralmult.SecondaryCorrection)

	assert.False(t, record.IsSecondaryCorrected())
	assert.True(t, record.IsEmpiricalCorrected())
	assert.False(t, record.IsAcceptanceCorrected())
}

func Test_Record_DisplayName(t *testing.T) {
	data := centralmult.NewRecord(false)
	mc := centralmult.NewRecord(true)

	assert.Equal(t, "CentralClusters", data.DisplayName())
	assert.Equal(t, "CentralClustersMC", mc.DisplayName())

	eta, err := centralmult.NewAxis(20, -4, 6)
	require.NoError(t, err)
	require.NoError(t, mc.Init(eta))
	mc.MustHistogram().Fill(0.1, 1, 1)
	mc.SetCorrected(centralmult.AcceptanceCorrection)
	mc.ClearEvent()
	assert.Equal(t, "CentralClustersMC", mc.DisplayName())
}

func Test_Record_DescribeContents(t *testing.T) {
	record := newInitializedRecord(t, true)
	record.SetCorrected(centralmult.SecondaryCorrection | centralmult.AcceptanceCorrection)
	record.MustHistogram().Fill(0.1, 1.0, 3.0)

	text := record.DescribeContents("")

	lines := strings.Split(strings.TrimSpace(text), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "CentralClustersMC (corrections: secondary|acceptance)", lines[0])
	assert.Contains(t, lines[1], "regular sum: 3")
}

func Test_Record_ImplementsCapabilities(t *testing.T) {
	var _ centralmult.Inspectable = centralmult.NewRecord(false)
	var _ centralmult.Persistable = centralmult.NewRecord(false)
}
