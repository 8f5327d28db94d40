package centralmult_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	centralmult "github.com/next-exp/centralmult_go/pkg"
)

func Test_Writer_RoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "records.h5")
	rng := rand.New(rand.NewSource(5))

	writer, err := centralmult.NewWriter(filename, 1234)
	require.NoError(t, err)

	record := newInitializedRecord(t, true)
	record.SetCorrected(centralmult.SecondaryCorrection)
	written := make([]*centralmult.Hist2D, 0, 3)
	for evt := 0; evt < 3; evt++ {
		record.ClearEvent()
		h := record.MustHistogram()
		for i := 0; i < 20; i++ {
			h.Fill(-4+10*rng.Float64(), 7*rng.Float64(), rng.Float64())
		}
		h.MarkAcceptance(0.1, 1)
		written = append(written, h.Clone())
		require.NoError(t, writer.WriteEvent(record, 100+evt))
	}
	require.NoError(t, writer.Close())

	info, events, err := centralmult.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, 1234, info.RunNumber)
	assert.True(t, info.Simulated)
	require.Len(t, events, 3)
	for i, evt := range events {
		assert.Equal(t, 100+i, evt.EventNumber)
		assert.Equal(t, "CentralClustersMC", evt.Record.DisplayName())
		assert.True(t, evt.Record.IsSecondaryCorrected())
		assert.False(t, evt.Record.IsAcceptanceCorrected())
		assert.True(t, written[i].Equal(evt.Record.MustHistogram()), "event %d", i)
	}
}

func Test_Writer_RejectsBinningChange(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "records.h5")
	writer, err := centralmult.NewWriter(filename, 1)
	require.NoError(t, err)
	defer writer.Close()

	require.NoError(t, writer.WriteEvent(newInitializedRecord(t, false), 0))

	other := centralmult.NewRecord(false)
	eta, err := centralmult.NewAxis(10, -4, 6)
	require.NoError(t, err)
	require.NoError(t, other.Init(eta))
	err = writer.WriteEvent(other, 1)
	var mismatch *centralmult.ErrBinningMismatch
	assert.ErrorAs(t, err, &mismatch)

	assert.Error(t, writer.WriteEvent(newInitializedRecord(t, true), 2))
	assert.ErrorIs(t, writer.WriteEvent(centralmult.NewRecord(false), 3), centralmult.ErrNotInitialized)
}

func Test_ReadFile_MissingFile(t *testing.T) {
	_, _, err := centralmult.ReadFile(filepath.Join(t.TempDir(), "missing.h5"))

	var openErr *centralmult.ErrOpenFile
	assert.ErrorAs(t, err, &openErr)
}
