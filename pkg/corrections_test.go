package centralmult_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	centralmult "github.com/next-exp/centralmult_go/pkg"
)

func Test_Corrections_BitPositions(t *testing.T) {
	assert.Equal(t, centralmult.Corrections(1<<14), centralmult.SecondaryCorrection)
	assert.Equal(t, centralmult.Corrections(1<<16), centralmult.AcceptanceCorrection)
	assert.Equal(t, centralmult.Corrections(1<<19), centralmult.EmpiricalCorrection)
}

func Test_Corrections_String(t *testing.T) {
	tests := []struct {
		c    centralmult.Corrections
		want string
	}{
		{centralmult.NoCorrections, "none"},
		{centralmult.SecondaryCorrection, "secondary"},
		{centralmult.EmpiricalCorrection | centralmult.SecondaryCorrection, "secondary|empirical"},
		{centralmult.SecondaryCorrection | centralmult.AcceptanceCorrection | centralmult.EmpiricalCorrection, "secondary|acceptance|empirical"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.c.String())
	}
}

func Test_ParseCorrections(t *testing.T) {
	c, err := centralmult.ParseCorrections([]string{" Secondary", "empirical", "", "none"})
	require.NoError(t, err)
	assert.True(t, c.Has(centralmult.SecondaryCorrection))
	assert.True(t, c.Has(centralmult.EmpiricalCorrection))
	assert.False(t, c.Has(centralmult.AcceptanceCorrection))

	_, err = centralmult.ParseCorrections([]string{"vertex"})
	assert.Error(t, err)
}

func Test_Corrections_JSON(t *testing.T) {
	var config struct {
		Corrections centralmult.Corrections `json:"corrections"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"corrections": ["acceptance", "secondary"]}`), &config))
	assert.Equal(t, centralmult.AcceptanceCorrection|centralmult.SecondaryCorrection, config.Corrections)

	data, err := json.Marshal(config)
	require.NoError(t, err)
	assert.JSONEq(t, `{"corrections": ["secondary", "acceptance"]}`, string(data))

	assert.Error(t, json.Unmarshal([]byte(`{"corrections": ["bogus"]}`), &config))
}

func Test_Corrections_UnmarshalText(t *testing.T) {
	var c centralmult.Corrections
	require.NoError(t, c.UnmarshalText([]byte("secondary,empirical")))
	assert.Equal(t, centralmult.SecondaryCorrection|centralmult.EmpiricalCorrection, c)

	require.NoError(t, c.UnmarshalText([]byte("acceptance|empirical")))
	assert.Equal(t, centralmult.AcceptanceCorrection|centralmult.EmpiricalCorrection, c)
}

func Test_FromBits_DropsUnknownBits(t *testing.T) {
	c := centralmult.FromBits(uint32(centralmult.SecondaryCorrection) | 1<<3 | 1<<31)
	assert.Equal(t, centralmult.SecondaryCorrection, c)
}
