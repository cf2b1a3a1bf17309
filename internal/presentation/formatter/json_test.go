package formatter

import (
	"bytes"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewJSONFormatter(&buf).Format(sampleEntries(), sampleSummary()))

	var decoded struct {
		Entries []struct {
			ChuteID          string         `json:"chute_id"`
			Name             string         `json:"name"`
			GPUs             map[string]int `json:"gpus"`
			TotalCompute     float64        `json:"total_compute"`
			DailyCost        float64        `json:"daily_cost"`
			ComputePerDollar float64        `json:"compute_per_dollar"`
		} `json:"entries"`
		Summary struct {
			Chutes    int     `json:"chutes"`
			GPUs      int     `json:"gpus"`
			DailyCost float64 `json:"daily_cost"`
		} `json:"summary"`
	}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded.Entries, 2)
	first := decoded.Entries[0]
	assert.Equal(t, "A", first.ChuteID)
	assert.Equal(t, "Alpha", first.Name)
	assert.Equal(t, map[string]int{"H100": 2}, first.GPUs)
	assert.Equal(t, 480.0, first.TotalCompute)
	assert.Equal(t, 96.0, first.DailyCost)
	assert.Equal(t, 5.0, first.ComputePerDollar)

	assert.Equal(t, 2, decoded.Summary.Chutes)
	assert.Equal(t, 6, decoded.Summary.GPUs)
	assert.Equal(t, 1096.0, decoded.Summary.DailyCost)
}

func TestJSONFormatter_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewJSONFormatter(&buf).Format(nil, sampleSummary()))
	assert.Contains(t, buf.String(), `"entries": []`)
}
