package formatter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewCSVFormatter(&buf).Format(sampleEntries(), sampleSummary()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"rank", "chute_id", "name", "gpus", "gpu_count",
		"total_compute", "daily_cost", "compute_per_dollar",
	}, records[0])
	assert.Equal(t, []string{"1", "A", "Alpha", "H100:2", "2", "480", "96.00", "5.00"}, records[1])
	assert.Equal(t, []string{"2", "B", "Beta", "A100:3;l40s:1", "4", "1234.5", "1000.00", "1.23"}, records[2])
}

func TestCSVFormatter_HeaderOnlyWhenEmpty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewCSVFormatter(&buf).Format(nil, sampleSummary()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
