package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/BerlinP/chutes-helper/internal/core/model"
	"github.com/BerlinP/chutes-helper/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	err := NewTableFormatter(&buf, Options{}).Format(sampleEntries(), sampleSummary())
	require.NoError(t, err)

	output := buf.String()
	for _, want := range []string{
		"Chute ID", "Compute/$",
		"Alpha", "H100:2", "480.00", "$96.00", "5.00",
		"Beta", "A100:3 l40s:1", "1,234.50", "$1,000.00", "1.23",
		"Total", "1,714.50", "$1,096.00",
	} {
		assert.Contains(t, output, want)
	}

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	// top, header, separator, 2 rows, separator, total, bottom
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.True(t, strings.HasPrefix(lines[7], "└"))
	assert.True(t, strings.HasPrefix(lines[3], "│ 1 "))
	assert.True(t, strings.HasPrefix(lines[4], "│ 2 "))

	width := util.GetDisplayWidth(lines[0])
	for _, line := range lines {
		assert.Equal(t, width, util.GetDisplayWidth(line), "misaligned line %q", line)
	}
}

func TestTableFormatter_WideNames(t *testing.T) {
	var buf bytes.Buffer
	entries := []model.RankedEntry{{
		ChuteAggregate: model.ChuteAggregate{ChuteID: "Z", Name: "推理服务", GPUCounts: map[string]int{"H100": 1}},
	}}

	require.NoError(t, NewTableFormatter(&buf, Options{}).Format(entries, model.RankingSummary{Chutes: 1, GPUs: 1}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	width := util.GetDisplayWidth(lines[0])
	for _, line := range lines {
		assert.Equal(t, width, util.GetDisplayWidth(line), "misaligned line %q", line)
	}
}

func TestTableFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewTableFormatter(&buf, Options{}).Format(nil, model.RankingSummary{}))

	output := buf.String()
	assert.Contains(t, output, "Total")
	assert.Contains(t, output, "$0.00")
}
