package formatter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/BerlinP/chutes-helper/internal/core/model"
)

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

func (f *CSVFormatter) Format(entries []model.RankedEntry, _ model.RankingSummary) error {
	w := csv.NewWriter(f.w)

	headers := []string{
		"rank", "chute_id", "name", "gpus", "gpu_count",
		"total_compute", "daily_cost", "compute_per_dollar",
	}
	if err := w.Write(headers); err != nil {
		return err
	}

	for i := range entries {
		entry := &entries[i]
		record := []string{
			strconv.Itoa(i + 1),
			entry.ChuteID,
			entry.Name,
			gpuSummary(entry, ";"),
			strconv.Itoa(entry.GPUTotal()),
			strconv.FormatFloat(entry.TotalCompute, 'f', -1, 64),
			strconv.FormatFloat(entry.DailyCost, 'f', 2, 64),
			strconv.FormatFloat(entry.ComputePerDollar, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
