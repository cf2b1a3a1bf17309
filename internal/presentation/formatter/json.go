package formatter

import (
	"io"

	"github.com/bytedance/sonic"

	"github.com/BerlinP/chutes-helper/internal/core/model"
)

type jsonReport struct {
	Entries []model.RankedEntry  `json:"entries"`
	Summary model.RankingSummary `json:"summary"`
}

type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

func (f *JSONFormatter) Format(entries []model.RankedEntry, summary model.RankingSummary) error {
	if entries == nil {
		entries = []model.RankedEntry{}
	}

	data, err := sonic.ConfigStd.MarshalIndent(jsonReport{Entries: entries, Summary: summary}, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = f.w.Write(data)
	return err
}
