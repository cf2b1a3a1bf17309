package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/BerlinP/chutes-helper/internal/core/model"
)

// Formatter renders a ranking.
type Formatter interface {
	Format(entries []model.RankedEntry, summary model.RankingSummary) error
}

type Options struct {
	// Color enables ANSI styling where the format supports it
	Color bool
}

// Formats lists the accepted output format names.
var Formats = []string{"text", "table", "json", "csv", "prometheus"}

// New returns the formatter for the named format writing to w.
func New(format string, w io.Writer, opts Options) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return NewTextFormatter(w, opts), nil
	case "table":
		return NewTableFormatter(w, opts), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "prometheus", "prom":
		return NewPrometheusFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected one of %s)", format, strings.Join(Formats, ", "))
	}
}

// gpuSummary renders a GPU count map as "A100:1 H100:2".
func gpuSummary(entry *model.RankedEntry, sep string) string {
	models := entry.GPUModels()
	parts := make([]string, 0, len(models))
	for _, gpu := range models {
		parts = append(parts, fmt.Sprintf("%s:%d", gpu, entry.GPUCounts[gpu]))
	}
	return strings.Join(parts, sep)
}
