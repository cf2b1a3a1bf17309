package formatter

import (
	"bufio"
	"fmt"
	"io"

	"github.com/BerlinP/chutes-helper/internal/core/model"
	"github.com/BerlinP/chutes-helper/internal/util"
)

// TextFormatter prints one block per chute:
//
//	Chute: <name> (<id>)
//	Compute Units per Dollar: <x.xx>
//	GPU count:
//	  <gpu>: <count>
type TextFormatter struct {
	w     io.Writer
	color bool
}

func NewTextFormatter(w io.Writer, opts Options) *TextFormatter {
	return &TextFormatter{w: w, color: opts.Color}
}

func (f *TextFormatter) Format(entries []model.RankedEntry, _ model.RankingSummary) error {
	bw := bufio.NewWriter(f.w)

	for i := range entries {
		entry := &entries[i]
		name := util.Colorize(entry.Name, util.ColorBold, f.color)

		fmt.Fprintf(bw, "\nChute: %s (%s)\n", name, entry.ChuteID)
		fmt.Fprintf(bw, "Compute Units per Dollar: %.2f\n", entry.ComputePerDollar)
		fmt.Fprintln(bw, "GPU count:")
		for _, gpu := range entry.GPUModels() {
			fmt.Fprintf(bw, "  %s: %d\n", gpu, entry.GPUCounts[gpu])
		}
	}

	return bw.Flush()
}
