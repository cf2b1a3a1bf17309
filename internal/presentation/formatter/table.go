package formatter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/BerlinP/chutes-helper/internal/core/model"
	"github.com/BerlinP/chutes-helper/internal/util"
)

// leftAligned is the number of leading text columns; the rest are numeric.
const leftAligned = 4

type TableFormatter struct {
	w       io.Writer
	color   bool
	headers []string
}

func NewTableFormatter(w io.Writer, opts Options) *TableFormatter {
	return &TableFormatter{
		w:     w,
		color: opts.Color,
		headers: []string{
			"#", "Chute", "Chute ID", "GPU Models",
			"GPUs", "Compute Units", "Daily Cost", "Compute/$",
		},
	}
}

func (f *TableFormatter) Format(entries []model.RankedEntry, summary model.RankingSummary) error {
	rows := make([][]string, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			entry.Name,
			entry.ChuteID,
			gpuSummary(entry, " "),
			util.FormatNumber(entry.GPUTotal()),
			util.FormatDecimal(entry.TotalCompute, 2),
			util.FormatCurrency(entry.DailyCost),
			util.FormatDecimal(entry.ComputePerDollar, 2),
		})
	}
	total := []string{
		"", "Total", "", "",
		util.FormatNumber(summary.GPUs),
		util.FormatDecimal(summary.TotalCompute, 2),
		util.FormatCurrency(summary.DailyCost),
		"",
	}

	widths := f.calculateColumnWidths(append(rows, total))

	bw := bufio.NewWriter(f.w)
	f.printBorder(bw, widths, "top")
	f.printRow(bw, f.headers, widths, true)
	f.printBorder(bw, widths, "middle")
	for _, row := range rows {
		f.printRow(bw, row, widths, false)
	}
	f.printBorder(bw, widths, "middle")
	f.printRow(bw, total, widths, false)
	f.printBorder(bw, widths, "bottom")

	return bw.Flush()
}

// calculateColumnWidths sizes each column to its widest display value
func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (f *TableFormatter) printBorder(w io.Writer, widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	var b strings.Builder
	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	fmt.Fprintln(w, b.String())
}

func (f *TableFormatter) printRow(w io.Writer, values []string, widths []int, header bool) {
	var b strings.Builder
	b.WriteString("│")
	for i, value := range values {
		cell := util.PadString(value, widths[i], i < leftAligned)
		if header {
			cell = util.Colorize(cell, util.ColorBold, f.color)
		}
		b.WriteString(" " + cell + " │")
	}
	fmt.Fprintln(w, b.String())
}
