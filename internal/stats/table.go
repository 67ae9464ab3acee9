package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const columnGap = "  "

// FormatTable renders headers and rows as aligned text columns separated by
// two spaces. Columns listed in rightAlign are right-aligned; everything else
// is left-aligned. Ragged rows are padded with empty cells.
func FormatTable(headers []string, rows [][]string, rightAlign ...int) []string {
	cols := len(headers)
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return nil
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	alignRight := make(map[int]bool, len(rightAlign))
	for _, col := range rightAlign {
		alignRight[col] = true
	}

	render := func(row []string) string {
		cells := make([]string, cols)
		for i := range cells {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell))
			if alignRight[i] {
				cells[i] = pad + cell
			} else {
				cells[i] = cell + pad
			}
		}
		return strings.TrimRight(strings.Join(cells, columnGap), " ")
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, render(headers))
	}
	for _, row := range rows {
		lines = append(lines, render(row))
	}
	return lines
}
