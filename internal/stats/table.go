package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type column struct {
	header     string
	rightAlign bool
}

// grid is a plain-text table whose columns size to their widest cell.
type grid struct {
	columns []column
	rows    [][]string
}

func newGrid(columns ...column) *grid {
	return &grid{columns: columns}
}

// addRow appends cells; missing trailing cells render empty and extra cells are dropped.
func (g *grid) addRow(cells []string) {
	g.rows = append(g.rows, cells)
}

func (g *grid) widths() []int {
	widths := make([]int, len(g.columns))
	for i, col := range g.columns {
		widths[i] = runewidth.StringWidth(col.header)
	}
	for _, row := range g.rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
	}
	return widths
}

// lines returns the header line followed by one line per row.
func (g *grid) lines() []string {
	if len(g.columns) == 0 {
		return nil
	}
	widths := g.widths()
	headers := make([]string, len(g.columns))
	for i, col := range g.columns {
		headers[i] = col.header
	}
	out := make([]string, 0, len(g.rows)+1)
	out = append(out, g.line(headers, widths))
	for _, row := range g.rows {
		out = append(out, g.line(row, widths))
	}
	return out
}

func (g *grid) line(cells []string, widths []int) string {
	var b strings.Builder
	for i, col := range g.columns {
		if i > 0 {
			b.WriteByte(' ')
		}
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", max(0, widths[i]-runewidth.StringWidth(cell)))
		if col.rightAlign {
			b.WriteString(pad + cell)
		} else {
			b.WriteString(cell + pad)
		}
	}
	return strings.TrimRight(b.String(), " ")
}
