package models

// SheetPage is one named tab of an exported workbook. Header may be empty
// for pages that carry free-form rows (the metrics page). ColumnWidths holds
// the auto-sized width per column in characters, longest cell wins.
type SheetPage struct {
	Name         string
	Header       []string
	Rows         [][]string
	ColumnWidths []int
}

// Workbook is the pure tabular artifact produced by the spreadsheet codec.
// Writing it to an actual spreadsheet container is an adapter concern.
type Workbook struct {
	Title string
	Pages []SheetPage
}

// RowCount returns the number of data rows on the page, excluding the header.
func (p SheetPage) RowCount() int { return len(p.Rows) }

// AutoSize computes per-column widths from the header and every row. The
// width is the rune length of the longest value seen in that column.
func (p *SheetPage) AutoSize() {
	cols := len(p.Header)
	for _, row := range p.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			if n := len([]rune(cell)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	measure(p.Header)
	for _, row := range p.Rows {
		measure(row)
	}
	p.ColumnWidths = widths
}
