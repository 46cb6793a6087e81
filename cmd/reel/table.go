package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one table column; numeric columns align right.
type column struct {
	header  string
	numeric bool
}

// renderTable draws rows under columns. A non-nil footer is rendered as a
// totals row.
func renderTable(columns []column, rows [][]string, footer []string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		align := text.AlignLeft
		if col.numeric {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft, AlignFooter: align}
	}
	tw.SetColumnConfigs(configs)

	tw.AppendHeader(tableRow(len(columns), columnHeaders(columns)))
	for _, row := range rows {
		tw.AppendRow(tableRow(len(columns), row))
	}
	if footer != nil {
		tw.AppendFooter(tableRow(len(columns), footer))
	}
	return tw.Render()
}

func columnHeaders(columns []column) []string {
	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.header
	}
	return headers
}

// tableRow pads or truncates cells to width.
func tableRow(width int, cells []string) table.Row {
	row := make(table.Row, width)
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}
