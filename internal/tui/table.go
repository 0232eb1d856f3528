// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tui

import (
	"github.com/charmbracelet/lipgloss"
	bbtable "github.com/evertras/bubble-table/table"

	"dbchat/cli/internal/model"
	"dbchat/cli/internal/render"
)

const maxColumnWidth = 40

func newGrid(cols []bbtable.Column) bbtable.Model {
	return bbtable.New(cols).
		WithBaseStyle(lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorForeground))).
		HeaderStyle(lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorTeal)).
			Bold(true)).
		Focused(false).
		BorderRounded()
}

// columnWidths sizes each column to its widest cell, header included,
// capped at maxColumnWidth.
func columnWidths(columns []string, rows [][]string) []int {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = lipgloss.Width(c)
	}
	for _, r := range rows {
		for i, cell := range r {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	for i := range widths {
		widths[i] = min(max(widths[i], 1), maxColumnWidth)
	}
	return widths
}

func gridRows(columns []string, rows [][]string) []bbtable.Row {
	out := make([]bbtable.Row, 0, len(rows))
	for _, r := range rows {
		data := bbtable.RowData{}
		for i, col := range columns {
			val := r[i]
			if val == render.Null {
				data[col] = bbtable.NewStyledCell(val, lipgloss.NewStyle().Foreground(lipgloss.Color(colorComment)))
				continue
			}
			data[col] = val
		}
		out = append(out, bbtable.NewRow(data))
	}
	return out
}

// resultGrid builds the preview grid. ok is false when the result has no
// columns to show.
func resultGrid(res *model.QueryResult) (grid bbtable.Model, ok bool) {
	if res == nil || len(res.Columns) == 0 {
		return bbtable.New(nil), false
	}
	rows := render.Rows(res)
	widths := columnWidths(res.Columns, rows)
	cols := make([]bbtable.Column, 0, len(res.Columns))
	for i, c := range res.Columns {
		cols = append(cols, bbtable.NewColumn(c, c, widths[i]))
	}
	return newGrid(cols).WithRows(gridRows(res.Columns, rows)).WithNoPagination(), true
}
