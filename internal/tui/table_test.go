// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tui

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"dbchat/cli/internal/model"
	"dbchat/cli/internal/render"
)

func TestColumnWidths(t *testing.T) {
	cols := []string{"id", "description"}
	rows := [][]string{{"12345", "x"}, {"1", strings.Repeat("y", 80)}}
	assert.Equal(t, []int{5, maxColumnWidth}, columnWidths(cols, rows))
}

func TestGridRowsKeepsColumnKeys(t *testing.T) {
	rows := gridRows([]string{"region", "total"}, [][]string{{"EU", "10"}, {"US", render.Null}})
	assert.Len(t, rows, 2)
	assert.Equal(t, "EU", rows[0].Data["region"])
	assert.Equal(t, "10", rows[0].Data["total"])
	assert.NotNil(t, rows[1].Data["total"])
}

func TestResultGrid(t *testing.T) {
	_, ok := resultGrid(nil)
	assert.False(t, ok)

	_, ok = resultGrid(&model.QueryResult{Answer: "no rows"})
	assert.False(t, ok)

	res := &model.QueryResult{
		Columns: []string{"region", "total"},
		Preview: []model.Row{{"region": "EU", "total": json.Number("10")}, {"region": "US"}},
	}
	grid, ok := resultGrid(res)
	assert.True(t, ok)
	view := grid.View()
	assert.Contains(t, view, "region")
	assert.Contains(t, view, "EU")
	assert.Contains(t, view, render.Null)
}
