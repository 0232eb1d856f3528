// Copyright (c) 2025 DBChat
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package render turns results into display text. Everything here is a pure
// function of its input; the one-shot commands and the TUI share it.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/pterm/pterm"

	"dbchat/cli/internal/model"
)

// Null is printed for missing or null cells.
const Null = "—"

// FormatCell renders one preview value.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return Null
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}

// Rows returns the preview as text cells in column order. A row without a
// column gets Null in that cell.
func Rows(res *model.QueryResult) [][]string {
	if res == nil {
		return nil
	}
	out := make([][]string, 0, len(res.Preview))
	for _, row := range res.Preview {
		cells := make([]string, len(res.Columns))
		for i, col := range res.Columns {
			cells[i] = FormatCell(row[col])
		}
		out = append(out, cells)
	}
	return out
}

// TableData builds header plus rows for pterm.DefaultTable. It returns nil
// when the preview has no columns.
func TableData(res *model.QueryResult) pterm.TableData {
	if res == nil || len(res.Columns) == 0 {
		return nil
	}
	data := pterm.TableData{append([]string(nil), res.Columns...)}
	return append(data, Rows(res)...)
}

// PageSummary reads like "12 records • Page 1 of 3".
func PageSummary(res *model.QueryResult) string {
	if res == nil {
		return ""
	}
	return fmt.Sprintf("%d records • Page %d of %d", res.TotalRecords, res.Page, res.PageCount())
}

// HighlightSQL colors sql for a 256-color terminal. It returns sql unchanged
// when highlighting fails.
func HighlightSQL(sql string) string {
	if strings.TrimSpace(sql) == "" {
		return sql
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, sql, "sql", "terminal256", "nord"); err != nil {
		return sql
	}
	return strings.TrimRight(buf.String(), "\n")
}

// IndentJSON pretty-prints raw JSON, or returns it as-is when it is not JSON.
func IndentJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// SavedLine renders one saved query for a list.
func SavedLine(q model.SavedQuery) string {
	if q.Text != "" {
		return q.Text
	}
	var b strings.Builder
	b.WriteString(q.Key)
	if q.Question != "" {
		b.WriteString(": " + q.Question)
	}
	if q.SQL != "" {
		b.WriteString(" [" + q.SQL + "]")
	}
	return b.String()
}
