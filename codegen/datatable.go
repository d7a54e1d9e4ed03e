package codegen

import (
	"fmt"
	"strings"

	"github.com/rulelang/rulec/ast"
)

// dataTableHostType: a two-column table lowers to a Map field; any other
// column count lowers to a List of row-maps.
func dataTableHostType(dt *ast.DataTable) string {
	if len(dt.Columns) == 2 {
		return "Map<String, Object>"
	}
	return "List<Map<String, Object>>"
}

func (g *Generator) lowerDataTable(dt *ast.DataTable) string {
	if len(dt.Columns) == 2 {
		return g.lowerMapEntries(len(dt.Rows), func(i int) (string, string) {
			row := dt.Rows[i]
			return g.lowerExpr(g.ctx, row.Cells[0]), g.lowerExpr(g.ctx, row.Cells[1])
		})
	}

	rows := make([]string, len(dt.Rows))
	for i, row := range dt.Rows {
		rows[i] = g.lowerMapEntries(len(dt.Columns), func(ci int) (string, string) {
			return fmt.Sprintf("%q", dt.Columns[ci]), g.lowerExpr(g.ctx, row.Cells[ci])
		})
	}
	return fmt.Sprintf("List.of(%s)", strings.Join(rows, ", "))
}

// lowerMapEntries builds a Map.of(...)/Map.ofEntries(...) literal from n
// key/value pairs produced by at(i), switching to the ofEntries form once
// the host vararg "of" limit of 10 is exceeded.
func (g *Generator) lowerMapEntries(n int, at func(i int) (string, string)) string {
	if n > 10 {
		entries := make([]string, n)
		for i := 0; i < n; i++ {
			k, v := at(i)
			entries[i] = fmt.Sprintf("Map.entry(%s, %s)", k, v)
		}
		return fmt.Sprintf("Map.ofEntries(%s)", strings.Join(entries, ", "))
	}
	parts := make([]string, 0, n*2)
	for i := 0; i < n; i++ {
		k, v := at(i)
		parts = append(parts, k, v)
	}
	return fmt.Sprintf("Map.of(%s)", strings.Join(parts, ", "))
}
