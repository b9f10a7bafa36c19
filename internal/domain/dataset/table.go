// Package dataset holds the read-only data context every request is served
// from: the raw tables plus the indexes the scorer needs.
package dataset

import "github.com/okian/harmony/internal/domain/model"

// Table is an opaque tabular dataset kept in file order for display.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// ColumnIndex finds a column by normalized name, or -1.
func (t Table) ColumnIndex(name string) int {
	key := model.NormalizeKey(name)
	for i, c := range t.Columns {
		if model.NormalizeKey(c) == key {
			return i
		}
	}
	return -1
}

// Head returns a copy of the first n rows; n < 0 keeps every row.
func (t Table) Head(n int) Table {
	if n < 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	return Table{Columns: t.Columns, Rows: t.Rows[:n]}.Clone()
}

// Where returns the rows whose column value normalizes to the same key as value.
// An unknown column yields an empty table with the same columns.
func (t Table) Where(column, value string) Table {
	out := Table{Columns: append([]string(nil), t.Columns...), Rows: [][]string{}}
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return out
	}
	key := model.NormalizeKey(value)
	for _, row := range t.Rows {
		if idx < len(row) && model.NormalizeKey(row[idx]) == key {
			out.Rows = append(out.Rows, append([]string(nil), row...))
		}
	}
	return out
}

// Clone deep-copies the table so callers cannot reach the snapshot's rows.
func (t Table) Clone() Table {
	out := Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}
