// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

// Table is an append-only, ordered sequence of rows with a column union.
// Rows are copied on the way in and on the way out, so callers cannot alter
// a row after it has been appended.
type Table struct {
	columns []string
	seen    map[string]struct{}
	rows    []Row
}

// New returns an empty table.
func New() *Table {
	return &Table{seen: make(map[string]struct{})}
}

// Append adds rows in order and extends the column union with any columns
// not seen before.
func (t *Table) Append(rows ...Row) {
	if t.seen == nil {
		t.seen = make(map[string]struct{})
	}
	for _, r := range rows {
		for _, c := range r.cols {
			t.addColumn(c)
		}
		t.rows = append(t.rows, r.Clone())
	}
}

func (t *Table) addColumn(c string) {
	if _, ok := t.seen[c]; ok {
		return
	}
	t.seen[c] = struct{}{}
	t.columns = append(t.columns, c)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return len(t.rows) == 0 }

// Columns returns the column union in first-seen order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether any appended row carried col.
func (t *Table) HasColumn(col string) bool {
	_, ok := t.seen[col]
	return ok
}

// Row returns a copy of the i-th row.
func (t *Table) Row(i int) Row {
	return t.rows[i].Clone()
}

// Rows returns copies of every row in insertion order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Clone()
	}
	return out
}

// Value returns the cell at row i, column col; "" when the row lacks col.
func (t *Table) Value(i int, col string) string {
	return t.rows[i].Value(col)
}

// Filter returns a new table holding the rows for which keep returns true,
// in their original order. The new table keeps the receiver's full column
// union so exports of a projection share the parent's header.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := New()
	for _, c := range t.columns {
		out.addColumn(c)
	}
	for _, r := range t.rows {
		if keep(r) {
			out.rows = append(out.rows, r.Clone())
		}
	}
	return out
}

// FilterEq keeps the rows whose col equals val.
func (t *Table) FilterEq(col, val string) *Table {
	return t.Filter(func(r Row) bool { return r.Value(col) == val })
}

// Records returns every row as a full-width slice aligned with Columns.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		rec := make([]string, len(t.columns))
		for j, c := range t.columns {
			rec[j] = r.Value(c)
		}
		out[i] = rec
	}
	return out
}
