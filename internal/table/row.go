// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table accumulates flattened rows into an ordered result set.
//
// Rows are sparse: each carries only the columns it was built with. A Table
// keeps the union of every appended row's columns in first-seen order and
// reports cells a row lacks as empty.
package table

// Row is an ordered mapping from column name to scalar value.
// The zero value is an empty row ready to use.
type Row struct {
	cols []string
	vals map[string]string
}

// NewRow returns an empty row.
func NewRow() Row {
	return Row{vals: make(map[string]string)}
}

// RowOf builds a row from alternating column/value pairs. A trailing column
// without a value is ignored.
func RowOf(pairs ...string) Row {
	r := NewRow()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

// Set stores val under col. Overwriting keeps the column's original position.
func (r *Row) Set(col, val string) {
	if r.vals == nil {
		r.vals = make(map[string]string)
	}
	if _, ok := r.vals[col]; !ok {
		r.cols = append(r.cols, col)
	}
	r.vals[col] = val
}

// Get returns the value stored under col and whether the row has that column.
func (r Row) Get(col string) (string, bool) {
	v, ok := r.vals[col]
	return v, ok
}

// Value returns the value stored under col, or "" when the row lacks it.
func (r Row) Value(col string) string {
	return r.vals[col]
}

// Has reports whether the row carries col.
func (r Row) Has(col string) bool {
	_, ok := r.vals[col]
	return ok
}

// Columns returns the row's columns in insertion order.
func (r Row) Columns() []string {
	out := make([]string, len(r.cols))
	copy(out, r.cols)
	return out
}

// Len returns the number of columns in the row.
func (r Row) Len() int { return len(r.cols) }

// Clone returns a deep copy of r.
func (r Row) Clone() Row {
	c := Row{
		cols: make([]string, len(r.cols)),
		vals: make(map[string]string, len(r.vals)),
	}
	copy(c.cols, r.cols)
	for k, v := range r.vals {
		c.vals[k] = v
	}
	return c
}

// Map returns the row as a plain map.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r.vals))
	for k, v := range r.vals {
		m[k] = v
	}
	return m
}
