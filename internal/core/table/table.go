package table

import (
	"encoding/json"
	"sort"
)

// Row maps a column name to its cell value.
type Row map[string]Value

// Get returns the value for a column, or Null when the column is absent.
func (r Row) Get(column string) Value {
	if r == nil {
		return Null
	}
	return r[column]
}

// Clone returns a shallow copy; Values are immutable so this is a full copy.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered set of rows sharing one schema.
// Every row holds every column; cells without data hold Null.
type Table struct {
	columns []string
	index   map[string]int
	rows    []Row
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		t.addColumn(c)
	}
	return t
}

// FromRows builds a table whose schema is the given columns followed by any
// extra columns found in the rows, in first-seen order.
func FromRows(columns []string, rows []Row) *Table {
	t := New(columns...)
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

func (t *Table) addColumn(c string) bool {
	if _, ok := t.index[c]; ok {
		return false
	}
	t.index[c] = len(t.columns)
	t.columns = append(t.columns, c)
	return true
}

// Append adds a copy of r. Columns missing from r are filled with Null; columns
// new to the table extend the schema and are back-filled with Null.
func (t *Table) Append(r Row) {
	if t.index == nil {
		t.index = make(map[string]int)
	}

	var extra []string
	for c := range r {
		if _, ok := t.index[c]; !ok {
			extra = append(extra, c)
		}
	}
	sort.Strings(extra)
	for _, c := range extra {
		t.addColumn(c)
		for _, existing := range t.rows {
			existing[c] = Null
		}
	}

	row := make(Row, len(t.columns))
	for _, c := range t.columns {
		row[c] = r[c]
	}
	t.rows = append(t.rows, row)
}

// Columns returns the schema in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the schema contains c.
func (t *Table) HasColumn(c string) bool {
	_, ok := t.index[c]
	return ok
}

// Len returns the number of rows. A nil table has zero rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return t.Len() == 0 }

// Row returns row i. The returned row must not be modified.
func (t *Table) Row(i int) Row { return t.rows[i] }

// Rows returns the backing rows. Callers must treat them as read-only.
func (t *Table) Rows() []Row {
	if t == nil {
		return nil
	}
	return t.rows
}

// Column returns every value of column c in row order.
func (t *Table) Column(c string) []Value {
	out := make([]Value, 0, t.Len())
	for _, r := range t.Rows() {
		out = append(out, r[c])
	}
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := New(t.columns...)
	out.rows = make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		out.rows = append(out.rows, r.Clone())
	}
	return out
}

// Filter returns a new table holding the rows for which keep returns true.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := New(t.columns...)
	for _, r := range t.rows {
		if keep(r) {
			out.rows = append(out.rows, r.Clone())
		}
	}
	return out
}

// SortBy returns a new table sorted stably by less.
func (t *Table) SortBy(less func(a, b Row) bool) *Table {
	out := t.Clone()
	sort.SliceStable(out.rows, func(i, j int) bool { return less(out.rows[i], out.rows[j]) })
	return out
}

// Head returns the first n rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	if n < 0 {
		n = 0
	}
	out := New(t.columns...)
	for _, r := range t.rows[:n] {
		out.rows = append(out.rows, r.Clone())
	}
	return out
}

// Map returns a new table with fn applied to a copy of every row.
func (t *Table) Map(fn func(Row) Row) *Table {
	out := New(t.columns...)
	for _, r := range t.rows {
		out.Append(fn(r.Clone()))
	}
	return out
}

// WithTextColumns returns a copy in which every non-null cell of the named
// columns is a string. Delimited text loses cell types, so names such as
// "1989" come back as numbers until they are re-typed here.
func (t *Table) WithTextColumns(columns ...string) *Table {
	if t == nil {
		return nil
	}
	out := t.Clone()
	for _, c := range columns {
		if !out.HasColumn(c) {
			continue
		}
		for _, r := range out.rows {
			r[c] = r[c].AsText()
		}
	}
	return out
}

// IndexWhere returns the index of the first row matching pred, or -1.
func (t *Table) IndexWhere(pred func(Row) bool) int {
	for i, r := range t.Rows() {
		if pred(r) {
			return i
		}
	}
	return -1
}

// MarshalJSON encodes the table as an array of row objects.
func (t *Table) MarshalJSON() ([]byte, error) {
	if t == nil || len(t.rows) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(t.rows)
}
