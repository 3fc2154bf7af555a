// Package star reads and writes the two-block STAR format produced by
// RELION 3D classification jobs.
//
// A result file is a sequence of named blocks. Each block starts with a
// "data_<name>" marker, followed by "loop_", a run of "_column" header
// lines (one column name per line, in arbitrary order), and
// whitespace-delimited data rows terminated by a blank line, the next
// block, or end of file.
//
// Column access is by name, never by position: different jobs emit their
// columns in different orders, so every lookup goes through the header map
// built at parse time.
package star

import "strconv"

// Block names of the two known blocks of a classification result file.
const (
	BlockOptics    = "optics"
	BlockParticles = "particles"
)

// Table is one parsed block: an ordered set of column names and rows of
// string fields aligned with them. Every row has exactly len(Columns)
// fields.
type Table struct {
	Block   string
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewTable creates an empty table for the given block and columns.
// Duplicate column names are rejected.
func NewTable(block string, columns []string) (*Table, error) {
	t := &Table{
		Block:   block,
		Columns: columns,
		index:   make(map[string]int, len(columns)),
	}
	for i, name := range columns {
		if _, dup := t.index[name]; dup {
			return nil, &FormatError{
				Block:   block,
				Message: "duplicate column " + name,
			}
		}
		t.index[name] = i
	}
	return t, nil
}

// ColumnIndex resolves a column name to its position in the rows.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// RequireColumns verifies that every named column is present, returning a
// FormatError naming the file and the first missing column otherwise.
func (t *Table) RequireColumns(file string, names ...string) error {
	for _, name := range names {
		if _, ok := t.index[name]; !ok {
			return &FormatError{
				File:    file,
				Block:   t.Block,
				Message: "required column " + name + " missing",
			}
		}
	}
	return nil
}

// AppendRow adds a data row, enforcing the field-count invariant.
func (t *Table) AppendRow(fields []string) error {
	if len(fields) != len(t.Columns) {
		return &FormatError{
			Block:   t.Block,
			Message: "row has " + strconv.Itoa(len(fields)) + " fields, header has " + strconv.Itoa(len(t.Columns)),
		}
	}
	t.Rows = append(t.Rows, fields)
	return nil
}

// EmptyCopy returns a new table with the same block and columns and no
// rows, sharing the header map.
func (t *Table) EmptyCopy() *Table {
	return &Table{Block: t.Block, Columns: t.Columns, index: t.index}
}

// Select returns a new table with the same block and columns holding only
// the rows for which keep returns true, in their original order.
func (t *Table) Select(keep func(row []string) bool) *Table {
	sub := &Table{
		Block:   t.Block,
		Columns: t.Columns,
		index:   t.index,
	}
	for _, row := range t.Rows {
		if keep(row) {
			sub.Rows = append(sub.Rows, row)
		}
	}
	return sub
}
