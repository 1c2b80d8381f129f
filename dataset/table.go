// Package dataset holds the row-oriented series table that string-mode
// transforms read and write.
//
// Every row carries one encoded spike train in its series field and an opaque
// group identifier (subject or session) used for group-aware splitting.
package dataset

import (
	"fmt"

	"github.com/YuminosukeSato/spikelib/pkg/errors"
)

// Row is one record of a Table.
type Row struct {
	Series string
	Group  string
}

// Table is an ordered collection of rows. Mutation is row-local.
type Table struct {
	rows []Row
}

// NewTable builds a table from parallel series and groups columns.
// A nil groups slice gives every row an empty group.
func NewTable(series, groups []string) (*Table, error) {
	if groups != nil && len(groups) != len(series) {
		return nil, errors.NewDimensionError("dataset.NewTable", len(series), len(groups), 0)
	}
	rows := make([]Row, len(series))
	for i, s := range series {
		rows[i].Series = s
		if groups != nil {
			rows[i].Group = groups[i]
		}
	}
	return &Table{rows: rows}, nil
}

// FromRows builds a table from a copy of rows.
func FromRows(rows []Row) *Table {
	return &Table{rows: append([]Row(nil), rows...)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns row i.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Series returns the encoded train of row i.
func (t *Table) Series(i int) string {
	return t.rows[i].Series
}

// SetSeries overwrites the encoded train of row i.
func (t *Table) SetSeries(i int, s string) {
	t.rows[i].Series = s
}

// Group returns the group identifier of row i.
func (t *Table) Group(i int) string {
	return t.rows[i].Group
}

// SeriesColumn returns a copy of the series column.
func (t *Table) SeriesColumn() []string {
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Series
	}
	return out
}

// Groups returns a copy of the groups column.
func (t *Table) Groups() []string {
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Group
	}
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	return FromRows(t.rows)
}

// Subset returns a new table holding the rows at idx, in that order.
func (t *Table) Subset(idx []int) (*Table, error) {
	rows := make([]Row, len(idx))
	for k, i := range idx {
		if i < 0 || i >= len(t.rows) {
			return nil, errors.NewValueError("Table.Subset",
				fmt.Sprintf("row index %d out of range [0,%d)", i, len(t.rows)))
		}
		rows[k] = t.rows[i]
	}
	return &Table{rows: rows}, nil
}

func (t *Table) String() string {
	return fmt.Sprintf("Table(rows=%d)", len(t.rows))
}
