package schema

import (
	"slices"
	"strings"

	"github.com/syssam/shipyard"
)

// Table describes a table: its columns, indexes and table-level metadata.
type Table struct {
	Schema string
	Name   string

	Columns []*Column
	Indexes []*Index
	// ClusteredIndex is optional. When set, an inline single-column primary
	// key is rendered as nonclustered.
	ClusteredIndex *Index

	PrimaryKeyConstraintName string

	Description string
	Properties  []*Property

	// HistorySchema and HistoryTable name the history table of a
	// system-versioned temporal table.
	HistorySchema string
	HistoryTable  string
}

// NewTable returns an empty table.
func NewTable(schema, name string) *Table {
	return &Table{Schema: schema, Name: name}
}

// AddColumn appends columns to the table.
func (t *Table) AddColumn(cols ...*Column) *Table {
	t.Columns = append(t.Columns, cols...)
	return t
}

// AddIndex appends secondary indexes to the table.
func (t *Table) AddIndex(idx ...*Index) *Table {
	t.Indexes = append(t.Indexes, idx...)
	return t
}

// AddProperty appends an extended property to the table.
func (t *Table) AddProperty(name, value string) *Table {
	t.Properties = append(t.Properties, &Property{Name: name, Value: value})
	return t
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// PrimaryKeyColumns returns the primary key columns in column order.
func (t *Table) PrimaryKeyColumns() []*Column {
	var pk []*Column
	for _, c := range t.Columns {
		if c.PrimaryKey {
			pk = append(pk, c)
		}
	}
	return pk
}

// HasPrimaryKey reports whether any column is part of the primary key.
func (t *Table) HasPrimaryKey() bool {
	for _, c := range t.Columns {
		if c.PrimaryKey {
			return true
		}
	}
	return false
}

// HasCompoundPrimaryKey reports whether the primary key spans more than one
// column.
func (t *Table) HasCompoundPrimaryKey() bool {
	return len(t.PrimaryKeyColumns()) > 1
}

// HasForeignKeys reports whether any column references another table.
func (t *Table) HasForeignKeys() bool {
	for _, c := range t.Columns {
		if c.HasForeignKey() {
			return true
		}
	}
	return false
}

// ReferencesTable reports whether any column of t has a foreign key to
// other. An empty referenced schema means the schema of t.
func (t *Table) ReferencesTable(other *Table) bool {
	if other == nil {
		return false
	}
	for _, c := range t.Columns {
		if c.ReferencedTable == "" {
			continue
		}
		schema := c.ReferencedSchema
		if schema == "" {
			schema = t.Schema
		}
		if schema == other.Schema && c.ReferencedTable == other.Name {
			return true
		}
	}
	return false
}

// QualifiedName returns "schema.name" without escaping.
func (t *Table) QualifiedName() string {
	return t.Schema + "." + t.Name
}

// CreateView returns a view with a single source selecting from t. With no
// column names, every column of t is selected.
func (t *Table) CreateView(schema, name string, columns ...string) *View {
	v := NewView(schema, name)
	src := v.AddSource(t.Schema, t.Name)
	if len(columns) == 0 {
		for _, c := range t.Columns {
			src.AddColumn(c.Name)
		}
		return v
	}
	for _, c := range columns {
		src.AddColumn(c)
	}
	return v
}

// CreateHistoryTable returns the history table of a system-versioned table.
// Columns are copied without identity, key, period or constraint settings,
// since a history table carries no constraints. Indexes are not copied.
func (t *Table) CreateHistoryTable() (*Table, error) {
	if t.HistoryTable == "" {
		return nil, shipyard.ErrMissingHistoryTable
	}
	schema := t.HistorySchema
	if schema == "" {
		schema = t.Schema
	}
	h := NewTable(schema, t.HistoryTable)
	h.Description = t.Description
	for _, c := range t.Columns {
		hc := c.Clone()
		hc.Identity = false
		hc.IdentitySeed = nil
		hc.IdentityIncrement = nil
		hc.PrimaryKey = false
		hc.RowStart = false
		hc.RowEnd = false
		hc.Hidden = false
		hc.Unique = false
		hc.UniqueConstraintName = ""
		hc.ReferencedSchema, hc.ReferencedTable, hc.ReferencedColumn = "", "", ""
		hc.FKConstraintName = ""
		hc.Default, hc.DefaultLocalTime, hc.DefaultUTCTime = "", false, false
		hc.DefaultConstraintName = ""
		hc.Check, hc.CheckConstraintName = "", ""
		h.Columns = append(h.Columns, hc)
	}
	return h, nil
}

// Tables is an ordered set of tables.
type Tables []*Table

// SortByForeignKeyConstraints reorders the tables in place so that a table
// referenced by a foreign key comes before the tables that reference it.
//
// Tables without foreign keys come first, sorted by name. The remaining
// tables are promoted once they reference no other unpromoted table. Tables
// caught in a cycle are appended last in their current order.
func (ts Tables) SortByForeignKeyConstraints() {
	sorted := make([]*Table, 0, len(ts))
	var source []*Table
	for _, t := range ts {
		if t.HasForeignKeys() {
			source = append(source, t)
		} else {
			sorted = append(sorted, t)
		}
	}
	sortByName(sorted, false)
	sortByName(source, true)

	for progress := true; progress && len(source) > 0; {
		progress = false
		for i := len(source) - 1; i >= 0; i-- {
			if blocked(source, i) {
				continue
			}
			sorted = append(sorted, source[i])
			source = append(source[:i], source[i+1:]...)
			progress = true
		}
	}
	sorted = append(sorted, source...)
	copy(ts, sorted)
}

// blocked reports whether source[i] references another table in source.
func blocked(source []*Table, i int) bool {
	for j, other := range source {
		if j != i && source[i].ReferencesTable(other) {
			return true
		}
	}
	return false
}

func sortByName(ts []*Table, desc bool) {
	slices.SortStableFunc(ts, func(a, b *Table) int {
		if desc {
			return strings.Compare(b.Name, a.Name)
		}
		return strings.Compare(a.Name, b.Name)
	})
}
