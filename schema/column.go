package schema

import (
	"slices"

	"github.com/syssam/shipyard"
)

// Column describes one column of a table.
//
// The rendered type is chosen by the dialect from three layers, first match
// wins: the dialect override text, the dialect type code, then the generic
// Type.
type Column struct {
	Name string

	// Type is the generic logical type.
	Type Type
	// SQLServerType and PostgresType pin a dialect-specific type code.
	SQLServerType SQLServerType
	PostgresType  PostgresType
	// SQLServerOverride and PostgresOverride are emitted verbatim as the
	// column type. They must carry their own length/precision syntax.
	SQLServerOverride string
	PostgresOverride  string

	Nullable  bool
	MaxLength *int
	Precision *int
	Scale     *int

	PrimaryKey bool
	Unique     bool
	Sparse     bool

	Identity          bool
	IdentitySeed      *int
	IdentityIncrement *int

	// Default is a SQL expression. DefaultLocalTime and DefaultUTCTime ask
	// the dialect for its current-time expression when Default is empty.
	Default               string
	DefaultLocalTime      bool
	DefaultUTCTime        bool
	DefaultConstraintName string

	Check               string
	CheckConstraintName string

	UniqueConstraintName string

	// ReferencedSchema defaults to the owning table's schema when empty.
	ReferencedSchema string
	ReferencedTable  string
	ReferencedColumn string
	FKConstraintName string

	Description string
	Properties  []*Property

	// System-versioning period columns.
	RowStart bool
	RowEnd   bool
	Hidden   bool
}

// NewColumn returns a non-nullable column of the given generic type.
func NewColumn(name string, t Type) *Column {
	return &Column{Name: name, Type: t}
}

// NewSQLServerColumn returns a column pinned to a SQL Server type code.
func NewSQLServerColumn(name string, t SQLServerType) *Column {
	return &Column{Name: name, SQLServerType: t}
}

// NewPostgresColumn returns a column pinned to a PostgreSQL type code.
func NewPostgresColumn(name string, t PostgresType) *Column {
	return &Column{Name: name, PostgresType: t}
}

// NewSizedColumn returns a column of a generic type that takes one
// parameter. Character and binary types read it as the maximum length,
// DateTime2 and the numeric types as the precision.
func NewSizedColumn(name string, t Type, param int) (*Column, error) {
	c := NewColumn(name, t)
	switch t {
	case TypeAnsiString, TypeAnsiStringFixedLength, TypeBinary, TypeString, TypeStringFixedLength:
		c.MaxLength = &param
	case TypeDateTime2, TypeDecimal, TypeVarNumeric:
		c.Precision = &param
	default:
		return nil, shipyard.NewArgumentError("type", "the data type '"+t.String()+"' does not support a parameter")
	}
	return c, nil
}

// NewDecimalColumn returns a Decimal or VarNumeric column with precision
// and scale.
func NewDecimalColumn(name string, t Type, precision, scale int) (*Column, error) {
	if t != TypeDecimal && t != TypeVarNumeric {
		return nil, shipyard.NewArgumentError("type", "the data type '"+t.String()+"' does not support precision and scale")
	}
	c := NewColumn(name, t)
	c.Precision = &precision
	c.Scale = &scale
	return c, nil
}

// NewSizedSQLServerColumn returns a column pinned to a SQL Server type code
// that takes one parameter.
func NewSizedSQLServerColumn(name string, t SQLServerType, param int) (*Column, error) {
	c := NewSQLServerColumn(name, t)
	switch t {
	case SQLServerBinary, SQLServerChar, SQLServerNChar, SQLServerNVarChar, SQLServerVarBinary, SQLServerVarChar:
		c.MaxLength = &param
	case SQLServerDateTime2, SQLServerDecimal:
		c.Precision = &param
	default:
		return nil, shipyard.NewArgumentError("type", "the data type '"+t.String()+"' does not support a parameter")
	}
	return c, nil
}

// NewSizedPostgresColumn returns a column pinned to a PostgreSQL type code
// that takes one parameter.
func NewSizedPostgresColumn(name string, t PostgresType, param int) (*Column, error) {
	c := NewPostgresColumn(name, t)
	switch t {
	case PostgresChar, PostgresBytea, PostgresVarchar:
		c.MaxLength = &param
	case PostgresTimestamp, PostgresTimestampTz, PostgresNumeric:
		c.Precision = &param
	default:
		return nil, shipyard.NewArgumentError("type", "the data type '"+t.String()+"' does not support a parameter")
	}
	return c, nil
}

// HasDefault reports whether the column renders a default.
func (c *Column) HasDefault() bool {
	return c.Default != "" || c.DefaultLocalTime || c.DefaultUTCTime
}

// HasForeignKey reports whether the column references another column.
func (c *Column) HasForeignKey() bool {
	return c.ReferencedColumn != ""
}

// SetNullable marks the column as nullable.
func (c *Column) SetNullable() *Column {
	c.Nullable = true
	return c
}

// SetPrimaryKey marks the column as part of the primary key.
func (c *Column) SetPrimaryKey() *Column {
	c.PrimaryKey = true
	return c
}

// SetIdentity marks the column as an identity column.
func (c *Column) SetIdentity() *Column {
	c.Identity = true
	return c
}

// SetIdentitySeed sets the identity seed and increment and marks the column
// as an identity column.
func (c *Column) SetIdentitySeed(seed, increment int) *Column {
	c.Identity = true
	c.IdentitySeed = &seed
	c.IdentityIncrement = &increment
	return c
}

// SetUnique marks the column as unique.
func (c *Column) SetUnique() *Column {
	c.Unique = true
	return c
}

// SetSparse marks the column as sparse.
func (c *Column) SetSparse() *Column {
	c.Sparse = true
	return c
}

// SetMaxLength sets the maximum length. Use Max for unbounded columns.
func (c *Column) SetMaxLength(n int) *Column {
	c.MaxLength = &n
	return c
}

// SetPrecision sets the precision.
func (c *Column) SetPrecision(p int) *Column {
	c.Precision = &p
	return c
}

// SetScale sets the scale.
func (c *Column) SetScale(s int) *Column {
	c.Scale = &s
	return c
}

// SetDefault sets the default expression.
func (c *Column) SetDefault(expr string) *Column {
	c.Default = expr
	return c
}

// SetCheck sets the check expression.
func (c *Column) SetCheck(expr string) *Column {
	c.Check = expr
	return c
}

// SetReferences sets the foreign key target.
func (c *Column) SetReferences(schema, table, column string) *Column {
	c.ReferencedSchema = schema
	c.ReferencedTable = table
	c.ReferencedColumn = column
	return c
}

// SetDescription sets the description.
func (c *Column) SetDescription(s string) *Column {
	c.Description = s
	return c
}

// AddProperty appends an extended property.
func (c *Column) AddProperty(name, value string) *Column {
	c.Properties = append(c.Properties, &Property{Name: name, Value: value})
	return c
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() *Column {
	out := *c
	out.MaxLength = cloneInt(c.MaxLength)
	out.Precision = cloneInt(c.Precision)
	out.Scale = cloneInt(c.Scale)
	out.IdentitySeed = cloneInt(c.IdentitySeed)
	out.IdentityIncrement = cloneInt(c.IdentityIncrement)
	out.Properties = make([]*Property, len(c.Properties))
	for i, p := range c.Properties {
		out.Properties[i] = &Property{Name: p.Name, Value: p.Value}
	}
	return &out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Property is a name/value pair attached to a table or column. It has no
// structural effect.
type Property struct {
	Name  string
	Value string
}

// Index describes a clustering index, a secondary index, or a unique
// constraint backed by an index.
type Index struct {
	Name string
	// Columns are the ordered key columns.
	Columns []string
	// Include are non-key columns carried in the index leaf.
	Include []string
	Unique  bool
	// Constraint renders the index as a UNIQUE table constraint.
	Constraint bool
}

// NewIndex returns an index over the given key columns.
func NewIndex(name string, columns ...string) *Index {
	return &Index{Name: name, Columns: columns}
}

// Clone returns a deep copy of the index.
func (i *Index) Clone() *Index {
	out := *i
	out.Columns = slices.Clone(i.Columns)
	out.Include = slices.Clone(i.Include)
	return &out
}
