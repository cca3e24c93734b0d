// Package schemadoc reads and writes declarative schema documents.
//
// A document lists tables and views in YAML, JSON or MessagePack and builds
// the schema model the dialect generators consume:
//
//	generator:
//	  dialect: postgres
//	  snake_case: true
//	tables:
//	  - schema: HR
//	    name: Employee
//	    columns:
//	      - {name: EmployeeKey, type: Int32, primary_key: true, identity: true}
//	      - {name: FirstName, type: String, length: 50}
//	views:
//	  - schema: Reporting
//	    name: Employees
//	    sources:
//	      - {schema: HR, name: Employee, columns: [EmployeeKey, FirstName]}
package schemadoc

import (
	"fmt"
	"strings"

	"github.com/syssam/shipyard"
	"github.com/syssam/shipyard/dialect"
	"github.com/syssam/shipyard/schema"
)

// Document is the root of a schema document.
type Document struct {
	Generator *Generator `yaml:"generator,omitempty" json:"generator,omitempty"`
	Tables    []*Table   `yaml:"tables,omitempty" json:"tables,omitempty"`
	Views     []*View    `yaml:"views,omitempty" json:"views,omitempty"`
}

// Generator holds the generator settings of a document.
type Generator struct {
	Dialect                 string `yaml:"dialect,omitempty" json:"dialect,omitempty"`
	EscapeAll               bool   `yaml:"escape_all,omitempty" json:"escape_all,omitempty"`
	SnakeCase               bool   `yaml:"snake_case,omitempty" json:"snake_case,omitempty"`
	SchemaInConstraintNames bool   `yaml:"schema_in_constraint_names,omitempty" json:"schema_in_constraint_names,omitempty"`
	TabSize                 *int   `yaml:"tab_size,omitempty" json:"tab_size,omitempty"`
	BatchSeparator          bool   `yaml:"batch_separator,omitempty" json:"batch_separator,omitempty"`
	SerialIdentity          bool   `yaml:"serial_identity,omitempty" json:"serial_identity,omitempty"`
}

// Options converts the settings to generator options. A nil Generator
// yields none.
func (g *Generator) Options() []dialect.Option {
	if g == nil {
		return nil
	}
	var opts []dialect.Option
	if g.EscapeAll {
		opts = append(opts, dialect.WithEscapeAll(true))
	}
	if g.SnakeCase {
		opts = append(opts, dialect.WithSnakeCase(true))
	}
	if g.SchemaInConstraintNames {
		opts = append(opts, dialect.WithSchemaInConstraintNames(true))
	}
	if g.TabSize != nil {
		opts = append(opts, dialect.WithTabSize(*g.TabSize))
	}
	if g.BatchSeparator {
		opts = append(opts, dialect.WithBatchSeparator(true))
	}
	if g.SerialIdentity {
		opts = append(opts, dialect.WithSerialIdentity(true))
	}
	return opts
}

// Dialect returns the dialect named by the document, or "".
func (d *Document) Dialect() string {
	if d.Generator == nil {
		return ""
	}
	return d.Generator.Dialect
}

// Table describes one table.
type Table struct {
	Schema         string      `yaml:"schema" json:"schema"`
	Name           string      `yaml:"name" json:"name"`
	Description    string      `yaml:"description,omitempty" json:"description,omitempty"`
	PrimaryKeyName string      `yaml:"primary_key_name,omitempty" json:"primary_key_name,omitempty"`
	Columns        []*Column   `yaml:"columns" json:"columns"`
	ClusteredIndex *Index      `yaml:"clustered_index,omitempty" json:"clustered_index,omitempty"`
	Indexes        []*Index    `yaml:"indexes,omitempty" json:"indexes,omitempty"`
	Properties     []*Property `yaml:"properties,omitempty" json:"properties,omitempty"`
	History        *History    `yaml:"history,omitempty" json:"history,omitempty"`
}

// History names the history table of a system-versioned table.
type History struct {
	Schema string `yaml:"schema,omitempty" json:"schema,omitempty"`
	Table  string `yaml:"table" json:"table"`
}

// Column describes one column. Type, SQLServerType and PostgresType are
// type names as printed by the schema package, matched without regard to
// case.
type Column struct {
	Name              string      `yaml:"name" json:"name"`
	Type              string      `yaml:"type,omitempty" json:"type,omitempty"`
	SQLServerType     string      `yaml:"sqlserver_type,omitempty" json:"sqlserver_type,omitempty"`
	PostgresType      string      `yaml:"postgres_type,omitempty" json:"postgres_type,omitempty"`
	SQLServerOverride string      `yaml:"sqlserver_override,omitempty" json:"sqlserver_override,omitempty"`
	PostgresOverride  string      `yaml:"postgres_override,omitempty" json:"postgres_override,omitempty"`
	Nullable          bool        `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	Length            *int        `yaml:"length,omitempty" json:"length,omitempty"`
	Precision         *int        `yaml:"precision,omitempty" json:"precision,omitempty"`
	Scale             *int        `yaml:"scale,omitempty" json:"scale,omitempty"`
	PrimaryKey        bool        `yaml:"primary_key,omitempty" json:"primary_key,omitempty"`
	Unique            bool        `yaml:"unique,omitempty" json:"unique,omitempty"`
	Sparse            bool        `yaml:"sparse,omitempty" json:"sparse,omitempty"`
	Identity          bool        `yaml:"identity,omitempty" json:"identity,omitempty"`
	IdentitySeed      *int        `yaml:"identity_seed,omitempty" json:"identity_seed,omitempty"`
	IdentityIncrement *int        `yaml:"identity_increment,omitempty" json:"identity_increment,omitempty"`
	Default           string      `yaml:"default,omitempty" json:"default,omitempty"`
	DefaultTime       string      `yaml:"default_time,omitempty" json:"default_time,omitempty"`
	Check             string      `yaml:"check,omitempty" json:"check,omitempty"`
	References        *Reference  `yaml:"references,omitempty" json:"references,omitempty"`
	Description       string      `yaml:"description,omitempty" json:"description,omitempty"`
	Properties        []*Property `yaml:"properties,omitempty" json:"properties,omitempty"`
	RowStart          bool        `yaml:"row_start,omitempty" json:"row_start,omitempty"`
	RowEnd            bool        `yaml:"row_end,omitempty" json:"row_end,omitempty"`
	Hidden            bool        `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// DefaultTime values.
const (
	DefaultTimeLocal = "local"
	DefaultTimeUTC   = "utc"
)

// Reference is a foreign-key target. An empty schema means the schema of
// the referencing table.
type Reference struct {
	Schema string `yaml:"schema,omitempty" json:"schema,omitempty"`
	Table  string `yaml:"table" json:"table"`
	Column string `yaml:"column" json:"column"`
	Name   string `yaml:"name,omitempty" json:"name,omitempty"`
}

// Index describes an index or a unique constraint.
type Index struct {
	Name       string     `yaml:"name,omitempty" json:"name,omitempty"`
	Columns    StringList `yaml:"columns" json:"columns"`
	Include    StringList `yaml:"include,omitempty" json:"include,omitempty"`
	Unique     bool       `yaml:"unique,omitempty" json:"unique,omitempty"`
	Constraint bool       `yaml:"constraint,omitempty" json:"constraint,omitempty"`
}

// Property is a named extended property.
type Property struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// View describes one view.
type View struct {
	Schema      string    `yaml:"schema" json:"schema"`
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Sources     []*Source `yaml:"sources" json:"sources"`
}

// Source is a table or view a view selects from. Every source but the
// first needs a join.
type Source struct {
	Schema  string    `yaml:"schema" json:"schema"`
	Name    string    `yaml:"name" json:"name"`
	Alias   string    `yaml:"alias,omitempty" json:"alias,omitempty"`
	Columns []*Output `yaml:"columns,omitempty" json:"columns,omitempty"`
	Join    *Join     `yaml:"join,omitempty" json:"join,omitempty"`
}

// Output is a column or expression a source exposes.
type Output struct {
	Column     string `yaml:"column,omitempty" json:"column,omitempty"`
	Alias      string `yaml:"alias,omitempty" json:"alias,omitempty"`
	Expression string `yaml:"expression,omitempty" json:"expression,omitempty"`
}

// Join describes how a source joins the sources before it. Right defaults
// to Left. A join with an explicit On predicate needs no columns.
type Join struct {
	Kind  string     `yaml:"kind" json:"kind"`
	Left  StringList `yaml:"left,omitempty" json:"left,omitempty"`
	Right StringList `yaml:"right,omitempty" json:"right,omitempty"`
	On    string     `yaml:"on,omitempty" json:"on,omitempty"`
}

var joinKinds = map[string]schema.JoinKind{
	"inner": schema.JoinInner,
	"left":  schema.JoinLeft,
	"right": schema.JoinRight,
	"full":  schema.JoinFull,
	"cross": schema.JoinCross,
}

// =============================================================================
// Building
// =============================================================================

// Build converts the document into the schema model. A failure names the
// index and qualified name of the table or view it occurred in.
func (d *Document) Build() (schema.Tables, []*schema.View, error) {
	tables := make(schema.Tables, 0, len(d.Tables))
	for i, td := range d.Tables {
		t, err := td.build()
		if err != nil {
			return nil, nil, shipyard.NewObjectError(i, td.Schema+"."+td.Name, err)
		}
		tables = append(tables, t)
	}
	views := make([]*schema.View, 0, len(d.Views))
	for i, vd := range d.Views {
		v, err := vd.build()
		if err != nil {
			return nil, nil, shipyard.NewObjectError(i, vd.Schema+"."+vd.Name, err)
		}
		views = append(views, v)
	}
	return tables, views, nil
}

func (td *Table) build() (*schema.Table, error) {
	t := schema.NewTable(td.Schema, td.Name)
	t.Description = td.Description
	t.PrimaryKeyConstraintName = td.PrimaryKeyName
	for _, cd := range td.Columns {
		c, err := cd.build()
		if err != nil {
			return nil, err
		}
		t.AddColumn(c)
	}
	if td.ClusteredIndex != nil {
		t.ClusteredIndex = td.ClusteredIndex.build()
	}
	for _, id := range td.Indexes {
		t.AddIndex(id.build())
	}
	for _, p := range td.Properties {
		t.AddProperty(p.Name, p.Value)
	}
	if td.History != nil {
		t.HistorySchema = td.History.Schema
		t.HistoryTable = td.History.Table
	}
	return t, nil
}

func (cd *Column) build() (*schema.Column, error) {
	c := &schema.Column{
		Name:              cd.Name,
		SQLServerOverride: cd.SQLServerOverride,
		PostgresOverride:  cd.PostgresOverride,
		Nullable:          cd.Nullable,
		MaxLength:         cd.Length,
		Precision:         cd.Precision,
		Scale:             cd.Scale,
		PrimaryKey:        cd.PrimaryKey,
		Unique:            cd.Unique,
		Sparse:            cd.Sparse,
		Identity:          cd.Identity || cd.IdentitySeed != nil,
		IdentitySeed:      cd.IdentitySeed,
		IdentityIncrement: cd.IdentityIncrement,
		Default:           cd.Default,
		Check:             cd.Check,
		Description:       cd.Description,
		RowStart:          cd.RowStart,
		RowEnd:            cd.RowEnd,
		Hidden:            cd.Hidden,
	}
	if cd.Type != "" {
		t, ok := schema.ParseType(cd.Type)
		if !ok {
			return nil, unknownType(cd.Name, cd.Type)
		}
		c.Type = t
	}
	if cd.SQLServerType != "" {
		t, ok := schema.ParseSQLServerType(cd.SQLServerType)
		if !ok {
			return nil, unknownType(cd.Name, cd.SQLServerType)
		}
		c.SQLServerType = t
	}
	if cd.PostgresType != "" {
		t, ok := schema.ParsePostgresType(cd.PostgresType)
		if !ok {
			return nil, unknownType(cd.Name, cd.PostgresType)
		}
		c.PostgresType = t
	}
	switch strings.ToLower(cd.DefaultTime) {
	case "":
	case DefaultTimeLocal:
		c.DefaultLocalTime = true
	case DefaultTimeUTC:
		c.DefaultUTCTime = true
	default:
		return nil, shipyard.NewArgumentError("default_time",
			fmt.Sprintf("column %s: expected %q or %q, got %q", cd.Name, DefaultTimeLocal, DefaultTimeUTC, cd.DefaultTime))
	}
	if r := cd.References; r != nil {
		c.SetReferences(r.Schema, r.Table, r.Column)
		c.FKConstraintName = r.Name
	}
	for _, p := range cd.Properties {
		c.AddProperty(p.Name, p.Value)
	}
	return c, nil
}

func unknownType(column, name string) error {
	return shipyard.NewArgumentError("type", fmt.Sprintf("column %s: unknown type %q", column, name))
}

func (id *Index) build() *schema.Index {
	idx := schema.NewIndex(id.Name, id.Columns...)
	idx.Include = id.Include
	idx.Unique = id.Unique
	idx.Constraint = id.Constraint
	return idx
}

func (vd *View) build() (*schema.View, error) {
	v := schema.NewView(vd.Schema, vd.Name)
	v.Description = vd.Description
	for i, sd := range vd.Sources {
		s, err := sd.attach(v, i)
		if err != nil {
			return nil, err
		}
		s.Alias = sd.Alias
		for _, o := range sd.Columns {
			if o.Expression != "" {
				if _, err := s.AddExpression(o.Expression, o.Alias); err != nil {
					return nil, err
				}
				continue
			}
			s.Outputs = append(s.Outputs, &schema.Output{Column: o.Column, Alias: o.Alias})
		}
	}
	return v, nil
}

// attach adds the source to v, joined when it is not the first one.
func (sd *Source) attach(v *schema.View, i int) (*schema.ViewSource, error) {
	if i == 0 {
		if sd.Join != nil {
			return nil, shipyard.NewArgumentError("join", "the first source of view "+v.QualifiedName()+" cannot be joined")
		}
		return v.AddSource(sd.Schema, sd.Name), nil
	}
	if sd.Join == nil {
		return nil, shipyard.NewArgumentError("join", fmt.Sprintf("source %d (%s.%s) of view %s needs a join", i, sd.Schema, sd.Name, v.QualifiedName()))
	}
	kind, ok := joinKinds[strings.ToLower(sd.Join.Kind)]
	if !ok {
		return nil, shipyard.NewArgumentError("kind", fmt.Sprintf("unknown join kind %q", sd.Join.Kind))
	}
	right := sd.Join.Right
	if len(right) == 0 {
		right = sd.Join.Left
	}
	if sd.Join.On != "" && len(sd.Join.Left) == 0 {
		s := &schema.ViewSource{
			Schema: sd.Schema,
			Name:   sd.Name,
			Join:   &schema.JoinClause{Kind: kind, Expression: sd.Join.On},
		}
		v.Sources = append(v.Sources, s)
		return s, nil
	}
	s, err := v.AddJoin(kind, sd.Schema, sd.Name, sd.Join.Left, right)
	if err != nil {
		return nil, err
	}
	s.Join.Expression = sd.Join.On
	return s, nil
}
