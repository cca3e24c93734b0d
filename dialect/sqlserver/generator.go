// Package sqlserver renders the schema model as Transact-SQL DDL.
package sqlserver

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/syssam/shipyard"
	"github.com/syssam/shipyard/dialect"
	"github.com/syssam/shipyard/schema"
	"github.com/syssam/shipyard/validate"
)

// Generator renders SQL Server DDL.
type Generator struct {
	cfg *dialect.Config
}

var _ dialect.Generator = (*Generator)(nil)

// New returns a generator configured with opts. Only the escape-all,
// schema-in-constraint-names, tab size and batch separator settings apply.
func New(opts ...dialect.Option) (*Generator, error) {
	cfg, err := dialect.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg}, nil
}

// Name returns the dialect name.
func (g *Generator) Name() string { return dialect.SQLServer }

// Config returns the generator configuration.
func (g *Generator) Config() dialect.Config { return *g.cfg }

// =============================================================================
// Escaping
// =============================================================================

// EscapeIdentifier wraps name in brackets when escape-all is on, when it is
// a keyword, when it holds anything but letters, digits and underscores, or
// when it starts with a digit.
func (g *Generator) EscapeIdentifier(name string) string {
	if name == "" {
		return ""
	}
	if g.cfg.EscapeAllIdentifiers || keywords.Contains(name) || needsBrackets(name) {
		return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
	}
	return name
}

func needsBrackets(name string) bool {
	for i, r := range name {
		if i == 0 && unicode.IsNumber(r) {
			return true
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return true
		}
	}
	return false
}

// EscapeText returns text as a string literal.
func (g *Generator) EscapeText(text string) string {
	return dialect.QuoteText(text)
}

// EscapeTextUnicode returns text as an N-prefixed Unicode string literal.
func (g *Generator) EscapeTextUnicode(text string) string {
	return "N" + dialect.QuoteText(text)
}

// =============================================================================
// Naming
// =============================================================================

// NameConstraints assigns a name to every unnamed constraint of t:
//
//	PK_{table}            primary key
//	CX_{table}            clustered index
//	D_{table}_{column}    default
//	C_{table}_{column}    check
//	UX_{table}_{column}   unique
//	FK_{table}_{column}   foreign key
//
// With schema names enabled, {table} becomes {schema}_{table}.
func (g *Generator) NameConstraints(t *schema.Table) error {
	if t == nil {
		return shipyard.ErrNilTable
	}
	prefix := t.Name
	if g.cfg.IncludeSchemaInConstraintNames {
		prefix = t.Schema + "_" + t.Name
	}
	if t.PrimaryKeyConstraintName == "" && t.HasPrimaryKey() {
		t.PrimaryKeyConstraintName = "PK_" + prefix
	}
	if t.ClusteredIndex != nil && t.ClusteredIndex.Name == "" {
		t.ClusteredIndex.Name = "CX_" + prefix
	}
	for _, c := range t.Columns {
		if c.DefaultConstraintName == "" && c.HasDefault() {
			c.DefaultConstraintName = "D_" + prefix + "_" + c.Name
		}
		if c.CheckConstraintName == "" && c.Check != "" {
			c.CheckConstraintName = "C_" + prefix + "_" + c.Name
		}
		if c.UniqueConstraintName == "" && c.Unique {
			c.UniqueConstraintName = "UX_" + prefix + "_" + c.Name
		}
		if c.FKConstraintName == "" && c.HasForeignKey() {
			c.FKConstraintName = "FK_" + prefix + "_" + c.Name
		}
	}
	return nil
}

// =============================================================================
// Inference
// =============================================================================

// CalculateAliases assigns the missing source aliases of v.
func (g *Generator) CalculateAliases(v *schema.View) error {
	return dialect.CalculateAliases(v)
}

// CalculateJoinExpressions infers the missing join predicates of v. Source
// references are escaped.
func (g *Generator) CalculateJoinExpressions(v *schema.View) error {
	return dialect.CalculateJoinExpressions(v, g.EscapeIdentifier, dialect.RefEscaped)
}

// BuildView renders v.
func (g *Generator) BuildView(v *schema.View) (string, error) {
	return dialect.BuildView(v, g.EscapeIdentifier)
}

// =============================================================================
// Validation
// =============================================================================

var identityTypes = []schema.SQLServerType{
	schema.SQLServerSmallInt,
	schema.SQLServerInt,
	schema.SQLServerBigInt,
}

// Validate runs the base rules plus the SQL Server identity rule.
func (g *Generator) Validate(t *schema.Table) (*validate.Result, error) {
	if t == nil {
		return nil, shipyard.ErrNilTable
	}
	return validate.Table(t, validate.WithRule(identityRule)), nil
}

func identityRule(t *schema.Table, r *validate.Result) {
	for _, c := range t.Columns {
		if !c.Identity {
			continue
		}
		code, err := ResolveType(c)
		if err != nil {
			r.AddError(t.QualifiedName(), c.Name, err.Error(), "SqlServerType", "Type")
			continue
		}
		if !slices.Contains(identityTypes, code) {
			r.AddError(t.QualifiedName(), c.Name,
				fmt.Sprintf("Identity column %s cannot have data type %s.", c.Name, code),
				"IsIdentity", "SqlServerType", "Type")
		}
	}
}
