// Package postgres renders the schema model as PostgreSQL DDL.
//
// With snake case enabled every identifier is folded before it is escaped,
// so "EmployeeKey" is emitted as employee_key. Constraint names are folded
// too and follow the PostgreSQL naming scheme ({table}_pkey, {table}_{column}_fkey).
package postgres

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/syssam/shipyard"
	"github.com/syssam/shipyard/dialect"
	"github.com/syssam/shipyard/schema"
	"github.com/syssam/shipyard/validate"
)

// maxNameLength is the identifier length PostgreSQL would truncate at.
const maxNameLength = 64

// Generator renders PostgreSQL DDL.
type Generator struct {
	cfg *dialect.Config
}

var _ dialect.Generator = (*Generator)(nil)

// New returns a generator configured with opts. The batch separator setting
// does not apply.
func New(opts ...dialect.Option) (*Generator, error) {
	cfg, err := dialect.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg}, nil
}

// Name returns the dialect name.
func (g *Generator) Name() string { return dialect.Postgres }

// Config returns the generator configuration.
func (g *Generator) Config() dialect.Config { return *g.cfg }

// =============================================================================
// Escaping
// =============================================================================

// SnakeCase folds name when snake case is enabled and returns it unchanged
// otherwise.
func (g *Generator) SnakeCase(name string) string {
	if !g.cfg.UseSnakeCase || name == "" {
		return name
	}
	var b strings.Builder
	prev := rune(-1)
	for _, r := range name {
		if prev >= 0 && unicode.IsUpper(r) && unicode.IsLower(prev) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
		prev = r
	}
	return b.String()
}

// EscapeIdentifier folds name and wraps it in double quotes when escape-all
// is on, when it is a keyword, when it contains a dot, a dash or a space, or
// when it starts with a digit.
func (g *Generator) EscapeIdentifier(name string) string {
	if name == "" {
		return ""
	}
	name = g.SnakeCase(name)
	if g.cfg.EscapeAllIdentifiers || keywords.Contains(name) ||
		strings.ContainsAny(name, ".- ") || startsWithNumber(name) {
		return `"` + name + `"`
	}
	return name
}

func startsWithNumber(s string) bool {
	for _, r := range s {
		return unicode.IsNumber(r)
	}
	return false
}

// EscapeText returns text as a string literal.
func (g *Generator) EscapeText(text string) string {
	return dialect.QuoteText(text)
}

// EscapeTextUnicode is EscapeText. PostgreSQL literals need no prefix.
func (g *Generator) EscapeTextUnicode(text string) string {
	return dialect.QuoteText(text)
}

// =============================================================================
// Naming
// =============================================================================

// NameConstraints assigns a name to every unnamed constraint of t. Names
// that would reach the identifier length limit stay unset, leaving the
// server to pick one.
func (g *Generator) NameConstraints(t *schema.Table) error {
	if t == nil {
		return shipyard.ErrNilTable
	}
	prefix := g.SnakeCase(t.Name)
	if g.cfg.IncludeSchemaInConstraintNames {
		prefix = g.SnakeCase(t.Schema) + "_" + prefix
	}
	if t.PrimaryKeyConstraintName == "" && t.HasPrimaryKey() {
		t.PrimaryKeyConstraintName = limit(prefix + "_pkey")
	}
	if t.ClusteredIndex != nil && t.ClusteredIndex.Name == "" {
		t.ClusteredIndex.Name = limit(prefix + "_ckey")
	}
	for _, c := range t.Columns {
		col := prefix + "_" + g.SnakeCase(c.Name)
		if c.CheckConstraintName == "" && (c.Default != "" || c.Check != "") {
			c.CheckConstraintName = limit(col + "_check")
		}
		if c.UniqueConstraintName == "" && c.Unique {
			c.UniqueConstraintName = limit(col + "_key")
		}
		if c.FKConstraintName == "" && c.HasForeignKey() {
			c.FKConstraintName = limit(col + "_fkey")
		}
	}
	return nil
}

func limit(name string) string {
	if len(name) < maxNameLength {
		return name
	}
	return ""
}

// =============================================================================
// Inference
// =============================================================================

// CalculateAliases assigns the missing source aliases of v.
func (g *Generator) CalculateAliases(v *schema.View) error {
	return dialect.CalculateAliases(v)
}

// CalculateJoinExpressions infers the missing join predicates of v. Aliases
// are used as written.
func (g *Generator) CalculateJoinExpressions(v *schema.View) error {
	return dialect.CalculateJoinExpressions(v, g.EscapeIdentifier, dialect.RefAliasOrEscapedName)
}

// BuildView renders v.
func (g *Generator) BuildView(v *schema.View) (string, error) {
	return dialect.BuildView(v, g.EscapeIdentifier)
}

// =============================================================================
// Validation
// =============================================================================

// Validate runs the base rules and checks that every column type has a
// PostgreSQL mapping.
func (g *Generator) Validate(t *schema.Table) (*validate.Result, error) {
	if t == nil {
		return nil, shipyard.ErrNilTable
	}
	return validate.Table(t, validate.WithRule(typeRule)), nil
}

func typeRule(t *schema.Table, r *validate.Result) {
	for _, c := range t.Columns {
		if c.PostgresOverride != "" {
			continue
		}
		if _, err := ResolveType(c); err != nil {
			r.AddError(t.QualifiedName(), c.Name,
				fmt.Sprintf("Column %s has no PostgreSQL type for %s.", c.Name, c.Type),
				"PostgresType", "Type")
		}
	}
}
