package dialect

import (
	"github.com/syssam/shipyard"
	"github.com/syssam/shipyard/schema"
	"github.com/syssam/shipyard/validate"
)

// Dialect names.
const (
	SQLServer = "sqlserver"
	Postgres  = "postgres"
)

// =============================================================================
// Interface Segregation
// =============================================================================

// TableBuilder renders CREATE TABLE scripts.
type TableBuilder interface {
	// BuildTable renders t and every statement that follows it.
	BuildTable(t *schema.Table) (string, error)
}

// ViewBuilder renders CREATE VIEW scripts.
type ViewBuilder interface {
	// BuildView renders v. Aliases and join expressions must already be set.
	BuildView(v *schema.View) (string, error)
}

// Namer fills in unset constraint names.
type Namer interface {
	// NameConstraints is idempotent and never overwrites a name.
	NameConstraints(t *schema.Table) error
}

// Inferrer fills in unset view aliases and join predicates.
type Inferrer interface {
	CalculateAliases(v *schema.View) error
	CalculateJoinExpressions(v *schema.View) error
}

// Escaper quotes identifiers and string literals.
type Escaper interface {
	EscapeIdentifier(name string) string
	EscapeText(text string) string
	EscapeTextUnicode(text string) string
}

// Validator runs structural checks on a table.
type Validator interface {
	Validate(t *schema.Table) (*validate.Result, error)
}

// Generator is implemented by each target dialect.
type Generator interface {
	// Name returns the dialect name.
	Name() string
	TableBuilder
	ViewBuilder
	Namer
	Inferrer
	Escaper
	Validator
}

// =============================================================================
// Collection helpers
// =============================================================================

// BuildTables renders each table in order. It stops at the first failure.
func BuildTables(b TableBuilder, tables []*schema.Table) ([]string, error) {
	out := make([]string, 0, len(tables))
	for i, t := range tables {
		s, err := b.BuildTable(t)
		if err != nil {
			return nil, shipyard.NewObjectError(i, tableName(t), err)
		}
		out = append(out, s)
	}
	return out, nil
}

// BuildViews renders each view in order. It stops at the first failure.
func BuildViews(b ViewBuilder, views []*schema.View) ([]string, error) {
	out := make([]string, 0, len(views))
	for i, v := range views {
		s, err := b.BuildView(v)
		if err != nil {
			return nil, shipyard.NewObjectError(i, viewName(v), err)
		}
		out = append(out, s)
	}
	return out, nil
}

// NameAllConstraints names the constraints of each table.
func NameAllConstraints(n Namer, tables []*schema.Table) error {
	for i, t := range tables {
		if err := n.NameConstraints(t); err != nil {
			return shipyard.NewObjectError(i, tableName(t), err)
		}
	}
	return nil
}

// CalculateAllAliases assigns the missing aliases of each view.
func CalculateAllAliases(inf Inferrer, views []*schema.View) error {
	for i, v := range views {
		if err := inf.CalculateAliases(v); err != nil {
			return shipyard.NewObjectError(i, viewName(v), err)
		}
	}
	return nil
}

// CalculateAllJoinExpressions infers the missing join predicates of each
// view.
func CalculateAllJoinExpressions(inf Inferrer, views []*schema.View) error {
	for i, v := range views {
		if err := inf.CalculateJoinExpressions(v); err != nil {
			return shipyard.NewObjectError(i, viewName(v), err)
		}
	}
	return nil
}

func tableName(t *schema.Table) string {
	if t == nil {
		return ""
	}
	return t.QualifiedName()
}

func viewName(v *schema.View) string {
	if v == nil {
		return ""
	}
	return v.QualifiedName()
}
