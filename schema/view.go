package schema

import (
	"strconv"

	"github.com/syssam/shipyard"
)

// JoinKind is the kind of join between a view source and the sources before
// it.
type JoinKind int

// Join kinds.
const (
	JoinInner JoinKind = iota
	JoinLeft
	JoinRight
	JoinFull
	JoinCross
)

var joinPhrases = [...]string{
	JoinInner: "INNER JOIN",
	JoinLeft:  "LEFT JOIN",
	JoinRight: "RIGHT JOIN",
	JoinFull:  "FULL OUTER JOIN",
	JoinCross: "CROSS JOIN",
}

// IsValid reports whether k is one of the known join kinds.
func (k JoinKind) IsValid() bool {
	return k >= JoinInner && k <= JoinCross
}

// String returns the SQL phrase of the join kind.
func (k JoinKind) String() string {
	if k.IsValid() {
		return joinPhrases[k]
	}
	return "JoinKind(" + strconv.Itoa(int(k)) + ")"
}

// Output is one column exposed by a view source: either a plain column of
// the source, optionally aliased, or an expression with a required alias.
type Output struct {
	Column string
	Alias  string
	// Expression may contain the placeholder {0}, which is replaced by the
	// reference to the source.
	Expression string
}

// IsExpression reports whether the output is an expression.
func (o *Output) IsExpression() bool {
	return o.Expression != ""
}

// Name returns the name under which the view exposes the output.
func (o *Output) Name() string {
	if o.Alias != "" {
		return o.Alias
	}
	return o.Column
}

// JoinClause describes how a source joins the sources before it.
type JoinClause struct {
	Kind JoinKind
	// LeftColumns and RightColumns pair up positionally. A left column is
	// found in an earlier source, a right column in this one.
	LeftColumns  []string
	RightColumns []string
	// Expression is the ON predicate. When empty it can be inferred from the
	// join columns.
	Expression string
}

// ViewSource is a table or view referenced by a view.
type ViewSource struct {
	Schema  string
	Name    string
	Alias   string
	Outputs []*Output
	// Join is nil for the first source of a view.
	Join *JoinClause
}

// AddColumn exposes a column of the source, with an optional alias.
func (s *ViewSource) AddColumn(column string, alias ...string) *ViewSource {
	o := &Output{Column: column}
	if len(alias) > 0 {
		o.Alias = alias[0]
	}
	s.Outputs = append(s.Outputs, o)
	return s
}

// AddExpression exposes an expression under the given alias. An expression
// has no name of its own, so the alias is required.
func (s *ViewSource) AddExpression(expr, alias string) (*ViewSource, error) {
	if expr == "" {
		return nil, shipyard.NewArgumentError("expr", "expression is empty")
	}
	if alias == "" {
		return nil, shipyard.NewArgumentError("alias", "expression "+expr+" needs an alias")
	}
	s.Outputs = append(s.Outputs, &Output{Expression: expr, Alias: alias})
	return s, nil
}

// IsJoined reports whether the source joins an earlier source.
func (s *ViewSource) IsJoined() bool {
	return s.Join != nil
}

// View describes a view built from one or more sources.
type View struct {
	Schema      string
	Name        string
	Description string
	Sources     []*ViewSource
}

// NewView returns an empty view.
func NewView(schema, name string) *View {
	return &View{Schema: schema, Name: name}
}

// QualifiedName returns "schema.name" without escaping.
func (v *View) QualifiedName() string {
	return v.Schema + "." + v.Name
}

// AddSource appends an unjoined source. It is meant for the first source.
func (v *View) AddSource(schema, name string) *ViewSource {
	s := &ViewSource{Schema: schema, Name: name}
	v.Sources = append(v.Sources, s)
	return s
}

// AddJoin appends a joined source. A cross join takes no join columns;
// every other kind needs at least one pair.
func (v *View) AddJoin(kind JoinKind, schema, name string, left, right []string) (*ViewSource, error) {
	if !kind.IsValid() {
		return nil, shipyard.NewUnsupportedJoinError(int(kind))
	}
	if len(v.Sources) == 0 {
		return nil, shipyard.NewArgumentError("view", "a joined source needs a source to join to")
	}
	switch {
	case kind == JoinCross && (len(left) > 0 || len(right) > 0):
		return nil, shipyard.NewArgumentError("left", "a cross join cannot have join columns")
	case kind != JoinCross && len(left) == 0:
		return nil, shipyard.NewArgumentError("left", "join columns are required unless the join is a cross join")
	case len(left) != len(right):
		return nil, shipyard.NewArgumentError("right", "left and right join columns must have the same length")
	}
	s := &ViewSource{
		Schema: schema,
		Name:   name,
		Join:   &JoinClause{Kind: kind, LeftColumns: left, RightColumns: right},
	}
	v.Sources = append(v.Sources, s)
	return s, nil
}

// JoinRules adjusts how Join exposes the columns of the joined table.
type JoinRules struct {
	// PrefixColumnAlias, when set, exposes every column of the joined table
	// aliased with this prefix.
	PrefixColumnAlias string
}

// Join joins table on joinColumn, which must exist under the same name in
// an earlier source and in table. Without a prefix rule, columns whose name
// the view already exposes are skipped.
func (v *View) Join(kind JoinKind, table *Table, joinColumn string, rules *JoinRules) (*ViewSource, error) {
	if table == nil {
		return nil, shipyard.ErrNilTable
	}
	if joinColumn == "" {
		return nil, shipyard.NewArgumentError("joinColumn", "cannot be empty")
	}
	cols := []string{joinColumn}
	var (
		s   *ViewSource
		err error
	)
	if kind == JoinCross {
		s, err = v.AddJoin(kind, table.Schema, table.Name, nil, nil)
	} else {
		s, err = v.AddJoin(kind, table.Schema, table.Name, cols, cols)
	}
	if err != nil {
		return nil, err
	}
	if rules != nil && rules.PrefixColumnAlias != "" {
		for _, c := range table.Columns {
			s.AddColumn(c.Name, rules.PrefixColumnAlias+c.Name)
		}
		return s, nil
	}
	exposed := make(map[string]struct{})
	for _, src := range v.Sources[:len(v.Sources)-1] {
		for _, o := range src.Outputs {
			exposed[o.Name()] = struct{}{}
		}
	}
	for _, c := range table.Columns {
		if _, ok := exposed[c.Name]; !ok {
			s.AddColumn(c.Name)
		}
	}
	return s, nil
}
