package dialect

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/syssam/shipyard"
	"github.com/syssam/shipyard/schema"
)

// CalculateAliases assigns an alias to every source of v that has none.
// The alias is built from the upper-case letters of the source name, or its
// first letter when there are none, and gets a numeric suffix on collision:
// three Employee sources become e, e1 and e2.
func CalculateAliases(v *schema.View) error {
	if v == nil {
		return shipyard.ErrNilView
	}
	for _, s := range v.Sources {
		if s.Alias != "" {
			continue
		}
		base := baseAlias(s.Name)
		if base == "" {
			return shipyard.NewArgumentError("view", "source of view "+v.QualifiedName()+" has no name")
		}
		alias := base
		for n := 1; aliasTaken(v, s, alias); n++ {
			alias = base + strconv.Itoa(n)
		}
		s.Alias = alias
	}
	return nil
}

func baseAlias(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	if b.Len() > 0 {
		return b.String()
	}
	for _, r := range name {
		return string(unicode.ToLower(r))
	}
	return ""
}

func aliasTaken(v *schema.View, self *schema.ViewSource, alias string) bool {
	for _, s := range v.Sources {
		if s != self && s.Alias == alias {
			return true
		}
	}
	return false
}

// JoinRefs controls how CalculateJoinExpressions spells source references.
type JoinRefs int

const (
	// RefAliasOrEscapedName uses the alias as is, or the escaped name.
	RefAliasOrEscapedName JoinRefs = iota
	// RefEscaped escapes the alias or name.
	RefEscaped
)

// CalculateJoinExpressions sets the predicate of every joined source of v
// that has none. For each pair of join columns the left column is looked up
// among the plain outputs of the earlier sources; the first match supplies
// the left-hand reference.
func CalculateJoinExpressions(v *schema.View, escape func(string) string, refs JoinRefs) error {
	if v == nil {
		return shipyard.ErrNilView
	}
	ref := func(s *schema.ViewSource) string {
		if refs == RefEscaped {
			if s.Alias != "" {
				return escape(s.Alias)
			}
			return escape(s.Name)
		}
		return SourceRef(s, escape)
	}
	for i, s := range v.Sources {
		if s.Join == nil || s.Join.Expression != "" || s.Join.Kind == schema.JoinCross {
			continue
		}
		if len(s.Join.LeftColumns) != len(s.Join.RightColumns) {
			return shipyard.NewArgumentError("view", "join to "+s.Schema+"."+s.Name+" has unpaired join columns")
		}
		preds := make([]string, 0, len(s.Join.LeftColumns))
		for j, left := range s.Join.LeftColumns {
			parent := findSource(v.Sources[:i], left)
			if parent == nil {
				return shipyard.NewMissingJoinColumnError(v.QualifiedName(), left)
			}
			preds = append(preds, ref(parent)+"."+escape(left)+" = "+ref(s)+"."+escape(s.Join.RightColumns[j]))
		}
		s.Join.Expression = strings.Join(preds, " AND ")
	}
	return nil
}

// findSource returns the first source exposing column as a plain output.
func findSource(sources []*schema.ViewSource, column string) *schema.ViewSource {
	for _, s := range sources {
		for _, o := range s.Outputs {
			if !o.IsExpression() && o.Column == column {
				return s
			}
		}
	}
	return nil
}
