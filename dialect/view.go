package dialect

import (
	"fmt"
	"strings"

	"github.com/syssam/shipyard"
	"github.com/syssam/shipyard/schema"
)

// SourceRef returns the name by which the outputs of s are qualified: its
// alias, or its escaped name when it has none.
func SourceRef(s *schema.ViewSource, escape func(string) string) string {
	if s.Alias != "" {
		return s.Alias
	}
	return escape(s.Name)
}

// BuildView renders v in the layout shared by every dialect. escape is the
// dialect's identifier escaper.
//
//	CREATE VIEW s.v
//	AS
//	SELECT
//		e.Col,
//		expr AS Alias
//	FROM s.t e
//	INNER JOIN s.t2 d
//		ON e.Key = d.Key;
func BuildView(v *schema.View, escape func(string) string) (string, error) {
	if v == nil {
		return "", shipyard.ErrNilView
	}
	if len(v.Sources) == 0 {
		return "", shipyard.NewArgumentError("view", fmt.Sprintf("view %s has no sources", v.QualifiedName()))
	}

	var cols []string
	for _, s := range v.Sources {
		ref := SourceRef(s, escape)
		for _, o := range s.Outputs {
			switch {
			case o.IsExpression():
				expr := strings.ReplaceAll(o.Expression, "{0}", ref)
				cols = append(cols, "\t"+expr+" AS "+escape(o.Alias))
			case o.Alias != "":
				cols = append(cols, "\t"+ref+"."+escape(o.Column)+" AS "+escape(o.Alias))
			default:
				cols = append(cols, "\t"+ref+"."+escape(o.Column))
			}
		}
	}
	if len(cols) == 0 {
		return "", shipyard.NewArgumentError("view", fmt.Sprintf("view %s has no output columns", v.QualifiedName()))
	}

	var b strings.Builder
	b.WriteString("CREATE VIEW " + escape(v.Schema) + "." + escape(v.Name) + "\n")
	b.WriteString("AS\nSELECT\n")
	b.WriteString(strings.Join(cols, ",\n"))
	b.WriteString("\n")

	from := v.Sources[0]
	b.WriteString("FROM " + sourceLine(from, escape))
	for i, s := range v.Sources[1:] {
		if s.Join == nil {
			return "", shipyard.NewArgumentError("view", fmt.Sprintf("source %d of view %s has no join", i+1, v.QualifiedName()))
		}
		if !s.Join.Kind.IsValid() {
			return "", shipyard.NewUnsupportedJoinError(int(s.Join.Kind))
		}
		b.WriteString("\n" + s.Join.Kind.String() + " " + sourceLine(s, escape))
		if s.Join.Kind == schema.JoinCross {
			continue
		}
		if s.Join.Expression == "" {
			return "", shipyard.NewArgumentError("view", fmt.Sprintf("join to %s.%s in view %s has no expression", s.Schema, s.Name, v.QualifiedName()))
		}
		b.WriteString("\n\tON " + s.Join.Expression)
	}
	b.WriteString(";\n\n")
	return b.String(), nil
}

func sourceLine(s *schema.ViewSource, escape func(string) string) string {
	line := escape(s.Schema) + "." + escape(s.Name)
	if s.Alias != "" {
		line += " " + s.Alias
	}
	return line
}
