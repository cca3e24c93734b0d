package postgres

import (
	"strconv"
	"strings"

	"github.com/syssam/shipyard"
	"github.com/syssam/shipyard/schema"
)

// BuildTable renders the CREATE TABLE statement of t followed by its
// clustered index, unique constraints, secondary indexes, comments and the
// identity seed fix-up.
func (g *Generator) BuildTable(t *schema.Table) (string, error) {
	if t == nil {
		return "", shipyard.ErrNilTable
	}
	qualified := g.EscapeIdentifier(t.Schema) + "." + g.EscapeIdentifier(t.Name)

	var lines []string
	for _, c := range t.Columns {
		line, err := g.columnLine(c)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}
	if t.HasPrimaryKey() {
		line := "\t"
		if t.PrimaryKeyConstraintName != "" {
			line += "CONSTRAINT " + t.PrimaryKeyConstraintName + " "
		}
		lines = append(lines, line+"PRIMARY KEY ("+g.escapeColumns(t.PrimaryKeyColumns())+")")
	}
	for _, c := range t.Columns {
		if !c.HasForeignKey() {
			continue
		}
		refSchema := c.ReferencedSchema
		if refSchema == "" {
			refSchema = t.Schema
		}
		line := "\t"
		if c.FKConstraintName != "" {
			line += "CONSTRAINT " + c.FKConstraintName + " "
		}
		lines = append(lines, line+"FOREIGN KEY ("+g.EscapeIdentifier(c.Name)+") REFERENCES "+
			g.EscapeIdentifier(refSchema)+"."+g.EscapeIdentifier(c.ReferencedTable)+
			"("+g.EscapeIdentifier(c.ReferencedColumn)+")")
	}

	var b strings.Builder
	b.WriteString(g.cfg.ExpandTabs("CREATE TABLE " + qualified + "\n(\n" + strings.Join(lines, ",\n") + "\n);\n"))
	b.WriteString("\n")

	if idx := t.ClusteredIndex; idx != nil {
		b.WriteString("CREATE CLUSTERED INDEX " + idx.Name + " ON " + qualified + " (" + g.escapeNames(idx.Columns) + ");\n\n")
	}
	for _, idx := range t.Indexes {
		if idx.Constraint {
			b.WriteString("ALTER TABLE " + qualified + " ADD CONSTRAINT " + idx.Name + " UNIQUE (" + g.escapeNames(idx.Columns) + ");\n\n")
		}
	}
	for _, idx := range t.Indexes {
		if idx.Constraint {
			continue
		}
		kind := "NONCLUSTERED"
		if idx.Unique {
			kind = "UNIQUE"
		}
		var include string
		if len(idx.Include) > 0 {
			include = " INCLUDE (" + g.escapeNames(idx.Include) + ")"
		}
		b.WriteString("CREATE " + kind + " INDEX " + idx.Name + " ON " + qualified + " (" + g.escapeNames(idx.Columns) + ")" + include + ";\n")
	}

	if t.Description != "" {
		b.WriteString("COMMENT ON TABLE " + qualified + " IS " + g.EscapeText(t.Description) + ";\n\n")
	}
	for _, c := range t.Columns {
		if c.Description != "" {
			b.WriteString("COMMENT ON COLUMN " + qualified + "." + g.EscapeIdentifier(c.Name) + " IS " + g.EscapeText(c.Description) + ";\n\n")
		}
	}
	for _, c := range t.Columns {
		if c.Identity && c.IdentitySeed != nil {
			col := g.EscapeIdentifier(c.Name)
			b.WriteString("-- Setting the identity seed\n")
			b.WriteString("SELECT setval(pg_get_serial_sequence(" + g.EscapeText(qualified) + ", " + g.EscapeText(g.storedName(c.Name)) + "), (SELECT GREATEST(" +
				strconv.Itoa(*c.IdentitySeed) + ", MAX(" + col + ")) FROM " + qualified + "));\n\n")
		}
	}
	return b.String(), nil
}

// storedName returns name the way the catalog records it: unquoted
// identifiers fold to lower case.
func (g *Generator) storedName(name string) string {
	escaped := g.EscapeIdentifier(name)
	if unquoted, ok := strings.CutPrefix(escaped, `"`); ok {
		return strings.TrimSuffix(unquoted, `"`)
	}
	return strings.ToLower(escaped)
}

func (g *Generator) columnLine(c *schema.Column) (string, error) {
	typ, err := TypeText(c, g.cfg.SerialIdentity)
	if err != nil {
		return "", err
	}
	var null string
	switch {
	case c.Identity:
		if !isSerial(typ) {
			typ += " GENERATED ALWAYS AS IDENTITY"
		}
	case c.Nullable:
		null = "NULL"
	default:
		null = "NOT NULL"
	}
	line := strings.TrimRight("\t"+g.EscapeIdentifier(c.Name)+" "+typ+" "+null, " ")

	if c.Unique {
		line += constraintName(c.UniqueConstraintName) + " UNIQUE"
	}
	if def := defaultValue(c); def != "" {
		line += " DEFAULT " + def
	}
	if c.Check != "" {
		line += constraintName(c.CheckConstraintName) + " CHECK " + c.Check
	}
	return line, nil
}

func defaultValue(c *schema.Column) string {
	switch {
	case c.Default != "":
		return c.Default
	case c.DefaultUTCTime:
		return "(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')"
	case c.DefaultLocalTime:
		return "CURRENT_TIMESTAMP"
	}
	return ""
}

func constraintName(name string) string {
	if name == "" {
		return ""
	}
	return " CONSTRAINT " + name
}

func (g *Generator) escapeNames(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = g.EscapeIdentifier(n)
	}
	return strings.Join(out, ", ")
}

func (g *Generator) escapeColumns(cols []*schema.Column) string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = g.EscapeIdentifier(c.Name)
	}
	return strings.Join(out, ", ")
}
