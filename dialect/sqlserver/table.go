package sqlserver

import (
	"strconv"
	"strings"

	"github.com/syssam/shipyard"
	"github.com/syssam/shipyard/schema"
)

// BuildTable renders the CREATE TABLE statement of t followed, in order, by
// its clustered index, filtered unique indexes for nullable unique columns,
// unique constraints, secondary indexes and extended properties. Each
// statement ends its own batch.
func (g *Generator) BuildTable(t *schema.Table) (string, error) {
	if t == nil {
		return "", shipyard.ErrNilTable
	}
	qualified := g.EscapeIdentifier(t.Schema) + "." + g.EscapeIdentifier(t.Name)

	var body strings.Builder
	body.WriteString("CREATE TABLE " + qualified + "\n(\n")

	compound := t.HasCompoundPrimaryKey()
	var lines []string
	var rowStart, rowEnd *schema.Column
	for _, c := range t.Columns {
		line, err := g.columnLine(t, c, compound)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
		if c.RowStart && rowStart == nil {
			rowStart = c
		}
		if c.RowEnd && rowEnd == nil {
			rowEnd = c
		}
	}
	if compound {
		line := "\t"
		if t.PrimaryKeyConstraintName != "" {
			line += "CONSTRAINT " + t.PrimaryKeyConstraintName + " "
		}
		line += "PRIMARY KEY (" + g.escapeColumns(t.PrimaryKeyColumns()) + ")"
		lines = append(lines, line)
	}
	if rowStart != nil && rowEnd != nil {
		lines = append(lines, "\tPERIOD FOR SYSTEM_TIME ("+g.EscapeIdentifier(rowStart.Name)+", "+g.EscapeIdentifier(rowEnd.Name)+")")
	}
	if len(lines) > 0 {
		body.WriteString(strings.Join(lines, ",\n") + "\n")
	}
	body.WriteString(")")

	var b strings.Builder
	b.WriteString(g.cfg.ExpandTabs(body.String()))
	if t.HistoryTable != "" {
		hs := t.HistorySchema
		if hs == "" {
			hs = t.Schema
		}
		b.WriteString("\nWITH (SYSTEM_VERSIONING = ON (HISTORY_TABLE = " + g.EscapeIdentifier(hs) + "." + g.EscapeIdentifier(t.HistoryTable) + "))")
	}
	b.WriteString(";\n")
	g.endBatch(&b)

	if idx := t.ClusteredIndex; idx != nil {
		b.WriteString("CREATE CLUSTERED INDEX " + idx.Name + " ON " + qualified + " (" + g.escapeNames(idx.Columns) + ");\n")
		g.endBatch(&b)
	}
	for _, c := range t.Columns {
		if c.Unique && c.Nullable {
			col := g.EscapeIdentifier(c.Name)
			b.WriteString("CREATE UNIQUE INDEX " + c.UniqueConstraintName + " ON " + qualified + "(" + col + ") WHERE " + col + " IS NOT NULL;\n")
			g.endBatch(&b)
		}
	}
	for _, idx := range t.Indexes {
		if idx.Constraint {
			b.WriteString("ALTER TABLE " + qualified + " ADD CONSTRAINT " + idx.Name + " UNIQUE (" + g.escapeNames(idx.Columns) + ");\n")
			g.endBatch(&b)
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
		g.endBatch(&b)
	}

	tableLevel := "@level0type = N'SCHEMA', @level0name = N'" + t.Schema + "', @level1type = N'TABLE', @level1name = N'" + t.Name + "'"
	if t.Description != "" {
		g.extendedProperty(&b, "MS_Description", t.Description, tableLevel+", @level2type = NULL, @level2name = NULL")
	}
	for _, p := range t.Properties {
		g.extendedProperty(&b, p.Name, p.Value, tableLevel+", @level2type = NULL, @level2name = NULL")
	}
	for _, c := range t.Columns {
		columnLevel := tableLevel + ", @level2type = N'COLUMN', @level2name = N'" + c.Name + "'"
		if c.Description != "" {
			g.extendedProperty(&b, "MS_Description", c.Description, columnLevel)
		}
		for _, p := range c.Properties {
			g.extendedProperty(&b, p.Name, p.Value, columnLevel)
		}
	}
	return b.String(), nil
}

func (g *Generator) columnLine(t *schema.Table, c *schema.Column, compound bool) (string, error) {
	typ, err := TypeText(c)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("\t" + g.EscapeIdentifier(c.Name) + " " + typ + " " + nullability(c))

	if c.PrimaryKey && !compound {
		constraintName(&b, t.PrimaryKeyConstraintName)
		b.WriteString(" PRIMARY KEY")
		if t.ClusteredIndex != nil {
			b.WriteString(" NONCLUSTERED")
		}
	}
	if c.Unique && !c.Nullable {
		constraintName(&b, c.UniqueConstraintName)
		b.WriteString(" UNIQUE")
	}
	if def := defaultValue(c); def != "" {
		constraintName(&b, c.DefaultConstraintName)
		b.WriteString(" DEFAULT (" + def + ")")
	}
	if c.Check != "" {
		constraintName(&b, c.CheckConstraintName)
		b.WriteString(" CHECK (" + c.Check + ")")
	}
	if c.HasForeignKey() {
		refSchema := c.ReferencedSchema
		if refSchema == "" {
			refSchema = t.Schema
		}
		constraintName(&b, c.FKConstraintName)
		b.WriteString(" REFERENCES " + g.EscapeIdentifier(refSchema) + "." + g.EscapeIdentifier(c.ReferencedTable) +
			"(" + g.EscapeIdentifier(c.ReferencedColumn) + ")")
	}
	return b.String(), nil
}

// nullability returns the phrase following the column type. Identity,
// sparse and period columns have their own phrase in place of NULL.
func nullability(c *schema.Column) string {
	var hidden string
	if c.Hidden {
		hidden = " HIDDEN"
	}
	switch {
	case c.Identity:
		if c.IdentitySeed != nil || c.IdentityIncrement != nil {
			return "IDENTITY(" + orOne(c.IdentitySeed) + ", " + orOne(c.IdentityIncrement) + ")" + hidden
		}
		return "IDENTITY" + hidden
	case c.Sparse:
		return "SPARSE" + hidden
	case c.RowStart:
		return "GENERATED ALWAYS AS ROW START" + hidden + " NOT NULL"
	case c.RowEnd:
		return "GENERATED ALWAYS AS ROW END" + hidden + " NOT NULL"
	case c.Nullable:
		return "NULL" + hidden
	default:
		return "NOT NULL" + hidden
	}
}

func defaultValue(c *schema.Column) string {
	switch {
	case c.Default != "":
		return c.Default
	case c.DefaultUTCTime:
		return "SYSUTCDATETIME()"
	case c.DefaultLocalTime:
		return "SYSDATETIME()"
	}
	return ""
}

func orOne(p *int) string {
	if p == nil {
		return "1"
	}
	return strconv.Itoa(*p)
}

func constraintName(b *strings.Builder, name string) {
	if name != "" {
		b.WriteString(" CONSTRAINT " + name)
	}
}

func (g *Generator) extendedProperty(b *strings.Builder, name, value, level string) {
	b.WriteString("EXEC sp_addextendedproperty @name = N'" + name + "', @value = " + g.EscapeTextUnicode(value) + ", " + level + ";\n")
	g.endBatch(b)
}

func (g *Generator) endBatch(b *strings.Builder) {
	if g.cfg.UseBatchSeparator {
		b.WriteString("GO\n\n")
		return
	}
	b.WriteString("\n")
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
