package sqlserver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/shipyard"
	"github.com/syssam/shipyard/dialect"
	"github.com/syssam/shipyard/dialect/sqlserver"
	"github.com/syssam/shipyard/schema"
)

func TestNew(t *testing.T) {
	g, err := sqlserver.New(dialect.WithTabSize(2))
	require.NoError(t, err)
	assert.Equal(t, dialect.SQLServer, g.Name())
	require.NotNil(t, g.Config().TabSize)
	assert.Equal(t, 2, *g.Config().TabSize)

	_, err = sqlserver.New(dialect.WithTabSize(-1))
	assert.True(t, shipyard.IsConfigError(err))
}

func TestEscapeIdentifier(t *testing.T) {
	t.Parallel()
	g := newGenerator(t)
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "Plain", in: "Employee", expected: "Employee"},
		{name: "Underscore", in: "first_name", expected: "first_name"},
		{name: "Keyword", in: "State", expected: "[State]"},
		{name: "KeywordLowerCase", in: "order", expected: "[order]"},
		{name: "Space", in: "Given Name", expected: "[Given Name]"},
		{name: "Dash", in: "e-mail", expected: "[e-mail]"},
		{name: "LeadingDigit", in: "1st", expected: "[1st]"},
		{name: "ClosingBracket", in: "a]b", expected: "[a]]b]"},
		{name: "Empty", in: "", expected: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, g.EscapeIdentifier(tt.in))
		})
	}

	all := newGenerator(t, dialect.WithEscapeAll(true))
	assert.Equal(t, "[Employee]", all.EscapeIdentifier("Employee"))
}

func TestEscapeText(t *testing.T) {
	g := newGenerator(t)
	assert.Equal(t, "'John''s'", g.EscapeText("John's"))
	assert.Equal(t, "N'John''s'", g.EscapeTextUnicode("John's"))
	assert.Equal(t, "N''", g.EscapeTextUnicode(""))
}

func TestTypeText(t *testing.T) {
	t.Parallel()
	intp := func(n int) *int { return &n }
	tests := []struct {
		name     string
		column   *schema.Column
		expected string
	}{
		{name: "Int32", column: schema.NewColumn("c", schema.TypeInt32), expected: "INT"},
		{name: "Int64", column: schema.NewColumn("c", schema.TypeInt64), expected: "BIGINT"},
		{name: "Boolean", column: schema.NewColumn("c", schema.TypeBoolean), expected: "BIT"},
		{name: "Byte", column: schema.NewColumn("c", schema.TypeByte), expected: "TINYINT"},
		{name: "Currency", column: schema.NewColumn("c", schema.TypeCurrency), expected: "MONEY"},
		{name: "Double", column: schema.NewColumn("c", schema.TypeDouble), expected: "FLOAT"},
		{name: "Single", column: schema.NewColumn("c", schema.TypeSingle), expected: "REAL"},
		{name: "Guid", column: schema.NewColumn("c", schema.TypeGuid), expected: "UNIQUEIDENTIFIER"},
		{name: "Object", column: schema.NewColumn("c", schema.TypeObject), expected: "VARIANT"},
		{name: "Xml", column: schema.NewColumn("c", schema.TypeXml), expected: "XML"},
		{name: "StringLength", column: schema.NewColumn("c", schema.TypeString).SetMaxLength(100), expected: "NVARCHAR(100)"},
		{name: "StringOverCeiling", column: schema.NewColumn("c", schema.TypeString).SetMaxLength(4001), expected: "NVARCHAR(MAX)"},
		{name: "StringMax", column: schema.NewColumn("c", schema.TypeString).SetMaxLength(schema.Max), expected: "NVARCHAR(MAX)"},
		{name: "StringNoLength", column: schema.NewColumn("c", schema.TypeString), expected: "NVARCHAR()"},
		{name: "AnsiString", column: schema.NewColumn("c", schema.TypeAnsiString).SetMaxLength(8000), expected: "VARCHAR(8000)"},
		{name: "AnsiStringOverCeiling", column: schema.NewColumn("c", schema.TypeAnsiString).SetMaxLength(8001), expected: "VARCHAR(MAX)"},
		{name: "Binary", column: schema.NewColumn("c", schema.TypeBinary).SetMaxLength(schema.Max), expected: "VARBINARY(MAX)"},
		{name: "FixedLength", column: schema.NewColumn("c", schema.TypeStringFixedLength).SetMaxLength(2), expected: "NCHAR(2)"},
		{name: "AnsiFixedLength", column: schema.NewColumn("c", schema.TypeAnsiStringFixedLength).SetMaxLength(3), expected: "CHAR(3)"},
		{name: "DecimalFull", column: schema.NewColumn("c", schema.TypeDecimal).SetPrecision(18).SetScale(2), expected: "DECIMAL(18,2)"},
		{name: "DecimalPrecision", column: schema.NewColumn("c", schema.TypeDecimal).SetPrecision(10), expected: "DECIMAL(10)"},
		{name: "DecimalBare", column: schema.NewColumn("c", schema.TypeVarNumeric), expected: "DECIMAL()"},
		{name: "DateTime2", column: &schema.Column{Type: schema.TypeDateTime2, Precision: intp(3)}, expected: "DATETIME2(3)"},
		{name: "Rowversion", column: schema.NewSQLServerColumn("c", schema.SQLServerTimestamp), expected: "ROWVERSION"},
		{name: "Pinned", column: schema.NewSQLServerColumn("c", schema.SQLServerSmallMoney), expected: "SMALLMONEY"},
		{name: "Override", column: &schema.Column{Type: schema.TypeInt32, SQLServerOverride: "geography"}, expected: "geography"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := sqlserver.TypeText(tt.column)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		t.Parallel()
		for _, typ := range []schema.Type{schema.TypeSByte, schema.TypeUInt16, schema.TypeUInt32, schema.TypeUInt64} {
			_, err := sqlserver.TypeText(schema.NewColumn("c", typ))
			require.Error(t, err)
			var ute *shipyard.UnknownTypeError
			require.ErrorAs(t, err, &ute)
			assert.Equal(t, dialect.SQLServer, ute.Dialect)
			assert.Equal(t, typ.String(), ute.Type)
		}
	})
}

func TestNameConstraints(t *testing.T) {
	newTable := func() *schema.Table {
		tbl := schema.NewTable("Sales", "Order").AddColumn(
			schema.NewColumn("OrderId", schema.TypeInt32).SetPrimaryKey(),
			schema.NewColumn("Number", schema.TypeInt32).SetUnique(),
			schema.NewColumn("Total", schema.TypeCurrency).SetDefault("0").SetCheck("Total >= 0"),
			schema.NewColumn("CustomerId", schema.TypeInt32).SetReferences("", "Customer", "CustomerId"),
		)
		tbl.ClusteredIndex = schema.NewIndex("", "Number")
		return tbl
	}

	t.Run("TableOnly", func(t *testing.T) {
		g := newGenerator(t)
		tbl := newTable()
		require.NoError(t, g.NameConstraints(tbl))
		assert.Equal(t, "PK_Order", tbl.PrimaryKeyConstraintName)
		assert.Equal(t, "CX_Order", tbl.ClusteredIndex.Name)
		assert.Equal(t, "UX_Order_Number", tbl.Column("Number").UniqueConstraintName)
		assert.Equal(t, "D_Order_Total", tbl.Column("Total").DefaultConstraintName)
		assert.Equal(t, "C_Order_Total", tbl.Column("Total").CheckConstraintName)
		assert.Equal(t, "FK_Order_CustomerId", tbl.Column("CustomerId").FKConstraintName)
		assert.Empty(t, tbl.Column("OrderId").FKConstraintName)
	})

	t.Run("WithSchema", func(t *testing.T) {
		g := newGenerator(t, dialect.WithSchemaInConstraintNames(true))
		tbl := newTable()
		require.NoError(t, g.NameConstraints(tbl))
		assert.Equal(t, "PK_Sales_Order", tbl.PrimaryKeyConstraintName)
		assert.Equal(t, "FK_Sales_Order_CustomerId", tbl.Column("CustomerId").FKConstraintName)
	})

	t.Run("KeepsExistingNames", func(t *testing.T) {
		g := newGenerator(t)
		tbl := newTable()
		tbl.PrimaryKeyConstraintName = "PK_Custom"
		tbl.Column("Total").CheckConstraintName = "CK_Custom"
		require.NoError(t, g.NameConstraints(tbl))
		assert.Equal(t, "PK_Custom", tbl.PrimaryKeyConstraintName)
		assert.Equal(t, "CK_Custom", tbl.Column("Total").CheckConstraintName)
	})

	t.Run("Idempotent", func(t *testing.T) {
		g := newGenerator(t)
		once := newTable()
		require.NoError(t, g.NameConstraints(once))
		twice := newTable()
		require.NoError(t, g.NameConstraints(twice))
		require.NoError(t, g.NameConstraints(twice))
		assert.Equal(t, once, twice)
	})

	t.Run("NilTable", func(t *testing.T) {
		assert.ErrorIs(t, newGenerator(t).NameConstraints(nil), shipyard.ErrNilTable)
	})
}

func TestValidate(t *testing.T) {
	g := newGenerator(t)

	t.Run("IdentityType", func(t *testing.T) {
		tbl := schema.NewTable("dbo", "T").AddColumn(
			schema.NewColumn("Id", schema.TypeGuid).SetIdentity(),
			schema.NewColumn("Seq", schema.TypeInt64).SetIdentity(),
		)
		res, err := g.Validate(tbl)
		require.NoError(t, err)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "Id", res.Errors[0].Column)
		assert.Equal(t, "Identity column Id cannot have data type UniqueIdentifier.", res.Errors[0].Message)
		assert.Equal(t, []string{"IsIdentity", "SqlServerType", "Type"}, res.Errors[0].Members)
	})

	t.Run("BaseRules", func(t *testing.T) {
		res, err := g.Validate(schema.NewTable("dbo", "Empty"))
		require.NoError(t, err)
		assert.True(t, res.HasErrors())
	})

	t.Run("Clean", func(t *testing.T) {
		tbl := schema.NewTable("dbo", "T").AddColumn(schema.NewColumn("Id", schema.TypeInt32).SetIdentity())
		res, err := g.Validate(tbl)
		require.NoError(t, err)
		assert.False(t, res.HasErrors())
	})

	t.Run("NilTable", func(t *testing.T) {
		_, err := g.Validate(nil)
		assert.ErrorIs(t, err, shipyard.ErrNilTable)
	})
}

func TestGeneratorView(t *testing.T) {
	g := newGenerator(t)
	employee := schema.NewTable("HR", "Employee").AddColumn(
		schema.NewColumn("EmployeeKey", schema.TypeInt32).SetPrimaryKey(),
		schema.NewColumn("DepartmentId", schema.TypeInt32),
	)
	department := schema.NewTable("HR", "Department Info").AddColumn(
		schema.NewColumn("DepartmentId", schema.TypeInt32).SetPrimaryKey(),
		schema.NewColumn("Name", schema.TypeString).SetMaxLength(50),
	)
	v := employee.CreateView("Reporting", "EmployeeDepartments")
	_, err := v.Join(schema.JoinLeft, department, "DepartmentId", nil)
	require.NoError(t, err)

	require.NoError(t, g.CalculateAliases(v))
	require.NoError(t, g.CalculateJoinExpressions(v))
	out, err := g.BuildView(v)
	require.NoError(t, err)
	expected := "CREATE VIEW Reporting.EmployeeDepartments\n" +
		"AS\n" +
		"SELECT\n" +
		"\te.EmployeeKey,\n" +
		"\te.DepartmentId,\n" +
		"\tdi.Name\n" +
		"FROM HR.Employee e\n" +
		"LEFT JOIN HR.[Department Info] di\n" +
		"\tON e.DepartmentId = di.DepartmentId;\n\n"
	assert.Equal(t, expected, out)
}
