package postgres_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/shipyard"
	"github.com/syssam/shipyard/dialect"
	"github.com/syssam/shipyard/dialect/postgres"
	"github.com/syssam/shipyard/schema"
)

func newGenerator(t *testing.T, opts ...dialect.Option) *postgres.Generator {
	t.Helper()
	g, err := postgres.New(opts...)
	require.NoError(t, err)
	return g
}

func varchar(t *testing.T, name string, n int) *schema.Column {
	t.Helper()
	c, err := schema.NewSizedPostgresColumn(name, schema.PostgresVarchar, n)
	require.NoError(t, err)
	return c
}

func employeeKey() *schema.Column {
	return schema.NewPostgresColumn("EmployeeKey", schema.PostgresInteger).SetIdentity().SetPrimaryKey()
}

func build(t *testing.T, g *postgres.Generator, tbl *schema.Table) string {
	t.Helper()
	require.NoError(t, g.NameConstraints(tbl))
	out, err := g.BuildTable(tbl)
	require.NoError(t, err)
	return out
}

func TestBuildTable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		opts     []dialect.Option
		table    func(t *testing.T) *schema.Table
		expected string
	}{
		{
			name: "ForeignKeyOtherSchema",
			opts: []dialect.Option{dialect.WithSnakeCase(true)},
			table: func(t *testing.T) *schema.Table {
				return schema.NewTable("HR", "Employee").AddColumn(
					employeeKey(),
					schema.NewPostgresColumn("DepartmentId", schema.PostgresInteger).
						SetReferences("Organization", "Department", "DepartmentId"),
				)
			},
			expected: "CREATE TABLE hr.employee\n" +
				"(\n" +
				"\temployee_key integer GENERATED ALWAYS AS IDENTITY,\n" +
				"\tdepartment_id integer NOT NULL,\n" +
				"\tCONSTRAINT employee_pkey PRIMARY KEY (employee_key),\n" +
				"\tCONSTRAINT employee_department_id_fkey FOREIGN KEY (department_id) REFERENCES organization.department(department_id)\n" +
				");\n\n",
		},
		{
			name: "ForeignKeySameSchema",
			opts: []dialect.Option{dialect.WithSnakeCase(true)},
			table: func(t *testing.T) *schema.Table {
				return schema.NewTable("HR", "Employee").AddColumn(
					employeeKey(),
					schema.NewPostgresColumn("ManagerId", schema.PostgresInteger).SetReferences("", "Manager", "ManagerId"),
				)
			},
			expected: "CREATE TABLE hr.employee\n" +
				"(\n" +
				"\temployee_key integer GENERATED ALWAYS AS IDENTITY,\n" +
				"\tmanager_id integer NOT NULL,\n" +
				"\tCONSTRAINT employee_pkey PRIMARY KEY (employee_key),\n" +
				"\tCONSTRAINT employee_manager_id_fkey FOREIGN KEY (manager_id) REFERENCES hr.manager(manager_id)\n" +
				");\n\n",
		},
		{
			name: "CheckConstraintEscapeAll",
			opts: []dialect.Option{dialect.WithEscapeAll(true)},
			table: func(t *testing.T) *schema.Table {
				age := schema.NewPostgresColumn("Age", schema.PostgresInteger).SetCheck(`"Age" >= 0 AND "Age" <= 120`)
				age.CheckConstraintName = "CK_Age"
				return schema.NewTable("dbo", "TestTable").AddColumn(
					schema.NewPostgresColumn("Id", schema.PostgresInteger).SetPrimaryKey(),
					age,
				)
			},
			expected: "CREATE TABLE \"dbo\".\"TestTable\"\n" +
				"(\n" +
				"\t\"Id\" integer NOT NULL,\n" +
				"\t\"Age\" integer NOT NULL CONSTRAINT CK_Age CHECK \"Age\" >= 0 AND \"Age\" <= 120,\n" +
				"\tCONSTRAINT TestTable_pkey PRIMARY KEY (\"Id\")\n" +
				");\n\n",
		},
		{
			name: "CompoundPrimaryKey",
			opts: []dialect.Option{dialect.WithSnakeCase(true)},
			table: func(t *testing.T) *schema.Table {
				return schema.NewTable("dbo", "TestTable").AddColumn(
					schema.NewPostgresColumn("Key1", schema.PostgresInteger).SetPrimaryKey(),
					schema.NewPostgresColumn("Key2", schema.PostgresInteger).SetPrimaryKey(),
					varchar(t, "Data", 50).SetNullable(),
				)
			},
			expected: "CREATE TABLE dbo.test_table\n" +
				"(\n" +
				"\tkey1 integer NOT NULL,\n" +
				"\tkey2 integer NOT NULL,\n" +
				"\t\"data\" varchar(50) NULL,\n" +
				"\tCONSTRAINT test_table_pkey PRIMARY KEY (key1, key2)\n" +
				");\n\n",
		},
		{
			name: "Defaults",
			opts: []dialect.Option{dialect.WithSnakeCase(true)},
			table: func(t *testing.T) *schema.Table {
				return schema.NewTable("HR", "Employee").AddColumn(
					employeeKey(),
					varchar(t, "Status", 10).SetDefault("'Active'"),
					schema.NewPostgresColumn("CreatedCount", schema.PostgresInteger).SetDefault("0"),
				)
			},
			expected: "CREATE TABLE hr.employee\n" +
				"(\n" +
				"\temployee_key integer GENERATED ALWAYS AS IDENTITY,\n" +
				"\tstatus varchar(10) NOT NULL DEFAULT 'Active',\n" +
				"\tcreated_count integer NOT NULL DEFAULT 0,\n" +
				"\tCONSTRAINT employee_pkey PRIMARY KEY (employee_key)\n" +
				");\n\n",
		},
		{
			name: "TableComment",
			opts: []dialect.Option{dialect.WithSnakeCase(true)},
			table: func(t *testing.T) *schema.Table {
				tbl := schema.NewTable("HR", "Employee").AddColumn(employeeKey())
				tbl.Description = "This is John's table"
				return tbl
			},
			expected: "CREATE TABLE hr.employee\n" +
				"(\n" +
				"\temployee_key integer GENERATED ALWAYS AS IDENTITY,\n" +
				"\tCONSTRAINT employee_pkey PRIMARY KEY (employee_key)\n" +
				");\n\n" +
				"COMMENT ON TABLE hr.employee IS 'This is John''s table';\n\n",
		},
		{
			name: "ColumnComment",
			opts: []dialect.Option{dialect.WithSnakeCase(true)},
			table: func(t *testing.T) *schema.Table {
				return schema.NewTable("HR", "Employee").AddColumn(
					employeeKey(),
					varchar(t, "FirstName", 50).SetDescription("Employee first name"),
				)
			},
			expected: "CREATE TABLE hr.employee\n" +
				"(\n" +
				"\temployee_key integer GENERATED ALWAYS AS IDENTITY,\n" +
				"\tfirst_name varchar(50) NOT NULL,\n" +
				"\tCONSTRAINT employee_pkey PRIMARY KEY (employee_key)\n" +
				");\n\n" +
				"COMMENT ON COLUMN hr.employee.first_name IS 'Employee first name';\n\n",
		},
		{
			name: "IdentitySeed",
			opts: []dialect.Option{dialect.WithSnakeCase(true)},
			table: func(t *testing.T) *schema.Table {
				return schema.NewTable("HR", "Employee").AddColumn(employeeKey().SetIdentitySeed(1000, 1))
			},
			expected: "CREATE TABLE hr.employee\n" +
				"(\n" +
				"\temployee_key integer GENERATED ALWAYS AS IDENTITY,\n" +
				"\tCONSTRAINT employee_pkey PRIMARY KEY (employee_key)\n" +
				");\n\n" +
				"-- Setting the identity seed\n" +
				"SELECT setval(pg_get_serial_sequence('hr.employee', 'employee_key'), (SELECT GREATEST(1000, MAX(employee_key)) FROM hr.employee));\n\n",
		},
		{
			name: "IdentitySeedEscapeAll",
			opts: []dialect.Option{dialect.WithEscapeAll(true)},
			table: func(t *testing.T) *schema.Table {
				return schema.NewTable("HR", "Employee").AddColumn(
					schema.NewPostgresColumn("EmployeeKey", schema.PostgresInteger).SetIdentitySeed(100, 1),
				)
			},
			expected: "CREATE TABLE \"HR\".\"Employee\"\n" +
				"(\n" +
				"\t\"EmployeeKey\" integer GENERATED ALWAYS AS IDENTITY\n" +
				");\n\n" +
				"-- Setting the identity seed\n" +
				"SELECT setval(pg_get_serial_sequence('\"HR\".\"Employee\"', 'EmployeeKey'), (SELECT GREATEST(100, MAX(\"EmployeeKey\")) FROM \"HR\".\"Employee\"));\n\n",
		},
		{
			name: "IdentitySeedFoldedName",
			table: func(t *testing.T) *schema.Table {
				return schema.NewTable("HR", "Employee").AddColumn(
					schema.NewPostgresColumn("EmployeeKey", schema.PostgresInteger).SetIdentitySeed(100, 1),
				)
			},
			expected: "CREATE TABLE HR.Employee\n" +
				"(\n" +
				"\tEmployeeKey integer GENERATED ALWAYS AS IDENTITY\n" +
				");\n\n" +
				"-- Setting the identity seed\n" +
				"SELECT setval(pg_get_serial_sequence('HR.Employee', 'employeekey'), (SELECT GREATEST(100, MAX(EmployeeKey)) FROM HR.Employee));\n\n",
		},
		{
			name: "IdentityWithoutPrimaryKey",
			opts: []dialect.Option{dialect.WithSnakeCase(true)},
			table: func(t *testing.T) *schema.Table {
				return schema.NewTable("HR", "Employee").AddColumn(
					schema.NewPostgresColumn("EmployeeKey", schema.PostgresInteger).SetIdentity(),
				)
			},
			expected: "CREATE TABLE hr.employee\n" +
				"(\n" +
				"\temployee_key integer GENERATED ALWAYS AS IDENTITY\n" +
				");\n\n",
		},
		{
			name: "ClusteredIndex",
			opts: []dialect.Option{dialect.WithSnakeCase(true)},
			table: func(t *testing.T) *schema.Table {
				tbl := schema.NewTable("HR", "Employee").AddColumn(employeeKey())
				tbl.ClusteredIndex = schema.NewIndex("idx_employee", "EmployeeKey")
				return tbl
			},
			expected: "CREATE TABLE hr.employee\n" +
				"(\n" +
				"\temployee_key integer GENERATED ALWAYS AS IDENTITY,\n" +
				"\tCONSTRAINT employee_pkey PRIMARY KEY (employee_key)\n" +
				");\n\n" +
				"CREATE CLUSTERED INDEX idx_employee ON hr.employee (employee_key);\n\n",
		},
		{
			name: "ConstraintIndex",
			opts: []dialect.Option{dialect.WithSnakeCase(true)},
			table: func(t *testing.T) *schema.Table {
				idx := schema.NewIndex("uq_email", "Email")
				idx.Constraint = true
				return schema.NewTable("HR", "Employee").AddColumn(employeeKey(), varchar(t, "Email", 100)).AddIndex(idx)
			},
			expected: "CREATE TABLE hr.employee\n" +
				"(\n" +
				"\temployee_key integer GENERATED ALWAYS AS IDENTITY,\n" +
				"\temail varchar(100) NOT NULL,\n" +
				"\tCONSTRAINT employee_pkey PRIMARY KEY (employee_key)\n" +
				");\n\n" +
				"ALTER TABLE hr.employee ADD CONSTRAINT uq_email UNIQUE (email);\n\n",
		},
		{
			name: "IndexWithInclude",
			opts: []dialect.Option{dialect.WithSnakeCase(true)},
			table: func(t *testing.T) *schema.Table {
				idx := schema.NewIndex("idx_lastname", "LastName")
				idx.Include = []string{"FirstName"}
				return schema.NewTable("HR", "Employee").AddColumn(
					employeeKey(),
					varchar(t, "LastName", 50),
					varchar(t, "FirstName", 50),
				).AddIndex(idx)
			},
			expected: "CREATE TABLE hr.employee\n" +
				"(\n" +
				"\temployee_key integer GENERATED ALWAYS AS IDENTITY,\n" +
				"\tlast_name varchar(50) NOT NULL,\n" +
				"\tfirst_name varchar(50) NOT NULL,\n" +
				"\tCONSTRAINT employee_pkey PRIMARY KEY (employee_key)\n" +
				");\n\n" +
				"CREATE NONCLUSTERED INDEX idx_lastname ON hr.employee (last_name) INCLUDE (first_name);\n",
		},
		{
			name: "UniqueIndex",
			opts: []dialect.Option{dialect.WithSnakeCase(true)},
			table: func(t *testing.T) *schema.Table {
				idx := schema.NewIndex("idx_email", "Email")
				idx.Unique = true
				return schema.NewTable("HR", "Employee").AddColumn(employeeKey(), varchar(t, "Email", 100)).AddIndex(idx)
			},
			expected: "CREATE TABLE hr.employee\n" +
				"(\n" +
				"\temployee_key integer GENERATED ALWAYS AS IDENTITY,\n" +
				"\temail varchar(100) NOT NULL,\n" +
				"\tCONSTRAINT employee_pkey PRIMARY KEY (employee_key)\n" +
				");\n\n" +
				"CREATE UNIQUE INDEX idx_email ON hr.employee (email);\n",
		},
		{
			name: "UniqueColumn",
			opts: []dialect.Option{dialect.WithSnakeCase(true)},
			table: func(t *testing.T) *schema.Table {
				return schema.NewTable("HR", "Employee").AddColumn(varchar(t, "Email", 100).SetUnique())
			},
			expected: "CREATE TABLE hr.employee\n" +
				"(\n" +
				"\temail varchar(100) NOT NULL CONSTRAINT employee_email_key UNIQUE\n" +
				");\n\n",
		},
		{
			name: "Serial",
			opts: []dialect.Option{dialect.WithSnakeCase(true), dialect.WithSerialIdentity(true)},
			table: func(t *testing.T) *schema.Table {
				return schema.NewTable("HR", "Employee").AddColumn(employeeKey())
			},
			expected: "CREATE TABLE hr.employee\n" +
				"(\n" +
				"\temployee_key serial,\n" +
				"\tCONSTRAINT employee_pkey PRIMARY KEY (employee_key)\n" +
				");\n\n",
		},
		{
			name: "TimeDefaults",
			table: func(t *testing.T) *schema.Table {
				local := schema.NewColumn("created", schema.TypeDateTime)
				local.DefaultLocalTime = true
				utc := schema.NewColumn("updated", schema.TypeDateTimeOffset)
				utc.DefaultUTCTime = true
				return schema.NewTable("app", "audit").AddColumn(local, utc)
			},
			expected: "CREATE TABLE app.audit\n" +
				"(\n" +
				"\tcreated timestamp NOT NULL DEFAULT CURRENT_TIMESTAMP,\n" +
				"\tupdated timestamp with time zone NOT NULL DEFAULT (CURRENT_TIMESTAMP AT TIME ZONE 'UTC')\n" +
				");\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := newGenerator(t, tt.opts...)
			assert.Equal(t, tt.expected, build(t, g, tt.table(t)))
		})
	}
}

func TestBuildTableTabSize(t *testing.T) {
	g := newGenerator(t, dialect.WithSnakeCase(true), dialect.WithTabSize(2))
	out := build(t, g, schema.NewTable("HR", "Employee").AddColumn(employeeKey()))
	assert.NotContains(t, out, "\t")
	assert.Contains(t, out, "\n  employee_key integer GENERATED ALWAYS AS IDENTITY,\n")
}

func TestBuildTableDeterministic(t *testing.T) {
	g := newGenerator(t, dialect.WithSnakeCase(true))
	newTable := func() *schema.Table {
		tbl := schema.NewTable("HR", "Employee").AddColumn(
			employeeKey().SetIdentitySeed(101, 1),
			varchar(t, "FirstName", 50).SetDescription("Hello Name"),
			varchar(t, "MiddleName", 50).SetNullable(),
			schema.NewPostgresColumn("ManagerKey", schema.PostgresInteger).SetNullable().
				SetReferences("HR", "Employee", "EmployeeKey"),
			schema.NewPostgresColumn("CreatedDate", schema.PostgresTimestamp).SetDefault("CURRENT_TIMESTAMP"),
		)
		tbl.Description = "This is my table's description"
		return tbl
	}
	first := build(t, g, newTable())
	assert.Equal(t, first, build(t, g, newTable()))
	assert.Equal(t, 1, strings.Count(first, "CREATE TABLE"))
	assert.Contains(t, first, "\tmanager_key integer NULL,\n")
	assert.Contains(t, first, "\tcreated_date timestamp NOT NULL DEFAULT CURRENT_TIMESTAMP,\n")
	assert.Contains(t, first, "REFERENCES hr.employee(employee_key)\n")
	assert.Contains(t, first, "COMMENT ON TABLE hr.employee IS 'This is my table''s description';\n")
}

func TestBuildTableErrors(t *testing.T) {
	g := newGenerator(t)
	_, err := g.BuildTable(nil)
	assert.ErrorIs(t, err, shipyard.ErrNilTable)

	_, err = g.BuildTable(schema.NewTable("a", "b").AddColumn(schema.NewColumn("c", schema.TypeObject)))
	assert.ErrorIs(t, err, shipyard.ErrUnknownType)
}
