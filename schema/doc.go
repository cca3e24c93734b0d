// Package schema provides the dialect-neutral model compiled into DDL.
//
// A Table owns its Columns, Indexes and Properties. A View owns its
// Sources, and each ViewSource owns its Outputs. Foreign keys link tables
// by name only:
//
//	dept := schema.NewTable("HR", "Department").AddColumn(
//	    schema.NewColumn("DepartmentKey", schema.TypeInt32).SetPrimaryKey(),
//	)
//	emp := schema.NewTable("HR", "Employee").AddColumn(
//	    schema.NewColumn("EmployeeKey", schema.TypeInt32).SetIdentity().SetPrimaryKey(),
//	    schema.NewColumn("DepartmentKey", schema.TypeInt32).
//	        SetReferences("HR", "Department", "DepartmentKey"),
//	)
//
//	tables := schema.Tables{emp, dept}
//	tables.SortByForeignKeyConstraints() // Department, Employee
//
//	view := emp.CreateView("Reporting", "EmployeeDepartments")
//	view.Join(schema.JoinInner, dept, "DepartmentKey", nil)
//
// # Column types
//
// A column's rendered type comes from the first of these that is set: the
// dialect override text, the dialect type code, the generic Type.
//
// The model does not render anything by itself. See the dialect packages.
package schema
