// Package shipyard compiles a dialect-neutral relational schema model into
// DDL scripts for SQL Server and PostgreSQL.
//
// The model lives in package schema. Each target dialect has its own
// generator under dialect/:
//
//	import (
//	    "github.com/syssam/shipyard/dialect/postgres"
//	    "github.com/syssam/shipyard/schema"
//	)
//
//	t := schema.NewTable("HR", "Employee").AddColumn(
//	    schema.NewColumn("EmployeeKey", schema.TypeInt32).SetIdentity().SetPrimaryKey(),
//	    schema.NewColumn("FirstName", schema.TypeString).SetMaxLength(50),
//	)
//
//	gen, err := postgres.New(dialect.WithSnakeCase(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := gen.NameConstraints(t); err != nil {
//	    log.Fatal(err)
//	}
//	ddl, err := gen.BuildTable(t)
//
// Package schemadoc reads the model from YAML, JSON or MessagePack
// documents, and package compiler runs the whole pipeline and writes the
// scripts to disk. The shipyard command wraps both.
//
// This package holds the errors shared by all sub-packages.
package shipyard
