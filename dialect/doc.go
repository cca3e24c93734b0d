// Package dialect defines the contract shared by the DDL generators and the
// pieces of rendering that do not vary between them.
//
// # Supported Dialects
//
//   - SQLServer: Microsoft SQL Server, see package dialect/sqlserver
//   - Postgres: PostgreSQL, see package dialect/postgres
//
// # Generator Interface
//
// Each dialect implements Generator, which is split into small interfaces
// so that callers can depend only on what they use:
//
//	type Generator interface {
//	    Name() string
//	    TableBuilder // BuildTable(*schema.Table) (string, error)
//	    ViewBuilder  // BuildView(*schema.View) (string, error)
//	    Namer        // NameConstraints(*schema.Table) error
//	    Inferrer     // CalculateAliases, CalculateJoinExpressions
//	    Escaper      // EscapeIdentifier, EscapeText, EscapeTextUnicode
//	    Validator    // Validate(*schema.Table) (*validate.Result, error)
//	}
//
// # Compile Phases
//
// Naming and inference mutate the model and must run before rendering.
// Aliases must be assigned before join expressions are inferred:
//
//	gen.NameConstraints(table)
//	gen.CalculateAliases(view)
//	gen.CalculateJoinExpressions(view)
//	ddl, err := gen.BuildTable(table)
//
// A table or view must not be mutated by two goroutines at once. Once the
// phases have run, rendering only reads the model.
//
// # Configuration
//
// Generators are configured with functional options:
//
//	gen, err := postgres.New(dialect.WithSnakeCase(true), dialect.WithTabSize(4))
package dialect
