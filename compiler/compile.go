// Package compiler runs a schema model through a dialect generator and
// collects the resulting scripts as files.
//
// Compile sorts the tables by their foreign keys, names their constraints,
// validates them, infers view aliases and join predicates, then renders
// every table and view in parallel:
//
//	gen, err := postgres.New(dialect.WithSnakeCase(true))
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, err := compiler.Compile(ctx, gen, tables, views, compiler.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := compiler.NewWriter("migrations").WriteAll(ctx, out.Files); err != nil {
//		log.Fatal(err)
//	}
package compiler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/shipyard"
	"github.com/syssam/shipyard/dialect"
	"github.com/syssam/shipyard/schema"
	"github.com/syssam/shipyard/validate"
)

// SchemaFile is the path of the combined script.
const SchemaFile = "schema.sql"

// File is one generated file. Path is relative to the output directory and
// uses forward slashes.
type File struct {
	Path    string
	Content []byte
}

// Output is the result of a compilation.
type Output struct {
	// Files holds one script per table, then one per view, then the
	// combined script.
	Files []File
	// Validation holds the findings of the validation pass. Its errors are
	// only present when validation was skipped.
	Validation *validate.Result
}

// File returns the file with the given path, or nil.
func (o *Output) File(path string) *File {
	for i := range o.Files {
		if o.Files[i].Path == path {
			return &o.Files[i]
		}
	}
	return nil
}

// ValidationError is returned by Compile when a table fails validation.
type ValidationError struct {
	Result *validate.Result
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "compiler: validation failed\n" + e.Result.String()
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// =============================================================================
// Options
// =============================================================================

// Option configures Compile.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	skipValidation bool
	workers        int
}

// WithLogger sets the logger. Compile logs nothing by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSkipValidation renders the tables even when validation reports
// errors. The findings are still returned in Output.Validation.
func WithSkipValidation() Option {
	return func(o *options) {
		o.skipValidation = true
	}
}

// WithConcurrency bounds the number of objects rendered at once. It
// defaults to GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// =============================================================================
// Compile
// =============================================================================

// Compile prepares and renders tables and views with gen. The naming and
// inference passes fill in missing names on the model itself, and tables
// is reordered in place.
func Compile(ctx context.Context, gen dialect.Generator, tables schema.Tables, views []*schema.View, opts ...Option) (*Output, error) {
	if gen == nil {
		return nil, shipyard.NewArgumentError("gen", "generator is nil")
	}
	for i, t := range tables {
		if t == nil {
			return nil, shipyard.NewObjectError(i, "", shipyard.ErrNilTable)
		}
	}
	for i, v := range views {
		if v == nil {
			return nil, shipyard.NewObjectError(i, "", shipyard.ErrNilView)
		}
	}
	o := newOptions(opts)

	tables.SortByForeignKeyConstraints()
	if err := dialect.NameAllConstraints(gen, tables); err != nil {
		return nil, err
	}

	result := &validate.Result{}
	for i, t := range tables {
		r, err := gen.Validate(t)
		if err != nil {
			return nil, shipyard.NewObjectError(i, t.QualifiedName(), err)
		}
		result.Merge(r)
	}
	for _, w := range result.Warnings {
		o.logger.Warn("validation warning", "dialect", gen.Name(), "issue", w.Error())
	}
	if result.HasErrors() {
		if !o.skipValidation {
			return nil, &ValidationError{Result: result}
		}
		o.logger.Warn("rendering despite validation errors", "dialect", gen.Name(), "errors", len(result.Errors))
	}

	if err := dialect.CalculateAllAliases(gen, views); err != nil {
		return nil, err
	}
	if err := dialect.CalculateAllJoinExpressions(gen, views); err != nil {
		return nil, err
	}

	tableSQL := make([]string, len(tables))
	viewSQL := make([]string, len(views))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.workers)
	for i, t := range tables {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := gen.BuildTable(t)
			if err != nil {
				return shipyard.NewObjectError(i, t.QualifiedName(), err)
			}
			tableSQL[i] = s
			o.logger.Debug("rendered table", "dialect", gen.Name(), "table", t.QualifiedName(), "bytes", len(s))
			return nil
		})
	}
	for i, v := range views {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := gen.BuildView(v)
			if err != nil {
				return shipyard.NewObjectError(i, v.QualifiedName(), err)
			}
			viewSQL[i] = s
			o.logger.Debug("rendered view", "dialect", gen.Name(), "view", v.QualifiedName(), "bytes", len(s))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := &Output{
		Files:      make([]File, 0, len(tables)+len(views)+1),
		Validation: result,
	}
	var all strings.Builder
	for i, t := range tables {
		out.Files = append(out.Files, File{Path: TablePath(t), Content: []byte(tableSQL[i])})
		all.WriteString(tableSQL[i])
	}
	for i, v := range views {
		out.Files = append(out.Files, File{Path: ViewPath(v), Content: []byte(viewSQL[i])})
		all.WriteString(viewSQL[i])
	}
	out.Files = append(out.Files, File{Path: SchemaFile, Content: []byte(all.String())})
	return out, nil
}

// TablePath returns the path of the script of t.
func TablePath(t *schema.Table) string {
	return "tables/" + t.Schema + "." + t.Name + ".sql"
}

// ViewPath returns the path of the script of v.
func ViewPath(v *schema.View) string {
	return "views/" + v.Schema + "." + v.Name + ".sql"
}
