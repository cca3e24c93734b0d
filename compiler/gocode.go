package compiler

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"

	"github.com/syssam/shipyard"
	"github.com/syssam/shipyard/schema"
)

// GoConstantsFile is the file name GoConstants writes to.
const GoConstantsFile = "names.go"

// GoConstants renders a Go package that names every table, view and column
// as a constant, so application code can refer to them without string
// literals:
//
//	const SalesCustomerTable = "Sales.Customer"
//
//	const (
//		SalesCustomerCustomerID = "CustomerID"
//		...
//	)
//
// The file is placed in a directory named after the package.
func GoConstants(pkg string, tables schema.Tables, views []*schema.View) (File, error) {
	if !isIdentifier(pkg) {
		return File{}, shipyard.NewArgumentError("pkg", fmt.Sprintf("%q is not a valid package name", pkg))
	}
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by shipyard. DO NOT EDIT.")

	seen := make(map[string]string)
	declare := func(name, value string) (jen.Code, error) {
		if prev, ok := seen[name]; ok {
			return nil, shipyard.NewArgumentError("name", fmt.Sprintf("%s and %s both map to the Go name %s", prev, value, name))
		}
		seen[name] = value
		return jen.Id(name).Op("=").Lit(value), nil
	}

	for _, t := range tables {
		if t == nil {
			return File{}, shipyard.ErrNilTable
		}
		prefix := goName(t.Schema) + goName(t.Name)
		name := prefix + "Table"
		c, err := declare(name, t.QualifiedName())
		if err != nil {
			return File{}, err
		}
		f.Commentf("%s is the qualified name of table %s.", name, t.QualifiedName())
		f.Const().Add(c)

		defs := make([]jen.Code, 0, len(t.Columns))
		for _, col := range t.Columns {
			c, err := declare(prefix+goName(col.Name), col.Name)
			if err != nil {
				return File{}, err
			}
			defs = append(defs, c)
		}
		if len(defs) > 0 {
			f.Commentf("Columns of %s.", t.QualifiedName())
			f.Const().Defs(defs...)
		}
	}

	for _, v := range views {
		if v == nil {
			return File{}, shipyard.ErrNilView
		}
		prefix := goName(v.Schema) + goName(v.Name)
		name := prefix + "View"
		c, err := declare(name, v.QualifiedName())
		if err != nil {
			return File{}, err
		}
		f.Commentf("%s is the qualified name of view %s.", name, v.QualifiedName())
		f.Const().Add(c)

		var defs []jen.Code
		for _, s := range v.Sources {
			for _, o := range s.Outputs {
				c, err := declare(prefix+goName(o.Name()), o.Name())
				if err != nil {
					return File{}, err
				}
				defs = append(defs, c)
			}
		}
		if len(defs) > 0 {
			f.Commentf("Columns of %s.", v.QualifiedName())
			f.Const().Defs(defs...)
		}
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return File{}, fmt.Errorf("render %s: %w", GoConstantsFile, err)
	}
	return File{Path: pkg + "/" + GoConstantsFile, Content: buf.Bytes()}, nil
}

// goName turns a database name into an exported Go identifier.
func goName(s string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, inflect.Camelize(s))
	if name == "" {
		return "X"
	}
	if r := []rune(name)[0]; !unicode.IsLetter(r) {
		return "X" + name
	}
	return name
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r != '_' && !unicode.IsLetter(r) && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}
