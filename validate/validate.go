// Package validate runs structural checks over tables before they are
// compiled. Problems are collected into a Result rather than returned as
// errors, so a caller can report every issue in one pass.
package validate

import (
	"fmt"
	"strings"

	"github.com/syssam/shipyard/schema"
)

// Error is one structural problem found in a table.
type Error struct {
	Table   string
	Column  string
	Message string
	// Members names the offending fields.
	Members []string
}

func (e *Error) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// Result holds the results of a validation run.
type Result struct {
	Errors   []*Error
	Warnings []*Error
}

// HasErrors returns true if there are any validation errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AddError records an error.
func (r *Result) AddError(table, column, message string, members ...string) {
	r.Errors = append(r.Errors, &Error{Table: table, Column: column, Message: message, Members: members})
}

// AddWarning records a warning.
func (r *Result) AddWarning(table, column, message string, members ...string) {
	r.Warnings = append(r.Warnings, &Error{Table: table, Column: column, Message: message, Members: members})
}

// Merge appends the findings of other.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// String returns a human-readable summary of the validation result.
func (r *Result) String() string {
	var sb strings.Builder
	if len(r.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for _, e := range r.Errors {
			sb.WriteString("  - ")
			sb.WriteString(e.Error())
			sb.WriteString("\n")
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString("  - ")
			sb.WriteString(w.Error())
			sb.WriteString("\n")
		}
	}
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

// Rule inspects a table and records what it finds in r.
type Rule func(t *schema.Table, r *Result)

// Option configures validation.
type Option func(*config)

type config struct {
	rules []Rule
}

// WithRule adds a rule that runs after the base rules.
func WithRule(rules ...Rule) Option {
	return func(c *config) {
		c.rules = append(c.rules, rules...)
	}
}

// Table validates t against the base rules and any rules added by options.
// A nil table yields an empty result.
//
// Example:
//
//	result := validate.Table(t, validate.WithRule(identityRule))
//	if result.HasErrors() {
//	    log.Fatal(result)
//	}
func Table(t *schema.Table, opts ...Option) *Result {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	result := &Result{}
	if t == nil {
		return result
	}
	for _, rule := range baseRules {
		rule(t, result)
	}
	for _, rule := range cfg.rules {
		rule(t, result)
	}
	return result
}

var baseRules = []Rule{
	requireColumns,
	requireColumnNames,
	uniqueColumnNames,
	requireIndexColumns,
}

func requireColumns(t *schema.Table, r *Result) {
	if len(t.Columns) == 0 {
		r.AddError(t.QualifiedName(), "", "table must have at least one column", "Columns")
	}
}

func requireColumnNames(t *schema.Table, r *Result) {
	for i, c := range t.Columns {
		if c.Name == "" {
			r.AddError(t.QualifiedName(), "", fmt.Sprintf("column %d has no name", i), "Name")
		}
	}
}

func uniqueColumnNames(t *schema.Table, r *Result) {
	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if c.Name == "" {
			continue
		}
		if seen[c.Name] {
			r.AddError(t.QualifiedName(), c.Name, "column is defined more than once", "Name")
		}
		seen[c.Name] = true
	}
}

func requireIndexColumns(t *schema.Table, r *Result) {
	check := func(idx *schema.Index) {
		if len(idx.Columns) == 0 {
			r.AddError(t.QualifiedName(), "", fmt.Sprintf("index %s must have at least one column", idx.Name), "Columns")
		}
		for _, name := range append(append([]string{}, idx.Columns...), idx.Include...) {
			if t.Column(name) == nil {
				r.AddWarning(t.QualifiedName(), name, fmt.Sprintf("index %s refers to an unknown column", idx.Name), "Columns")
			}
		}
	}
	if t.ClusteredIndex != nil {
		check(t.ClusteredIndex)
	}
	for _, idx := range t.Indexes {
		check(idx)
	}
}
