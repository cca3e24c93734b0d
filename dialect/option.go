package dialect

import (
	"errors"
	"strings"

	"github.com/syssam/shipyard"
)

// Config holds the settings shared by the generators. Settings that a
// dialect does not support are ignored by its generator.
type Config struct {
	// EscapeAllIdentifiers quotes every identifier, not only those that
	// need it.
	EscapeAllIdentifiers bool
	// UseSnakeCase folds PascalCase identifiers into snake_case (PostgreSQL).
	UseSnakeCase bool
	// IncludeSchemaInConstraintNames prefixes synthesized constraint names
	// with the schema name.
	IncludeSchemaInConstraintNames bool
	// TabSize, when set, replaces each tab in a table body with that many
	// spaces.
	TabSize *int
	// UseBatchSeparator ends each statement batch with GO (SQL Server).
	UseBatchSeparator bool
	// SerialIdentity spells identity columns as serial types instead of
	// GENERATED ALWAYS AS IDENTITY (PostgreSQL).
	SerialIdentity bool
}

// Option configures a generator.
type Option func(*Config) error

// WithEscapeAll sets whether every identifier is quoted.
func WithEscapeAll(v bool) Option {
	return func(c *Config) error {
		c.EscapeAllIdentifiers = v
		return nil
	}
}

// WithSnakeCase sets whether identifiers are folded into snake_case
// before escaping.
func WithSnakeCase(v bool) Option {
	return func(c *Config) error {
		c.UseSnakeCase = v
		return nil
	}
}

// WithSchemaInConstraintNames sets whether synthesized constraint names
// include the schema name.
func WithSchemaInConstraintNames(v bool) Option {
	return func(c *Config) error {
		c.IncludeSchemaInConstraintNames = v
		return nil
	}
}

// WithTabSize sets the number of spaces that replace each tab.
func WithTabSize(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return shipyard.NewConfigError("TabSize", n, "must not be negative")
		}
		c.TabSize = &n
		return nil
	}
}

// WithBatchSeparator sets whether each statement batch ends with GO.
func WithBatchSeparator(v bool) Option {
	return func(c *Config) error {
		c.UseBatchSeparator = v
		return nil
	}
}

// WithSerialIdentity sets whether identity columns are spelled as serial
// types.
func WithSerialIdentity(v bool) Option {
	return func(c *Config) error {
		c.SerialIdentity = v
		return nil
	}
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options. Every failing
// option is reported, not only the first.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.ApplyAll(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// ExpandTabs replaces every tab in s with TabSize spaces. It returns s
// unchanged when TabSize is not set.
func (c *Config) ExpandTabs(s string) string {
	if c.TabSize == nil {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", *c.TabSize))
}
