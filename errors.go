package shipyard

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for common failure cases.
var (
	// ErrNilTable is returned when a table argument is nil.
	ErrNilTable = errors.New("shipyard: table is nil")

	// ErrNilView is returned when a view argument is nil.
	ErrNilView = errors.New("shipyard: view is nil")

	// ErrInvalidArgument is returned when an argument is present but unusable.
	ErrInvalidArgument = errors.New("shipyard: invalid argument")

	// ErrUnknownType is returned when a column type cannot be translated
	// into the target dialect.
	ErrUnknownType = errors.New("shipyard: unknown type")

	// ErrUnsupportedJoin is returned when a view source uses a join kind
	// the compiler does not know how to render.
	ErrUnsupportedJoin = errors.New("shipyard: unsupported join kind")

	// ErrMissingJoinColumn is returned when join inference cannot find a
	// source exposing a join column.
	ErrMissingJoinColumn = errors.New("shipyard: missing join column")

	// ErrMissingHistoryTable is returned when a history table is requested
	// for a table that has no history table name.
	ErrMissingHistoryTable = errors.New("shipyard: history table name is not set")

	// ErrInvalidConfig indicates a configuration error.
	ErrInvalidConfig = errors.New("shipyard: invalid configuration")
)

// UnknownTypeError reports a type that has no mapping in a dialect.
type UnknownTypeError struct {
	Dialect string // Target dialect
	Type    string // Name of the type that failed to map
}

// Error returns the error string.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("shipyard: unknown %s type %q", e.Dialect, e.Type)
}

// Is reports whether the target matches ErrUnknownType.
func (e *UnknownTypeError) Is(err error) bool {
	return err == ErrUnknownType
}

// NewUnknownTypeError returns a new UnknownTypeError.
func NewUnknownTypeError(dialect, typ string) *UnknownTypeError {
	return &UnknownTypeError{Dialect: dialect, Type: typ}
}

// IsUnknownType returns true if the error is an UnknownTypeError.
func IsUnknownType(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownTypeError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownType)
}

// UnsupportedJoinError reports a join kind outside of the known kinds.
type UnsupportedJoinError struct {
	Kind int
}

// Error returns the error string.
func (e *UnsupportedJoinError) Error() string {
	return fmt.Sprintf("shipyard: join kind %d is not supported", e.Kind)
}

// Is reports whether the target matches ErrUnsupportedJoin.
func (e *UnsupportedJoinError) Is(err error) bool {
	return err == ErrUnsupportedJoin
}

// NewUnsupportedJoinError returns a new UnsupportedJoinError.
func NewUnsupportedJoinError(kind int) *UnsupportedJoinError {
	return &UnsupportedJoinError{Kind: kind}
}

// IsUnsupportedJoin returns true if the error is an UnsupportedJoinError.
func IsUnsupportedJoin(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedJoinError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupportedJoin)
}

// MissingJoinColumnError reports a join column that no source exposes.
type MissingJoinColumnError struct {
	View   string // View being inferred (optional)
	Column string // Left join column that was not found
}

// Error returns the error string.
func (e *MissingJoinColumnError) Error() string {
	if e.View != "" {
		return fmt.Sprintf("shipyard: view %s: unable to find a source that contains column %s", e.View, e.Column)
	}
	return fmt.Sprintf("shipyard: unable to find a source that contains column %s", e.Column)
}

// Is reports whether the target matches ErrMissingJoinColumn.
func (e *MissingJoinColumnError) Is(err error) bool {
	return err == ErrMissingJoinColumn
}

// NewMissingJoinColumnError returns a new MissingJoinColumnError.
func NewMissingJoinColumnError(view, column string) *MissingJoinColumnError {
	return &MissingJoinColumnError{View: view, Column: column}
}

// IsMissingJoinColumn returns true if the error is a MissingJoinColumnError.
func IsMissingJoinColumn(err error) bool {
	if err == nil {
		return false
	}
	var e *MissingJoinColumnError
	return errors.As(err, &e) || errors.Is(err, ErrMissingJoinColumn)
}

// ArgumentError reports an argument that is present but unusable.
type ArgumentError struct {
	Param   string
	Message string
}

// Error returns the error string.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("shipyard: invalid argument %q: %s", e.Param, e.Message)
}

// Is reports whether the target matches ErrInvalidArgument.
func (e *ArgumentError) Is(err error) bool {
	return err == ErrInvalidArgument
}

// NewArgumentError returns a new ArgumentError.
func NewArgumentError(param, message string) *ArgumentError {
	return &ArgumentError{Param: param, Message: message}
}

// IsArgumentError returns true if the error is an ArgumentError.
func IsArgumentError(err error) bool {
	if err == nil {
		return false
	}
	var e *ArgumentError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidArgument)
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("shipyard: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("shipyard: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// ObjectError wraps a failure on one table or view of a batch.
type ObjectError struct {
	Index  int    // Position in the batch
	Object string // Qualified name, when known
	Err    error
}

// Error implements the error interface.
func (e *ObjectError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "shipyard: item %d", e.Index)
	if e.Object != "" {
		b.WriteString(" (")
		b.WriteString(e.Object)
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ObjectError) Unwrap() error {
	return e.Err
}

// NewObjectError returns a new ObjectError.
func NewObjectError(index int, object string, err error) *ObjectError {
	return &ObjectError{Index: index, Object: object, Err: err}
}
