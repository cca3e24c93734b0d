package postgres

import (
	"strconv"

	"github.com/syssam/shipyard"
	"github.com/syssam/shipyard/dialect"
	"github.com/syssam/shipyard/schema"
)

// maxVarchar is the largest length varchar accepts.
const maxVarchar = 10485760

var typeMap = map[schema.Type]schema.PostgresType{
	schema.TypeAnsiString:            schema.PostgresVarchar,
	schema.TypeAnsiStringFixedLength: schema.PostgresChar,
	schema.TypeBinary:                schema.PostgresBytea,
	schema.TypeBoolean:               schema.PostgresBoolean,
	schema.TypeByte:                  schema.PostgresBytea,
	schema.TypeCurrency:              schema.PostgresMoney,
	schema.TypeDate:                  schema.PostgresDate,
	schema.TypeDateTime:              schema.PostgresTimestamp,
	schema.TypeDateTime2:             schema.PostgresTimestamp,
	schema.TypeDateTimeOffset:        schema.PostgresTimestampTz,
	schema.TypeDecimal:               schema.PostgresNumeric,
	schema.TypeDouble:                schema.PostgresDouble,
	schema.TypeGuid:                  schema.PostgresUuid,
	schema.TypeInt16:                 schema.PostgresSmallint,
	schema.TypeInt32:                 schema.PostgresInteger,
	schema.TypeInt64:                 schema.PostgresBigint,
	schema.TypeSingle:                schema.PostgresReal,
	schema.TypeString:                schema.PostgresVarchar,
	schema.TypeStringFixedLength:     schema.PostgresChar,
	schema.TypeTime:                  schema.PostgresTime,
	schema.TypeVarNumeric:            schema.PostgresNumeric,
	schema.TypeXml:                   schema.PostgresXml,
}

// PostgresTypeOf maps a generic type to its PostgreSQL type code.
func PostgresTypeOf(t schema.Type) (schema.PostgresType, error) {
	if code, ok := typeMap[t]; ok {
		return code, nil
	}
	return schema.PostgresUnset, shipyard.NewUnknownTypeError(dialect.Postgres, t.String())
}

// ResolveType returns the PostgreSQL type code of c.
func ResolveType(c *schema.Column) (schema.PostgresType, error) {
	if c.PostgresType.IsSet() {
		return c.PostgresType, nil
	}
	return PostgresTypeOf(c.Type)
}

// TypeText returns the full type of c. With serial set, identity columns of
// the integer types use the serial spellings.
func TypeText(c *schema.Column, serial bool) (string, error) {
	if c.PostgresOverride != "" {
		return c.PostgresOverride, nil
	}
	code, err := ResolveType(c)
	if err != nil {
		return "", err
	}
	serial = serial && c.Identity
	switch code {
	case schema.PostgresBigint:
		if serial {
			return "bigserial", nil
		}
		return "bigint", nil
	case schema.PostgresBit:
		return "bit", nil
	case schema.PostgresBoolean:
		return "boolean", nil
	case schema.PostgresBytea:
		return "bytea", nil
	case schema.PostgresChar:
		return "char(" + param(c.MaxLength) + ")", nil
	case schema.PostgresDate:
		return "date", nil
	case schema.PostgresDouble:
		return "double precision", nil
	case schema.PostgresInteger:
		if serial {
			return "serial", nil
		}
		return "integer", nil
	case schema.PostgresJson:
		return "json", nil
	case schema.PostgresJsonb:
		return "jsonb", nil
	case schema.PostgresMoney:
		return "money", nil
	case schema.PostgresNumeric:
		switch {
		case c.Precision != nil && c.Scale != nil:
			return "numeric(" + param(c.Precision) + "," + param(c.Scale) + ")", nil
		case c.Precision != nil:
			return "numeric(" + param(c.Precision) + ")", nil
		default:
			return "numeric()", nil
		}
	case schema.PostgresReal:
		return "real", nil
	case schema.PostgresSmallint:
		if serial {
			return "smallserial", nil
		}
		return "smallint", nil
	case schema.PostgresText:
		return "text", nil
	case schema.PostgresTime:
		return "time", nil
	case schema.PostgresTimestamp:
		if c.Precision != nil {
			return "timestamp(" + param(c.Precision) + ")", nil
		}
		return "timestamp", nil
	case schema.PostgresTimestampTz:
		if c.Precision != nil {
			return "timestamp(" + param(c.Precision) + ") with time zone", nil
		}
		return "timestamp with time zone", nil
	case schema.PostgresUuid:
		return "uuid", nil
	case schema.PostgresVarchar:
		if c.MaxLength != nil && *c.MaxLength == schema.Max {
			return "varchar", nil
		}
		if c.MaxLength != nil && *c.MaxLength > maxVarchar {
			return "varchar(" + strconv.Itoa(maxVarchar) + ")", nil
		}
		return "varchar(" + param(c.MaxLength) + ")", nil
	case schema.PostgresXml:
		return "xml", nil
	}
	return "", shipyard.NewUnknownTypeError(dialect.Postgres, code.String())
}

// isSerial reports whether the rendered type already carries the
// auto-increment behavior.
func isSerial(typ string) bool {
	return typ == "serial" || typ == "bigserial" || typ == "smallserial"
}

func param(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
