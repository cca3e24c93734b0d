package schema

import (
	"strconv"
	"strings"
)

// Max is the length sentinel for unbounded character and binary columns.
const Max = -1

// =============================================================================
// Generic types
// =============================================================================

// Type is a dialect-neutral logical column type.
type Type int

// Generic column types.
const (
	TypeUnset Type = iota
	TypeAnsiString
	TypeAnsiStringFixedLength
	TypeBinary
	TypeBoolean
	TypeByte
	TypeCurrency
	TypeDate
	TypeDateTime
	TypeDateTime2
	TypeDateTimeOffset
	TypeDecimal
	TypeDouble
	TypeGuid
	TypeInt16
	TypeInt32
	TypeInt64
	TypeObject
	TypeSByte
	TypeSingle
	TypeString
	TypeStringFixedLength
	TypeTime
	TypeUInt16
	TypeUInt32
	TypeUInt64
	TypeVarNumeric
	TypeXml
	endTypes
)

var typeNames = [...]string{
	TypeUnset:                 "Unset",
	TypeAnsiString:            "AnsiString",
	TypeAnsiStringFixedLength: "AnsiStringFixedLength",
	TypeBinary:                "Binary",
	TypeBoolean:               "Boolean",
	TypeByte:                  "Byte",
	TypeCurrency:              "Currency",
	TypeDate:                  "Date",
	TypeDateTime:              "DateTime",
	TypeDateTime2:             "DateTime2",
	TypeDateTimeOffset:        "DateTimeOffset",
	TypeDecimal:               "Decimal",
	TypeDouble:                "Double",
	TypeGuid:                  "Guid",
	TypeInt16:                 "Int16",
	TypeInt32:                 "Int32",
	TypeInt64:                 "Int64",
	TypeObject:                "Object",
	TypeSByte:                 "SByte",
	TypeSingle:                "Single",
	TypeString:                "String",
	TypeStringFixedLength:     "StringFixedLength",
	TypeTime:                  "Time",
	TypeUInt16:                "UInt16",
	TypeUInt32:                "UInt32",
	TypeUInt64:                "UInt64",
	TypeVarNumeric:            "VarNumeric",
	TypeXml:                   "Xml",
}

// String returns the type name.
func (t Type) String() string {
	if t >= 0 && t < endTypes {
		return typeNames[t]
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// IsSet reports whether t holds a type.
func (t Type) IsSet() bool { return t != TypeUnset }

// ParseType looks up a generic type by name, ignoring case.
func ParseType(s string) (Type, bool) {
	for i, name := range typeNames {
		if i > 0 && strings.EqualFold(name, s) {
			return Type(i), true
		}
	}
	return TypeUnset, false
}

// =============================================================================
// SQL Server types
// =============================================================================

// SQLServerType is a native SQL Server type code.
type SQLServerType int

// SQL Server type codes.
const (
	SQLServerUnset SQLServerType = iota
	SQLServerBigInt
	SQLServerBinary
	SQLServerBit
	SQLServerChar
	SQLServerDate
	SQLServerDateTime
	SQLServerDateTime2
	SQLServerDateTimeOffset
	SQLServerDecimal
	SQLServerFloat
	SQLServerImage
	SQLServerInt
	SQLServerMoney
	SQLServerNChar
	SQLServerNText
	SQLServerNVarChar
	SQLServerReal
	SQLServerSmallDateTime
	SQLServerSmallInt
	SQLServerSmallMoney
	SQLServerText
	SQLServerTime
	SQLServerTimestamp
	SQLServerTinyInt
	SQLServerUniqueIdentifier
	SQLServerVarBinary
	SQLServerVarChar
	SQLServerVariant
	SQLServerXml
	endSQLServerTypes
)

var sqlServerTypeNames = [...]string{
	SQLServerUnset:            "Unset",
	SQLServerBigInt:           "BigInt",
	SQLServerBinary:           "Binary",
	SQLServerBit:              "Bit",
	SQLServerChar:             "Char",
	SQLServerDate:             "Date",
	SQLServerDateTime:         "DateTime",
	SQLServerDateTime2:        "DateTime2",
	SQLServerDateTimeOffset:   "DateTimeOffset",
	SQLServerDecimal:          "Decimal",
	SQLServerFloat:            "Float",
	SQLServerImage:            "Image",
	SQLServerInt:              "Int",
	SQLServerMoney:            "Money",
	SQLServerNChar:            "NChar",
	SQLServerNText:            "NText",
	SQLServerNVarChar:         "NVarChar",
	SQLServerReal:             "Real",
	SQLServerSmallDateTime:    "SmallDateTime",
	SQLServerSmallInt:         "SmallInt",
	SQLServerSmallMoney:       "SmallMoney",
	SQLServerText:             "Text",
	SQLServerTime:             "Time",
	SQLServerTimestamp:        "Timestamp",
	SQLServerTinyInt:          "TinyInt",
	SQLServerUniqueIdentifier: "UniqueIdentifier",
	SQLServerVarBinary:        "VarBinary",
	SQLServerVarChar:          "VarChar",
	SQLServerVariant:          "Variant",
	SQLServerXml:              "Xml",
}

// String returns the type code name.
func (t SQLServerType) String() string {
	if t >= 0 && t < endSQLServerTypes {
		return sqlServerTypeNames[t]
	}
	return "SQLServerType(" + strconv.Itoa(int(t)) + ")"
}

// IsSet reports whether t holds a type code.
func (t SQLServerType) IsSet() bool { return t != SQLServerUnset }

// ParseSQLServerType looks up a SQL Server type code by name, ignoring case.
func ParseSQLServerType(s string) (SQLServerType, bool) {
	for i, name := range sqlServerTypeNames {
		if i > 0 && strings.EqualFold(name, s) {
			return SQLServerType(i), true
		}
	}
	return SQLServerUnset, false
}

// =============================================================================
// PostgreSQL types
// =============================================================================

// PostgresType is a native PostgreSQL type code.
type PostgresType int

// PostgreSQL type codes.
const (
	PostgresUnset PostgresType = iota
	PostgresBigint
	PostgresBit
	PostgresBoolean
	PostgresBytea
	PostgresChar
	PostgresDate
	PostgresDouble
	PostgresInteger
	PostgresJson
	PostgresJsonb
	PostgresMoney
	PostgresNumeric
	PostgresReal
	PostgresSmallint
	PostgresText
	PostgresTime
	PostgresTimestamp
	PostgresTimestampTz
	PostgresUuid
	PostgresVarchar
	PostgresXml
	endPostgresTypes
)

var postgresTypeNames = [...]string{
	PostgresUnset:       "Unset",
	PostgresBigint:      "Bigint",
	PostgresBit:         "Bit",
	PostgresBoolean:     "Boolean",
	PostgresBytea:       "Bytea",
	PostgresChar:        "Char",
	PostgresDate:        "Date",
	PostgresDouble:      "Double",
	PostgresInteger:     "Integer",
	PostgresJson:        "Json",
	PostgresJsonb:       "Jsonb",
	PostgresMoney:       "Money",
	PostgresNumeric:     "Numeric",
	PostgresReal:        "Real",
	PostgresSmallint:    "Smallint",
	PostgresText:        "Text",
	PostgresTime:        "Time",
	PostgresTimestamp:   "Timestamp",
	PostgresTimestampTz: "TimestampTz",
	PostgresUuid:        "Uuid",
	PostgresVarchar:     "Varchar",
	PostgresXml:         "Xml",
}

// String returns the type code name.
func (t PostgresType) String() string {
	if t >= 0 && t < endPostgresTypes {
		return postgresTypeNames[t]
	}
	return "PostgresType(" + strconv.Itoa(int(t)) + ")"
}

// IsSet reports whether t holds a type code.
func (t PostgresType) IsSet() bool { return t != PostgresUnset }

// ParsePostgresType looks up a PostgreSQL type code by name, ignoring case.
func ParsePostgresType(s string) (PostgresType, bool) {
	for i, name := range postgresTypeNames {
		if i > 0 && strings.EqualFold(name, s) {
			return PostgresType(i), true
		}
	}
	return PostgresUnset, false
}
