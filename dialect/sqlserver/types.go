package sqlserver

import (
	"strconv"

	"github.com/syssam/shipyard"
	"github.com/syssam/shipyard/dialect"
	"github.com/syssam/shipyard/schema"
)

// Length ceilings above which a variable-length type renders as MAX.
const (
	maxNVarChar = 4000
	maxVarChar  = 8000
)

var typeMap = map[schema.Type]schema.SQLServerType{
	schema.TypeAnsiString:            schema.SQLServerVarChar,
	schema.TypeAnsiStringFixedLength: schema.SQLServerChar,
	schema.TypeBinary:                schema.SQLServerVarBinary,
	schema.TypeBoolean:               schema.SQLServerBit,
	schema.TypeByte:                  schema.SQLServerTinyInt,
	schema.TypeCurrency:              schema.SQLServerMoney,
	schema.TypeDate:                  schema.SQLServerDate,
	schema.TypeDateTime:              schema.SQLServerDateTime,
	schema.TypeDateTime2:             schema.SQLServerDateTime2,
	schema.TypeDateTimeOffset:        schema.SQLServerDateTimeOffset,
	schema.TypeDecimal:               schema.SQLServerDecimal,
	schema.TypeDouble:                schema.SQLServerFloat,
	schema.TypeGuid:                  schema.SQLServerUniqueIdentifier,
	schema.TypeInt16:                 schema.SQLServerSmallInt,
	schema.TypeInt32:                 schema.SQLServerInt,
	schema.TypeInt64:                 schema.SQLServerBigInt,
	schema.TypeObject:                schema.SQLServerVariant,
	schema.TypeSingle:                schema.SQLServerReal,
	schema.TypeString:                schema.SQLServerNVarChar,
	schema.TypeStringFixedLength:     schema.SQLServerNChar,
	schema.TypeTime:                  schema.SQLServerTime,
	schema.TypeVarNumeric:            schema.SQLServerDecimal,
	schema.TypeXml:                   schema.SQLServerXml,
}

// SQLServerTypeOf maps a generic type to its SQL Server type code.
func SQLServerTypeOf(t schema.Type) (schema.SQLServerType, error) {
	if code, ok := typeMap[t]; ok {
		return code, nil
	}
	return schema.SQLServerUnset, shipyard.NewUnknownTypeError(dialect.SQLServer, t.String())
}

// ResolveType returns the SQL Server type code of c: its own code when set,
// otherwise the mapping of its generic type.
func ResolveType(c *schema.Column) (schema.SQLServerType, error) {
	if c.SQLServerType.IsSet() {
		return c.SQLServerType, nil
	}
	return SQLServerTypeOf(c.Type)
}

// TypeText returns the full type of c, including length, precision and
// scale. An override is returned verbatim.
func TypeText(c *schema.Column) (string, error) {
	if c.SQLServerOverride != "" {
		return c.SQLServerOverride, nil
	}
	code, err := ResolveType(c)
	if err != nil {
		return "", err
	}
	switch code {
	case schema.SQLServerBigInt:
		return "BIGINT", nil
	case schema.SQLServerBinary:
		return "BINARY(" + param(c.MaxLength) + ")", nil
	case schema.SQLServerBit:
		return "BIT", nil
	case schema.SQLServerChar:
		return "CHAR(" + param(c.MaxLength) + ")", nil
	case schema.SQLServerDate:
		return "DATE", nil
	case schema.SQLServerDateTime:
		return "DATETIME", nil
	case schema.SQLServerDateTime2:
		if c.Precision != nil {
			return "DATETIME2(" + param(c.Precision) + ")", nil
		}
		return "DATETIME2", nil
	case schema.SQLServerDateTimeOffset:
		return "DATETIMEOFFSET", nil
	case schema.SQLServerDecimal:
		switch {
		case c.Precision != nil && c.Scale != nil:
			return "DECIMAL(" + param(c.Precision) + "," + param(c.Scale) + ")", nil
		case c.Precision != nil:
			return "DECIMAL(" + param(c.Precision) + ")", nil
		default:
			return "DECIMAL()", nil
		}
	case schema.SQLServerFloat:
		return "FLOAT", nil
	case schema.SQLServerImage:
		return "IMAGE", nil
	case schema.SQLServerInt:
		return "INT", nil
	case schema.SQLServerMoney:
		return "MONEY", nil
	case schema.SQLServerNChar:
		return "NCHAR(" + param(c.MaxLength) + ")", nil
	case schema.SQLServerNText:
		return "NTEXT", nil
	case schema.SQLServerNVarChar:
		return "NVARCHAR(" + varLength(c.MaxLength, maxNVarChar) + ")", nil
	case schema.SQLServerReal:
		return "REAL", nil
	case schema.SQLServerSmallDateTime:
		return "SMALLDATETIME", nil
	case schema.SQLServerSmallInt:
		return "SMALLINT", nil
	case schema.SQLServerSmallMoney:
		return "SMALLMONEY", nil
	case schema.SQLServerText:
		return "TEXT", nil
	case schema.SQLServerTime:
		return "TIME", nil
	case schema.SQLServerTimestamp:
		return "ROWVERSION", nil
	case schema.SQLServerTinyInt:
		return "TINYINT", nil
	case schema.SQLServerUniqueIdentifier:
		return "UNIQUEIDENTIFIER", nil
	case schema.SQLServerVarBinary:
		return "VARBINARY(" + varLength(c.MaxLength, maxVarChar) + ")", nil
	case schema.SQLServerVarChar:
		return "VARCHAR(" + varLength(c.MaxLength, maxVarChar) + ")", nil
	case schema.SQLServerVariant:
		return "VARIANT", nil
	case schema.SQLServerXml:
		return "XML", nil
	}
	return "", shipyard.NewUnknownTypeError(dialect.SQLServer, code.String())
}

// param renders an optional type parameter. An unset parameter renders as
// nothing, leaving empty parentheses.
func param(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func varLength(n *int, ceiling int) string {
	if n != nil && (*n == schema.Max || *n > ceiling) {
		return "MAX"
	}
	return param(n)
}
