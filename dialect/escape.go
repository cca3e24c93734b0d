package dialect

import "strings"

// QuoteText returns s as a single-quoted SQL string literal. Embedded quotes
// are doubled.
func QuoteText(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
