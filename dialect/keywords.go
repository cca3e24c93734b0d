package dialect

import (
	"golang.org/x/text/cases"
)

// Keywords is a case-insensitive set of reserved words.
type Keywords map[string]struct{}

// NewKeywords returns a set holding words.
func NewKeywords(words ...string) Keywords {
	k := make(Keywords, len(words))
	fold := cases.Fold()
	for _, w := range words {
		k[fold.String(w)] = struct{}{}
	}
	return k
}

// Contains reports whether s is a keyword, ignoring case.
func (k Keywords) Contains(s string) bool {
	// A Caser keeps state and must not be shared across goroutines.
	_, ok := k[cases.Fold().String(s)]
	return ok
}
