package strdefs

import (
	"regexp"
	"strings"
)

var wordBoundary = regexp.MustCompile(`[-_](\w)`)

// CamelCase converts enumerator identifier (SOME_IDENTIFIER, some-identifier,
// MY_TEST-Value) into lower camel case name (someIdentifier, myTestValue).
// Whole identifier is lower-cased first so original casing does not matter.
func CamelCase(id string) string {
	return wordBoundary.ReplaceAllStringFunc(strings.ToLower(id), func(m string) string {
		return strings.ToUpper(m[1:])
	})
}
