package output

import (
	"reflect"
	"regexp"
	"strings"
)

// closingBrackets inserts a space between adjacent closing brackets.
// Go's generic syntax uses square brackets rather than angle brackets,
// but nested instantiations still produce runs of adjacent closing
// brackets (e.g. "Tester[Pair[int, string]]") that read more clearly
// with a thin space between them.
var closingBrackets = regexp.MustCompile(`\]\]+`)

// TypeName renders a readable name for v's type. Go does not mangle
// type names, so there is no platform-specific demangler to invoke;
// this function only performs the cosmetic clean-up step.
func TypeName(v any) string {
	return TypeNameOf(reflect.TypeOf(v))
}

// TypeNameOf is TypeName for an already-resolved reflect.Type, used when
// the value itself may be nil (e.g. a nil pointer or interface).
func TypeNameOf(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	name := t.String()
	name = closingBrackets.ReplaceAllStringFunc(name, func(s string) string {
		return strings.Join(strings.Split(s, ""), " ")
	})
	return name
}
