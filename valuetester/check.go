package valuetester

import (
	"reflect"

	"github.com/ojrosten/sequoia-sub007/checkkind"
	"github.com/ojrosten/sequoia-sub007/checklog"
)

// elemOf boxes a generic value into an addressable reflect.Value, robust
// to T being an interface type holding nil (reflect.ValueOf(v) alone
// would be an invalid Value in that case).
func elemOf[T any](v T) reflect.Value {
	return reflect.ValueOf(&v).Elem()
}

// Check is the heart of the framework: it chooses the most specific
// comparison available for (T, kind), emits a check through logger, and
// returns whether the check passed.
func Check[T any](kind checkkind.Kind, description string, logger *checklog.Logger, obtained, predicted T, opts ...Option) bool {
	cfg := buildConfig(opts)
	return checkValue(kind, description, logger, elemOf(obtained), elemOf(predicted), cfg)
}

// CheckEquality is a convenience alias for Check(checkkind.Equality,
// ...), the most common call shape.
func CheckEquality[T any](description string, logger *checklog.Logger, obtained, predicted T, opts ...Option) bool {
	return Check(checkkind.Equality, description, logger, obtained, predicted, opts...)
}
