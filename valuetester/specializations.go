package valuetester

import (
	"fmt"
	"reflect"

	"github.com/ojrosten/sequoia-sub007/checkkind"
	"github.com/ojrosten/sequoia-sub007/checklog"
)

// This file supplies ValueTesters for common container-like shapes. Go
// has no built-in pair/tuple/optional/variant types, so each is modeled
// as a small generic struct; member-wise/parity-first comparison is
// registered as an Equality Tester the way a user would register their
// own.

// Pair is a member-wise-comparison shape for exactly two elements.
type Pair[A, B any] struct {
	First  A
	Second B
}

// RegisterPair installs the member-wise Equality ValueTester for
// Pair[A, B].
func RegisterPair[A, B comparable]() {
	Register(Tester[Pair[A, B]]{
		Equality: func(a, b Pair[A, B]) bool {
			return a.First == b.First && a.Second == b.Second
		},
	})
}

// RegisterTuple installs the member-wise Equality ValueTester for T,
// treating T as a fixed-arity, compile-time-indexed tuple: every
// exported field, in declaration order, is one tuple element. Unlike
// Pair's fixed two-element shape, RegisterTuple works for any struct
// arity, the Go analogue of comparing a std::tuple<Ts...> element by
// element. T must be a struct; RegisterTuple panics otherwise.
func RegisterTuple[T any]() {
	typ := typeOf[T]()
	if typ.Kind() != reflect.Struct {
		panic(fmt.Sprintf("valuetester: RegisterTuple requires a struct type, got %s", typ))
	}
	Register(Tester[T]{
		Equality: func(a, b T) bool {
			return tupleFieldsEqual(reflect.ValueOf(a), reflect.ValueOf(b))
		},
	})
}

// tupleFieldsEqual compares a and b field by field, in declaration
// order, preferring each field's registered Equality ValueTester over
// the native fallback — the same resolution order Check uses, applied
// per tuple element rather than to the whole value at once.
func tupleFieldsEqual(a, b reflect.Value) bool {
	typ := a.Type()
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).PkgPath != "" {
			continue // unexported field: not part of the tuple's element list
		}
		af, bf := a.Field(i), b.Field(i)
		if fn, ok := lookup(af.Type(), checkkind.Equality); ok {
			if !invoke(fn, af, bf) {
				return false
			}
			continue
		}
		if !nativeEqual(af, bf) {
			return false
		}
	}
	return true
}

// Optional models an optional value: has-value parity is checked before
// the contents.
type Optional[T any] struct {
	Valid bool
	Value T
}

// Some constructs a present Optional.
func Some[T any](v T) Optional[T] { return Optional[T]{Valid: true, Value: v} }

// None constructs an absent Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// RegisterOptional installs the has-value-parity-then-contents Equality
// ValueTester for Optional[T].
func RegisterOptional[T comparable]() {
	Register(Tester[Optional[T]]{
		Equality: func(a, b Optional[T]) bool {
			if a.Valid != b.Valid {
				return false
			}
			return !a.Valid || a.Value == b.Value
		},
	})
}

// CheckOptional reports the has-value-parity failure distinctly from a
// contents mismatch: an absent optional compared against a present one
// fails because has-value parity differs, before contents are ever
// considered.
func CheckOptional[T any](description string, logger *checklog.Logger, obtained, predicted Optional[T], opts ...Option) bool {
	sentinel := logger.Enter(description)
	defer sentinel.Close()

	if obtained.Valid != predicted.Valid {
		logger.Fail(fmt.Sprintf("optional has-value mismatch: obtained has_value=%v, predicted has_value=%v\n", obtained.Valid, predicted.Valid))
		return false
	}
	if !obtained.Valid {
		return true
	}
	return checkValue(checkkind.Equality, description+".value", logger, elemOf(obtained.Value), elemOf(predicted.Value), buildConfig(opts))
}

// Variant2 models a two-alternative variant: the active alternative
// index is checked before the contents.
type Variant2[A, B any] struct {
	Index int // 0 selects A, 1 selects B
	A     A
	B     B
}

// VariantA constructs a Variant2 holding an A alternative.
func VariantA[A, B any](v A) Variant2[A, B] { return Variant2[A, B]{Index: 0, A: v} }

// VariantB constructs a Variant2 holding a B alternative.
func VariantB[A, B any](v B) Variant2[A, B] { return Variant2[A, B]{Index: 1, B: v} }

// CheckVariant2 first checks the active-alternative index, then the
// contents of whichever alternative is active.
func CheckVariant2[A, B any](description string, logger *checklog.Logger, obtained, predicted Variant2[A, B], opts ...Option) bool {
	sentinel := logger.Enter(description)
	defer sentinel.Close()

	if obtained.Index != predicted.Index {
		logger.Fail(fmt.Sprintf("variant active-alternative mismatch: obtained index=%d, predicted index=%d\n", obtained.Index, predicted.Index))
		return false
	}
	cfg := buildConfig(opts)
	if obtained.Index == 0 {
		return checkValue(checkkind.Equality, description+".alternative", logger, elemOf(obtained.A), elemOf(predicted.A), cfg)
	}
	return checkValue(checkkind.Equality, description+".alternative", logger, elemOf(obtained.B), elemOf(predicted.B), cfg)
}

// CheckPointer checks null-parity before dereferencing. T need not be
// comparable: the pointee is compared via the full Check dispatch, not
// `==`.
func CheckPointer[T any](description string, logger *checklog.Logger, obtained, predicted *T, opts ...Option) bool {
	sentinel := logger.Enter(description)
	defer sentinel.Close()

	if (obtained == nil) != (predicted == nil) {
		logger.Fail(fmt.Sprintf("pointer null-parity mismatch: obtained nil=%v, predicted nil=%v\n", obtained == nil, predicted == nil))
		return false
	}
	if obtained == nil {
		return true
	}
	return checkValue(checkkind.Equality, description+".value", logger, elemOf(*obtained), elemOf(*predicted), buildConfig(opts))
}

// WeakRef models a weak pointer: comparison locks both sides to a strong
// reference first, comparing by lock target rather than identity.
type WeakRef[T any] interface {
	Lock() (*T, bool)
}

// CheckWeakRef compares two weak references by locking each to its
// target and comparing via CheckPointer.
func CheckWeakRef[T any](description string, logger *checklog.Logger, obtained, predicted WeakRef[T], opts ...Option) bool {
	ov, ok1 := obtained.Lock()
	pv, ok2 := predicted.Lock()
	if ok1 != ok2 {
		sentinel := logger.Enter(description)
		defer sentinel.Close()
		logger.Fail(fmt.Sprintf("weak reference lock-parity mismatch: obtained locked=%v, predicted locked=%v\n", ok1, ok2))
		return false
	}
	if !ok1 {
		sentinel := logger.Enter(description)
		defer sentinel.Close()
		return true
	}
	return CheckPointer(description, logger, ov, pv, opts...)
}
