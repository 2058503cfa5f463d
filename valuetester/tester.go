// Package valuetester implements the value-comparison and check-dispatch
// engine: the ValueTester registry, the Check entry points, range
// comparison, and a set of built-in specializations for common
// container-like shapes (pairs, optionals, variants, pointers).
package valuetester

import (
	"reflect"
	"sync"

	"github.com/ojrosten/sequoia-sub007/checkkind"
)

// Tester is a user- or library-supplied record of comparison procedures
// for T, keyed implicitly by T via Register. Any subset of the three
// fields may be set; presence is what the dispatch engine probes for.
type Tester[T any] struct {
	Equality        func(a, b T) bool
	Equivalence     func(a, b T) bool
	WeakEquivalence func(a, b T) bool
}

type regKey struct {
	kind checkkind.Kind
	typ  reflect.Type
}

// registry is the process-wide ValueTester store: a registry keyed by
// type identity and kind, with a priority list standing in for the
// compile-time trait probing a language with generics and overload
// resolution could do instead.
var registry sync.Map // regKey -> reflect.Value wrapping func(T, T) bool

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Register installs t as the ValueTester for T, for every kind it
// populates. Calling Register again for the same T replaces the
// previously registered procedures for the kinds t sets.
func Register[T any](t Tester[T]) {
	typ := typeOf[T]()
	if t.Equality != nil {
		registry.Store(regKey{checkkind.Equality, typ}, reflect.ValueOf(t.Equality))
	}
	if t.Equivalence != nil {
		registry.Store(regKey{checkkind.Equivalence, typ}, reflect.ValueOf(t.Equivalence))
	}
	if t.WeakEquivalence != nil {
		registry.Store(regKey{checkkind.WeakEquivalence, typ}, reflect.ValueOf(t.WeakEquivalence))
	}
}

// lookup returns the registered tester procedure for (typ, kind), if any.
func lookup(typ reflect.Type, kind checkkind.Kind) (reflect.Value, bool) {
	raw, ok := registry.Load(regKey{kind, typ})
	if !ok {
		return reflect.Value{}, false
	}
	return raw.(reflect.Value), true
}

// invoke calls a tester procedure found by lookup on the pair (a, b).
func invoke(fn reflect.Value, a, b reflect.Value) bool {
	out := fn.Call([]reflect.Value{a, b})
	return out[0].Bool()
}
