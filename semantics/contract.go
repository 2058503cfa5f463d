// Package semantics implements a contract/semantic checker: given a
// value type and one or two canonical instances, it verifies equality,
// ordering, regularity (copy), movability, swappability,
// serializability, and mutation laws. Each law runs under its own
// Sentinel so a violation is attributed to the specific law that
// failed.
package semantics

import (
	"fmt"

	"github.com/ojrosten/sequoia-sub007/checkkind"
	"github.com/ojrosten/sequoia-sub007/checklog"
	"github.com/ojrosten/sequoia-sub007/valuetester"
)

// Instances bundles the canonical x != y pair every law in this package
// is checked against.
type Instances[T any] struct {
	X, Y T
}

// Options configures the optional laws: equivalent representations,
// ordering, movable-from predicate, serialization, and mutation.
type Options[T any] struct {
	// XEquivalent/YEquivalent, when non-nil, are checked for equivalence
	// against X/Y respectively.
	XEquivalent, YEquivalent *T

	// Order, when set, is used to verify <, <=, >, >= mutual consistency.
	Order *OrderSpec[T]

	// MovedFromPredicate optionally verifies a moved-from value's state.
	// Omitted entirely when nil.
	MovedFromPredicate func(movedFrom T) bool

	// Serialize/Deserialize, when both set, check the round-trip law
	// deserialize(serialize(x)) == x.
	Serialize   func(T) string
	Deserialize func(string) (T, error)

	// Mutate, when set, is applied to a value equal to Y and must change
	// it away from Y.
	Mutate func(*T)

	// MoveConstruct, when set together with MovedFromPredicate (or alone),
	// models move construction: it receives a value equal to Y and
	// returns the moved-to value plus the (now moved-from) source.
	MoveConstruct func(source T) (movedTo, movedFrom T)

	// Swap, when set, exchanges the values of two T, e.g. via the
	// standard library's generic helper or a user-defined method.
	Swap func(a, b *T)
}

// OrderSpec supplies four independently-implemented comparators. The
// ordering law cross-validates them against each other and against the
// expected direction (x < y) rather than deriving any one of them from
// another — a caller whose <= is secretly "< or ==" would otherwise make
// the law tautological.
type OrderSpec[T any] struct {
	Less           func(a, b T) bool
	LessOrEqual    func(a, b T) bool
	Greater        func(a, b T) bool
	GreaterOrEqual func(a, b T) bool
}

// CheckRegular verifies every law that Options populates, plus the
// always-applicable equality laws on (x, y) and the copy law.
// description is the enclosing check's description; law names are
// appended as nested check descriptions.
func CheckRegular[T any](description string, logger *checklog.Logger, instances Instances[T], copyOf func(T) T, opts Options[T]) bool {
	sentinel := logger.Enter(description)
	defer sentinel.Close()

	pass := true
	pass = checkEquality(description, logger, instances, opts) && pass
	if opts.Order != nil {
		pass = checkOrdering(description, logger, instances, *opts.Order) && pass
	}
	pass = checkCopy(description, logger, instances, copyOf) && pass
	if opts.MoveConstruct != nil {
		pass = checkMove(description, logger, instances, opts) && pass
	}
	if opts.Swap != nil {
		pass = checkSwap(description, logger, instances, opts.Swap) && pass
	}
	if opts.Serialize != nil && opts.Deserialize != nil {
		pass = checkSerialization(description, logger, instances, opts.Serialize, opts.Deserialize) && pass
	}
	if opts.Mutate != nil {
		pass = checkMutation(description, logger, instances, opts.Mutate) && pass
	}
	return pass
}

func checkEquality[T any](description string, logger *checklog.Logger, instances Instances[T], opts Options[T]) bool {
	sub := logger.Enter(description + ".equality")
	defer sub.Close()

	pass := true
	pass = valuetester.CheckRelation(valuetester.RelEqual, "x == x", logger, instances.X, instances.X, func(a, b T) bool { return equalAny(a, b) }) && pass
	pass = valuetester.CheckRelation(valuetester.RelEqual, "y == y", logger, instances.Y, instances.Y, func(a, b T) bool { return equalAny(a, b) }) && pass
	pass = valuetester.CheckRelation(valuetester.RelEqual, "x != y", logger, instances.X, instances.Y, func(a, b T) bool { return !equalAny(a, b) }) && pass

	if opts.XEquivalent != nil {
		pass = valuetester.Check(checkkind.Equivalence, "x equivalent to xEquivalent", logger, instances.X, *opts.XEquivalent) && pass
	}
	if opts.YEquivalent != nil {
		pass = valuetester.Check(checkkind.Equivalence, "y equivalent to yEquivalent", logger, instances.Y, *opts.YEquivalent) && pass
	}
	return pass
}

// checkOrdering validates each of <, <=, >, >= against reflexivity, then
// cross-validates all four against each other and against the expected
// direction x < y, the way the original's check_ordering_consistency
// does: every operator is exercised independently rather than derived
// from another.
func checkOrdering[T any](description string, logger *checklog.Logger, instances Instances[T], order OrderSpec[T]) bool {
	sub := logger.Enter(description + ".ordering")
	defer sub.Close()

	x, y := instances.X, instances.Y
	pass := true

	for _, v := range []struct {
		name string
		val  T
	}{{"x", x}, {"y", y}} {
		pass = valuetester.CheckWith("operator< is irreflexive ("+v.name+")", description, logger, order.Less(v.val, v.val), false, func(a, b bool) bool { return a == b }) && pass
		pass = valuetester.CheckWith("operator<= is reflexive ("+v.name+")", description, logger, order.LessOrEqual(v.val, v.val), true, func(a, b bool) bool { return a == b }) && pass
		pass = valuetester.CheckWith("operator> is irreflexive ("+v.name+")", description, logger, order.Greater(v.val, v.val), false, func(a, b bool) bool { return a == b }) && pass
		pass = valuetester.CheckWith("operator>= is reflexive ("+v.name+")", description, logger, order.GreaterOrEqual(v.val, v.val), true, func(a, b bool) bool { return a == b }) && pass
	}

	pass = valuetester.CheckWith("x < y holds (expected ordering direction)", description, logger, order.Less(x, y), true, func(a, b bool) bool { return a == b }) && pass
	pass = valuetester.CheckWith("operator> and operator< are inconsistent", description, logger, order.Greater(y, x), true, func(a, b bool) bool { return a == b }) && pass
	pass = valuetester.CheckWith("operator< and operator<= are inconsistent", description, logger, order.LessOrEqual(x, y), true, func(a, b bool) bool { return a == b }) && pass
	pass = valuetester.CheckWith("operator< and operator>= are inconsistent", description, logger, order.GreaterOrEqual(y, x), true, func(a, b bool) bool { return a == b }) && pass
	return pass
}

func checkCopy[T any](description string, logger *checklog.Logger, instances Instances[T], copyOf func(T) T) bool {
	sub := logger.Enter(description + ".regularity")
	defer sub.Close()

	pass := true
	copyOfX := copyOf(instances.X)
	pass = valuetester.CheckRelation(valuetester.RelEqual, "copy construction equals source", logger, copyOfX, instances.X, func(a, b T) bool { return equalAny(a, b) }) && pass

	assigned := instances.X
	assigned = assignInPlace(assigned, instances.Y)
	pass = valuetester.CheckRelation(valuetester.RelEqual, "copy assignment yields source value", logger, assigned, instances.Y, func(a, b T) bool { return equalAny(a, b) }) && pass

	selfAssigned := instances.X
	selfAssigned = assignInPlace(selfAssigned, selfAssigned)
	pass = valuetester.CheckRelation(valuetester.RelEqual, "self-assignment preserves value", logger, selfAssigned, instances.X, func(a, b T) bool { return equalAny(a, b) }) && pass

	return pass
}

// assignInPlace models copy assignment for a value type: Go values are
// already copied on assignment, so "copy assignment" is simply replacing
// the destination's contents with a copy of the source's.
func assignInPlace[T any](dst, src T) T {
	return src
}

func checkMove[T any](description string, logger *checklog.Logger, instances Instances[T], opts Options[T]) bool {
	sub := logger.Enter(description + ".movable")
	defer sub.Close()

	movedTo, movedFrom := opts.MoveConstruct(instances.Y)
	pass := valuetester.CheckRelation(valuetester.RelEqual, "move construction equals source value", logger, movedTo, instances.Y, func(a, b T) bool { return equalAny(a, b) })

	if opts.MovedFromPredicate != nil {
		ok := opts.MovedFromPredicate(movedFrom)
		pass = valuetester.CheckWith("moved-from-state", description, logger, ok, true, func(a, b bool) bool { return a == b }) && pass
	}
	return pass
}

func checkSwap[T any](description string, logger *checklog.Logger, instances Instances[T], swap func(a, b *T)) bool {
	sub := logger.Enter(description + ".swappable")
	defer sub.Close()

	a, b := instances.X, instances.Y
	swap(&a, &b)
	pass := true
	pass = valuetester.CheckRelation(valuetester.RelEqual, "swap exchanges a", logger, a, instances.Y, func(p, q T) bool { return equalAny(p, q) }) && pass
	pass = valuetester.CheckRelation(valuetester.RelEqual, "swap exchanges b", logger, b, instances.X, func(p, q T) bool { return equalAny(p, q) }) && pass

	self := instances.X
	swap(&self, &self)
	pass = valuetester.CheckRelation(valuetester.RelEqual, "self-swap is a no-op", logger, self, instances.X, func(p, q T) bool { return equalAny(p, q) }) && pass
	return pass
}

func checkSerialization[T any](description string, logger *checklog.Logger, instances Instances[T], serialize func(T) string, deserialize func(string) (T, error)) bool {
	sub := logger.Enter(description + ".serializable")
	defer sub.Close()

	text := serialize(instances.X)
	u, err := deserialize(text)
	if err != nil {
		logger.Fail(fmt.Sprintf("deserialize(serialize(x)) failed: %v\n", err))
		return false
	}
	return valuetester.CheckRelation(valuetester.RelEqual, "round-trip law", logger, u, instances.X, func(a, b T) bool { return equalAny(a, b) })
}

func checkMutation[T any](description string, logger *checklog.Logger, instances Instances[T], mutate func(*T)) bool {
	sub := logger.Enter(description + ".mutation")
	defer sub.Close()

	v := instances.Y
	mutate(&v)
	return valuetester.CheckRelation(valuetester.RelEqual, "mutation changes value away from y", logger, v, instances.Y, func(a, b T) bool { return !equalAny(a, b) })
}

// equalAny is the equality relation every law in this package is checked
// against: a registered Equality tester if one exists, otherwise the
// native comparison, without the bookkeeping overhead of a full Check
// call (the caller already owns the enclosing Sentinel). Unlike Check,
// a registered tester is consulted even when the native comparison
// would report equal.
func equalAny[T any](a, b T) bool {
	return valuetester.NativeOrRegisteredEqual(a, b)
}
