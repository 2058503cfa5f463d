package valuetester

import (
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/ojrosten/sequoia-sub007/checkkind"
	"github.com/ojrosten/sequoia-sub007/checklog"
	"github.com/ojrosten/sequoia-sub007/output"
)

// config carries the optional per-call behavior Check allows: an advisor
// that augments the failure message, and (reserved for future
// specializations) serializer overrides.
type config struct {
	advisor func(obtained, predicted any) string
}

// Option configures a single Check call.
type Option func(*config)

// WithAdvisor attaches an advisor to a check: an optional formatter that
// augments failure messages with domain-specific advice.
func WithAdvisor(fn func(obtained, predicted any) string) Option {
	return func(c *config) { c.advisor = fn }
}

func buildConfig(opts []Option) config {
	var c config
	for _, o := range opts {
		o(&c)
	}
	return c
}

// isRangeable reports whether t is a finite, forward-traversable range: a
// slice or array. Maps are excluded since lockstep element iteration has
// no defined order for them.
func isRangeable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

// nativelyComparable reports whether the structural comparison of
// nativeEqual is a meaningful stand-in for T's native `==` operator, the
// short-circuit equality checks are allowed to take. This module treats
// that comparison as the native operator, since Go generics have no
// compile-time "is equality comparable" trait without narrowing T to
// `comparable`, which would exclude maps and structs containing slices.
// Slices are not natively comparable: they go through element-wise range
// traversal unless a tester is registered for them.
func nativelyComparable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Func, reflect.Chan, reflect.Slice:
		return false
	default:
		return true
	}
}

// checkValue is the reflection-driven core of Check: it owns the
// Sentinel for description, resolves a comparison strategy per the
// selection rules below, and recurses into range elements (each a
// nested Sentinel) when no direct strategy applies.
func checkValue(kind checkkind.Kind, description string, logger *checklog.Logger, obtained, predicted reflect.Value, cfg config) bool {
	sentinel := logger.Enter(description)
	defer sentinel.Close()

	pass, resolvedKind, strategy, resolved := resolveAndCompare(kind, obtained, predicted)
	if resolved {
		if !pass {
			logger.Fail(failureText(resolvedKind, strategy, obtained, predicted, cfg))
		}
		return pass
	}

	if isRangeable(obtained.Type()) {
		return checkRangeValue(kind, logger, obtained, predicted, cfg)
	}

	panic(fmt.Sprintf(
		"valuetester: no comparison strategy available for %s under kind %q",
		output.TypeNameOf(obtained.Type()), kind,
	))
}

// resolveAndCompare tries, in priority order, a native comparison and a
// registered tester (falling back through weaker kinds when the
// requested kind has none of its own), returning the boolean comparison
// result and which (kind, strategy) produced it. resolved is false when
// nothing applied — the caller then tries range traversal before
// conceding with a panic.
func resolveAndCompare(kind checkkind.Kind, obtained, predicted reflect.Value) (pass bool, resolvedKind checkkind.Kind, strategy string, resolved bool) {
	typ := obtained.Type()

	if kind == checkkind.WithBestAvailable {
		for _, k := range checkkind.ProbeOrder() {
			if k == checkkind.Equality && nativelyComparable(typ) {
				if fn, ok := lookup(typ, checkkind.Equality); ok {
					return invoke(fn, obtained, predicted), checkkind.Equality, "tester", true
				}
				return nativeEqual(obtained, predicted), checkkind.Equality, "native", true
			}
			if fn, ok := lookup(typ, k); ok {
				return invoke(fn, obtained, predicted), k, "tester", true
			}
		}
		return false, kind, "", false
	}

	cur := kind
	for {
		if cur == checkkind.Equality && nativelyComparable(typ) {
			if eq := nativeEqual(obtained, predicted); eq {
				return true, cur, "native", true
			}
			// Native comparison disagreed (or can't fully resolve); give
			// a registered tester the chance to override/augment before
			// reporting the native result as final.
			if fn, ok := lookup(typ, cur); ok {
				return invoke(fn, obtained, predicted), cur, "tester", true
			}
			return false, cur, "native", true
		}
		if fn, ok := lookup(typ, cur); ok {
			return invoke(fn, obtained, predicted), cur, "tester", true
		}
		next, ok := cur.Fallback()
		if !ok {
			return false, kind, "", false
		}
		cur = next
	}
}

// nativeEqual compares a and b structurally, via cmp.Equal with an
// exporter that allows unexported fields (matching reflect.DeepEqual's
// permissiveness there). cmp panics on a handful of shapes DeepEqual
// tolerates (e.g. certain cyclic or incomparable cases); on panic this
// falls back to reflect.DeepEqual rather than propagating the panic
// into a check.
func nativeEqual(a, b reflect.Value) (equal bool) {
	defer func() {
		if r := recover(); r != nil {
			equal = reflect.DeepEqual(a.Interface(), b.Interface())
		}
	}()
	return cmp.Equal(a.Interface(), b.Interface(), cmp.Exporter(func(reflect.Type) bool { return true }))
}

// NativeOrRegisteredEqual reports equality of a and b, preferring a
// registered Equality Tester over the native nativeEqual fallback,
// without emitting any check or owning a Sentinel. It is the comparison
// primitive the semantics package builds its laws on top of.
func NativeOrRegisteredEqual[T any](a, b T) bool {
	av, bv := elemOf(a), elemOf(b)
	typ := av.Type()
	if fn, ok := lookup(typ, checkkind.Equality); ok {
		return invoke(fn, av, bv)
	}
	return nativeEqual(av, bv)
}

func failureText(kind checkkind.Kind, strategy string, obtained, predicted reflect.Value, cfg config) string {
	msg := fmt.Sprintf(
		"%s mismatch (%s)\n  obtained:  %s\n  predicted: %s\n",
		kind, strategy, output.RenderAny(obtained.Interface()), output.RenderAny(predicted.Interface()),
	)
	if s, ok := tryStringDiff(obtained, predicted); ok {
		msg += s
	}
	if cfg.advisor != nil {
		msg += "advice: " + cfg.advisor(obtained.Interface(), predicted.Interface()) + "\n"
	}
	return msg
}

func tryStringDiff(obtained, predicted reflect.Value) (string, bool) {
	if obtained.Kind() != reflect.String {
		return "", false
	}
	return output.StringDiff(obtained.String(), predicted.String()), true
}
