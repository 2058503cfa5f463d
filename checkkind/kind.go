// Package checkkind defines the small, closed vocabulary of comparison
// kinds and test modes shared by every other package in this module.
package checkkind

// Kind selects which comparison strategy a check should prefer.
//
// Kind values form a priority chain: WeakEquivalence falls back to
// Equivalence, which falls back to Equality. WithBestAvailable instead
// probes strategies in descending strength and uses the strongest one
// available for the compared type.
type Kind int

const (
	// Equality compares via the type's native equality relation and/or a
	// registered ValueTester equality procedure.
	Equality Kind = iota
	// Equivalence compares via a simpler observable-state description.
	Equivalence
	// WeakEquivalence is Equivalence with some observable fields omitted.
	WeakEquivalence
	// WithBestAvailable selects the strongest strategy that applies.
	WithBestAvailable
)

// String renders the kind for diagnostics and test names.
func (k Kind) String() string {
	switch k {
	case Equality:
		return "equality"
	case Equivalence:
		return "equivalence"
	case WeakEquivalence:
		return "weak_equivalence"
	case WithBestAvailable:
		return "with_best_available"
	default:
		return "unknown_kind"
	}
}

// Fallback returns the next weaker-requirement kind to retry when no
// ValueTester procedure exists for k. ok is false when k has no fallback
// (Equality, and WithBestAvailable which is resolved by probing rather
// than falling back).
func (k Kind) Fallback() (next Kind, ok bool) {
	switch k {
	case WeakEquivalence:
		return Equivalence, true
	case Equivalence:
		return Equality, true
	default:
		return k, false
	}
}

// ProbeOrder is the descending-strength order WithBestAvailable walks:
// equality, then equivalence, then weak equivalence, with range
// traversal considered only after all three are exhausted.
func ProbeOrder() []Kind {
	return []Kind{Equality, Equivalence, WeakEquivalence}
}

// Mode tags a Test with its success-inversion semantics.
type Mode int

const (
	// ModeStandard is ordinary pass/fail semantics.
	ModeStandard Mode = iota
	// ModeFalsePositive expects every check to fail; an unexpected pass is
	// itself reported as a failure (used to test the framework's own
	// failure-detection paths).
	ModeFalsePositive
	// ModeFalseNegative expects every check to fail; an unexpected pass is
	// reported as a failure, while failing checks are recorded only as
	// diagnostics.
	ModeFalseNegative
)

// String renders the mode for diagnostics and diagnostic file suffixes.
func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeFalsePositive:
		return "false_positive"
	case ModeFalseNegative:
		return "false_negative"
	default:
		return "unknown_mode"
	}
}

// FileSuffix returns the diagnostic-file suffix for m, used to derive a
// per-test diagnostic file name ("<source_stem>_FN|FP|Output.txt").
func (m Mode) FileSuffix() string {
	switch m {
	case ModeFalsePositive:
		return "FP"
	case ModeFalseNegative:
		return "FN"
	default:
		return "Output"
	}
}
