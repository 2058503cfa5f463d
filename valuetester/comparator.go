package valuetester

import (
	"fmt"

	"github.com/ojrosten/sequoia-sub007/checklog"
	"github.com/ojrosten/sequoia-sub007/output"
	"golang.org/x/exp/constraints"
)

// Relation names a built-in comparator report shape: ==, <, <=, >, >=.
// within_tolerance(tol) is reported separately, by CheckWithinTolerance.
type Relation int

const (
	RelEqual Relation = iota
	RelLess
	RelLessOrEqual
	RelGreater
	RelGreaterOrEqual
)

func (r Relation) symbol() string {
	switch r {
	case RelEqual:
		return "=="
	case RelLess:
		return "<"
	case RelLessOrEqual:
		return "<="
	case RelGreater:
		return ">"
	case RelGreaterOrEqual:
		return ">="
	default:
		return "?"
	}
}

// CheckRelation evaluates a user-supplied comparator functor directly,
// formatting the failure with the built-in reporter for rel.
func CheckRelation[T any](rel Relation, description string, logger *checklog.Logger, obtained, predicted T, cmp func(a, b T) bool) bool {
	sentinel := logger.Enter(description)
	defer sentinel.Close()

	if cmp(obtained, predicted) {
		return true
	}
	logger.Fail(fmt.Sprintf(
		"expected obtained %s predicted, but it was not\n  obtained:  %s\n  predicted: %s\n",
		rel.symbol(), output.Render(obtained), output.Render(predicted),
	))
	return false
}

// CheckOrdered evaluates the natural order of an Ordered T against rel,
// without requiring the caller to write out the comparator.
func CheckOrdered[T constraints.Ordered](rel Relation, description string, logger *checklog.Logger, obtained, predicted T) bool {
	var cmp func(a, b T) bool
	switch rel {
	case RelLess:
		cmp = func(a, b T) bool { return a < b }
	case RelLessOrEqual:
		cmp = func(a, b T) bool { return a <= b }
	case RelGreater:
		cmp = func(a, b T) bool { return a > b }
	case RelGreaterOrEqual:
		cmp = func(a, b T) bool { return a >= b }
	default:
		cmp = func(a, b T) bool { return a == b }
	}
	return CheckRelation(rel, description, logger, obtained, predicted, cmp)
}

// CheckWithinTolerance implements the within_tolerance(tol) comparator.
func CheckWithinTolerance[T constraints.Float](description string, logger *checklog.Logger, obtained, predicted, tol T) bool {
	sentinel := logger.Enter(description)
	defer sentinel.Close()

	diff := obtained - predicted
	if diff < 0 {
		diff = -diff
	}
	if diff <= tol {
		return true
	}
	logger.Fail(fmt.Sprintf(
		"values differ by more than tolerance %v\n  obtained:  %v\n  predicted: %v\n  delta:     %v\n",
		tol, obtained, predicted, diff,
	))
	return false
}

// CheckWith evaluates an arbitrary named comparator functor, for
// comparator shapes the built-in Relation set doesn't cover.
func CheckWith[T any](name, description string, logger *checklog.Logger, obtained, predicted T, cmp func(a, b T) bool) bool {
	sentinel := logger.Enter(description)
	defer sentinel.Close()

	if cmp(obtained, predicted) {
		return true
	}
	logger.Fail(fmt.Sprintf(
		"custom comparator %q reported a mismatch\n  obtained:  %s\n  predicted: %s\n",
		name, output.Render(obtained), output.Render(predicted),
	))
	return false
}
