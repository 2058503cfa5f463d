package checklog

import (
	"errors"
	"testing"

	"github.com/ojrosten/sequoia-sub007/checkkind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelReverseOrderAndDepthInvariant(t *testing.T) {
	l := New(checkkind.ModeStandard, "", "")
	require.Equal(t, 0, l.Depth())

	outer := l.Enter("outer")
	assert.Equal(t, 1, l.Depth())
	inner := l.Enter("inner")
	assert.Equal(t, 2, l.Depth())
	inner.Close()
	assert.Equal(t, 1, l.Depth())
	outer.Close()
	assert.Equal(t, 0, l.Depth())
}

func TestNestedChecksCounting(t *testing.T) {
	// Scenario 3: outer contains inner-a, inner-b; inner-b fails.
	l := New(checkkind.ModeStandard, "", "")
	outer := l.Enter("outer")
	innerA := l.Enter("inner-a")
	innerA.Close()
	innerB := l.Enter("inner-b")
	l.Fail("inner-b mismatch")
	innerB.Close()
	outer.Close()

	sum := l.Summarize(0)
	assert.Equal(t, 1, sum.TopLevelFailures)
	assert.Equal(t, 3, sum.Checks, "deep_checks == total sentinels constructed")
	assert.Equal(t, 1, sum.TopLevelChecks)
	assert.Contains(t, sum.FailureText, "outer")
	assert.Contains(t, sum.FailureText, "inner-b")
}

func TestFalsePositiveInversionOnPass(t *testing.T) {
	// Scenario 4: check(equality, "d", logger, 1, 1) under false_positive.
	l := New(checkkind.ModeFalsePositive, "", "")
	s := l.Enter("d")
	// no Fail call: the check passed.
	s.Close()

	sum := l.Summarize(0)
	assert.Equal(t, 1, sum.TopLevelFailures)
	assert.Contains(t, sum.FailureText, "False Positive Failure")
}

func TestFalsePositiveActualFailureIsQuiet(t *testing.T) {
	l := New(checkkind.ModeFalsePositive, "", "")
	s := l.Enter("d")
	l.Fail("mismatch")
	s.Close()

	sum := l.Summarize(0)
	assert.Equal(t, 0, sum.TopLevelFailures)
	assert.Empty(t, sum.FailureText)
	assert.Contains(t, sum.DiagnosticsText, "mismatch")
}

func TestFalseNegativeInversionOnPass(t *testing.T) {
	l := New(checkkind.ModeFalseNegative, "", "")
	s := l.Enter("d")
	s.Close()

	sum := l.Summarize(0)
	assert.Equal(t, 1, sum.TopLevelFailures)
	assert.Contains(t, sum.FailureText, "False Negative Failure")
}

func TestCriticalFailureAlwaysRoutedToFailureMessages(t *testing.T) {
	l := New(checkkind.ModeFalsePositive, "", "")
	func() {
		defer func() { _ = recover() }() // Close re-panics after recording
		s := l.Enter("boom")
		defer s.Close()
		panic("kaboom")
	}()

	sum := l.Summarize(0)
	assert.Equal(t, 1, sum.CriticalFailures)
	assert.Equal(t, 1, sum.TopLevelFailures)
	assert.Contains(t, sum.FailureText, "boom")
	assert.Contains(t, sum.FailureText, "kaboom")
	assert.Contains(t, sum.CriticalAdvice, "kaboom")
	assert.Contains(t, sum.CriticalAdvice, "framework-level defect")
}

func TestCriticalAdviceDistinguishesErrorFromArbitraryPanic(t *testing.T) {
	l := New(checkkind.ModeStandard, "", "")
	func() {
		defer func() { _ = recover() }() // Close re-panics after recording
		s := l.Enter("boom")
		defer s.Close()
		panic(errors.New("nil pointer"))
	}()

	sum := l.Summarize(0)
	assert.Contains(t, sum.CriticalAdvice, "recovered error")
	assert.Contains(t, sum.CriticalAdvice, "nil pointer")
}

func TestCriticalAdviceKeepsFirstOnRepeatedFailures(t *testing.T) {
	l := New(checkkind.ModeStandard, "", "")
	func() {
		defer func() { _ = recover() }() // Close re-panics after recording
		s := l.Enter("first")
		defer s.Close()
		panic("first panic")
	}()
	l.LogUnexpectedException(false, "second panic")

	sum := l.Summarize(0)
	assert.Contains(t, sum.CriticalAdvice, "first panic")
	assert.NotContains(t, sum.CriticalAdvice, "second panic")
}

func TestLogUnexpectedExceptionSetsCriticalAdvice(t *testing.T) {
	l := New(checkkind.ModeStandard, "", "")
	l.LogUnexpectedException(true, "boom: disk full")

	sum := l.Summarize(0)
	assert.Contains(t, sum.CriticalAdvice, "recovered error")
	assert.Contains(t, sum.CriticalAdvice, "disk full")
}

func TestSummaryAddConcatenatesCriticalAdvice(t *testing.T) {
	a := Summary{CriticalAdvice: "first"}
	b := Summary{CriticalAdvice: "second"}
	assert.Equal(t, "firstsecond", a.Add(b).CriticalAdvice)
	assert.Equal(t, "first", a.Add(Summary{}).CriticalAdvice)
}

func TestEnterPerformanceCountsSeparatelyFromOrdinaryChecks(t *testing.T) {
	l := New(checkkind.ModeStandard, "", "")
	ordinary := l.Enter("ordinary")
	ordinary.Close()

	perf := l.EnterPerformance("budget: encode under 1ms")
	l.Fail("took 3ms, budget was 1ms")
	perf.Close()

	sum := l.Summarize(0)
	assert.Equal(t, 1, sum.PerformanceChecks)
	assert.Equal(t, 1, sum.PerformanceFailures)
	assert.Equal(t, 2, sum.TopLevelChecks)
	assert.Equal(t, 1, sum.Failures, "only the performance check failed")
	assert.Equal(t, 1, sum.TopLevelFailures, "the failing performance check is the only top-level failure")
}

func TestPanicPropagatesToCaller(t *testing.T) {
	l := New(checkkind.ModeStandard, "", "")
	assert.PanicsWithValue(t, "boom", func() {
		s := l.Enter("x")
		defer s.Close()
		panic("boom")
	})
}

func TestSummaryMonoid(t *testing.T) {
	a := Summary{Checks: 1, TopLevelChecks: 1}
	b := Summary{Checks: 2, Failures: 1}
	c := Summary{Checks: 3, CriticalFailures: 1}

	left := a.Add(b).Add(c)
	right := a.Add(b.Add(c))
	assert.Equal(t, left, right)

	assert.Equal(t, a, a.Add(Summary{}))
}

func TestFailuresLessThanOrEqualChecks(t *testing.T) {
	l := New(checkkind.ModeStandard, "", "")
	outer := l.Enter("outer")
	inner := l.Enter("inner")
	l.Fail("bad")
	inner.Close()
	outer.Close()

	sum := l.Summarize(0)
	assert.LessOrEqual(t, sum.Failures, sum.Checks)
	assert.LessOrEqual(t, sum.TopLevelFailures, sum.TopLevelChecks)
}
