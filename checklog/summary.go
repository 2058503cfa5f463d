package checklog

import "time"

// Summary is the immutable outcome of one test. Summary is a monoid
// under Add: (a.Add(b)).Add(c) == a.Add(b.Add(c)) and a.Add(Summary{})
// == a.
type Summary struct {
	Checks              int
	TopLevelChecks      int
	Failures            int
	TopLevelFailures    int
	PerformanceChecks   int
	PerformanceFailures int
	CriticalFailures    int

	Duration time.Duration

	FailureText      string
	DiagnosticsText  string
	CaughtExceptions string
	// CriticalAdvice captures the short human-readable explanation attached
	// to uncaught-exception records, distinct from the raw exception text.
	CriticalAdvice string
}

// Summarize exports a Summary from the Logger's current state. It is the
// only way to observe the Logger's counters and text buffers from outside
// the package.
func (l *Logger) Summarize(duration time.Duration) Summary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Summary{
		Checks:              l.checks,
		TopLevelChecks:      l.topLevelChecks,
		Failures:            l.failures,
		TopLevelFailures:    l.topLevelFailures,
		PerformanceChecks:   l.performanceChecks,
		PerformanceFailures: l.performanceFailures,
		CriticalFailures:    l.criticalFailures,
		Duration:            duration,
		FailureText:         l.failureMsgs.String(),
		DiagnosticsText:     l.diagnostics.String(),
		CaughtExceptions:    l.caughtExcepts.String(),
		CriticalAdvice:      l.criticalAdvice,
	}
}

// Add combines two summaries component-wise, the aggregation step used
// to roll per-test summaries up into family and run totals.
func (a Summary) Add(b Summary) Summary {
	return Summary{
		Checks:              a.Checks + b.Checks,
		TopLevelChecks:      a.TopLevelChecks + b.TopLevelChecks,
		Failures:            a.Failures + b.Failures,
		TopLevelFailures:    a.TopLevelFailures + b.TopLevelFailures,
		PerformanceChecks:   a.PerformanceChecks + b.PerformanceChecks,
		PerformanceFailures: a.PerformanceFailures + b.PerformanceFailures,
		CriticalFailures:    a.CriticalFailures + b.CriticalFailures,
		Duration:            a.Duration + b.Duration,
		FailureText:         concat(a.FailureText, b.FailureText),
		DiagnosticsText:     concat(a.DiagnosticsText, b.DiagnosticsText),
		CaughtExceptions:    concat(a.CaughtExceptions, b.CaughtExceptions),
		CriticalAdvice:      concat(a.CriticalAdvice, b.CriticalAdvice),
	}
}

func concat(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + b
	}
}

// Passed reports whether the test this summary describes recorded no
// top-level failures and no critical failures.
func (s Summary) Passed() bool {
	return s.TopLevelFailures == 0 && s.CriticalFailures == 0
}
