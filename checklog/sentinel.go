package checklog

import (
	"fmt"

	"github.com/ojrosten/sequoia-sub007/checkkind"
)

// Sentinel is a scoped guard created at the entry of every check. Go has
// no guaranteed-order destructors, so callers must `defer
// sentinel.Close()` immediately after Enter; the Logger's internal stack
// enforces the LIFO contract regardless of call-site discipline.
type Sentinel struct {
	logger      *Logger
	rec         *record
	performance bool
	closed      bool
}

// Close ends the check scope, performing the end-of-block bookkeeping
// and mode-specific inversion. It recovers a panicking check body long
// enough to record the critical failure and then re-panics, so any
// enclosing Sentinel (and ultimately the owning Test) observes the same
// propagating value — an observe-and-rethrow pattern standing in for a
// destructor that can inspect but not swallow an in-flight exception.
func (s *Sentinel) Close() {
	if s.closed {
		return
	}
	s.closed = true

	r := recover()

	l := s.logger
	l.mu.Lock()

	if len(l.stack) == 0 || l.stack[len(l.stack)-1] != s.rec {
		// Out-of-order Close: still safe to unlock and re-panic below, but
		// nothing further can be reconciled against the stack.
		if r != nil {
			_, typed := r.(error)
			l.recordAdviceLocked(typed, fmt.Sprint(r))
		}
		l.mu.Unlock()
		if r != nil {
			panic(r)
		}
		return
	}
	l.stack = l.stack[:len(l.stack)-1]

	if r != nil {
		s.rec.critical = true
		fmt.Fprintf(&s.rec.failureText, "critical failure: %v\n", r)
		_, typed := r.(error)
		l.recordAdviceLocked(typed, fmt.Sprint(r))
	}

	outermost := len(l.stack) == 0

	if s.performance {
		l.performanceChecks++
	}
	if s.rec.failureText.Len() > 0 {
		l.failures++
		if s.performance {
			l.performanceFailures++
		}
	}

	if !outermost {
		// Nested check: bubble this record's text into the parent's,
		// indented one level, in order of first write.
		if text := s.rec.indented(); text != "" {
			parent := l.stack[len(l.stack)-1]
			parent.failureText.WriteString(text)
		}
		l.mu.Unlock()
		if r != nil {
			panic(r)
		}
		return
	}

	// Outermost scope: apply mode inversion and finalize.
	if s.rec.critical {
		l.criticalFailures++
	}
	l.finalizeLocked(s.rec)
	l.clearRecovery()
	l.mu.Unlock()

	if r != nil {
		panic(r)
	}
}

// finalizeLocked applies the mode-inversion table to an outermost
// record. l.mu must already be held.
func (l *Logger) finalizeLocked(rec *record) {
	failed := rec.failureText.Len() > 0 || rec.critical

	if rec.critical {
		// Critical failures are always routed to failure_messages,
		// regardless of mode.
		l.topLevelFailures++
		l.failureMsgs.WriteString(rec.indented())
		return
	}

	switch l.mode {
	case checkkind.ModeStandard:
		if failed {
			l.topLevelFailures++
			l.failureMsgs.WriteString(rec.indented())
		}

	case checkkind.ModeFalsePositive:
		if !failed {
			l.topLevelFailures++
			fmt.Fprintf(&l.failureMsgs, "%s\nFalse Positive Failure: check passed but was expected to fail\n", rec.description)
		} else {
			l.diagnostics.WriteString(rec.indented())
		}

	case checkkind.ModeFalseNegative:
		if !failed {
			l.topLevelFailures++
			fmt.Fprintf(&l.failureMsgs, "%s\nFalse Negative Failure: check passed but was expected to fail\n", rec.description)
		} else {
			l.diagnostics.WriteString(rec.indented())
		}
	}
}
