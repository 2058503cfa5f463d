package checklog

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ojrosten/sequoia-sub007/checkkind"
)

// Logger is process-local, per-test state. It is mutated only through
// Sentinels and owned by exactly one Test.
type Logger struct {
	mu   sync.Mutex
	mode checkkind.Mode

	checks              int
	topLevelChecks      int
	failures            int
	topLevelFailures    int
	performanceChecks   int
	performanceFailures int
	criticalFailures    int

	stack          []*record
	nextTopLevel   int
	failureMsgs    strings.Builder
	diagnostics    strings.Builder
	caughtExcepts  strings.Builder
	criticalAdvice string

	recoveryPath string
	dumpPath     string
}

// New constructs a Logger for a Test running under mode. recoveryPath and
// dumpPath may be empty to disable the corresponding side-channel file.
func New(mode checkkind.Mode, recoveryPath, dumpPath string) *Logger {
	return &Logger{mode: mode, recoveryPath: recoveryPath, dumpPath: dumpPath}
}

// Mode reports the Test's inversion semantics.
func (l *Logger) Mode() checkkind.Mode { return l.mode }

// Depth reports the current sentinel nesting depth: after the outermost
// sentinel closes, it equals the depth before that sentinel was opened.
func (l *Logger) Depth() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.stack)
}

// Enter opens a new check scope. The caller must invoke the returned
// Sentinel's Close via defer, in strict LIFO order.
func (l *Logger) Enter(description string) *Sentinel {
	return l.enter(description, false)
}

// EnterPerformance opens a performance-check scope. It is counted like
// any other check, and additionally increments the performance counters.
func (l *Logger) EnterPerformance(description string) *Sentinel {
	return l.enter(description, true)
}

func (l *Logger) enter(description string, performance bool) *Sentinel {
	l.mu.Lock()
	defer l.mu.Unlock()

	topLevel := len(l.stack) == 0
	rec := &record{description: description, depth: len(l.stack) + 1}
	if topLevel {
		rec.topLevelIndex = l.nextTopLevel
		l.nextTopLevel++
		l.topLevelChecks++
		l.writeRecovery(description)
	}
	l.writeDump(description)
	l.checks++
	l.stack = append(l.stack, rec)

	return &Sentinel{logger: l, rec: rec, performance: performance}
}

// Fail records a non-critical failure against the innermost open check.
func (l *Logger) Fail(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.stack) == 0 {
		// Defensive: a misused check outside any sentinel scope. Record it
		// against a synthetic top-level record rather than panicking, since
		// this indicates a framework bug, not a user precondition violation.
		l.stack = append(l.stack, &record{description: "<unscoped check>", depth: 1})
		l.topLevelChecks++
	}
	top := l.stack[len(l.stack)-1]
	top.failureText.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		top.failureText.WriteByte('\n')
	}
}

func (l *Logger) writeRecovery(description string) {
	if l.recoveryPath == "" {
		return
	}
	_ = os.WriteFile(l.recoveryPath, []byte("check started: "+description+"\n"), 0o644)
}

func (l *Logger) clearRecovery() {
	if l.recoveryPath == "" {
		return
	}
	_ = os.WriteFile(l.recoveryPath, nil, 0o644)
}

func (l *Logger) writeDump(description string) {
	if l.dumpPath == "" {
		return
	}
	f, err := os.OpenFile(l.dumpPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintln(f, description)
}

// LogUnexpectedException records a critical failure that escaped a Test's
// run method entirely, as opposed to one observed unwinding through a
// Sentinel. typed distinguishes a recovered Go error/value (description
// "Unexpected Exception") from an unrecoverable non-error panic value
// (description "Unknown Exception").
func (l *Logger) LogUnexpectedException(typed bool, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	desc := "Unknown Exception"
	if typed {
		desc = "Unexpected Exception"
	}
	l.criticalFailures++
	l.failures++
	l.topLevelFailures++
	l.failureMsgs.WriteString(desc)
	l.failureMsgs.WriteByte('\n')
	l.failureMsgs.WriteString("  ")
	l.failureMsgs.WriteString(text)
	l.failureMsgs.WriteByte('\n')
	l.recordAdviceLocked(typed, text)
	l.clearRecovery()
}

// recordAdviceLocked sets the first critical failure's short advice,
// distinguishing a recovered error (likely a precondition violation the
// body should have guarded against) from an arbitrary recovered value
// (a framework-level defect: panics that aren't errors rarely carry
// actionable context). l.mu must already be held. Later critical
// failures within the same Logger don't overwrite the first advice.
func (l *Logger) recordAdviceLocked(typed bool, text string) {
	if l.criticalAdvice != "" {
		return
	}
	if typed {
		l.criticalAdvice = "recovered error: " + text + " — check preconditions and nil-handling near the panic site"
	} else {
		l.criticalAdvice = "recovered non-error panic value: " + text + " — treat as a framework-level defect needing investigation"
	}
}
