package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ojrosten/sequoia-sub007/checkkind"
	"github.com/ojrosten/sequoia-sub007/checklog"
)

// Test is a named unit with a single entry point, Execute, returning a
// checklog.Summary. It names its materials sub-tree; Execute creates
// the test's Logger and derives its output paths from the OutputMode.
type Test struct {
	// Name identifies the test within its Family.
	Name string
	// Source is the value the test author supplies at registration,
	// standing in for the originating source file.
	Source string
	// Mode selects the test's success-inversion semantics.
	Mode checkkind.Mode
	// Materials, if non-empty, names a predictive sub-tree that must be
	// copied under a per-test working directory before Body runs.
	Materials string
	// PerformanceBudget, if non-zero, wraps Body's execution in a
	// performance check that fails if Body takes longer than the budget,
	// counted separately from Body's own checks.
	PerformanceBudget time.Duration
	// Body drives checks through logger, optionally fanning work out
	// through scheduler. Its return value, if any, is ignored; a body
	// reports failures exclusively via logger.
	Body func(logger *checklog.Logger, scheduler Scheduler)
}

// Execute runs the test's Body, wrapping it in a recover so a panicking
// body becomes a critical failure rather than crashing the family. Under
// Deep concurrency, Body's Scheduler fans submitted work out through a
// pool joined before Execute returns, folding each submission's Summary
// into the Test's own; at every other mode, submissions run inline but
// are still isolated the same way.
func (t *Test) Execute(mode ConcurrencyMode, outputMode OutputMode, familyDir string) checklog.Summary {
	var recoveryPath, dumpPath string
	if outputMode.Recovery {
		recoveryPath = filepath.Join(outputMode.OutputDir, "Recovery", "Recovery.txt")
	}
	if outputMode.Dump {
		dumpPath = filepath.Join(outputMode.OutputDir, "Recovery", "Dump.txt")
	}

	logger := checklog.New(t.Mode, recoveryPath, dumpPath)
	start := time.Now()

	scheduler := newTaskScheduler(mode, t.Mode)

	runRecovered(logger, func(l *checklog.Logger) {
		if t.Body == nil {
			return
		}
		if t.PerformanceBudget <= 0 {
			t.Body(l, scheduler)
			return
		}
		budgetSentinel := l.EnterPerformance(fmt.Sprintf("%s: completes within %s", t.Name, t.PerformanceBudget))
		defer budgetSentinel.Close()
		bodyStart := time.Now()
		defer func() {
			if elapsed := time.Since(bodyStart); elapsed > t.PerformanceBudget {
				l.Fail(fmt.Sprintf("took %s, budget was %s\n", elapsed, t.PerformanceBudget))
			}
		}()
		t.Body(l, scheduler)
	})

	submitted := scheduler.wait()
	summary := logger.Summarize(time.Since(start)).Add(submitted)

	if outputMode.WriteFiles && familyDir != "" {
		t.writeDiagnostics(outputMode, familyDir, summary)
	}
	return summary
}

// runRecovered invokes body with logger, recovering a panic so it
// becomes a critical failure on logger rather than propagating past the
// call site. Shared by Test.Execute and taskScheduler.Submit, which both
// need the same panic-to-critical-failure translation.
func runRecovered(logger *checklog.Logger, body func(*checklog.Logger)) {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				logger.LogUnexpectedException(true, err.Error())
			} else {
				logger.LogUnexpectedException(false, fmt.Sprint(r))
			}
		}
	}()
	body(logger)
}

func (t *Test) writeDiagnostics(outputMode OutputMode, familyDir string, summary checklog.Summary) {
	if summary.FailureText == "" && summary.DiagnosticsText == "" {
		return
	}
	name := fmt.Sprintf("%s_%s.txt", t.Name, t.Mode.FileSuffix())
	path := filepath.Join(outputMode.OutputDir, "DiagnosticsOutput", familyDir, name)
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	content := summary.FailureText + summary.DiagnosticsText
	_ = os.WriteFile(path, []byte(content), 0o644)
}
