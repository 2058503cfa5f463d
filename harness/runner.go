package harness

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/ojrosten/sequoia-sub007/checklog"
	"github.com/ojrosten/sequoia-sub007/internal/obslog"
	"golang.org/x/sync/errgroup"
)

// Runner holds a collection of families, a selection set, an output
// mode, a concurrency mode, a project-root path, and an output stream
// sink.
type Runner struct {
	Families    []*Family
	Selection   Selection
	OutputMode  OutputMode
	Concurrency ConcurrencyMode
	ProjectRoot string
	Out         io.Writer

	Log *obslog.Logger // operational logging; nil disables it
}

// Result is the outcome of one Runner.Execute call.
type Result struct {
	RunID    string
	Summary  checklog.Summary
	Warnings []string // unmatched selection entries
}

// validate enforces the invariant that concurrent execution is only
// permitted when neither the recovery file nor the dump file is active.
func (r *Runner) validate() error {
	if r.Concurrency != Serial && r.OutputMode.usesSideChannelFiles() {
		return ErrSideChannelConcurrent
	}
	return nil
}

// Execute runs the selected families at the Runner's concurrency mode,
// coalesces every family summary into a grand total, and prints it.
func (r *Runner) Execute() (Result, error) {
	if err := r.validate(); err != nil {
		if r.Log != nil {
			r.Log.FrameworkMisuse(err.Error())
		}
		return Result{}, err
	}

	runID := uuid.NewString()
	if r.Log != nil {
		r.Log.RunStarted(runID, len(r.Families))
	}

	exercised := make(map[string]bool)
	var selected []*Family
	for _, f := range r.Families {
		if r.Selection.matches(f, exercised) {
			selected = append(selected, f)
		}
	}
	warnings := warningsFor(r.Selection.unmatched(exercised))

	total := r.executeFamilies(selected)

	if r.Log != nil {
		r.Log.RunFinished(runID, total.Passed(), total.Checks, total.Failures)
	}
	if r.Out != nil {
		fmt.Fprintln(r.Out, RenderSummaryTable(runID, selected, total))
		for _, w := range warnings {
			fmt.Fprintln(r.Out, w)
		}
	}

	return Result{RunID: runID, Summary: total, Warnings: warnings}, nil
}

func warningsFor(unmatched []string) []string {
	out := make([]string, len(unmatched))
	for i, u := range unmatched {
		out[i] = fmt.Sprintf("warning: selection entry %q never matched a family or source", u)
	}
	return out
}

// executeFamilies dispatches families at the Runner's concurrency mode
// and coalesces their summaries into a grand total.
func (r *Runner) executeFamilies(families []*Family) checklog.Summary {
	totals := make([]checklog.Summary, len(families))

	if r.Concurrency.familiesParallel() {
		var g errgroup.Group
		for i, f := range families {
			i, f := i, f
			g.Go(func() error {
				totals[i] = r.collectFamily(f)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, f := range families {
			totals[i] = r.collectFamily(f)
		}
	}

	var grand checklog.Summary
	for _, t := range totals {
		grand = grand.Add(t)
	}
	return grand
}

func (r *Runner) collectFamily(f *Family) checklog.Summary {
	_, summaries := f.Execute(r.Concurrency, r.OutputMode)
	var total checklog.Summary
	for _, s := range summaries {
		total = total.Add(s)
	}
	return total
}
