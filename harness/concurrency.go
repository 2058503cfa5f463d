// Package harness implements test execution: a Test drives checks
// through a Logger and returns a Summary; a Family groups Tests sharing
// materials; a Runner holds a collection of Families and executes them
// at one of four concurrency levels, coalescing their summaries.
package harness

// ConcurrencyMode selects how much of the family/test/deep hierarchy
// runs in parallel.
type ConcurrencyMode int

const (
	// Serial runs every family, and every test within it, one at a time.
	Serial ConcurrencyMode = iota
	// Family runs families in parallel; tests within each family run
	// serially.
	Family
	// Test runs families in parallel, and tests within each family in
	// parallel.
	Test
	// Deep is Test, plus a test body may itself submit work to the pool.
	Deep
)

func (c ConcurrencyMode) String() string {
	switch c {
	case Serial:
		return "serial"
	case Family:
		return "family"
	case Test:
		return "test"
	case Deep:
		return "deep"
	default:
		return "unknown"
	}
}

// familiesParallel reports whether families run concurrently under c.
func (c ConcurrencyMode) familiesParallel() bool { return c >= Family }

// testsParallel reports whether tests within a family run concurrently
// under c.
func (c ConcurrencyMode) testsParallel() bool { return c >= Test }

// OutputMode configures side-effects of a run: whether diagnostic files
// are written, whether per-test detail is printed, and the two
// fault-localization side-channel files.
type OutputMode struct {
	WriteFiles bool
	Verbose    bool
	Recovery   bool
	Dump       bool
	OutputDir  string

	// UpdateMaterials, when set, copies each failing test's working-copy
	// materials back over its predictive materials once the family has
	// run; the tests' summaries are left unchanged. UpdateMaterialsHard
	// extends this to tests that passed, not just failing ones.
	UpdateMaterials     bool
	UpdateMaterialsHard bool
}

// usesSideChannelFiles reports whether either the recovery or dump file
// is active, the condition under which concurrent execution is
// disallowed (they require a process-wide single-writer invariant).
func (o OutputMode) usesSideChannelFiles() bool {
	return o.Recovery || o.Dump
}
