package harness

import (
	"bytes"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ojrosten/sequoia-sub007/checkkind"
	"github.com/ojrosten/sequoia-sub007/checklog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passingTest(name string) *Test {
	return &Test{
		Name:   name,
		Source: name,
		Mode:   checkkind.ModeStandard,
		Body: func(l *checklog.Logger, _ Scheduler) {
			s := l.Enter("check")
			defer s.Close()
		},
	}
}

func failingTest(name string) *Test {
	return &Test{
		Name:   name,
		Source: name,
		Mode:   checkkind.ModeStandard,
		Body: func(l *checklog.Logger, _ Scheduler) {
			s := l.Enter("check")
			l.Fail("mismatch\n")
			s.Close()
		},
	}
}

func panickingTest(name string) *Test {
	return &Test{
		Name:   name,
		Source: name,
		Mode:   checkkind.ModeStandard,
		Body: func(l *checklog.Logger, _ Scheduler) {
			panic("boom")
		},
	}
}

func TestTestExecutePassing(t *testing.T) {
	summary := passingTest("t1").Execute(Serial, OutputMode{}, "")
	assert.True(t, summary.Passed())
}

func TestTestExecuteFailing(t *testing.T) {
	summary := failingTest("t2").Execute(Serial, OutputMode{}, "")
	assert.False(t, summary.Passed())
}

func TestTestExecuteRecoversPanic(t *testing.T) {
	summary := panickingTest("t3").Execute(Serial, OutputMode{}, "")
	assert.Equal(t, 1, summary.CriticalFailures)
	assert.Contains(t, summary.FailureText, "Unknown Exception")
}

func TestTestExecuteDeepSubmitsWorkToPool(t *testing.T) {
	test := &Test{
		Name:   "deep",
		Source: "deep",
		Mode:   checkkind.ModeStandard,
		Body: func(l *checklog.Logger, scheduler Scheduler) {
			s := l.Enter("main")
			defer s.Close()

			var done int32
			for i := 0; i < 3; i++ {
				scheduler.Submit(func(sub *checklog.Logger) {
					atomic.AddInt32(&done, 1)
					sub2 := sub.Enter("submitted")
					defer sub2.Close()
				})
			}
			_ = done
		},
	}

	summary := test.Execute(Deep, OutputMode{}, "")
	assert.True(t, summary.Passed())
	assert.Equal(t, 4, summary.TopLevelChecks) // 1 from the body + 3 submitted
}

func TestTestExecuteSubmitRunsInlineOutsideDeep(t *testing.T) {
	test := &Test{
		Name:   "inline",
		Source: "inline",
		Mode:   checkkind.ModeStandard,
		Body: func(l *checklog.Logger, scheduler Scheduler) {
			scheduler.Submit(func(sub *checklog.Logger) {
				s := sub.Enter("submitted")
				sub.Fail("broke\n")
				s.Close()
			})
		},
	}

	summary := test.Execute(Serial, OutputMode{}, "")
	assert.False(t, summary.Passed())
	assert.Equal(t, 1, summary.TopLevelChecks)
}

func TestTestExecutePerformanceBudgetExceededFails(t *testing.T) {
	test := &Test{
		Name:              "slow",
		Source:            "slow",
		Mode:              checkkind.ModeStandard,
		PerformanceBudget: time.Millisecond,
		Body: func(l *checklog.Logger, _ Scheduler) {
			time.Sleep(5 * time.Millisecond)
		},
	}

	summary := test.Execute(Serial, OutputMode{}, "")
	assert.False(t, summary.Passed())
	assert.Equal(t, 1, summary.PerformanceChecks)
	assert.Equal(t, 1, summary.PerformanceFailures)
	assert.Contains(t, summary.FailureText, "budget was 1ms")
}

func TestTestExecutePerformanceBudgetMetPasses(t *testing.T) {
	test := &Test{
		Name:              "fast",
		Source:            "fast",
		Mode:              checkkind.ModeStandard,
		PerformanceBudget: time.Second,
		Body: func(l *checklog.Logger, _ Scheduler) {
			s := l.Enter("check")
			defer s.Close()
		},
	}

	summary := test.Execute(Serial, OutputMode{}, "")
	assert.True(t, summary.Passed())
	assert.Equal(t, 1, summary.PerformanceChecks)
	assert.Equal(t, 0, summary.PerformanceFailures)
}

func TestFamilyExecuteSerialCoalescesSummaries(t *testing.T) {
	f := &Family{
		Name:  "fam",
		Tests: []*Test{passingTest("a"), failingTest("b")},
	}
	_, summaries := f.Execute(Serial, OutputMode{})
	require.Len(t, summaries, 2)
	assert.True(t, summaries[0].Passed())
	assert.False(t, summaries[1].Passed())
}

func TestFamilyExecuteParallelCoalescesSummaries(t *testing.T) {
	f := &Family{
		Name:  "fam",
		Tests: []*Test{passingTest("a"), passingTest("b"), failingTest("c")},
	}
	_, summaries := f.Execute(Test, OutputMode{})
	require.Len(t, summaries, 3)
	failures := 0
	for _, s := range summaries {
		if !s.Passed() {
			failures++
		}
	}
	assert.Equal(t, 1, failures)
}

func TestFamilyWritesDiagnosticsAndSummaryFiles(t *testing.T) {
	dir := t.TempDir()
	f := &Family{Name: "fam", Tests: []*Test{failingTest("bad")}}
	outputMode := OutputMode{WriteFiles: true, OutputDir: dir}
	f.Execute(Serial, outputMode)

	diag := filepath.Join(dir, "DiagnosticsOutput", "fam", "bad_Output.txt")
	_, err := os.Stat(diag)
	assert.NoError(t, err)

	summary := filepath.Join(dir, "TestSummaries", "fam", "bad.txt")
	_, err = os.Stat(summary)
	assert.NoError(t, err)
}

func TestRunnerExecuteCoalescesAcrossFamilies(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{
		Families: []*Family{
			{Name: "f1", Tests: []*Test{passingTest("a")}},
			{Name: "f2", Tests: []*Test{failingTest("b")}},
		},
		Out: &out,
	}
	result, err := r.Execute()
	require.NoError(t, err)
	assert.False(t, result.Summary.Passed())
	assert.NotEmpty(t, result.RunID)
	assert.Contains(t, out.String(), result.RunID)
}

func TestRunnerRejectsConcurrentSideChannelFiles(t *testing.T) {
	r := &Runner{
		Concurrency: Family,
		OutputMode:  OutputMode{Recovery: true},
	}
	_, err := r.Execute()
	assert.ErrorIs(t, err, ErrSideChannelConcurrent)
}

func TestRunnerSelectionWarnsOnUnmatched(t *testing.T) {
	var out bytes.Buffer
	r := &Runner{
		Families:  []*Family{{Name: "f1", Tests: []*Test{passingTest("a")}}},
		Selection: Selection{Families: []string{"nonexistent"}},
		Out:       &out,
	}
	result, err := r.Execute()
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "nonexistent")
}

func TestParseConcurrencyMode(t *testing.T) {
	m, err := ParseConcurrencyMode("deep")
	require.NoError(t, err)
	assert.Equal(t, Deep, m)

	_, err = ParseConcurrencyMode("bogus")
	assert.Error(t, err)
}

func TestLoadRunnerConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("families: [fam1]\nconcurrency: test\nrecovery: false\n"), 0o644))

	cfg, err := LoadRunnerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"fam1"}, cfg.Families)
	assert.Equal(t, "test", cfg.Concurrency)
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	registryMu.Lock()
	saved := registry
	registry = nil
	registryMu.Unlock()
	defer func() {
		registryMu.Lock()
		registry = saved
		registryMu.Unlock()
	}()

	Register(&Family{Name: "dup"})
	assert.PanicsWithError(t, "harness: duplicate selection entry: family \"dup\"", func() {
		Register(&Family{Name: "dup"})
	})
	assert.Len(t, Registered(), 1)
}

func TestUpdateMaterialsOverwritesFailingTestOnly(t *testing.T) {
	materialsRoot := t.TempDir()
	workingRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(materialsRoot, "case"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(materialsRoot, "case", "data.txt"), []byte("old"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(workingRoot, "case"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(workingRoot, "case", "data.txt"), []byte("new"), 0o644))

	f := &Family{
		Name:          "fam",
		MaterialsRoot: materialsRoot,
		WorkingRoot:   workingRoot,
		Tests:         []*Test{{Name: "t", Source: "t", Materials: "case", Body: func(l *checklog.Logger, _ Scheduler) {}}},
	}
	f.updateMaterials(f.Tests[0], checklog.Summary{TopLevelFailures: 1}, false)

	data, err := os.ReadFile(filepath.Join(materialsRoot, "case", "data.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}
