package harness

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ojrosten/sequoia-sub007/checklog"
	"golang.org/x/sync/errgroup"
)

// Family is a named collection of Tests sharing materials/repository
// paths.
type Family struct {
	Name          string
	Tests         []*Test
	MaterialsRoot string // predictive sub-tree root, copied per test that declares Materials
	WorkingRoot   string // per-test working directories are created under here
}

// materialsCopied tracks which materials sub-trees have already been
// copied during one Execute call, so a path de-duplicator ensures each
// is copied at most once per family execution.
type materialsCopied struct {
	mu    sync.Mutex
	paths map[string]bool
}

func (m *materialsCopied) tryClaim(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.paths[path] {
		return false
	}
	m.paths[path] = true
	return true
}

// Execute runs every test in the family: materials setup, dispatch at
// the family's allotted concurrency, collection with per-test and
// per-family diagnostic-file writing, and summary coalescing.
func (f *Family) Execute(mode ConcurrencyMode, outputMode OutputMode) (time.Duration, []checklog.Summary) {
	start := time.Now()

	dedup := &materialsCopied{paths: make(map[string]bool)}
	for _, t := range f.Tests {
		f.setupMaterials(t, dedup)
	}

	summaries := make([]checklog.Summary, len(f.Tests))

	if mode.testsParallel() {
		var g errgroup.Group
		for i, t := range f.Tests {
			i, t := i, t
			g.Go(func() error {
				summaries[i] = t.Execute(mode, outputMode, f.Name)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, t := range f.Tests {
			summaries[i] = t.Execute(mode, outputMode, f.Name)
		}
	}

	for i, t := range f.Tests {
		f.writeSummaryFile(outputMode, t, summaries[i])
	}
	if outputMode.WriteFiles {
		f.appendFamilyDiagnostics(outputMode, summaries)
	}
	if outputMode.UpdateMaterials {
		for i, t := range f.Tests {
			f.updateMaterials(t, summaries[i], outputMode.UpdateMaterialsHard)
		}
	}

	return time.Since(start), summaries
}

// updateMaterials overwrites t's predictive materials sub-tree with its
// working copy, so a subsequent run's comparisons start from the
// obtained results instead of the stale prediction. Unless hard is set,
// only a failing test's materials are overwritten, since a passing
// test's prediction is already correct.
func (f *Family) updateMaterials(t *Test, summary checklog.Summary, hard bool) {
	if t.Materials == "" || f.MaterialsRoot == "" {
		return
	}
	if summary.Passed() && !hard {
		return
	}
	src := filepath.Join(f.WorkingRoot, t.Materials)
	dst := filepath.Join(f.MaterialsRoot, t.Materials)
	_ = copyTree(src, dst)
}

// setupMaterials copies t's predictive materials sub-tree under a
// per-test working directory, skipping the copy if another test in this
// Execute call already claimed the same source path.
func (f *Family) setupMaterials(t *Test, dedup *materialsCopied) {
	if t.Materials == "" || f.MaterialsRoot == "" {
		return
	}
	src := filepath.Join(f.MaterialsRoot, t.Materials)
	if !dedup.tryClaim(src) {
		return
	}
	dst := filepath.Join(f.WorkingRoot, t.Materials)
	_ = copyTree(src, dst)
}

func copyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}

// writeSummaryFile appends t's summary to its per-source summary file,
// in append-mode within a run.
func (f *Family) writeSummaryFile(outputMode OutputMode, t *Test, summary checklog.Summary) {
	if !outputMode.WriteFiles {
		return
	}
	path := filepath.Join(outputMode.OutputDir, "TestSummaries", f.Name, t.Source+".txt")
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	fmt.Fprintf(file, "%s: checks=%d failures=%d duration=%s\n", t.Name, summary.Checks, summary.Failures, summary.Duration)
}

func (f *Family) appendFamilyDiagnostics(outputMode OutputMode, summaries []checklog.Summary) {
	var any bool
	for _, s := range summaries {
		if s.FailureText != "" || s.DiagnosticsText != "" {
			any = true
			break
		}
	}
	if !any {
		return
	}
	path := filepath.Join(outputMode.OutputDir, "DiagnosticsOutput", f.Name, "family.txt")
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	for _, s := range summaries {
		fmt.Fprint(file, s.FailureText, s.DiagnosticsText)
	}
}
