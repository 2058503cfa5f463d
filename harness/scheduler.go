package harness

import (
	"sync"
	"time"

	"github.com/ojrosten/sequoia-sub007/checkkind"
	"github.com/ojrosten/sequoia-sub007/checklog"
	"golang.org/x/sync/errgroup"
)

// Scheduler is the pool-submission handle a Test's Body receives: the
// feature that distinguishes Deep from Test concurrency, since a test
// body may itself submit work to the pool rather than running only what
// the harness itself schedules.
type Scheduler interface {
	// Submit runs fn against its own Logger, concurrently with the body
	// and any other submission when Deep concurrency backs the
	// Scheduler, or inline (one submission at a time) at every other
	// mode. fn's resulting Summary is folded into the owning Test's
	// Summary once every submission has completed.
	Submit(fn func(logger *checklog.Logger))
}

// taskScheduler implements Scheduler. Each submission gets its own
// Logger rather than sharing the Test's: Logger's check stack assumes a
// single call path pushing and popping it in LIFO order, which concurrent
// goroutines would violate. Isolating each submission and folding its
// Summary afterward, the same way Family folds per-test summaries, gets
// genuine concurrency without that hazard.
type taskScheduler struct {
	testMode checkkind.Mode
	g        *errgroup.Group // nil outside Deep concurrency

	mu     sync.Mutex
	merged checklog.Summary
}

func newTaskScheduler(mode ConcurrencyMode, testMode checkkind.Mode) *taskScheduler {
	ts := &taskScheduler{testMode: testMode}
	if mode == Deep {
		ts.g = &errgroup.Group{}
	}
	return ts
}

func (ts *taskScheduler) Submit(fn func(logger *checklog.Logger)) {
	run := func() error {
		sub := checklog.New(ts.testMode, "", "")
		start := time.Now()
		runRecovered(sub, fn)
		summary := sub.Summarize(time.Since(start))

		ts.mu.Lock()
		ts.merged = ts.merged.Add(summary)
		ts.mu.Unlock()
		return nil
	}

	if ts.g != nil {
		ts.g.Go(run)
		return
	}
	_ = run()
}

// wait joins every submission (a no-op outside Deep concurrency, where
// Submit already ran synchronously) and returns their coalesced Summary.
func (ts *taskScheduler) wait() checklog.Summary {
	if ts.g != nil {
		_ = ts.g.Wait()
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.merged
}
