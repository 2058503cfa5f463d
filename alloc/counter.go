// Package alloc instruments container operations to verify they
// allocate exactly as predicted: a counting allocator increments a
// shared counter on each allocation, and a checker snapshots the
// counter before and after an operation to compare the delta against a
// caller-supplied prediction.
package alloc

import "sync/atomic"

// Counter is the counting allocator: a shared, atomically-incremented
// allocation count threaded through every copy of a container that was
// constructed with it.
type Counter struct {
	n *int64
}

// NewCounter constructs a fresh Counter starting at zero.
func NewCounter() Counter {
	var n int64
	return Counter{n: &n}
}

// Allocate records one allocation event. Containers built on top of
// Counter call this from their constructors/mutators in place of a real
// allocator call.
func (c Counter) Allocate() {
	atomic.AddInt64(c.n, 1)
}

// Count reports the current allocation count.
func (c Counter) Count() int64 {
	return atomic.LoadInt64(c.n)
}

// Snapshot captures the counter's value at a point in time, for delta
// computation around an operation.
func (c Counter) Snapshot() int64 {
	return c.Count()
}

// Delta reports how many allocations occurred between before and the
// counter's current value.
func (c Counter) Delta(before int64) int64 {
	return c.Count() - before
}
