package alloc

import (
	"fmt"

	"github.com/ojrosten/sequoia-sub007/checklog"
)

// Info bundles a way to retrieve a container's allocation Counter with
// the predicted delta for each Event this package checks.
type Info[C any] struct {
	Getter      func(container C) Counter
	Predictions map[Event]Prediction
}

// CheckEvent snapshots the counter before invoking operation, then
// compares the observed delta against the prediction registered for
// event. A missing prediction is treated as an expectation of zero
// allocations, since most events (swap, comparison, serialization,
// spectator) are normally zero-cost.
func CheckEvent[C any](description string, logger *checklog.Logger, info Info[C], container C, event Event, operation func(), opts ...EventOption) bool {
	cfg := buildEventConfig(opts)

	sentinel := logger.Enter(description + "." + event.String())
	defer sentinel.Close()

	counter := info.Getter(container)
	before := counter.Snapshot()
	operation()
	delta := counter.Delta(before)

	want := int64(0)
	var shift int64
	if p, ok := info.Predictions[event]; ok {
		want = p.Count
		shift = p.Shift
	}

	if delta-shift == want {
		return true
	}
	msg := fmt.Sprintf(
		"allocation count mismatch for %s: observed %d (shift %d), predicted %d\n",
		event, delta, shift, want,
	)
	if cfg.traits != nil {
		if advice := Advice(event, *cfg.traits); advice != "" {
			msg += "advice: " + advice + "\n"
		}
	}
	logger.Fail(msg)
	return false
}

// EventOption configures a single CheckEvent call.
type EventOption func(*eventConfig)

type eventConfig struct {
	traits *Traits
}

// WithTraits attaches propagation Traits to a CheckEvent call, used to
// produce advice text when the observed count disagrees.
func WithTraits(t Traits) EventOption {
	return func(c *eventConfig) { c.traits = &t }
}

func buildEventConfig(opts []EventOption) eventConfig {
	var c eventConfig
	for _, o := range opts {
		o(&c)
	}
	return c
}

// CheckScoped verifies allocation predictions across a sequence of Info,
// one per nesting level of a scoped (nested) allocator: levels[0] is the
// outer allocator, levels[i] the allocator backing level i. Every
// level's counter is snapshotted before operation runs exactly once, so
// a single container mutation that allocates at more than one level is
// attributed correctly to each.
func CheckScoped[C any](description string, logger *checklog.Logger, levels []Info[C], container C, event Event, operation func()) bool {
	sentinel := logger.Enter(description)
	defer sentinel.Close()

	before := make([]int64, len(levels))
	for i, info := range levels {
		before[i] = info.Getter(container).Snapshot()
	}

	operation()

	pass := true
	for i, info := range levels {
		levelDescription := fmt.Sprintf("%s[level %d].%s", description, i, event)
		sub := logger.Enter(levelDescription)

		delta := info.Getter(container).Delta(before[i])
		want, shift := int64(0), int64(0)
		if p, ok := info.Predictions[event]; ok {
			want, shift = p.Count, p.Shift
		}
		if delta-shift != want {
			logger.Fail(fmt.Sprintf(
				"allocation count mismatch for %s at level %d: observed %d (shift %d), predicted %d\n",
				event, i, delta, shift, want,
			))
			pass = false
		}
		sub.Close()
	}
	return pass
}
