package alloc

import (
	"testing"

	"github.com/ojrosten/sequoia-sub007/checkkind"
	"github.com/ojrosten/sequoia-sub007/checklog"
	"github.com/stretchr/testify/assert"
)

func newLogger() *checklog.Logger {
	return checklog.New(checkkind.ModeStandard, "", "")
}

type vector struct {
	counter Counter
	data    []int
}

func newVector() vector {
	c := NewCounter()
	c.Allocate()
	return vector{counter: c, data: nil}
}

func (v *vector) push(x int) {
	v.counter.Allocate()
	v.data = append(v.data, x)
}

func TestCheckEventPassesWhenDeltaMatchesPrediction(t *testing.T) {
	v := newVector()
	info := Info[*vector]{
		Getter: func(c *vector) Counter { return c.counter },
		Predictions: map[Event]Prediction{
			Mutation: {Event: Mutation, Count: 1},
		},
	}
	l := newLogger()
	ok := CheckEvent("vector", l, info, &v, Mutation, func() { v.push(1) })
	assert.True(t, ok)
}

func TestCheckEventFailsOnUnpredictedAllocation(t *testing.T) {
	v := newVector()
	info := Info[*vector]{
		Getter: func(c *vector) Counter { return c.counter },
		Predictions: map[Event]Prediction{
			Swap: {Event: Swap, Count: 0},
		},
	}
	l := newLogger()
	ok := CheckEvent("vector", l, info, &v, Swap, func() { v.push(1) })
	assert.False(t, ok)
	assert.Contains(t, l.Summarize(0).FailureText, "mismatch")
}

func TestCheckEventMissingPredictionDefaultsToZero(t *testing.T) {
	v := newVector()
	info := Info[*vector]{Getter: func(c *vector) Counter { return c.counter }}
	l := newLogger()
	ok := CheckEvent("vector", l, info, &v, Comparison, func() {})
	assert.True(t, ok)
}

func TestCheckEventAppliesShift(t *testing.T) {
	v := newVector()
	info := Info[*vector]{
		Getter: func(c *vector) Counter { return c.counter },
		Predictions: map[Event]Prediction{
			Mutation: {Event: Mutation, Count: 0, Shift: 1},
		},
	}
	l := newLogger()
	ok := CheckEvent("vector", l, info, &v, Mutation, func() { v.push(1) })
	assert.True(t, ok, "a single allocation with shift 1 should net to the predicted 0")
}

func TestCheckEventAdviceIncludedOnMismatch(t *testing.T) {
	v := newVector()
	info := Info[*vector]{
		Getter: func(c *vector) Counter { return c.counter },
		Predictions: map[Event]Prediction{
			Assign: {Event: Assign, Count: 0},
		},
	}
	l := newLogger()
	ok := CheckEvent("vector", l, info, &v, Assign, func() { v.push(1) }, WithTraits(Traits{PropagateOnCopyAssign: true}))
	assert.False(t, ok)
	assert.Contains(t, l.Summarize(0).FailureText, "advice:")
}

func TestSelectAssignEventPropagating(t *testing.T) {
	traits := Traits{PropagateOnCopyAssign: true}
	assert.Equal(t, AssignProp, traits.SelectAssignEvent(true))
	assert.Equal(t, Assign, traits.SelectAssignEvent(false))
}

func TestSelectMoveAssignEventFallsBackToCopyLike(t *testing.T) {
	traits := Traits{PropagateOnMoveAssign: false, IsAlwaysEqual: false}
	assert.Equal(t, CopyLikeMoveAssign, traits.SelectMoveAssignEvent(true))
}

func TestSelectMoveAssignEventOrdinary(t *testing.T) {
	traits := Traits{PropagateOnMoveAssign: true}
	assert.Equal(t, MoveAssign, traits.SelectMoveAssignEvent(true))
}

func TestCheckScopedAttributesEachLevel(t *testing.T) {
	outer := NewCounter()
	inner := NewCounter()

	outerInfo := Info[*struct{}]{
		Getter:      func(*struct{}) Counter { return outer },
		Predictions: map[Event]Prediction{Copy: {Event: Copy, Count: 1}},
	}
	innerInfo := Info[*struct{}]{
		Getter:      func(*struct{}) Counter { return inner },
		Predictions: map[Event]Prediction{Copy: {Event: Copy, Count: 2}},
	}

	l := newLogger()
	container := &struct{}{}
	ok := CheckScoped("nested", l, []Info[*struct{}]{outerInfo, innerInfo}, container, Copy, func() {
		outer.Allocate()
		inner.Allocate()
		inner.Allocate()
	})
	assert.True(t, ok)
}
