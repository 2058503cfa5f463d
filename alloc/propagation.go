package alloc

import "fmt"

// Traits mirrors the allocator propagation traits that select between
// the "with propagation" and "without propagation" prediction variants
// for assignment and swap.
type Traits struct {
	PropagateOnCopyAssign bool
	PropagateOnMoveAssign bool
	PropagateOnSwap       bool
	IsAlwaysEqual         bool
}

// SelectAssignEvent picks AssignProp or Assign depending on whether the
// allocator propagates on copy assignment. allocatorsUnequal must be
// true for the AssignProp branch to be exercised meaningfully: when
// allocators always compare equal, propagation is moot.
func (t Traits) SelectAssignEvent(allocatorsUnequal bool) Event {
	if t.PropagateOnCopyAssign && allocatorsUnequal {
		return AssignProp
	}
	return Assign
}

// SelectMoveAssignEvent picks MoveAssign or CopyLikeMoveAssign: when the
// allocator neither propagates on move assignment nor compares equal,
// the container falls back to an elementwise copy-like move.
func (t Traits) SelectMoveAssignEvent(allocatorsUnequal bool) Event {
	if !t.PropagateOnMoveAssign && allocatorsUnequal && !t.IsAlwaysEqual {
		return CopyLikeMoveAssign
	}
	return MoveAssign
}

// Advice renders a short explanation of which trait drove the selection
// of event, shown to the user alongside a CheckEvent mismatch.
func Advice(event Event, t Traits) string {
	switch event {
	case AssignProp:
		return fmt.Sprintf("propagate_on_container_copy_assignment=%v selected the propagating assignment path", t.PropagateOnCopyAssign)
	case Assign:
		return fmt.Sprintf("propagate_on_container_copy_assignment=%v selected the non-propagating assignment path", t.PropagateOnCopyAssign)
	case CopyLikeMoveAssign:
		return fmt.Sprintf(
			"propagate_on_container_move_assignment=%v and is_always_equal=%v selected the elementwise copy-like move assignment path",
			t.PropagateOnMoveAssign, t.IsAlwaysEqual,
		)
	case MoveAssign:
		return fmt.Sprintf("propagate_on_container_move_assignment=%v selected the ordinary move assignment path", t.PropagateOnMoveAssign)
	case Swap:
		return fmt.Sprintf("propagate_on_container_swap=%v selected the swap path", t.PropagateOnSwap)
	default:
		return ""
	}
}
