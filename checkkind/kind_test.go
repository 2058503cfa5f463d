package checkkind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindFallbackChain(t *testing.T) {
	k, ok := WeakEquivalence.Fallback()
	assert.True(t, ok)
	assert.Equal(t, Equivalence, k)

	k, ok = k.Fallback()
	assert.True(t, ok)
	assert.Equal(t, Equality, k)

	_, ok = k.Fallback()
	assert.False(t, ok, "equality has no fallback")

	_, ok = WithBestAvailable.Fallback()
	assert.False(t, ok, "with_best_available is resolved by probing, not falling back")
}

func TestProbeOrderDescendingStrength(t *testing.T) {
	assert.Equal(t, []Kind{Equality, Equivalence, WeakEquivalence}, ProbeOrder())
}

func TestModeFileSuffix(t *testing.T) {
	assert.Equal(t, "Output", ModeStandard.FileSuffix())
	assert.Equal(t, "FP", ModeFalsePositive.FileSuffix())
	assert.Equal(t, "FN", ModeFalseNegative.FileSuffix())
}

func TestStringers(t *testing.T) {
	for _, k := range []Kind{Equality, Equivalence, WeakEquivalence, WithBestAvailable} {
		assert.NotEqual(t, "unknown_kind", k.String())
	}
	for _, m := range []Mode{ModeStandard, ModeFalsePositive, ModeFalseNegative} {
		assert.NotEqual(t, "unknown_mode", m.String())
	}
}
