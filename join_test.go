package ringpop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetPool_TakeDrainsWithoutRepeats(t *testing.T) {
	pool := newTargetPool([]string{"a:1", "b:1", "c:1"})

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		target, ok := pool.take()
		require.True(t, ok)
		assert.False(t, seen[target], "take must never return the same target twice")
		seen[target] = true
	}

	_, ok := pool.take()
	assert.False(t, ok, "an exhausted pool must report false")
}

func TestTargetPool_EmptyPool(t *testing.T) {
	pool := newTargetPool(nil)
	_, ok := pool.take()
	assert.False(t, ok)
}
