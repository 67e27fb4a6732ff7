package ringpop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDissemination_MaxPiggybackFormula(t *testing.T) {
	d := NewDissemination(func() int { return 0 })
	assert.Equal(t, 1, d.maxPiggyback(), "n=0 must still floor at 1")

	d = NewDissemination(func() int { return 9 })
	assert.Equal(t, 3, d.maxPiggyback()) // ceil(3*log10(10)) = 3

	d = NewDissemination(func() int { return 99 })
	assert.Equal(t, 6, d.maxPiggyback()) // ceil(3*log10(100)) = 6
}

func TestDissemination_GetChangesReturnsFullStateOnChecksumDisagreementWhenEmpty(t *testing.T) {
	d := NewDissemination(func() int { return 3 })
	full := []Change{{Address: "a", Status: Alive, Incarnation: 1}}

	out := d.GetChanges(42, 7, full)
	assert.Equal(t, full, out)
}

func TestDissemination_GetChangesReturnsNilWhenEmptyAndChecksumsAgree(t *testing.T) {
	d := NewDissemination(func() int { return 3 })
	out := d.GetChanges(7, 7, []Change{{Address: "a"}})
	assert.Nil(t, out)
}

func TestDissemination_GetChangesEvictsAfterExceedingLimit(t *testing.T) {
	d := NewDissemination(func() int { return 0 }) // max_piggyback = 1
	d.AddChange(Change{Address: "a", Status: Alive, Incarnation: 1})

	first := d.GetChanges(0, 0, nil)
	require.Len(t, first, 1)
	assert.Equal(t, 1, first[0].PiggybackCount)
	assert.Equal(t, 1, d.Len(), "change survives its first ride within the limit")

	second := d.GetChanges(0, 0, nil)
	require.Len(t, second, 1)
	assert.Equal(t, 2, second[0].PiggybackCount)
	assert.Equal(t, 0, d.Len(), "change is evicted once its count exceeds max_piggyback")
}

func TestDissemination_GetChangesOrdersByPiggybackCountThenInsertionOrder(t *testing.T) {
	d := NewDissemination(func() int { return 99 }) // generous limit, nothing evicted
	d.AddChange(Change{Address: "a", Status: Alive, Incarnation: 1})
	d.AddChange(Change{Address: "b", Status: Alive, Incarnation: 1})

	out := d.GetChanges(0, 0, nil)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Address, "older insertion rides first among equal piggyback counts")
	assert.Equal(t, "b", out[1].Address)
}

func TestDissemination_AddChangeReplacesPending(t *testing.T) {
	d := NewDissemination(func() int { return 99 })
	d.AddChange(Change{Address: "a", Status: Suspect, Incarnation: 1})
	d.AddChange(Change{Address: "a", Status: Faulty, Incarnation: 2})

	require.Equal(t, 1, d.Len())
	out := d.GetChanges(0, 0, nil)
	require.Len(t, out, 1)
	assert.Equal(t, Faulty, out[0].Status)
	assert.Equal(t, int64(2), out[0].Incarnation)
}
