package ringpop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberIterator_VisitsEveryPeerExactlyOncePerLap(t *testing.T) {
	table := NewMembership("local:1")
	table.AddLocalMember()
	table.AddMember("a:1", 1)
	table.AddMember("b:1", 1)
	table.AddMember("c:1", 1)

	it := newMemberIterator(table)
	seen := make(map[string]int)
	for i := 0; i < 3; i++ {
		m, ok := it.next()
		require.True(t, ok)
		seen[m.Address]++
	}
	assert.Equal(t, map[string]int{"a:1": 1, "b:1": 1, "c:1": 1}, seen)
}

func TestMemberIterator_SkipsLocalAndNonPingable(t *testing.T) {
	table := NewMembership("local:1")
	table.AddLocalMember()
	table.AddMember("a:1", 1)
	table.Update([]Change{{Address: "b:1", Status: Faulty, Incarnation: 1}})

	it := newMemberIterator(table)
	m, ok := it.next()
	require.True(t, ok)
	assert.Equal(t, "a:1", m.Address)
}

func TestMemberIterator_ReturnsFalseWhenNothingPingable(t *testing.T) {
	table := NewMembership("local:1")
	table.AddLocalMember()

	it := newMemberIterator(table)
	_, ok := it.next()
	assert.False(t, ok)
}
