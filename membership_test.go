package ringpop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubscriber struct {
	events []Event
}

func (s *recordingSubscriber) OnNew(c Change)     { s.events = append(s.events, Event{Kind: EventNew, Change: c}) }
func (s *recordingSubscriber) OnAlive(c Change)   { s.events = append(s.events, Event{Kind: EventAlive, Change: c}) }
func (s *recordingSubscriber) OnSuspect(c Change) { s.events = append(s.events, Event{Kind: EventSuspect, Change: c}) }
func (s *recordingSubscriber) OnFaulty(c Change)  { s.events = append(s.events, Event{Kind: EventFaulty, Change: c}) }
func (s *recordingSubscriber) OnLeave(c Change)   { s.events = append(s.events, Event{Kind: EventLeave, Change: c}) }

func TestMembership_AddLocalMemberIsAlive(t *testing.T) {
	m := NewMembership("local:3000")
	m.AddLocalMember()

	local := m.Local()
	assert.Equal(t, "local:3000", local.Address)
	assert.Equal(t, Alive, local.Status)
}

func TestMembership_AddMemberThenUpdateIsIdempotentForStaleChange(t *testing.T) {
	m := NewMembership("local:3000")
	m.AddLocalMember()
	m.AddMember("peer:3000", 10)

	before := m.Checksum()
	events := m.Update([]Change{{Address: "peer:3000", Status: Alive, Incarnation: 10}})
	assert.Empty(t, events, "a change equal to the recorded state must not re-apply or re-emit")
	assert.Equal(t, before, m.Checksum(), "checksum must be stable under a no-op update")
}

func TestMembership_UpdateSupersessionHigherIncarnationWins(t *testing.T) {
	m := NewMembership("local:3000")
	m.AddLocalMember()
	m.AddMember("peer:3000", 10)

	events := m.Update([]Change{{Address: "peer:3000", Status: Suspect, Incarnation: 11}})
	require.Len(t, events, 1)
	assert.Equal(t, EventSuspect, events[0].Kind)

	peer, ok := m.Get("peer:3000")
	require.True(t, ok)
	assert.Equal(t, Suspect, peer.Status)
	assert.Equal(t, int64(11), peer.Incarnation)
}

func TestMembership_UpdateRejectsStaleIncarnation(t *testing.T) {
	m := NewMembership("local:3000")
	m.AddLocalMember()
	m.AddMember("peer:3000", 10)
	m.Update([]Change{{Address: "peer:3000", Status: Faulty, Incarnation: 12}})

	events := m.Update([]Change{{Address: "peer:3000", Status: Alive, Incarnation: 11}})
	assert.Empty(t, events, "a lower-incarnation change must never override a higher one")

	peer, _ := m.Get("peer:3000")
	assert.Equal(t, Faulty, peer.Status)
}

func TestMembership_SelfRefutationBumpsIncarnationAndStaysAlive(t *testing.T) {
	sub := &recordingSubscriber{}
	m := NewMembership("local:3000")
	m.Subscribe(sub)
	m.AddLocalMember()

	local := m.Local()
	events := m.Update([]Change{{Address: "local:3000", Status: Suspect, Incarnation: local.Incarnation}})
	require.Len(t, events, 1)
	assert.Equal(t, EventAlive, events[0].Kind)

	after := m.Local()
	assert.Equal(t, Alive, after.Status, "a suspicion of the local node must be refuted, never adopted")
	assert.Greater(t, after.Incarnation, local.Incarnation, "refutation must strictly bump the incarnation")

	require.Len(t, sub.events, 2) // new (AddLocalMember) + alive (refutation)
	assert.Equal(t, EventAlive, sub.events[1].Kind)
}

func TestMembership_SelfRefutationIgnoresStaleIncarnation(t *testing.T) {
	m := NewMembership("local:3000")
	m.AddLocalMember()
	local := m.Local()

	events := m.Update([]Change{{Address: "local:3000", Status: Faulty, Incarnation: local.Incarnation - 1}})
	assert.Empty(t, events, "a suspicion naming an incarnation we've already superseded must be dropped")
	assert.Equal(t, local.Incarnation, m.Local().Incarnation)
}

func TestMembership_ChecksumIsOrderIndependentAndDeterministic(t *testing.T) {
	a := NewMembership("local:3000")
	a.AddMember("x:1", 1)
	a.AddMember("y:1", 1)

	b := NewMembership("local:3000")
	b.AddMember("y:1", 1)
	b.AddMember("x:1", 1)

	assert.Equal(t, a.Checksum(), b.Checksum())
}

func TestMembership_ChecksumChangesWhenTableChanges(t *testing.T) {
	m := NewMembership("local:3000")
	m.AddLocalMember()
	before := m.Checksum()

	m.AddMember("peer:3000", 1)
	assert.NotEqual(t, before, m.Checksum())
}

func TestMembership_GetRandomPingableMembersExcludesLocalAndNonAlive(t *testing.T) {
	m := NewMembership("local:3000")
	m.AddLocalMember()
	m.AddMember("alive1:3000", 1)
	m.AddMember("alive2:3000", 1)
	m.Update([]Change{{Address: "suspect1:3000", Status: Suspect, Incarnation: 1}})

	picked := m.GetRandomPingableMembers(10, nil)
	for _, p := range picked {
		assert.NotEqual(t, "local:3000", p.Address)
		assert.Equal(t, Alive, p.Status)
	}
	assert.LessOrEqual(t, len(picked), 2)
}
