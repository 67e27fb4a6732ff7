/*
 * Copyright 2018 De-labtory
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ringpop

import (
	"math/rand"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Membership is the authoritative table of known peers, keyed by address.
// All mutation goes through update/addMember/makeAlive/makeLeave so that the
// supersession rule and subscriber fan-out stay centralized; see spec §3-4.1.
type Membership struct {
	mu            sync.RWMutex
	local         string
	members       map[string]*Member
	subscribers   []Subscriber
	checksumCache *uint32
}

// NewMembership constructs an empty table for the node bound at localAddress.
func NewMembership(localAddress string) *Membership {
	return &Membership{
		local:   localAddress,
		members: make(map[string]*Member),
	}
}

// Subscribe registers a Subscriber for future membership events. Not safe to
// call concurrently with table mutation; callers wire subscribers once
// during construction.
func (t *Membership) Subscribe(sub Subscriber) {
	t.subscribers = append(t.subscribers, sub)
}

// LocalAddress returns this node's own address.
func (t *Membership) LocalAddress() string {
	return t.local
}

// AddLocalMember inserts the local node as alive with a fresh incarnation.
func (t *Membership) AddLocalMember() {
	t.mu.Lock()
	m := &Member{Address: t.local, Status: Alive, Incarnation: nowMillis()}
	t.members[t.local] = m
	t.invalidateChecksum()
	ev := Event{Kind: EventNew, Change: Change{Address: m.Address, Status: m.Status, Incarnation: m.Incarnation}}
	t.mu.Unlock()
	t.emit(ev)
}

// AddMember inserts address as alive if absent (emitting "new"), or treats
// the call as an Update to alive at the given incarnation if already
// present.
func (t *Membership) AddMember(address string, incarnation int64) {
	t.mu.Lock()
	existing, ok := t.members[address]
	if !ok {
		if incarnation == 0 {
			incarnation = nowMillis()
		}
		m := &Member{Address: address, Status: Alive, Incarnation: incarnation}
		t.members[address] = m
		t.invalidateChecksum()
		ev := Event{Kind: EventNew, Change: Change{Address: m.Address, Status: m.Status, Incarnation: m.Incarnation}}
		t.mu.Unlock()
		t.emit(ev)
		return
	}
	_ = existing
	t.mu.Unlock()
	t.Update([]Change{{Address: address, Status: Alive, Incarnation: incarnation}})
}

// Update applies a batch of incoming changes under the supersession rule
// from spec §3, delivering one Event per applied change. A change targeting
// the local member that would downgrade it to suspect/faulty is instead
// turned into a refutation: the local incarnation is bumped and an "alive"
// event is emitted, the incoming record is never adopted.
func (t *Membership) Update(changes []Change) []Event {
	var events []Event

	t.mu.Lock()
	for _, c := range changes {
		if c.Address == t.local && (c.Status == Suspect || c.Status == Faulty) {
			local := t.members[t.local]
			if local == nil {
				continue
			}
			if c.Incarnation < local.Incarnation {
				// stale claim about an incarnation we've already superseded
				continue
			}
			local.Incarnation = local.Incarnation + 1
			if local.Incarnation <= c.Incarnation {
				local.Incarnation = c.Incarnation + 1
			}
			local.Status = Alive
			t.invalidateChecksum()
			events = append(events, Event{Kind: EventAlive, Change: Change{
				Address: local.Address, Status: Alive, Incarnation: local.Incarnation,
			}})
			continue
		}

		existing, ok := t.members[c.Address]
		if !ok {
			m := &Member{Address: c.Address, Status: c.Status, Incarnation: c.Incarnation}
			t.members[c.Address] = m
			t.invalidateChecksum()
			events = append(events, eventForStatus(c.Status, Change{
				Address: m.Address, Status: m.Status, Incarnation: m.Incarnation,
			}))
			continue
		}

		if !c.overrides(existing.Incarnation, existing.Status) {
			continue
		}
		existing.Status = c.Status
		existing.Incarnation = c.Incarnation
		t.invalidateChecksum()
		events = append(events, eventForStatus(c.Status, Change{
			Address: existing.Address, Status: existing.Status, Incarnation: existing.Incarnation,
		}))
	}
	t.mu.Unlock()

	for _, ev := range events {
		t.emit(ev)
	}
	return events
}

func eventForStatus(status string, c Change) Event {
	switch status {
	case Alive:
		return Event{Kind: EventAlive, Change: c}
	case Suspect:
		return Event{Kind: EventSuspect, Change: c}
	case Faulty:
		return Event{Kind: EventFaulty, Change: c}
	case Leave:
		return Event{Kind: EventLeave, Change: c}
	default:
		return Event{Kind: EventAlive, Change: c}
	}
}

// MakeAlive forces the local member to alive, bumping its incarnation to
// now. Used by rejoin().
func (t *Membership) MakeAlive() {
	t.setLocalStatus(Alive, EventAlive)
}

// MakeLeave forces the local member to leave, bumping its incarnation to
// now. Used by adminLeave().
func (t *Membership) MakeLeave() {
	t.setLocalStatus(Leave, EventLeave)
}

func (t *Membership) setLocalStatus(status string, kind EventKind) {
	t.mu.Lock()
	local := t.members[t.local]
	if local == nil {
		t.mu.Unlock()
		return
	}
	local.Status = status
	local.Incarnation = nowMillis()
	t.invalidateChecksum()
	ev := Event{Kind: kind, Change: Change{Address: local.Address, Status: local.Status, Incarnation: local.Incarnation}}
	t.mu.Unlock()
	t.emit(ev)
}

// Get returns a copy of the member at address, if known.
func (t *Membership) Get(address string) (Member, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	m, ok := t.members[address]
	if !ok {
		return Member{}, false
	}
	return *m, true
}

// Local returns a copy of this node's own member record.
func (t *Membership) Local() Member {
	m, _ := t.Get(t.local)
	return m
}

// Members returns a snapshot of every member currently in the table.
func (t *Membership) Members() []Member {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Member, 0, len(t.members))
	for _, m := range t.members {
		out = append(out, *m)
	}
	return out
}

// GetRandomPingableMembers draws up to n members, uniformly without
// replacement, whose status is alive, address is not local, and address is
// not in exclude.
func (t *Membership) GetRandomPingableMembers(n int, exclude []string) []Member {
	excluded := make(map[string]bool, len(exclude))
	for _, a := range exclude {
		excluded[a] = true
	}

	t.mu.RLock()
	candidates := make([]Member, 0, len(t.members))
	for _, m := range t.members {
		if m.Address == t.local || excluded[m.Address] {
			continue
		}
		if m.Status != Alive {
			continue
		}
		candidates = append(candidates, *m)
	}
	t.mu.RUnlock()

	rand.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n]
}

// Checksum is a deterministic 32-bit hash over the canonical encoding of
// every member's (address, incarnation, status), used by peers as a cheap
// disagreement detector (spec §4.1, §4.2).
func (t *Membership) Checksum() uint32 {
	t.mu.RLock()
	if t.checksumCache != nil {
		v := *t.checksumCache
		t.mu.RUnlock()
		return v
	}
	members := make([]Member, 0, len(t.members))
	for _, m := range t.members {
		members = append(members, *m)
	}
	t.mu.RUnlock()

	sum := uint32(xxhash.Sum64String(sortedMembersString(members)))

	t.mu.Lock()
	t.checksumCache = &sum
	t.mu.Unlock()

	return sum
}

// invalidateChecksum must be called with mu held.
func (t *Membership) invalidateChecksum() {
	t.checksumCache = nil
}

func (t *Membership) emit(ev Event) {
	for _, sub := range t.subscribers {
		dispatch(sub, ev)
	}
}

func nowMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
