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
	"math"
	"sort"
	"sync"
)

// Dissemination is the piggyback buffer: the set of recent member-state
// changes waiting to ride along on outgoing protocol messages, grounded on
// leesd556-swim's PriorityPBStore and dkmccandless-swim's messageQueue.
type Dissemination struct {
	mu      sync.Mutex
	changes map[string]*Change
	// sequence gives stable oldest-to-newest ordering for changes that tie
	// on piggybackCount (insertion-order tiebreak, spec §4.2).
	sequence map[string]int64
	seq      int64

	clusterSize func() int
}

// NewDissemination constructs an empty buffer. clusterSize is consulted on
// every getChanges call to compute max_piggyback = ceil(3*log10(n+1)).
func NewDissemination(clusterSize func() int) *Dissemination {
	return &Dissemination{
		changes:     make(map[string]*Change),
		sequence:    make(map[string]int64),
		clusterSize: clusterSize,
	}
}

// AddChange inserts or replaces the buffered change for c.Address. A change
// already queued for that address is replaced outright (newest change wins;
// this is called only with changes that have already passed the table's own
// supersession check, so no further precedence comparison is needed here).
func (d *Dissemination) AddChange(c Change) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c.PiggybackCount = 0
	cp := c
	d.changes[c.Address] = &cp
	d.seq++
	d.sequence[c.Address] = d.seq
}

// maxPiggyback returns ceil(3*log10(n+1)), at least 1.
func (d *Dissemination) maxPiggyback() int {
	n := 0
	if d.clusterSize != nil {
		n = d.clusterSize()
	}
	v := int(math.Ceil(3 * math.Log10(float64(n+1))))
	if v < 1 {
		v = 1
	}
	return v
}

// GetChanges returns up to max_piggyback changes, oldest-to-newest by
// piggybackCount (ties broken by insertion order), incrementing each
// returned change's count and evicting any that now exceed the limit. If
// remoteChecksum disagrees with localChecksum and there is nothing left to
// piggyback, the full membership snapshot is returned instead so that
// persistent disagreement still converges (spec §4.2).
func (d *Dissemination) GetChanges(remoteChecksum uint32, localChecksum uint32, fullState []Change) []Change {
	d.mu.Lock()
	defer d.mu.Unlock()

	limit := d.maxPiggyback()

	type entry struct {
		addr string
		c    *Change
		seq  int64
	}
	entries := make([]entry, 0, len(d.changes))
	for addr, c := range d.changes {
		entries = append(entries, entry{addr: addr, c: c, seq: d.sequence[addr]})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].c.PiggybackCount != entries[j].c.PiggybackCount {
			return entries[i].c.PiggybackCount < entries[j].c.PiggybackCount
		}
		return entries[i].seq < entries[j].seq
	})

	if len(entries) == 0 {
		if remoteChecksum != 0 && remoteChecksum != localChecksum {
			return fullState
		}
		return nil
	}

	if len(entries) > limit {
		entries = entries[:limit]
	}

	out := make([]Change, 0, len(entries))
	for _, e := range entries {
		e.c.PiggybackCount++
		out = append(out, *e.c)
		if e.c.PiggybackCount > limit {
			delete(d.changes, e.addr)
			delete(d.sequence, e.addr)
		}
	}
	return out
}

// Len reports how many changes are currently queued (test/observability
// helper).
func (d *Dissemination) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.changes)
}
