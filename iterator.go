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

import "sync"

// memberIterator yields a pingable (alive or suspect), non-local member on
// each call to next(), cycling through a freshly Fisher-Yates-shuffled
// snapshot of the table before reshuffling, so that one lap visits every
// live peer exactly once (no head-of-line starvation of any peer), grounded
// on ringpop-go's member shuffle() and memberlist's probeIndex wraparound.
type memberIterator struct {
	mu      sync.Mutex
	table   *Membership
	members []Member
	index   int
}

func newMemberIterator(table *Membership) *memberIterator {
	return &memberIterator{table: table}
}

// next returns the next pingable member, or false if no such member exists
// anywhere in the table.
func (it *memberIterator) next() (Member, bool) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if it.index >= len(it.members) {
		it.reshuffle()
		it.index = 0
	}

	for it.index < len(it.members) {
		m := it.members[it.index]
		it.index++
		if m.Address != it.table.LocalAddress() && m.isPingable() {
			return m, true
		}
	}

	// One full lap produced nothing pingable; try exactly once more with a
	// fresh snapshot in case membership changed mid-lap, then give up.
	it.reshuffle()
	it.index = 0
	for it.index < len(it.members) {
		m := it.members[it.index]
		it.index++
		if m.Address != it.table.LocalAddress() && m.isPingable() {
			return m, true
		}
	}
	return Member{}, false
}

// reshuffle must be called with it.mu held.
func (it *memberIterator) reshuffle() {
	it.members = shuffleMembers(it.table.Members())
}
