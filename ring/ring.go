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

// Package ring implements the consistent hash ring kept in sync with the
// live member set (spec §4.5). Structurally grounded on uber/kraken's
// lib/hashring (a mutex-guarded struct rebuilt on membership change, with a
// Watcher notification hook); the placement algorithm itself is virtual-node
// ring hashing rather than kraken's rendezvous hashing, per the spec.
package ring

import (
	"sort"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// DefaultVirtualNodes is the number of ring positions ("vnodes") each live
// server occupies, spreading its share of the keyspace across R points
// instead of one to smooth load when membership changes.
const DefaultVirtualNodes = 100

type vnode struct {
	hash    uint64
	address string
}

// Watcher is notified whenever the set of distinct addresses on the ring
// changes.
type Watcher interface {
	OnRingChanged(addresses []string)
}

// Ring is a sorted-by-hash set of virtual node positions, each owned by a
// live server address. Lookup walks to the first position at or after a
// key's hash, wrapping around to the smallest position if none is found.
type Ring struct {
	mu            sync.RWMutex
	virtualNodes  int
	servers       map[string]bool
	nodes         []vnode // sorted ascending by hash
	watchers      []Watcher
}

// New constructs an empty ring with the given number of virtual nodes per
// server (DefaultVirtualNodes if r <= 0).
func New(virtualNodes int) *Ring {
	if virtualNodes <= 0 {
		virtualNodes = DefaultVirtualNodes
	}
	return &Ring{
		virtualNodes: virtualNodes,
		servers:      make(map[string]bool),
	}
}

// AddWatcher registers a Watcher for future ring-membership changes.
func (r *Ring) AddWatcher(w Watcher) {
	r.mu.Lock()
	r.watchers = append(r.watchers, w)
	r.mu.Unlock()
}

// AddServer inserts address's virtual nodes into the ring. A no-op if
// address is already present (idempotent, spec §4.5).
func (r *Ring) AddServer(address string) {
	r.mu.Lock()
	if r.servers[address] {
		r.mu.Unlock()
		return
	}
	r.servers[address] = true
	for i := 0; i < r.virtualNodes; i++ {
		h := hashVirtualNode(address, i)
		r.nodes = append(r.nodes, vnode{hash: h, address: address})
	}
	sort.Slice(r.nodes, func(i, j int) bool {
		if r.nodes[i].hash != r.nodes[j].hash {
			return r.nodes[i].hash < r.nodes[j].hash
		}
		// Collision: break ties by ascending address (spec §4.5).
		return r.nodes[i].address < r.nodes[j].address
	})
	addrs := r.addressesLocked()
	r.mu.Unlock()

	r.notify(addrs)
}

// RemoveServer deletes address's virtual nodes from the ring. A no-op if
// address is not present (idempotent, spec §4.5).
func (r *Ring) RemoveServer(address string) {
	r.mu.Lock()
	if !r.servers[address] {
		r.mu.Unlock()
		return
	}
	delete(r.servers, address)
	filtered := r.nodes[:0]
	for _, n := range r.nodes {
		if n.address != address {
			filtered = append(filtered, n)
		}
	}
	r.nodes = filtered
	addrs := r.addressesLocked()
	r.mu.Unlock()

	r.notify(addrs)
}

// Contains reports whether address currently owns any ring position.
func (r *Ring) Contains(address string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.servers[address]
}

// Lookup returns the server owning key: the address at the first ring
// position whose hash is >= hash(key), wrapping to the smallest position if
// key's hash is past every node. Returns ("", false) on an empty ring.
func (r *Ring) Lookup(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.nodes) == 0 {
		return "", false
	}

	h := xxhash.Sum64String(key)
	i := sort.Search(len(r.nodes), func(i int) bool { return r.nodes[i].hash >= h })
	if i == len(r.nodes) {
		i = 0
	}
	return r.nodes[i].address, true
}

// Addresses returns the distinct server addresses currently on the ring.
func (r *Ring) Addresses() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.addressesLocked()
}

func (r *Ring) addressesLocked() []string {
	out := make([]string, 0, len(r.servers))
	for addr := range r.servers {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}

func (r *Ring) notify(addrs []string) {
	r.mu.RLock()
	watchers := r.watchers
	r.mu.RUnlock()
	for _, w := range watchers {
		w.OnRingChanged(addrs)
	}
}

func hashVirtualNode(address string, i int) uint64 {
	return xxhash.Sum64String(address + "#" + strconv.Itoa(i))
}
