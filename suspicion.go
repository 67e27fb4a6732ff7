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
	"sync"
	"time"
)

// SuspicionService owns one deadline timer per currently-suspect member.
// On expiry it synthesizes a faulty Change and hands it to onExpire, which
// feeds the membership table's own Update so every normal event/fan-out
// path still applies (spec §4.4).
type SuspicionService struct {
	mu       sync.Mutex
	timers   map[string]*time.Timer
	timeout  time.Duration
	onExpire func(Change)
	disabled bool
}

// NewSuspicionService constructs a registry with the given per-member
// suspicion deadline (spec default: 5 * protocol_period).
func NewSuspicionService(timeout time.Duration, onExpire func(Change)) *SuspicionService {
	return &SuspicionService{
		timers:   make(map[string]*time.Timer),
		timeout:  timeout,
		onExpire: onExpire,
	}
}

// Start cancels any existing timer for member.Address and starts a fresh
// one. A no-op while the service has been halted by adminLeave (re-enabled
// via Reenable on rejoin).
func (s *SuspicionService) Start(member Member) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disabled {
		return
	}
	s.stopLocked(member.Address)

	address := member.Address
	incarnation := member.Incarnation
	s.timers[address] = time.AfterFunc(s.timeout, func() {
		s.fire(address, incarnation)
	})
}

func (s *SuspicionService) fire(address string, incarnation int64) {
	s.mu.Lock()
	delete(s.timers, address)
	s.mu.Unlock()

	if s.onExpire != nil {
		s.onExpire(Change{Address: address, Status: Faulty, Incarnation: incarnation})
	}
}

// Stop cancels the timer for address, if any.
func (s *SuspicionService) Stop(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked(address)
}

func (s *SuspicionService) stopLocked(address string) {
	if t, ok := s.timers[address]; ok {
		t.Stop()
		delete(s.timers, address)
	}
}

// StopAll cancels every pending suspicion timer and halts future Starts
// until Reenable is called. Used by adminLeave and destroy.
func (s *SuspicionService) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for addr, t := range s.timers {
		t.Stop()
		delete(s.timers, addr)
	}
	s.disabled = true
}

// Reenable permits Start to schedule new timers again after a StopAll.
// Used by rejoin.
func (s *SuspicionService) Reenable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled = false
}
