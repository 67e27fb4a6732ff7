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

// Package transport provides a concrete, in-process Channel implementation
// for exercising ringpop without any real network stack — useful for the
// CLI's one-shot `lookup` subcommand and for end-to-end tests (spec §8
// scenarios S1-S6). Grounded on beenet's NetworkInterface
// (SendMessage/BroadcastMessage) pattern, collapsed to the single-Send
// Channel shape ringpop itself defines.
package transport

import (
	"context"
	"fmt"
	"sync"

	"github.com/DE-labtory/ringpop"
	"github.com/DE-labtory/ringpop/pb"
)

// Network is a shared in-memory "wire" that a set of Loopback channels
// register themselves on, so that Send from one reaches the Handler
// registered on another.
type Network struct {
	mu       sync.RWMutex
	channels map[string]*Loopback
}

// NewNetwork constructs an empty shared network.
func NewNetwork() *Network {
	return &Network{channels: make(map[string]*Loopback)}
}

// NewChannel creates a Loopback bound to address and registers it on the
// network. The caller passes the returned Channel into ringpop.Config.
func (net *Network) NewChannel(address string) *Loopback {
	ch := &Loopback{network: net, address: address}
	net.mu.Lock()
	net.channels[address] = ch
	net.mu.Unlock()
	return ch
}

// Remove unregisters address, simulating the channel being torn down (e.g.
// after Destroy, or "killing a node's transport" to simulate a real
// failure); later Sends to address fail.
func (net *Network) Remove(address string) {
	net.mu.Lock()
	delete(net.channels, address)
	net.mu.Unlock()
}

func (net *Network) resolve(address string) (*Loopback, bool) {
	net.mu.RLock()
	defer net.mu.RUnlock()
	ch, ok := net.channels[address]
	return ch, ok
}

// Loopback implements ringpop.Channel over an in-process Network.
type Loopback struct {
	network *Network
	address string

	mu      sync.RWMutex
	handler ringpop.Handler
}

// RegisterHandler installs the receiver for inbound messages.
func (c *Loopback) RegisterHandler(h ringpop.Handler) {
	c.mu.Lock()
	c.handler = h
	c.mu.Unlock()
}

// Send delivers msg to address's registered handler, respecting ctx's
// deadline. Returns an error if address is not (or no longer) registered,
// modeling a real transport's dial failure against a dead/unreachable peer.
func (c *Loopback) Send(ctx context.Context, address string, msg *pb.Message) (*pb.Message, error) {
	target, ok := c.network.resolve(address)
	if !ok {
		return nil, fmt.Errorf("ringpop/transport: no channel registered for %s", address)
	}

	target.mu.RLock()
	handler := target.handler
	target.mu.RUnlock()
	if handler == nil {
		return nil, fmt.Errorf("ringpop/transport: %s has no handler registered", address)
	}

	type outcome struct {
		reply *pb.Message
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		reply, err := handler.HandleMessage(ctx, msg)
		done <- outcome{reply: reply, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		return o.reply, o.err
	}
}
