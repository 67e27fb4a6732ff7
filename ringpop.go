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

// Package ringpop implements a SWIM-style membership and failure-detection
// engine together with the consistent hash ring it projects: a peer joins a
// set of cooperating nodes, discovers every other live peer through gossip,
// and can answer "which live node owns this key" for an externally driven
// request-forwarding proxy.
//
// The wire transport, the forwarding proxy itself, the bootstrap-host file
// format's consumer, process-metrics backends, and peer authentication are
// all out of scope: see Channel, StatsReporter, and Config.
package ringpop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/DE-labtory/ringpop/pb"
	"github.com/DE-labtory/ringpop/ring"
)

// lifecycle states, grounded on spec §9's explicit state machine
// (unstarted, joining, ready, leaving, destroyed) replacing the source's
// callback-chain re-entry hazard.
type lifecycleState int

const (
	stateUnstarted lifecycleState = iota
	stateJoining
	stateReady
	stateLeaving
	stateDestroyed
)

var (
	ErrAlreadyReady      = errors.New("ringpop: already ready")
	ErrRedundantLeave    = errors.New("ringpop: redundant leave")
	ErrInvalidLeaveLocal = errors.New("ringpop: local member was never added")
	ErrNotReady          = errors.New("ringpop: not ready")
	ErrDestroyed         = errors.New("ringpop: destroyed")
)

// Node is the facade wiring together the membership table, dissemination
// buffer, hash ring, suspicion service, gossip loop, and admin joiner (spec
// §4.8). Grounded on leesd556-swim's top-level SWIM struct: same
// construction order (table, then stores, then transport-dependent pieces),
// same Start/Join/ShutDown shape generalized to the full lifecycle state
// machine the spec calls for.
type Node struct {
	config *Config

	mu    sync.RWMutex
	state lifecycleState

	table         *Membership
	dissemination *Dissemination
	iterator      *memberIterator
	suspicion     *SuspicionService
	ring          *ring.Ring
	gossip        *gossip
	joiner        *adminJoiner

	readyCh chan struct{}
}

// New wires a Node from config. The node is not started until Bootstrap is
// called.
func New(config *Config) (*Node, error) {
	if config.App == "" {
		return nil, errors.New("ringpop: Config.App is required")
	}
	if config.HostPort == "" {
		return nil, errors.New("ringpop: Config.HostPort is required")
	}
	if config.Channel == nil {
		return nil, errors.New("ringpop: Config.Channel is required")
	}

	cfg := config.withDefaults()

	n := &Node{
		config:  cfg,
		state:   stateUnstarted,
		readyCh: make(chan struct{}),
	}

	n.table = NewMembership(cfg.HostPort)
	n.dissemination = NewDissemination(func() int { return len(n.table.Members()) })
	n.iterator = newMemberIterator(n.table)
	n.ring = ring.New(cfg.VirtualNodes)
	n.suspicion = NewSuspicionService(cfg.SuspicionTimeout, n.onSuspicionExpired)
	n.gossip = newGossip(n)
	n.joiner = newAdminJoiner(n)

	// Wire the facade's own membership-event reactions (spec §4.8 table):
	// ring membership, suspicion timers, and piggyback dissemination all
	// ride on the same table events, in the order the spec specifies.
	n.table.Subscribe(n)

	cfg.Channel.RegisterHandler(n)

	return n, nil
}

// --- Subscriber implementation: the facade's own event reactions ---

func (n *Node) OnNew(c Change) {
	n.ring.AddServer(c.Address)
	n.dissemination.AddChange(c)
	n.config.Stats.IncCounter(n.stat("membership-update.new"))
	n.statGauge()
}

func (n *Node) OnAlive(c Change) {
	n.ring.AddServer(c.Address)
	n.suspicion.Stop(c.Address)
	n.dissemination.AddChange(c)
	n.config.Stats.IncCounter(n.stat("membership-update.alive"))
	n.statGauge()
}

func (n *Node) OnSuspect(c Change) {
	n.suspicion.Start(Member{Address: c.Address, Status: c.Status, Incarnation: c.Incarnation})
	n.dissemination.AddChange(c)
	n.config.Stats.IncCounter(n.stat("membership-update.suspect"))
	n.statGauge()
}

func (n *Node) OnFaulty(c Change) {
	n.ring.RemoveServer(c.Address)
	n.suspicion.Stop(c.Address)
	n.dissemination.AddChange(c)
	n.config.Stats.IncCounter(n.stat("membership-update.faulty"))
	n.statGauge()
}

func (n *Node) OnLeave(c Change) {
	n.ring.RemoveServer(c.Address)
	n.suspicion.Stop(c.Address)
	n.dissemination.AddChange(c)
	n.config.Stats.IncCounter(n.stat("membership-update.leave"))
	n.statGauge()
}

// stat prefixes name with this node's ringpop.<host_port>. namespace, per
// spec §6's stats naming convention.
func (n *Node) stat(name string) string {
	return "ringpop." + n.config.HostPort + "." + name
}

func (n *Node) statGauge() {
	n.config.Stats.UpdateGauge(n.stat("num-members"), int64(len(n.table.Members())))
}

func (n *Node) countUpdates(events []Event) {
	if len(events) > 0 {
		n.config.Stats.IncCounter(n.stat("updates"))
	}
}

func (n *Node) onSuspicionExpired(c Change) {
	events := n.table.Update([]Change{c})
	n.countUpdates(events)
}

// --- lifecycle ---

func (n *Node) getState() lifecycleState {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.state
}

func (n *Node) setState(s lifecycleState) {
	n.mu.Lock()
	n.state = s
	n.mu.Unlock()
}

func (n *Node) isDestroyed() bool {
	return n.getState() == stateDestroyed
}

// Bootstrap resolves the bootstrap hosts from Config.BootstrapHosts, or
// Config.BootstrapFile when that list is empty (spec §6), adds the local
// member, and runs the admin joiner. Idempotent: bootstrapping an
// already-ready node fails (spec §4.8).
func (n *Node) Bootstrap(ctx context.Context) error {
	if n.getState() != stateUnstarted {
		return ErrAlreadyReady
	}
	n.setState(stateJoining)

	hosts, err := resolveBootstrapHosts(n.config)
	if err != nil {
		n.setState(stateUnstarted)
		return err
	}

	present := false
	for _, h := range hosts {
		if h == n.config.HostPort {
			present = true
			break
		}
	}
	if !present {
		n.config.Logger.Warn(map[string]interface{}{"hostport": n.config.HostPort},
			"ringpop: local address is not present in the bootstrap host list")
	}
	if hostListFormatWarning(hosts) {
		n.config.Logger.Warn(nil, "ringpop: bootstrap host list mixes IP addresses and hostnames")
	}

	n.table.AddLocalMember()

	targets := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if h != n.config.HostPort {
			targets = append(targets, h)
		}
	}

	if len(targets) > 0 {
		result, err := n.joiner.Join(ctx, targets)
		if err != nil {
			n.setState(stateUnstarted)
			return err
		}
		events := n.table.Update(result.Membership)
		n.countUpdates(events)
	}

	n.setState(stateReady)
	close(n.readyCh)
	n.gossip.start()
	n.config.Logger.Info(map[string]interface{}{"hostport": n.config.HostPort}, "ringpop: ready")
	return nil
}

// Ready returns a channel that is closed once Bootstrap succeeds.
func (n *Node) Ready() <-chan struct{} {
	return n.readyCh
}

// AdminLeave marks the local member as leaving and stops gossip and
// suspicion; the leave status then spreads purely via piggyback on any
// subsequent inbound protocol message received by other nodes (spec §4.8,
// §9 Open Question (b)).
func (n *Node) AdminLeave() error {
	if n.getState() == stateDestroyed {
		return ErrDestroyed
	}
	local := n.table.Local()
	if local.Address == "" {
		return ErrInvalidLeaveLocal
	}
	if local.Status == Leave {
		return ErrRedundantLeave
	}

	n.gossip.stop()
	n.suspicion.StopAll()
	n.table.MakeLeave()
	n.setState(stateLeaving)
	return nil
}

// Rejoin reverses AdminLeave: marks the local member alive at a fresh
// incarnation, re-enables the suspicion service, and restarts gossip.
func (n *Node) Rejoin() error {
	if n.getState() == stateDestroyed {
		return ErrDestroyed
	}
	n.suspicion.Reenable()
	n.table.MakeAlive()
	n.setState(stateReady)
	n.gossip.start()
	return nil
}

// Lookup returns the address of the node currently owning key on the hash
// ring, or this node's own address if the ring is empty (spec §4.8).
func (n *Node) Lookup(key string) string {
	n.config.Stats.IncCounter(n.stat("lookup"))
	if addr, ok := n.ring.Lookup(key); ok {
		return addr
	}
	return n.config.HostPort
}

// Destroy stops gossip and suspicion, cancels any in-flight admin join, and
// marks the node destroyed; every later callback observes this and
// short-circuits (spec §4.8, §5).
func (n *Node) Destroy() {
	if n.getState() == stateDestroyed {
		return
	}
	n.gossip.stop()
	n.suspicion.StopAll()
	n.joiner.Destroy()
	n.setState(stateDestroyed)
}

// --- inbound protocol handling (Handler implementation) ---

// HandleMessage dispatches an inbound protocol message to the matching RPC
// handler, matching spec §6's four named RPCs.
func (n *Node) HandleMessage(ctx context.Context, msg *pb.Message) (*pb.Message, error) {
	switch payload := msg.GetPayload().(type) {
	case *pb.Message_Join:
		n.config.Stats.IncCounter(n.stat("join.recv"))
		resp := n.handleJoin(payload.Join)
		return &pb.Message{Id: msg.Id, Source: n.config.HostPort, Payload: &pb.Message_JoinResponse{JoinResponse: resp}}, nil

	case *pb.Message_Ping:
		n.config.Stats.IncCounter(n.stat("ping.recv"))
		resp := n.handlePing(payload.Ping)
		return &pb.Message{Id: msg.Id, Source: n.config.HostPort, Payload: &pb.Message_PingResponse{PingResponse: resp}}, nil

	case *pb.Message_PingReq:
		n.config.Stats.IncCounter(n.stat("ping-req.recv"))
		resp := n.handlePingReq(ctx, payload.PingReq)
		return &pb.Message{Id: msg.Id, Source: n.config.HostPort, Payload: &pb.Message_PingReqResponse{PingReqResponse: resp}}, nil

	case *pb.Message_Leave:
		resp := n.handleLeave(payload.Leave)
		return &pb.Message{Id: msg.Id, Source: n.config.HostPort, Payload: &pb.Message_LeaveResponse{LeaveResponse: resp}}, nil

	default:
		return nil, errors.New("ringpop: unrecognized message payload")
	}
}

// handleJoin enforces the rejection rules of spec §4.7 and, on success,
// adds the joiner and replies with a full membership snapshot.
func (n *Node) handleJoin(req *pb.JoinRequest) *pb.JoinResponse {
	if req.Source == n.config.HostPort {
		return &pb.JoinResponse{ErrorType: errTypeInvalidJoinSource}
	}
	if req.App != n.config.App {
		return &pb.JoinResponse{ErrorType: errTypeInvalidJoinApp}
	}

	n.table.AddMember(req.Source, req.IncarnationNumber)

	members := n.table.Members()
	changes := make([]Change, 0, len(members))
	for _, m := range members {
		changes = append(changes, Change{Address: m.Address, Status: m.Status, Incarnation: m.Incarnation})
	}

	return &pb.JoinResponse{
		App:         n.config.App,
		Coordinator: n.config.HostPort,
		Membership:  changesToPB(changes),
	}
}

func (n *Node) handlePing(req *pb.PingRequest) *pb.PingResponse {
	events := n.table.Update(pbToChanges(req.Changes))
	n.countUpdates(events)

	localChecksum := n.table.Checksum()
	full := fullStateChanges(n.table)
	out := n.dissemination.GetChanges(req.Checksum, localChecksum, full)

	return &pb.PingResponse{Changes: changesToPB(out)}
}

// handlePingReq performs our own direct ping of req.Target on the
// requester's behalf and reports the outcome (spec §4.6 step 6).
func (n *Node) handlePingReq(ctx context.Context, req *pb.PingReqRequest) *pb.PingReqResponse {
	events := n.table.Update(pbToChanges(req.Changes))
	n.countUpdates(events)

	pingCtx, cancel := context.WithTimeout(ctx, n.config.PingTimeout)
	defer cancel()

	pingStart := time.Now()
	ok, err := n.sendPing(pingCtx, req.Target)
	n.config.Stats.RecordTimer(n.stat("ping-req-ping"), time.Since(pingStart))
	if err != nil {
		ok = false
	}

	localChecksum := n.table.Checksum()
	full := fullStateChanges(n.table)
	changes := n.dissemination.GetChanges(req.Checksum, localChecksum, full)

	return &pb.PingReqResponse{
		Changes:    changesToPB(changes),
		PingStatus: ok,
		Target:     req.Target,
	}
}

// handleLeave is an empty acknowledgment: leave propagates entirely via
// piggyback (spec §6, §9 Open Question (b)).
func (n *Node) handleLeave(_ *pb.LeaveRequest) *pb.LeaveResponse {
	return &pb.LeaveResponse{}
}

func fullStateChanges(table *Membership) []Change {
	members := table.Members()
	out := make([]Change, 0, len(members))
	for _, m := range members {
		out = append(out, Change{Address: m.Address, Status: m.Status, Incarnation: m.Incarnation})
	}
	return out
}
