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
	"context"
	"errors"
	"math/rand"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/DE-labtory/ringpop/pb"
)

// Join-rejection sentinels the receiver of a `join` RPC replies with (spec
// §4.7). Encoded on the wire as JoinResponse.ErrorType.
const (
	errTypeInvalidJoinSource = "ringpop.invalid-join.source"
	errTypeInvalidJoinApp    = "ringpop.invalid-join.app"
)

var (
	// ErrInvalidJoinSource is returned to a join attempt whose source
	// address is this node's own address.
	ErrInvalidJoinSource = errors.New("ringpop: invalid join source")
	// ErrInvalidJoinApp is returned to a join attempt from a different app.
	ErrInvalidJoinApp = errors.New("ringpop: invalid join app")
	// errJoined is the errgroup sentinel used to cancel every other
	// in-flight join attempt once one target has answered successfully.
	errJoined = errors.New("ringpop: join succeeded")
)

// JoinResult is what a successful admin join produced.
type JoinResult struct {
	Coordinator string
	Membership  []Change
}

// adminJoiner drives the bounded-duration fan-out join attempt described in
// spec §4.7. Grounded on leesd556-swim's k-way fan-out shape (indirect ping)
// applied to the join RPC instead, using golang.org/x/sync/errgroup (the
// teacher's own indirect dependency, promoted to direct use here) to manage
// the worker pool and cancel stragglers as soon as one target succeeds.
type adminJoiner struct {
	node *Node

	mu        sync.Mutex
	cancel    context.CancelFunc
	completed bool
}

func newAdminJoiner(n *Node) *adminJoiner {
	return &adminJoiner{node: n}
}

// Join attempts to join the cluster via targets (bootstrap hosts, excluding
// self), succeeding as soon as any single target accepts.
func (j *adminJoiner) Join(ctx context.Context, targets []string) (*JoinResult, error) {
	ctx, cancel := context.WithTimeout(ctx, j.node.config.MaxJoinDuration)

	j.mu.Lock()
	j.cancel = cancel
	j.completed = false
	j.mu.Unlock()
	defer func() {
		j.mu.Lock()
		j.completed = true
		j.mu.Unlock()
		cancel()
	}()

	pool := newTargetPool(targets)
	joinSize := j.node.config.JoinSize
	if joinSize > len(targets) {
		joinSize = len(targets)
	}
	if joinSize == 0 {
		return nil, errors.New("ringpop: no bootstrap targets available")
	}

	resultCh := make(chan *JoinResult, 1)
	group, gctx := errgroup.WithContext(ctx)

	for i := 0; i < joinSize; i++ {
		group.Go(func() error {
			for {
				target, ok := pool.take()
				if !ok {
					return nil // pool exhausted; not this worker's failure alone
				}
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				result, err := j.attempt(gctx, target)
				if err != nil {
					continue // try the next target from the pool
				}
				select {
				case resultCh <- result:
				default:
				}
				return errJoined
			}
		})
	}

	err := group.Wait()
	if err == errJoined {
		return <-resultCh, nil
	}
	if err != nil && err != context.Canceled {
		return nil, err
	}
	return nil, errors.New("ringpop: join failed: bootstrap targets exhausted within max join duration")
}

// Destroy cancels any in-flight join and prevents its completion callback
// (the return from Join) from being acted upon twice.
func (j *adminJoiner) Destroy() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cancel != nil && !j.completed {
		j.cancel()
	}
	j.completed = true
}

func (j *adminJoiner) attempt(ctx context.Context, target string) (*JoinResult, error) {
	n := j.node
	local := n.table.Local()

	req := &pb.JoinRequest{
		App:               n.config.App,
		Source:            n.config.HostPort,
		IncarnationNumber: local.Incarnation,
	}
	msg := &pb.Message{
		Id:      pb.NewID(),
		Source:  n.config.HostPort,
		Payload: &pb.Message_Join{Join: req},
	}

	reply, err := n.config.Channel.Send(ctx, target, msg)
	if err != nil || reply == nil {
		return nil, errors.New("ringpop: join request failed")
	}
	resp := reply.GetJoinResponse()
	if resp == nil {
		return nil, errors.New("ringpop: malformed join response")
	}
	switch resp.ErrorType {
	case errTypeInvalidJoinSource:
		return nil, ErrInvalidJoinSource
	case errTypeInvalidJoinApp:
		return nil, ErrInvalidJoinApp
	case "":
		// success
	default:
		return nil, errors.New("ringpop: join rejected: " + resp.ErrorType)
	}

	return &JoinResult{
		Coordinator: resp.Coordinator,
		Membership:  pbToChanges(resp.Membership),
	}, nil
}

// targetPool is a concurrency-safe bag of candidate bootstrap hosts that
// shrinks as hosts are tried, supporting the "refill up to join_size from
// the remaining pool" fan-out rule of spec §4.7.
type targetPool struct {
	mu   sync.Mutex
	hint []string
}

func newTargetPool(targets []string) *targetPool {
	shuffled := make([]string, len(targets))
	copy(shuffled, targets)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return &targetPool{hint: shuffled}
}

func (p *targetPool) take() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.hint) == 0 {
		return "", false
	}
	t := p.hint[0]
	p.hint = p.hint[1:]
	return t, true
}
