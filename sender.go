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
	"time"

	"github.com/DE-labtory/ringpop/pb"
)

// ErrDestroyedWhilstPinging is returned to a ping's caller when destroy()
// completed before the reply arrived (spec §5, §7).
var ErrDestroyedWhilstPinging = errors.New("ringpop: destroyed whilst pinging")

// changesToPB / pbToChanges convert between the internal Change type and its
// wire representation.
func changesToPB(changes []Change) []*pb.Change {
	out := make([]*pb.Change, 0, len(changes))
	for _, c := range changes {
		out = append(out, &pb.Change{
			Address:           c.Address,
			Status:            c.Status,
			IncarnationNumber: c.Incarnation,
			PiggybackCount:    uint32(c.PiggybackCount),
		})
	}
	return out
}

func pbToChanges(changes []*pb.Change) []Change {
	out := make([]Change, 0, len(changes))
	for _, c := range changes {
		out = append(out, Change{
			Address:        c.GetAddress(),
			Status:         c.GetStatus(),
			Incarnation:    c.GetIncarnationNumber(),
			PiggybackCount: int(c.GetPiggybackCount()),
		})
	}
	return out
}

// sendPing issues a direct ping to target and applies any changes in the
// reply. Returns (true, nil) on a timely ack, (false, nil) on a transport
// failure or timeout (a protocol signal, never surfaced as an error to the
// gossip loop's caller per spec §7), and a non-nil error only for
// destroyed-whilst-pinging.
func (n *Node) sendPing(ctx context.Context, target string) (bool, error) {
	req := &pb.PingRequest{
		Source:   n.config.HostPort,
		Checksum: n.table.Checksum(),
		Changes:  changesToPB(n.dissemination.GetChanges(0, n.table.Checksum(), nil)),
	}
	msg := &pb.Message{
		Id:      pb.NewID(),
		Source:  n.config.HostPort,
		Payload: &pb.Message_Ping{Ping: req},
	}

	n.config.Stats.IncCounter(n.stat("ping.send"))
	reply, err := n.config.Channel.Send(ctx, target, msg)

	if n.isDestroyed() {
		return false, ErrDestroyedWhilstPinging
	}
	if err != nil || reply == nil {
		return false, nil
	}
	resp := reply.GetPingResponse()
	if resp == nil {
		return false, nil
	}
	events := n.table.Update(pbToChanges(resp.Changes))
	n.countUpdates(events)
	return true, nil
}

// sendPingReq asks relay to indirectly ping target on our behalf, returning
// whether relay reported success and any changes it piggybacked back.
func (n *Node) sendPingReq(ctx context.Context, relay, target string) (bool, []Change, error) {
	req := &pb.PingReqRequest{
		Source:   n.config.HostPort,
		Target:   target,
		Checksum: n.table.Checksum(),
		Changes:  changesToPB(n.dissemination.GetChanges(0, n.table.Checksum(), nil)),
	}
	msg := &pb.Message{
		Id:      pb.NewID(),
		Source:  n.config.HostPort,
		Payload: &pb.Message_PingReq{PingReq: req},
	}

	n.config.Stats.IncCounter(n.stat("ping-req.send"))
	start := time.Now()
	reply, err := n.config.Channel.Send(ctx, relay, msg)
	n.config.Stats.RecordTimer(n.stat("ping-req"), time.Since(start))

	if n.isDestroyed() {
		return false, nil, ErrDestroyedWhilstPinging
	}
	if err != nil || reply == nil {
		return false, nil, nil
	}
	resp := reply.GetPingReqResponse()
	if resp == nil {
		return false, nil, nil
	}
	changes := pbToChanges(resp.Changes)
	return resp.PingStatus, changes, nil
}
