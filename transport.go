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

	"github.com/DE-labtory/ringpop/pb"
)

// Handler processes one inbound protocol message and produces its reply.
// The facade implements Handler; a Channel implementation delivers every
// inbound message to whatever Handler was registered with it.
type Handler interface {
	HandleMessage(ctx context.Context, msg *pb.Message) (*pb.Message, error)
}

// Channel is the wire transport used to exchange protocol messages (spec
// §1, out of scope: "the wire transport used to send protocol messages and
// forwarded application requests" is supplied by the caller). The library
// never constructs one and never closes it — the caller owns its lifecycle,
// including closing it in response to a destroy() call (spec §5).
//
// Grounded on beenet's NetworkInterface (SendMessage/BroadcastMessage) and
// leesd556-swim's MessageEndpoint/PacketTransport split, collapsed to a
// single request/reply Send plus a handler-registration hook since this
// spec needs only point-to-point RPC, not broadcast.
type Channel interface {
	// Send delivers msg to address and blocks for its reply or for ctx to
	// expire. Implementations should treat a context deadline exceeded (or
	// any transport-level failure) as an ordinary, expected outcome: the
	// gossip loop turns it into a suspect transition rather than surfacing
	// it as an error to any caller (spec §7).
	Send(ctx context.Context, address string, msg *pb.Message) (*pb.Message, error)

	// RegisterHandler installs the receiver for inbound messages. Called
	// once, before Bootstrap.
	RegisterHandler(h Handler)
}
