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

package pb

import (
	proto "github.com/golang/protobuf/proto"
	"github.com/rs/xid"
)

// Encode serializes a Message to its wire representation.
func Encode(msg *Message) ([]byte, error) {
	return proto.Marshal(msg)
}

// Decode parses a wire representation produced by Encode.
func Decode(data []byte) (*Message, error) {
	msg := &Message{}
	if err := proto.Unmarshal(data, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// NewID mints a message correlation id. The protocol itself never inspects
// Id; it exists so a Channel implementation has something to key replies on.
func NewID() string {
	return xid.New().String()
}
