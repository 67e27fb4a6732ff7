package pb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	msg := &Message{
		Id:     "abc123",
		Source: "10.0.0.1:3000",
		Payload: &Message_Ping{Ping: &PingRequest{
			Source:   "10.0.0.1:3000",
			Checksum: 42,
			Changes: []*Change{
				{Address: "10.0.0.2:3000", Status: "alive", IncarnationNumber: 7, PiggybackCount: 1},
			},
		}},
	}

	data, err := Encode(msg)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, msg.Id, decoded.Id)
	assert.Equal(t, msg.Source, decoded.Source)

	ping := decoded.GetPing()
	require.NotNil(t, ping)
	assert.Equal(t, uint32(42), ping.Checksum)
	require.Len(t, ping.Changes, 1)
	assert.Equal(t, "10.0.0.2:3000", ping.Changes[0].Address)
	assert.Equal(t, int64(7), ping.Changes[0].IncarnationNumber)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte{0xff, 0xff, 0xff, 0x00, 0x01})
	assert.Error(t, err)
}

func TestNewIDIsUnique(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
