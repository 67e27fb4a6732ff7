package transport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DE-labtory/ringpop"
)

func newTestNode(t *testing.T, net *Network, app, hostport string, bootstrap []string) *ringpop.Node {
	t.Helper()
	ch := net.NewChannel(hostport)
	node, err := ringpop.New(&ringpop.Config{
		App:               app,
		HostPort:          hostport,
		Channel:           ch,
		BootstrapHosts:    bootstrap,
		MinProtocolPeriod: 30 * time.Millisecond,
		PingTimeout:       200 * time.Millisecond,
		PingReqTimeout:    200 * time.Millisecond,
		SuspicionTimeout:  150 * time.Millisecond,
		MaxJoinDuration:   2 * time.Second,
	})
	require.NoError(t, err)
	return node
}

// TestTwoNodeJoin covers spec scenario S1: a second node joins via the
// first's host:port, and its lookups then resolve to one of the two nodes.
func TestTwoNodeJoin(t *testing.T) {
	net := NewNetwork()
	defer net.Remove("a:1")
	defer net.Remove("b:1")

	a := newTestNode(t, net, "myapp", "a:1", []string{"a:1"})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, a.Bootstrap(ctx))
	defer a.Destroy()

	b := newTestNode(t, net, "myapp", "b:1", []string{"a:1", "b:1"})
	ctx2, cancel2 := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel2()
	require.NoError(t, b.Bootstrap(ctx2))
	defer b.Destroy()

	owner := b.Lookup("some-key")
	assert.True(t, owner == "a:1" || owner == "b:1")
}

// TestCrossAppJoinRejected covers spec scenario S5: a join request bearing a
// different App name is rejected, so the joiner's Bootstrap returns an error.
func TestCrossAppJoinRejected(t *testing.T) {
	net := NewNetwork()
	defer net.Remove("a:1")
	defer net.Remove("b:1")

	a := newTestNode(t, net, "myapp", "a:1", []string{"a:1"})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, a.Bootstrap(ctx))
	defer a.Destroy()

	b := newTestNode(t, net, "otherapp", "b:1", []string{"a:1", "b:1"})
	ctx2, cancel2 := context.WithTimeout(context.Background(), time.Second)
	defer cancel2()
	err := b.Bootstrap(ctx2)
	assert.Error(t, err, "a join from a differing app name must be rejected")
}

// TestLookupFallsBackToSelfBeforeBootstrap exercises the empty-ring
// fallback named in spec §4.8 without requiring a full bootstrap round trip.
func TestLookupFallsBackToSelfBeforeBootstrap(t *testing.T) {
	net := NewNetwork()
	defer net.Remove("solo:1")

	node := newTestNode(t, net, "myapp", "solo:1", []string{"solo:1"})
	assert.Equal(t, "solo:1", node.Lookup("anything"))
}
