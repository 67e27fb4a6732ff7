package ring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing_LookupEmptyRing(t *testing.T) {
	r := New(0)
	_, ok := r.Lookup("anything")
	assert.False(t, ok)
}

func TestRing_LookupIsDeterministic(t *testing.T) {
	r := New(10)
	r.AddServer("a:1")
	r.AddServer("b:1")
	r.AddServer("c:1")

	owner1, ok1 := r.Lookup("key-42")
	owner2, ok2 := r.Lookup("key-42")
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, owner1, owner2)
}

func TestRing_AddServerIsIdempotent(t *testing.T) {
	r := New(10)
	r.AddServer("a:1")
	before := r.Addresses()
	r.AddServer("a:1")
	after := r.Addresses()
	assert.Equal(t, before, after)
}

func TestRing_RemoveServerIsIdempotent(t *testing.T) {
	r := New(10)
	r.AddServer("a:1")
	r.RemoveServer("a:1")
	before := r.Addresses()
	r.RemoveServer("a:1")
	assert.Equal(t, before, r.Addresses())
	assert.False(t, r.Contains("a:1"))
}

func TestRing_LookupOnlyReturnsLiveServers(t *testing.T) {
	r := New(50)
	r.AddServer("a:1")
	r.AddServer("b:1")

	for i := 0; i < 200; i++ {
		owner, ok := r.Lookup(fmt.Sprintf("key-%d", i))
		require.True(t, ok)
		assert.True(t, owner == "a:1" || owner == "b:1")
	}
}

func TestRing_RemovingServerOnlyReassignsItsOwnKeys(t *testing.T) {
	r := New(50)
	r.AddServer("a:1")
	r.AddServer("b:1")
	r.AddServer("c:1")

	keys := make([]string, 500)
	before := make([]string, 500)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
		owner, _ := r.Lookup(keys[i])
		before[i] = owner
	}

	r.RemoveServer("c:1")

	for i, k := range keys {
		owner, _ := r.Lookup(k)
		if before[i] != "c:1" {
			assert.Equal(t, before[i], owner, "a key not owned by the removed server must keep its owner")
		} else {
			assert.NotEqual(t, "c:1", owner)
		}
	}
}

type recordingWatcher struct {
	calls [][]string
}

func (w *recordingWatcher) OnRingChanged(addresses []string) {
	w.calls = append(w.calls, addresses)
}

func TestRing_WatcherNotifiedOnChange(t *testing.T) {
	r := New(10)
	w := &recordingWatcher{}
	r.AddWatcher(w)

	r.AddServer("a:1")
	require.Len(t, w.calls, 1)
	assert.Equal(t, []string{"a:1"}, w.calls[0])

	r.AddServer("a:1") // idempotent, must not notify again
	assert.Len(t, w.calls, 1)

	r.RemoveServer("a:1")
	require.Len(t, w.calls, 2)
	assert.Empty(t, w.calls[1])
}
