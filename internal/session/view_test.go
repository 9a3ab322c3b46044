package session

import (
	"testing"

	"github.com/danmuck/imposterctl/internal/protocol"
	"github.com/danmuck/imposterctl/internal/testutil/testlog"
)

func TestSelfAbsentBeforeFirstRosterPush(t *testing.T) {
	testlog.Start(t)
	st := testStore(t)
	apply(t, st, protocol.EventConnect, nil)

	// Race between join and the first roster push: the local identity is
	// known before the server reflects it.
	if _, ok := st.Snapshot().Self("Ana"); ok {
		t.Fatalf("self should be absent before roster push")
	}

	state := apply(t, st, protocol.EventPlayerList, roster("Ana", "Bob"))
	self, ok := state.Self("Ana")
	if !ok || self.ID != "sid-Ana" {
		t.Fatalf("unexpected self: %+v ok=%v", self, ok)
	}
}

func TestIsHostIsPositional(t *testing.T) {
	testlog.Start(t)
	st := testStore(t)
	state := apply(t, st, protocol.EventPlayerList, roster("Ana", "Bob"))
	if !state.IsHost("Ana") {
		t.Fatalf("position 0 should be host")
	}
	if state.IsHost("Bob") {
		t.Fatalf("position 1 should not be host")
	}
	if NewState().IsHost("Ana") {
		t.Fatalf("empty roster has no host")
	}
}

func TestHostChangesSilentlyOnRosterReorder(t *testing.T) {
	testlog.Start(t)
	st := testStore(t)
	apply(t, st, protocol.EventPlayerList, roster("Ana", "Bob"))
	if !st.Snapshot().IsHost("Ana") {
		t.Fatalf("expected Ana as host")
	}

	// No dedicated "host changed" event exists; the reorder alone must
	// flip the derived value on the next read.
	state := apply(t, st, protocol.EventPlayerList, roster("Bob", "Ana"))
	if state.IsHost("Ana") {
		t.Fatalf("Ana should no longer be host")
	}
	if !state.IsHost("Bob") {
		t.Fatalf("Bob should now be host")
	}
}
