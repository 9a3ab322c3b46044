package session

import (
	"testing"

	"github.com/danmuck/imposterctl/internal/protocol"
	"github.com/danmuck/imposterctl/internal/testutil/testlog"
)

func TestSnapshotIsIsolatedFromStore(t *testing.T) {
	testlog.Start(t)
	st := testStore(t)
	apply(t, st, protocol.EventPlayerList, roster("Ana", "Bob"))
	apply(t, st, protocol.EventAllCluesRevealed, protocol.CluesRevealedPayload{Clues: map[string]string{"Ana": "cold"}})
	apply(t, st, protocol.EventVoteResults, protocol.VoteResultsPayload{EliminatedName: "Bob", Tally: map[string]int{"Bob": 2}})

	snap := st.Snapshot()
	snap.Players[0].Name = "Mallory"
	snap.RevealedClues["Ana"] = "tampered"
	snap.Messages[1].Tally["Bob"] = 99
	snap.VotingProgress.Voters = append(snap.VotingProgress.Voters, "Mallory")

	fresh := st.Snapshot()
	if fresh.Players[0].Name != "Ana" {
		t.Fatalf("snapshot mutation reached store roster")
	}
	if fresh.RevealedClues["Ana"] != "cold" {
		t.Fatalf("snapshot mutation reached store clues")
	}
	if fresh.Messages[1].Tally["Bob"] != 2 {
		t.Fatalf("snapshot mutation reached message tally")
	}
	if len(fresh.VotingProgress.Voters) != 0 {
		t.Fatalf("snapshot mutation reached voting progress")
	}
}

func TestSnapshotKeepsEmptySlicesNonNil(t *testing.T) {
	testlog.Start(t)
	st := testStore(t)
	snap := st.Snapshot()
	if snap.Players == nil {
		t.Fatalf("empty roster must stay non-nil")
	}
	if snap.VotingProgress.Voters == nil {
		t.Fatalf("empty voter list must stay non-nil")
	}
	if snap.Messages == nil {
		t.Fatalf("empty message log must stay non-nil")
	}
}

func TestApplyReturnsResultingSnapshot(t *testing.T) {
	testlog.Start(t)
	st := testStore(t)
	state := apply(t, st, protocol.EventSystemMessage, protocol.SystemMessagePayload{Text: "hello"})
	if len(state.Messages) != 1 || state.Messages[0].Text != "hello" {
		t.Fatalf("apply did not return resulting state: %+v", state.Messages)
	}
}

func TestOnChangeFiresPerAppliedEvent(t *testing.T) {
	testlog.Start(t)
	st := testStore(t)
	var seen []int
	st.SetOnChange(func(s State) {
		seen = append(seen, len(s.Messages))
	})

	apply(t, st, protocol.EventConnect, nil)
	apply(t, st, protocol.EventSystemMessage, protocol.SystemMessagePayload{Text: "x"})
	st.Apply(protocol.Envelope{Event: "unknown_kind"})

	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(seen))
	}
	if seen[0] != 1 || seen[1] != 2 {
		t.Fatalf("unexpected notification order: %v", seen)
	}
}

func TestMessageIDsAreAssignedAndUnique(t *testing.T) {
	testlog.Start(t)
	st := testStore(t)
	apply(t, st, protocol.EventSystemMessage, protocol.SystemMessagePayload{Text: "a"})
	state := apply(t, st, protocol.EventSystemMessage, protocol.SystemMessagePayload{Text: "b"})

	if state.Messages[0].ID == "" || state.Messages[1].ID == "" {
		t.Fatalf("message missing local id")
	}
	if state.Messages[0].ID == state.Messages[1].ID {
		t.Fatalf("duplicate message ids")
	}
}
