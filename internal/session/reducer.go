package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danmuck/imposterctl/internal/protocol"
)

// newMessageID allocates client-local message IDs. Overridable in tests for
// deterministic logs.
var newMessageID = uuid.NewString

// reduce folds one inbound envelope into state and reports whether the
// event name was recognized. Unknown events leave state untouched: ignoring
// them keeps the client forward-compatible with newer servers.
//
// Aside from message ID allocation, reduce is a pure function of
// (state, envelope, now).
func reduce(s State, env protocol.Envelope, now time.Time) (State, bool) {
	switch env.Event {
	case protocol.EventConnect:
		s.Connected = true
		return appendSystem(s, "Connected", now), true

	case protocol.EventDisconnect:
		// A transport blip, not a session reset: roster, role, word and
		// messages all survive.
		s.Connected = false
		return appendSystem(s, "Disconnected", now), true

	case protocol.EventPlayerList:
		list := protocol.DecodePlayerList(env.Data)
		players := make([]Player, len(list))
		for i, p := range list {
			players[i] = Player{ID: p.ID, Name: p.Name, Alive: p.Alive}
		}
		s.Players = players
		return s, true

	case protocol.EventSystemMessage:
		var payload protocol.SystemMessagePayload
		protocol.DecodePayload(env.Data, &payload)
		return appendSystem(s, payload.Text, stamp(payload.Time, now)), true

	case protocol.EventChatMessage:
		var payload protocol.ChatMessagePayload
		protocol.DecodePayload(env.Data, &payload)
		return appendMessage(s, Message{
			Kind: MessageChat,
			From: payload.From,
			Text: payload.Text,
			Time: stamp(payload.Time, now),
		}), true

	case protocol.EventGameStarted:
		var payload protocol.GameStartedPayload
		protocol.DecodePayload(env.Data, &payload)
		s = clearRound(s)
		s.GameStarted = true
		return appendSystem(s, fmt.Sprintf("Game started (%d players)", payload.NumPlayers), now), true

	case protocol.EventYourRole:
		var payload protocol.RolePayload
		protocol.DecodePayload(env.Data, &payload)
		s.Role = payload.Role
		return appendSystem(s, fmt.Sprintf("You are %s", payload.Role), now), true

	case protocol.EventRole:
		// Compatibility alias: the server sends this alongside
		// your_role, so it updates the field without a second line
		// in the message log.
		var payload protocol.RolePayload
		protocol.DecodePayload(env.Data, &payload)
		s.Role = payload.Role
		return s, true

	case protocol.EventYourWord:
		var payload protocol.WordPayload
		protocol.DecodePayload(env.Data, &payload)
		s.Word = payload.Word
		return appendSystem(s, "Your word assigned", now), true

	case protocol.EventWord:
		// Compatibility alias for your_word, same as role above.
		var payload protocol.WordPayload
		protocol.DecodePayload(env.Data, &payload)
		s.Word = payload.Word
		return s, true

	case protocol.EventClueSubmitted:
		// Informational only: no clue state is collected client-side
		// before the reveal.
		var payload protocol.ClueSubmittedPayload
		protocol.DecodePayload(env.Data, &payload)
		return appendSystem(s, fmt.Sprintf("%s submitted a clue", payload.Name), now), true

	case protocol.EventAllCluesRevealed:
		var payload protocol.CluesRevealedPayload
		protocol.DecodePayload(env.Data, &payload)
		s.CluesRevealed = true
		if payload.Clues == nil {
			payload.Clues = map[string]string{}
		}
		s.RevealedClues = payload.Clues
		return appendSystem(s, "All clues revealed", now), true

	case protocol.EventVotingStarted:
		var payload protocol.VotingStartedPayload
		protocol.DecodePayload(env.Data, &payload)
		s = appendSystem(s, "Voting started", now)
		s.VotingProgress = VotingProgress{
			Voters:     []string{},
			AliveCount: payload.AliveCount,
		}
		return s, true

	case protocol.EventVoteCast:
		// Informational only: progress moves on voting_update, not here.
		var payload protocol.VoteCastPayload
		protocol.DecodePayload(env.Data, &payload)
		return appendMessage(s, Message{
			Kind: MessageVote,
			Text: fmt.Sprintf("%s voted for %s", payload.VoterName, payload.TargetName),
			Time: stamp(payload.Time, now),
		}), true

	case protocol.EventVotingUpdate:
		var payload protocol.VotingUpdatePayload
		protocol.DecodePayload(env.Data, &payload)
		if payload.Voters == nil {
			payload.Voters = []string{}
		}
		s.VotingProgress = VotingProgress{
			Voters:     payload.Voters,
			VotesCount: payload.VotesCount,
			AliveCount: payload.AliveCount,
		}
		return s, true

	case protocol.EventVoteResults:
		// Aliveness is not touched here: the server pushes a fresh
		// player_list after results, and that push is the sole writer of
		// the alive flags.
		var payload protocol.VoteResultsPayload
		protocol.DecodePayload(env.Data, &payload)
		return appendMessage(s, Message{
			Kind:           MessageVoteResults,
			EliminatedName: payload.EliminatedName,
			Tally:          payload.Tally,
			Time:           now,
		}), true

	case protocol.EventGameOver:
		var payload protocol.GameOverPayload
		protocol.DecodePayload(env.Data, &payload)
		s = clearRound(s)
		s.GameStarted = false
		return appendSystem(s, fmt.Sprintf("Game over, winner: %s", payload.Winner), now), true

	case protocol.EventGameError:
		// Untrusted free text: displayed, never interpreted.
		var payload protocol.GameErrorPayload
		protocol.DecodePayload(env.Data, &payload)
		return appendSystem(s, fmt.Sprintf("Error: %s", payload.Msg), now), true
	}

	return s, false
}

// clearRound resets per-round secrets. Exactly game_started and game_over
// call this; no other event clears role, word, or clues.
func clearRound(s State) State {
	s.Role = ""
	s.Word = ""
	s.CluesRevealed = false
	s.RevealedClues = map[string]string{}
	return s
}

func appendSystem(s State, text string, at time.Time) State {
	return appendMessage(s, Message{Kind: MessageSystem, Text: text, Time: at})
}

func appendMessage(s State, m Message) State {
	m.ID = newMessageID()
	out := make([]Message, len(s.Messages), len(s.Messages)+1)
	copy(out, s.Messages)
	s.Messages = append(out, m)
	return s
}

// stamp converts a server timestamp in epoch seconds, falling back to local
// receipt time when the server omitted it.
func stamp(epoch int64, now time.Time) time.Time {
	if epoch <= 0 {
		return now
	}
	return time.Unix(epoch, 0)
}
