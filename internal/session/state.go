package session

import "time"

// Player is one roster entry. Entries are replaced wholesale on every
// roster push and never mutated field-by-field locally.
type Player struct {
	ID    string
	Name  string
	Alive bool
}

// MessageKind tags the variants of the message log.
type MessageKind string

const (
	MessageSystem      MessageKind = "system"
	MessageChat        MessageKind = "chat"
	MessageVote        MessageKind = "vote"
	MessageVoteResults MessageKind = "vote_results"
)

// Message is one entry of the append-only message log. ID is client-local,
// assigned at append time for render keys; it never crosses the wire. Time
// defaults to local receipt time when the server omits it, which orders the
// log per client but is no global ordering guarantee.
type Message struct {
	ID             string
	Kind           MessageKind
	From           string
	Text           string
	EliminatedName string
	Tally          map[string]int
	Time           time.Time
}

// VotingProgress mirrors the server's view of the current voting round. It
// is reset by voting_started and replaced wholesale by voting_update, never
// patched incrementally.
type VotingProgress struct {
	Voters     []string
	VotesCount int
	AliveCount int
}

// State is the single reconciled session snapshot. It is owned by the Store
// and reaches readers only as a deep copy.
type State struct {
	Connected      bool
	Players        []Player
	Messages       []Message
	GameStarted    bool
	Role           string
	Word           string
	CluesRevealed  bool
	RevealedClues  map[string]string
	VotingProgress VotingProgress
}

// NewState returns the empty pre-roster state created at connect time.
func NewState() State {
	return State{
		Players:       []Player{},
		Messages:      []Message{},
		RevealedClues: map[string]string{},
		VotingProgress: VotingProgress{
			Voters: []string{},
		},
	}
}

// Clone returns a deep copy safe to hand to readers.
func (s State) Clone() State {
	out := s
	out.Players = make([]Player, len(s.Players))
	copy(out.Players, s.Players)
	out.Messages = make([]Message, len(s.Messages))
	for i, m := range s.Messages {
		out.Messages[i] = m.clone()
	}
	out.RevealedClues = cloneClues(s.RevealedClues)
	out.VotingProgress = s.VotingProgress.clone()
	return out
}

func (m Message) clone() Message {
	out := m
	if m.Tally != nil {
		out.Tally = make(map[string]int, len(m.Tally))
		for k, v := range m.Tally {
			out.Tally[k] = v
		}
	}
	return out
}

func (v VotingProgress) clone() VotingProgress {
	out := v
	out.Voters = make([]string, len(v.Voters))
	copy(out.Voters, v.Voters)
	return out
}

func cloneClues(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
