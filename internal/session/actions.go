package session

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/danmuck/imposterctl/internal/logging"
	"github.com/danmuck/imposterctl/internal/observability"
	"github.com/danmuck/imposterctl/internal/protocol"
)

// Sender is the outbound half of the transport channel as the action
// emitter sees it. Send never blocks on a round-trip; acknowledgment, if
// any, arrives later as an inbound event.
type Sender interface {
	Send(protocol.Envelope) error
}

// Actions validates player intents locally and forwards them to the
// channel. Local validation only avoids needless round-trips; the server
// remains authoritative and may still reject anything emitted here.
type Actions struct {
	store  *Store
	sender Sender
	log    zerolog.Logger

	mu   sync.Mutex
	name string
}

func NewActions(store *Store, sender Sender) *Actions {
	return &Actions{
		store:  store,
		sender: sender,
		log:    logging.Logger("session.actions"),
	}
}

// Name returns the local identity recorded by Join, or "" before joining.
func (a *Actions) Name() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.name
}

// Join records the local identity and emits the join intent. Uniqueness is
// the server's problem, not checked here.
func (a *Actions) Join(name string) error {
	name = strings.TrimSpace(name)
	a.mu.Lock()
	a.name = name
	a.mu.Unlock()
	return a.emit(protocol.ActionJoin, protocol.JoinPayload{Name: name})
}

// SendChat emits a chat message and appends it locally right away rather
// than waiting for the broadcast. The server echoes chat to every client
// including the sender, so the echo lands as a second, separate message;
// that duplicate is accepted rather than deduplicated.
func (a *Actions) SendChat(text string) error {
	name := a.Name()
	if name == "" || text == "" {
		return nil
	}
	payload := protocol.ChatSendPayload{From: name, Text: text}
	if err := a.emit(protocol.ActionChatMessage, payload); err != nil {
		return err
	}
	a.applyLocal(protocol.EventChatMessage, protocol.ChatMessagePayload{From: name, Text: text})
	return nil
}

// StartGame emits the start intent if the local identity is host, relying
// on the server for final authorization.
func (a *Actions) StartGame() error {
	if !a.store.Snapshot().IsHost(a.Name()) {
		a.reject(protocol.ActionStartGame, "Only host can start")
		return nil
	}
	return a.emit(protocol.ActionStartGame, nil)
}

// StartVoting emits the voting-start intent if the local identity is host.
func (a *Actions) StartVoting() error {
	if !a.store.Snapshot().IsHost(a.Name()) {
		a.reject(protocol.ActionStartVoting, "Only host can start voting")
		return nil
	}
	return a.emit(protocol.ActionStartVoting, nil)
}

// SubmitClue emits the clue unless it is empty after trimming. There is no
// local echo: clue text stays hidden from the submitter until the reveal.
func (a *Actions) SubmitClue(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return a.emit(protocol.ActionSubmitClue, protocol.SubmitCluePayload{Clue: text})
}

// CastVote emits a vote for the target connection ID. Target aliveness and
// vote legality are judged server-side only.
func (a *Actions) CastVote(targetID string) error {
	return a.emit(protocol.ActionCastVote, protocol.CastVotePayload{TargetID: targetID})
}

func (a *Actions) emit(action string, payload any) error {
	env, err := protocol.NewEnvelope(action, payload)
	if err != nil {
		return err
	}
	if err := a.sender.Send(env); err != nil {
		a.log.Warn().Str("action", action).Err(err).Msg("send failed")
		return err
	}
	observability.RecordAction(action)
	return nil
}

// reject surfaces a locally denied intent as a system message. Nothing is
// emitted and nothing upstream treats this as an error.
func (a *Actions) reject(action, text string) {
	a.log.Debug().Str("action", action).Msg("rejected locally")
	observability.RecordRejectedAction(action)
	a.applyLocal(protocol.EventSystemMessage, protocol.SystemMessagePayload{Text: text})
}

// applyLocal routes a locally originated message through the reducer, so
// the store stays the only writer of state.
func (a *Actions) applyLocal(event string, payload any) {
	env, err := protocol.NewEnvelope(event, payload)
	if err != nil {
		a.log.Error().Str("event", event).Err(err).Msg("local apply failed")
		return
	}
	a.store.Apply(env)
}
