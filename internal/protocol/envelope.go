package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingEvent = errors.New("protocol: envelope missing event")
)

// Envelope is the wire shape for one event in either direction: a named
// event plus its raw JSON payload. Data stays raw until a handler decodes
// it, so an unknown event never fails the read loop.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func (e Envelope) Validate() error {
	if strings.TrimSpace(e.Event) == "" {
		return ErrMissingEvent
	}
	return nil
}

// NewEnvelope marshals payload into an envelope for event. A nil payload
// produces an envelope with no data, used by bare intents like start_game.
func NewEnvelope(event string, payload any) (Envelope, error) {
	env := Envelope{Event: event}
	if err := env.Validate(); err != nil {
		return Envelope{}, err
	}
	if payload == nil {
		return env, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("protocol: marshal %s payload: %w", event, err)
	}
	env.Data = data
	return env, nil
}

// MustEnvelope is NewEnvelope for payloads that cannot fail to marshal.
// It panics on error and is intended for package-local literals and tests.
func MustEnvelope(event string, payload any) Envelope {
	env, err := NewEnvelope(event, payload)
	if err != nil {
		panic(err)
	}
	return env
}
