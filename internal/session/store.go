package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/danmuck/imposterctl/internal/logging"
	"github.com/danmuck/imposterctl/internal/observability"
	"github.com/danmuck/imposterctl/internal/protocol"
)

// Store is the single writer of session state. Apply folds exactly one
// envelope at a time under the lock, so every transition sees a complete
// prior state regardless of which goroutine delivered the event.
type Store struct {
	mu       sync.Mutex
	state    State
	clock    func() time.Time
	log      zerolog.Logger
	onChange func(State)
}

func NewStore() *Store {
	return &Store{
		state: NewState(),
		clock: time.Now,
		log:   logging.Logger("session.store"),
	}
}

// SetOnChange installs a callback invoked with a snapshot after every
// applied event. Set it once before the channel starts delivering; the
// callback runs on whichever goroutine applied the event.
func (st *Store) SetOnChange(fn func(State)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.onChange = fn
}

// Apply folds env into the state and returns the resulting snapshot.
func (st *Store) Apply(env protocol.Envelope) State {
	st.mu.Lock()
	next, handled := reduce(st.state, env, st.clock())
	if !handled {
		st.log.Debug().Str("event", env.Event).Msg("ignoring unknown event")
		observability.RecordUnknownEvent(env.Event)
		snap := st.state.Clone()
		st.mu.Unlock()
		return snap
	}
	st.state = next
	snap := st.state.Clone()
	notify := st.onChange
	st.mu.Unlock()

	observability.RecordInboundEvent(env.Event)
	st.log.Trace().Str("event", env.Event).Int("messages", len(snap.Messages)).Msg("applied")
	if notify != nil {
		notify(snap)
	}
	return snap
}

// Snapshot returns a deep copy of the current state.
func (st *Store) Snapshot() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state.Clone()
}
