package session

import (
	"errors"
	"sync"

	"github.com/danmuck/imposterctl/internal/protocol"
)

var (
	ErrCoreStarted    = errors.New("session: core already started")
	ErrCoreNotStarted = errors.New("session: core not started")
)

// Channel is the transport as the core sees it: one inbound handler for
// the whole session, outbound sends, nothing else.
type Channel interface {
	Sender
	Subscribe(func(protocol.Envelope))
	Unsubscribe()
}

// Core binds the store and the action emitter to one transport channel for
// the lifetime of a session. Start registers all inbound handling as a
// single unit and Stop deregisters it; there is no per-event subscription.
type Core struct {
	store   *Store
	actions *Actions
	channel Channel

	mu      sync.Mutex
	started bool
}

func NewCore(channel Channel) *Core {
	store := NewStore()
	return &Core{
		store:   store,
		actions: NewActions(store, channel),
		channel: channel,
	}
}

func (c *Core) Store() *Store     { return c.store }
func (c *Core) Actions() *Actions { return c.actions }

// Start subscribes the core to the channel. Events delivered before Start
// or after Stop are dropped by the channel, not queued.
func (c *Core) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return ErrCoreStarted
	}
	c.channel.Subscribe(func(env protocol.Envelope) {
		c.store.Apply(env)
	})
	c.started = true
	return nil
}

func (c *Core) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return ErrCoreNotStarted
	}
	c.channel.Unsubscribe()
	c.started = false
	return nil
}
