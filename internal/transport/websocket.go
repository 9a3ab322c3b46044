package transport

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/danmuck/imposterctl/internal/logging"
	"github.com/danmuck/imposterctl/internal/observability"
	"github.com/danmuck/imposterctl/internal/protocol"
)

var (
	ErrURLRequired  = errors.New("transport: websocket url required")
	ErrNotConnected = errors.New("transport: not connected")
	ErrClosed       = errors.New("transport: channel closed")
)

// Socket is the production transport channel: one websocket connection
// carrying one JSON envelope per frame, with bounded reconnection. A single
// read goroutine delivers inbound envelopes strictly in arrival order to
// the one subscribed handler, so the core never sees reentrancy.
//
// Connection transitions surface as synthetic connect/disconnect envelopes
// on the same path as server events.
type Socket struct {
	url string
	cfg Config
	log zerolog.Logger
	rng *rand.Rand

	mu      sync.Mutex
	handler func(protocol.Envelope)
	conn    *websocket.Conn
	closed  bool

	writeMu sync.Mutex
}

func NewSocket(url string, cfg Config) (*Socket, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrURLRequired
	}
	return &Socket{
		url: url,
		cfg: cfg.WithDefaults(),
		log: logging.Logger("transport.socket"),
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Subscribe installs the single inbound handler for the session lifetime.
// Envelopes arriving while no handler is installed are dropped.
func (s *Socket) Subscribe(h func(protocol.Envelope)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

func (s *Socket) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = nil
}

// Start dials the server, delivers the initial connect envelope, and runs
// the read loop in the background. It returns once connected; dial failures
// beyond the attempt bound are returned to the caller.
func (s *Socket) Start(ctx context.Context) error {
	conn, err := s.dialCycle(ctx)
	if err != nil {
		return err
	}
	s.setConn(conn)
	s.deliver(protocol.Envelope{Event: protocol.EventConnect})
	go s.run(ctx, conn)
	return nil
}

// Send writes one outbound envelope. It returns immediately after the
// frame is written; no acknowledgment is awaited.
func (s *Socket) Send(env protocol.Envelope) error {
	if err := env.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	conn := s.conn
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if conn == nil {
		return ErrNotConnected
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	return conn.WriteJSON(env)
}

func (s *Socket) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	if conn != nil {
		return conn.Close()
	}
	return nil
}

// run reads frames until the connection drops, then attempts a bounded
// reconnect cycle. Reconnect exhaustion ends the loop without killing the
// process: the core just stays disconnected.
func (s *Socket) run(ctx context.Context, conn *websocket.Conn) {
	for {
		err := s.readLoop(conn)
		s.setConn(nil)
		s.deliver(protocol.Envelope{Event: protocol.EventDisconnect})
		if s.isClosed() || ctx.Err() != nil {
			return
		}
		s.log.Warn().Err(err).Msg("connection lost, reconnecting")

		conn, err = s.dialCycle(ctx)
		if err != nil {
			s.log.Error().Err(err).Msg("reconnect attempts exhausted")
			return
		}
		s.setConn(conn)
		s.deliver(protocol.Envelope{Event: protocol.EventConnect})
	}
}

func (s *Socket) readLoop(conn *websocket.Conn) error {
	for {
		var env protocol.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return err
		}
		if env.Validate() != nil {
			s.log.Debug().Msg("dropping frame without event name")
			continue
		}
		s.deliver(env)
	}
}

func (s *Socket) dialCycle(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: s.cfg.ConnectTimeout}
	var attempt int
	for {
		attempt++
		conn, _, err := dialer.DialContext(ctx, s.url, nil)
		observability.RecordConnectAttempt(err == nil)
		if err == nil {
			s.log.Info().Str("url", s.url).Int("attempt", attempt).Msg("connected")
			return conn, nil
		}
		s.log.Warn().Str("url", s.url).Int("attempt", attempt).Err(err).Msg("dial failed")
		if !s.shouldRetry(attempt) {
			return nil, err
		}
		if err := s.sleepBackoff(ctx, attempt); err != nil {
			return nil, err
		}
	}
}

func (s *Socket) shouldRetry(attempt int) bool {
	if s.isClosed() {
		return false
	}
	if s.cfg.MaxConnectAttempts <= 0 {
		return true
	}
	return attempt < s.cfg.MaxConnectAttempts
}

func (s *Socket) sleepBackoff(ctx context.Context, attempt int) error {
	delay := s.cfg.Backoff.NextDelay(attempt, s.rng)
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Socket) deliver(env protocol.Envelope) {
	s.mu.Lock()
	handler := s.handler
	s.mu.Unlock()
	if handler != nil {
		handler(env)
	}
}

func (s *Socket) setConn(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.conn = conn
	}
}

func (s *Socket) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
