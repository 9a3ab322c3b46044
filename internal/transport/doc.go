// Package transport carries envelopes between the session core and the
// game server over a websocket connection.
//
// Ownership boundary:
// - dialing and the bounded reconnect cycle
// - per-frame JSON envelope encode/decode
// - the single inbound-handler subscription
//
// Everything above this package treats the connection as an abstract
// bidirectional event channel; connectivity is only observable through the
// synthetic connect/disconnect envelopes.
package transport
