// Package session is the client-side reconciliation core for one Imposter
// game session.
//
// Ownership boundary:
// - State: the single reconciled snapshot of everything the server declared
// - the reducer folding inbound envelopes into State, one at a time
// - Store: the only writer of State
// - derived reads (self, host) recomputed from a snapshot on demand
// - Actions: local intents validated and emitted to the channel
//
// The server is authoritative for every game outcome; the core only mirrors
// what it is told. Events are applied strictly in delivery order with no
// reentrancy, so no transition ever observes a half-applied state.
package session
