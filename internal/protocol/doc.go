// Package protocol owns the wire surface shared with the Imposter game server.
//
// Ownership boundary:
// - event name constants, inbound and outbound
// - the JSON envelope carried on every websocket frame
// - typed payload shapes and their lenient decode rules
//
// Payload decoding never fails a session: missing or malformed fields fall
// back to documented defaults (empty sequence, zero count, empty map) so the
// client stays forward-compatible with server payload evolution.
package protocol
