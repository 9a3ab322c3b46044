package session

// Derived reads. These are recomputed from a snapshot on every call and
// never cached: host status is positional and can change silently when the
// server reorders the roster.

// Self returns the roster entry whose name matches the local identity, or
// false while the join has not yet been reflected in a roster push.
func (s State) Self(name string) (Player, bool) {
	for _, p := range s.Players {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}

// IsHost reports whether the local identity occupies roster position 0.
func (s State) IsHost(name string) bool {
	return len(s.Players) > 0 && s.Players[0].Name == name
}
