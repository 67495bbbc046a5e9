package core

import "slices"

// Presence tracks the connection-wide list of active users. Every update
// replaces the list wholesale.
type Presence struct {
	self  string
	users []string
}

// NewPresence constructs a tracker for the local identity self.
func NewPresence(self string) *Presence {
	return &Presence{self: self}
}

// Update replaces the tracked users with a copy of users.
func (p *Presence) Update(users []string) {
	p.users = slices.Clone(users)
}

// IsSelf reports whether u is the local identity.
func (p *Presence) IsSelf(u string) bool {
	return p.self != "" && u == p.self
}

// Snapshot returns a read-only copy of the current presence list.
func (p *Presence) Snapshot() PresenceSnapshot {
	return PresenceSnapshot{Users: slices.Clone(p.users), self: p.self}
}

// PresenceSnapshot is what views receive. Mutating it has no effect on the
// tracker.
type PresenceSnapshot struct {
	Users []string
	self  string
}

// IsSelf reports whether u is the local identity, for "(you)" annotations.
func (s PresenceSnapshot) IsSelf(u string) bool {
	return s.self != "" && u == s.self
}
