package models

// Participant represents a user that is currently present in the room.
// Presence is tracked through LastSeen: a participant that has not sent a
// heartbeat recently enough is evicted by the sweeper.
type Participant struct {
	// Name is the display name of the participant. It is the unique key of
	// the registry.
	Name string `json:"name"`
	// LastSeen is the unix millisecond timestamp of the last heartbeat
	// (or the join, whichever is more recent).
	LastSeen int64 `json:"lastSeen"`
}
