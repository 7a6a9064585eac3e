package models

// MessageType determines who may create a message and how it is displayed.
type MessageType = string

const (
	// PublicMessage is a user message addressed to the whole room or to a
	// specific participant, visible to everyone.
	PublicMessage MessageType = "message"
	// PrivateMessage is a user message visible only to its sender and
	// recipient.
	PrivateMessage MessageType = "private_message"
	// StatusMessage is generated by the system to mark join and leave
	// events. Users cannot send it.
	StatusMessage MessageType = "status"
)

// Broadcast is the reserved recipient meaning "all current participants".
const Broadcast = "Todos"

// Message is a single entry in the room's append-only chat log.
type Message struct {
	// ID is assigned by the store at insertion and never changes.
	ID string `json:"id"`
	// From is the sender's display name. Ownership of the message follows
	// this field; it is immutable after creation.
	From string `json:"from"`
	// To is either Broadcast or a participant name.
	To   string      `json:"to"`
	Text string      `json:"text"`
	Type MessageType `json:"type"`
	// Time is the wall-clock insertion time rendered HH:MM:SS. It is for
	// display only; insertion order is the authoritative ordering.
	Time string `json:"time"`
}
