package room

import "errors"

var (
	// ErrInvalidInput is returned when a name, recipient, body or message
	// type does not pass validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNameTaken is returned when joining with a name that is already in
	// the room.
	ErrNameTaken = errors.New("name already taken")
	// ErrNotFound is returned when the referenced participant or message
	// does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotOwner is returned when editing or deleting a message authored
	// by someone else.
	ErrNotOwner = errors.New("not the message owner")
	// ErrNotInRoom is returned when the sending identity is not a live
	// participant.
	ErrNotInRoom = errors.New("sender is not in the room")
)
