package store

import (
	"context"
	"errors"

	"github.com/periebm/batepapo-uol-api/models"
)

// ErrMessageNotFound is returned when no message exists with the given id.
var ErrMessageNotFound = errors.New("message not found")

// MessageStore is the append-only chat log. It performs no validation; the
// facade is responsible for sanitizing and validating input before it gets
// here. Insertion order is the authoritative message ordering.
type MessageStore interface {
	// Append stores the message, assigns its id and returns the stored copy.
	Append(ctx context.Context, msg models.Message) (models.Message, error)

	// Get returns the message, or nil if the id is unknown.
	Get(ctx context.Context, id string) (*models.Message, error)

	// VisibleTo returns the messages addressed to the broadcast target, to
	// identity, or sent by identity, most recent first. A positive limit
	// truncates the result to the limit most recent entries; limit <= 0
	// returns everything.
	VisibleTo(ctx context.Context, identity string, limit int) ([]models.Message, error)

	// Update overwrites the to, text and type fields of the message, but
	// only if it is owned by owner. The ownership condition is part of the
	// mutation itself so concurrent callers cannot race past it. It reports
	// whether a row was changed; callers use Get to tell an unknown id from
	// a foreign owner.
	Update(ctx context.Context, id, owner string, to, text string, typ models.MessageType) (bool, error)

	// Remove deletes the message under the same ownership condition as
	// Update, reporting whether a row was deleted.
	Remove(ctx context.Context, id, owner string) (bool, error)

	// Clear deletes all messages.
	Clear(ctx context.Context) error
}
