package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/periebm/batepapo-uol-api/models"
	"github.com/periebm/batepapo-uol-api/store"
)

const (
	joinNoticeText  = "entra na sala..."
	leaveNoticeText = "sai da sala..."
)

var validate = validator.New()

// messageInput is the schema shared by Send and Edit. Users can only produce
// the two user-facing message types; status messages come from the system.
type messageInput struct {
	To   string `validate:"required"`
	Text string `validate:"required"`
	Type string `validate:"required,oneof=message private_message"`
}

// Room is the session facade: the only entry point the HTTP layer talks to.
// It sanitizes input, enforces registration and ownership rules, and
// delegates persistence to the stores. It holds no state of its own, so it is
// safe for concurrent use; the database serializes conflicting writes.
type Room struct {
	participants store.ParticipantStore
	messages     store.MessageStore
	now          func() time.Time
}

func New(participants store.ParticipantStore, messages store.MessageStore) *Room {
	return &Room{
		participants: participants,
		messages:     messages,
		now:          time.Now,
	}
}

func (r *Room) notice(name, text string, now time.Time) models.Message {
	return models.Message{
		From: name,
		To:   models.Broadcast,
		Text: text,
		Type: models.StatusMessage,
		Time: now.Format("15:04:05"),
	}
}

// Join registers name as a participant and announces it to the room. The
// registration and the join notice are one transaction: if the notice cannot
// be written the participant is not registered. Returns ErrInvalidInput if
// the name is empty after sanitization, ErrNameTaken if it is already in use.
func (r *Room) Join(ctx context.Context, name string) error {
	name = sanitize(name)
	if name == "" {
		return ErrInvalidInput
	}

	now := r.now()
	_, err := r.participants.Register(ctx, name, now.UnixMilli(), r.notice(name, joinNoticeText, now))
	if err != nil {
		if errors.Is(err, store.ErrNameTaken) {
			return ErrNameTaken
		}
		return fmt.Errorf("registering participant: %w", err)
	}

	return nil
}

// Heartbeat refreshes identity's last-seen timestamp. Returns ErrNotFound if
// identity is not registered; it never registers anyone.
func (r *Room) Heartbeat(ctx context.Context, identity string) error {
	if err := r.participants.Touch(ctx, identity, r.now().UnixMilli()); err != nil {
		if errors.Is(err, store.ErrParticipantNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("touching participant: %w", err)
	}
	return nil
}

// Participants returns everyone currently in the room.
func (r *Room) Participants(ctx context.Context) ([]models.Participant, error) {
	participants, err := r.participants.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing participants: %w", err)
	}
	return participants, nil
}

// Send appends a message from identity. The sender must itself be a live
// participant (ErrNotInRoom otherwise), and the type must be one of the
// user-facing types (ErrInvalidInput otherwise).
func (r *Room) Send(ctx context.Context, identity, to, text, typ string) (models.Message, error) {
	identity = sanitize(identity)
	in := messageInput{To: sanitize(to), Text: sanitize(text), Type: sanitize(typ)}
	if identity == "" {
		return models.Message{}, ErrInvalidInput
	}
	if err := validate.Struct(in); err != nil {
		return models.Message{}, ErrInvalidInput
	}

	sender, err := r.participants.Get(ctx, identity)
	if err != nil {
		return models.Message{}, fmt.Errorf("looking up sender: %w", err)
	}
	if sender == nil {
		return models.Message{}, ErrNotInRoom
	}

	msg, err := r.messages.Append(ctx, models.Message{
		From: identity,
		To:   in.To,
		Text: in.Text,
		Type: in.Type,
		Time: r.now().Format("15:04:05"),
	})
	if err != nil {
		return models.Message{}, fmt.Errorf("appending message: %w", err)
	}

	return msg, nil
}

// Messages returns the messages visible to identity, most recent first:
// broadcasts, messages addressed to identity, and messages identity sent.
// A nil limit returns everything; a non-nil limit must be positive
// (ErrInvalidInput otherwise) and truncates to the limit most recent entries.
func (r *Room) Messages(ctx context.Context, identity string, limit *int) ([]models.Message, error) {
	n := 0
	if limit != nil {
		if *limit < 1 {
			return nil, ErrInvalidInput
		}
		n = *limit
	}

	msgs, err := r.messages.VisibleTo(ctx, identity, n)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return msgs, nil
}

// Edit overwrites the to, text and type of the message with the given id.
// Only the author may edit (ErrNotOwner), the message must exist
// (ErrNotFound), and the new content is validated like Send. The ownership
// check rides in the update statement itself, so two concurrent edits cannot
// race past it.
func (r *Room) Edit(ctx context.Context, identity, id, to, text, typ string) error {
	identity = sanitize(identity)
	in := messageInput{To: sanitize(to), Text: sanitize(text), Type: sanitize(typ)}
	if identity == "" {
		return ErrInvalidInput
	}
	if err := validate.Struct(in); err != nil {
		return ErrInvalidInput
	}

	updated, err := r.messages.Update(ctx, id, identity, in.To, in.Text, in.Type)
	if err != nil {
		return fmt.Errorf("updating message: %w", err)
	}
	if updated {
		return nil
	}

	return r.classifyMiss(ctx, id)
}

// Delete removes the message with the given id. Only the author may delete
// (ErrNotOwner); an unknown id is ErrNotFound. Deletion is permanent.
func (r *Room) Delete(ctx context.Context, identity, id string) error {
	identity = sanitize(identity)
	if identity == "" {
		return ErrInvalidInput
	}

	removed, err := r.messages.Remove(ctx, id, identity)
	if err != nil {
		return fmt.Errorf("removing message: %w", err)
	}
	if removed {
		return nil
	}

	return r.classifyMiss(ctx, id)
}

// classifyMiss decides why an ownership-conditioned mutation changed nothing:
// the message is gone (ErrNotFound) or belongs to someone else (ErrNotOwner).
func (r *Room) classifyMiss(ctx context.Context, id string) error {
	msg, err := r.messages.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("loading message: %w", err)
	}
	if msg == nil {
		return ErrNotFound
	}
	return ErrNotOwner
}

// ResetMessages clears the whole chat log. Administrative; participants stay.
func (r *Room) ResetMessages(ctx context.Context) error {
	if err := r.messages.Clear(ctx); err != nil {
		return fmt.Errorf("clearing messages: %w", err)
	}
	return nil
}

// ResetParticipants empties the registry. Administrative; no leave notices
// are emitted and the chat log stays.
func (r *Room) ResetParticipants(ctx context.Context) error {
	if err := r.participants.Clear(ctx); err != nil {
		return fmt.Errorf("clearing participants: %w", err)
	}
	return nil
}
