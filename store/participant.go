package store

import (
	"context"
	"errors"

	"github.com/periebm/batepapo-uol-api/models"
)

var (
	// ErrNameTaken is returned when registering a name that is already present.
	ErrNameTaken = errors.New("name already taken")
	// ErrParticipantNotFound is returned when the participant is not registered.
	ErrParticipantNotFound = errors.New("participant not found")
)

// ParticipantStore is the presence registry. The database is the only
// serialization point: implementations must express every check-then-write as
// a single conditional statement or a transaction, so that concurrent callers
// cannot interleave between the check and the write.
type ParticipantStore interface {
	// Register inserts a participant with the given last-seen timestamp and
	// appends the join notice in the same transaction. If the name is
	// already registered it returns ErrNameTaken and writes nothing.
	// It returns the stored notice.
	Register(ctx context.Context, name string, lastSeen int64, notice models.Message) (models.Message, error)

	// Touch sets the participant's last-seen timestamp. It returns
	// ErrParticipantNotFound if the name is not registered and never creates
	// a participant.
	Touch(ctx context.Context, name string, lastSeen int64) error

	// Get returns the participant, or nil if the name is not registered.
	Get(ctx context.Context, name string) (*models.Participant, error)

	// List returns all current participants in no particular order.
	List(ctx context.Context) ([]models.Participant, error)

	// IdleSince returns the names of all participants whose last-seen
	// timestamp is at or before cutoff.
	IdleSince(ctx context.Context, cutoff int64) ([]string, error)

	// Evict removes the participant only if its last-seen timestamp is still
	// at or before cutoff, and appends the leave notice in the same
	// transaction. It reports whether the participant was removed; a
	// heartbeat that landed after selection keeps the participant and no
	// notice is written.
	Evict(ctx context.Context, name string, cutoff int64, notice models.Message) (bool, error)

	// Clear removes all participants. It does not write leave notices.
	Clear(ctx context.Context) error
}
