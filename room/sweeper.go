package room

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Sweeper evicts participants that stopped sending heartbeats. It runs as a
// single goroutine, so cycles never overlap; a slow cycle simply delays the
// next tick. Eviction is best effort: the store re-checks the last-seen
// timestamp when deleting, so a heartbeat that lands between selection and
// removal keeps the participant in the room.
type Sweeper struct {
	room *Room
	// interval is how often a sweep cycle runs.
	interval time.Duration
	// idleAfter is how long a participant may go without a heartbeat before
	// being evicted. Independent from interval.
	idleAfter time.Duration
	log       *slog.Logger
}

func NewSweeper(room *Room, interval, idleAfter time.Duration, log *slog.Logger) *Sweeper {
	return &Sweeper{
		room:      room,
		interval:  interval,
		idleAfter: idleAfter,
		log:       log,
	}
}

// Run sweeps every interval until ctx is cancelled. A failed cycle is logged
// and retried on the next tick; the loop only exits with the context.
func (s *Sweeper) Run(ctx context.Context) error {
	s.log.Info("presence sweeper started",
		slog.Duration("interval", s.interval), slog.Duration("idle_after", s.idleAfter))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("presence sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := s.sweep(ctx); err != nil {
				s.log.Error("sweep cycle failed", slog.Any("err", err))
			}
		}
	}
}

// sweep runs one eviction cycle: select idle participants, then remove each
// one under the re-checked timestamp condition, announcing the departure in
// the same transaction as the removal.
func (s *Sweeper) sweep(ctx context.Context) error {
	now := s.room.now()
	cutoff := now.Add(-s.idleAfter).UnixMilli()

	idle, err := s.room.participants.IdleSince(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("selecting idle participants: %w", err)
	}

	for _, name := range idle {
		evicted, err := s.room.participants.Evict(ctx, name, cutoff,
			s.room.notice(name, leaveNoticeText, now))
		if err != nil {
			return fmt.Errorf("evicting %q: %w", name, err)
		}
		if evicted {
			s.log.Info("participant evicted", slog.String("name", name))
		}
	}

	return nil
}
