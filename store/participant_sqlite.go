package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/periebm/batepapo-uol-api/models"
)

type SQLiteParticipantStore struct {
	db *sql.DB
}

func NewSQLiteParticipantStore(db *sql.DB) *SQLiteParticipantStore {
	return &SQLiteParticipantStore{db: db}
}

func (s *SQLiteParticipantStore) Register(ctx context.Context, name string, lastSeen int64, notice models.Message) (models.Message, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Message{}, fmt.Errorf("BeginTx: %w", err)
	}
	defer tx.Rollback()

	// ON CONFLICT DO NOTHING instead of a read-then-insert: of two
	// concurrent registrations for the same name exactly one changes a row.
	res, err := tx.ExecContext(ctx,
		`INSERT INTO participants (name, last_seen) VALUES (@name, @last_seen)
		ON CONFLICT (name) DO NOTHING`,
		sql.Named("name", name), sql.Named("last_seen", lastSeen))
	if err != nil {
		return models.Message{}, fmt.Errorf("ExecContext(insert participant): %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return models.Message{}, fmt.Errorf("RowsAffected: %w", err)
	}
	if n == 0 {
		return models.Message{}, ErrNameTaken
	}

	stored, err := insertMessage(ctx, tx, notice)
	if err != nil {
		return models.Message{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Message{}, fmt.Errorf("Commit: %w", err)
	}

	return stored, nil
}

func (s *SQLiteParticipantStore) Touch(ctx context.Context, name string, lastSeen int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE participants SET last_seen = @last_seen WHERE name = @name",
		sql.Named("last_seen", lastSeen), sql.Named("name", name))
	if err != nil {
		return fmt.Errorf("ExecContext(touch participant): %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("RowsAffected: %w", err)
	}
	if n == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

func (s *SQLiteParticipantStore) Get(ctx context.Context, name string) (*models.Participant, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT name, last_seen FROM participants WHERE name = ? LIMIT 1", name)

	p := new(models.Participant)
	if err := row.Scan(&p.Name, &p.LastSeen); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning participant: %w", err)
	}

	return p, nil
}

func (s *SQLiteParticipantStore) List(ctx context.Context) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, last_seen FROM participants")
	if err != nil {
		return nil, fmt.Errorf("QueryContext: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.Name, &p.LastSeen); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return participants, nil
}

func (s *SQLiteParticipantStore) IdleSince(ctx context.Context, cutoff int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM participants WHERE last_seen <= ?", cutoff)
	if err != nil {
		return nil, fmt.Errorf("QueryContext: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return names, nil
}

func (s *SQLiteParticipantStore) Evict(ctx context.Context, name string, cutoff int64, notice models.Message) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("BeginTx: %w", err)
	}
	defer tx.Rollback()

	// The timestamp condition is re-checked here: a heartbeat that landed
	// after selection keeps the participant alive.
	res, err := tx.ExecContext(ctx,
		"DELETE FROM participants WHERE name = @name AND last_seen <= @cutoff",
		sql.Named("name", name), sql.Named("cutoff", cutoff))
	if err != nil {
		return false, fmt.Errorf("ExecContext(delete participant): %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("RowsAffected: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	if _, err := insertMessage(ctx, tx, notice); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("Commit: %w", err)
	}

	return true, nil
}

func (s *SQLiteParticipantStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM participants"); err != nil {
		return fmt.Errorf("ExecContext(clear participants): %w", err)
	}
	return nil
}
