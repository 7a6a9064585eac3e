package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/periebm/batepapo-uol-api/models"
)

type SQLiteMessageStore struct {
	db *sql.DB
}

func NewSQLiteMessageStore(db *sql.DB) *SQLiteMessageStore {
	return &SQLiteMessageStore{db: db}
}

// execer lets insertMessage run against both *sql.DB and *sql.Tx, so the
// registry can append join/leave notices inside its own transactions.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertMessage(ctx context.Context, x execer, msg models.Message) (models.Message, error) {
	msg.ID = uuid.New().String()

	_, err := x.ExecContext(ctx,
		`INSERT INTO messages (id, sender, recipient, body, type, sent_at)
		VALUES (@id, @sender, @recipient, @body, @type, @sent_at)`,
		sql.Named("id", msg.ID), sql.Named("sender", msg.From),
		sql.Named("recipient", msg.To), sql.Named("body", msg.Text),
		sql.Named("type", msg.Type), sql.Named("sent_at", msg.Time))
	if err != nil {
		return models.Message{}, fmt.Errorf("ExecContext(insert message): %w", err)
	}

	return msg, nil
}

func (s *SQLiteMessageStore) Append(ctx context.Context, msg models.Message) (models.Message, error) {
	return insertMessage(ctx, s.db, msg)
}

func (s *SQLiteMessageStore) Get(ctx context.Context, id string) (*models.Message, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, sender, recipient, body, type, sent_at FROM messages WHERE id = ? LIMIT 1", id)

	msg := new(models.Message)
	err := row.Scan(&msg.ID, &msg.From, &msg.To, &msg.Text, &msg.Type, &msg.Time)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning message: %w", err)
	}

	return msg, nil
}

func (s *SQLiteMessageStore) VisibleTo(ctx context.Context, identity string, limit int) ([]models.Message, error) {
	query := `SELECT id, sender, recipient, body, type, sent_at FROM messages
		WHERE recipient = @broadcast OR recipient = @identity OR sender = @identity
		ORDER BY seq DESC`
	args := []any{
		sql.Named("broadcast", models.Broadcast),
		sql.Named("identity", identity),
	}

	if limit > 0 {
		query += " LIMIT @limit"
		args = append(args, sql.Named("limit", limit))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("QueryContext: %w", err)
	}
	defer rows.Close()

	var msgs []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.From, &msg.To, &msg.Text, &msg.Type, &msg.Time); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return msgs, nil
}

func (s *SQLiteMessageStore) Update(ctx context.Context, id, owner string, to, text string, typ models.MessageType) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE messages SET recipient = @recipient, body = @body, type = @type
		WHERE id = @id AND sender = @sender`,
		sql.Named("recipient", to), sql.Named("body", text), sql.Named("type", typ),
		sql.Named("id", id), sql.Named("sender", owner))
	if err != nil {
		return false, fmt.Errorf("ExecContext(update message): %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("RowsAffected: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteMessageStore) Remove(ctx context.Context, id, owner string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM messages WHERE id = @id AND sender = @sender",
		sql.Named("id", id), sql.Named("sender", owner))
	if err != nil {
		return false, fmt.Errorf("ExecContext(delete message): %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("RowsAffected: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteMessageStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM messages"); err != nil {
		return fmt.Errorf("ExecContext(clear messages): %w", err)
	}
	return nil
}
