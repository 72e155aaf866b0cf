package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"chathub/internal/model"
)

// MySQL keeps logs in the rooms and messages tables. Every call is bounded by
// the configured timeout so a hung database cannot stall the hub loop forever.
type MySQL struct {
	db      *sql.DB
	timeout time.Duration
}

func NewMySQL(db *sql.DB, timeout time.Duration) *MySQL {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MySQL{db: db, timeout: timeout}
}

func (s *MySQL) Ensure(ctx context.Context, roomID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.ensure(ctx, s.db, roomID)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *MySQL) ensure(ctx context.Context, db execer, roomID string) error {
	_, err := db.ExecContext(ctx, "INSERT IGNORE INTO rooms (id, created_at) VALUES (?, ?)", roomID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("ensure room %s: %w", roomID, err)
	}
	return nil
}

func (s *MySQL) Append(ctx context.Context, roomID string, msg model.Message) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append to %s: %w", roomID, err)
	}
	defer tx.Rollback()

	if err := s.ensure(ctx, tx, roomID); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO messages (id, room_id, author_user_id, author_name, text, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		msg.ID, roomID, msg.AuthorUserID, msg.AuthorName, msg.Text, msg.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("append to %s: %w", roomID, err)
	}
	return tx.Commit()
}

func (s *MySQL) Read(ctx context.Context, roomID string) ([]model.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM rooms WHERE id = ?)", roomID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", roomID, err)
	}
	if !exists {
		return nil, ErrRoomNotFound
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, room_id, author_user_id, author_name, text, created_at FROM messages WHERE room_id = ? ORDER BY seq",
		roomID)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", roomID, err)
	}
	defer rows.Close()

	msgs := []model.Message{}
	for rows.Next() {
		var msg model.Message
		if err := rows.Scan(&msg.ID, &msg.RoomID, &msg.AuthorUserID, &msg.AuthorName, &msg.Text, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("read %s: %w", roomID, err)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", roomID, err)
	}
	return msgs, nil
}

func (s *MySQL) Last(ctx context.Context, roomID string) (model.Message, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var msg model.Message
	err := s.db.QueryRowContext(ctx,
		"SELECT id, room_id, author_user_id, author_name, text, created_at FROM messages WHERE room_id = ? ORDER BY seq DESC LIMIT 1",
		roomID).Scan(&msg.ID, &msg.RoomID, &msg.AuthorUserID, &msg.AuthorName, &msg.Text, &msg.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Message{}, false, nil
	}
	if err != nil {
		return model.Message{}, false, fmt.Errorf("last of %s: %w", roomID, err)
	}
	return msg, true, nil
}
