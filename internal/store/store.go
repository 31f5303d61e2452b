// Package store keeps contact form submissions in sqlite so a message
// survives a failed mail delivery.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("message not found")

type Message struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS messages (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			sent_at    INTEGER
		);
		CREATE INDEX IF NOT EXISTS idx_messages_created ON messages(created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveMessage inserts m and returns it with ID and CreatedAt filled in.
func (s *Store) SaveMessage(ctx context.Context, m Message) (Message, error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (name, email, body, created_at)
		VALUES (?, ?, ?, ?)
	`, m.Name, m.Email, m.Body, m.CreatedAt.Unix())
	if err != nil {
		return Message{}, fmt.Errorf("saving message: %w", err)
	}
	m.ID, err = res.LastInsertId()
	if err != nil {
		return Message{}, fmt.Errorf("saving message: %w", err)
	}
	m.CreatedAt = time.Unix(m.CreatedAt.Unix(), 0)
	return m, nil
}

func (s *Store) MarkSent(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE messages SET sent_at = ? WHERE id = ?`, time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("marking message %d sent: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// ListMessages returns up to limit messages, newest first.
func (s *Store) ListMessages(ctx context.Context, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, body, created_at, sent_at
		FROM messages
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var (
			m       Message
			created int64
			sent    sql.NullInt64
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &created, &sent); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		m.CreatedAt = time.Unix(created, 0)
		if sent.Valid {
			t := time.Unix(sent.Int64, 0)
			m.SentAt = &t
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Prune deletes messages created before cutoff and reports how many.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE created_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("pruning messages: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
