package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/qwerji/gameSocketRooms/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS room_events (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	room_code  TEXT NOT NULL,
	event_type TEXT NOT NULL,
	client_id  TEXT NOT NULL,
	username   TEXT NOT NULL DEFAULT '',
	role       TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_room_events_code ON room_events(room_code, id);
`

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and applies the schema.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordEvent inserts one activity entry.
func (s *SQLiteStore) RecordEvent(ctx context.Context, ev *store.RoomEvent) error {
	query := `
		INSERT INTO room_events (room_code, event_type, client_id, username, role)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		ev.RoomCode, string(ev.Type), ev.ClientID, ev.Username, ev.Role)
	if err != nil {
		return fmt.Errorf("insert room event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	ev.ID = id
	return nil
}

// ListEvents returns the most recent entries for a room, newest first.
func (s *SQLiteStore) ListEvents(ctx context.Context, roomCode string, limit int) ([]*store.RoomEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, room_code, event_type, client_id, username, role, created_at
		FROM room_events
		WHERE room_code = ?
		ORDER BY id DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, roomCode, limit)
	if err != nil {
		return nil, fmt.Errorf("query room events: %w", err)
	}
	defer rows.Close()

	var events []*store.RoomEvent
	for rows.Next() {
		ev := &store.RoomEvent{}
		var eventType string
		if err := rows.Scan(&ev.ID, &ev.RoomCode, &eventType, &ev.ClientID, &ev.Username, &ev.Role, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan room event: %w", err)
		}
		ev.Type = store.EventType(eventType)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room events: %w", err)
	}
	return events, nil
}
