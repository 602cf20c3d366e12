package store

import (
	"context"
	"time"
)

// EventType classifies a room activity entry.
type EventType string

const (
	EventRoomCreated     EventType = "room_created"
	EventJoin            EventType = "join"
	EventLeave           EventType = "leave"
	EventBroadcastStores EventType = "broadcast_stores"
	EventClearStores     EventType = "clear_stores"
)

// RoomEvent is one recorded activity entry. It is an audit trail only; room
// and membership state live in memory and vanish on restart.
type RoomEvent struct {
	ID        int64
	RoomCode  string
	Type      EventType
	ClientID  string
	Username  string
	Role      string
	CreatedAt time.Time
}

// Store records and serves room activity.
type Store interface {
	RecordEvent(ctx context.Context, ev *RoomEvent) error
	ListEvents(ctx context.Context, roomCode string, limit int) ([]*RoomEvent, error)
	Close() error
}
