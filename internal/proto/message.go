package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeRoom            = "room"
	InboundTypeBroadcastStores = "broadcast_stores"
	InboundTypeClearStores     = "clear_stores"

	OutboundTypeRoomJoined    = "room_joined"
	OutboundTypeNoRoom        = "no_room"
	OutboundTypeError         = "error"
	OutboundTypeRoomMembers   = "room_members"
	OutboundTypeNewStores     = "new_stores"
	OutboundTypeStoresCleared = "clear_stores"
)

// RoomData requests to join or create a room. Code is optional: a GM with no
// code (or a stale one) gets a freshly generated code.
type RoomData struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Code     string `json:"code,omitempty"`
}

// BroadcastStoresData carries opaque store payloads to explicit recipients.
type BroadcastStoresData struct {
	Stores     json.RawMessage `json:"stores"`
	Recipients []string        `json:"recipients"`
}

// ClearStoresData selects recipients for a clear notification. An empty list
// means the sender's whole room. Recipients mirror the member objects the GM
// received in room_members; only the id is used.
type ClearStoresData struct {
	Recipients []MemberRef `json:"recipients"`
}

// MemberRef identifies one recipient of a clear notification.
type MemberRef struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// RoomJoinedData confirms a join with the resolved room code.
type RoomJoinedData struct {
	Code string `json:"code"`
}

// NoRoomData tells a player the requested room does not exist.
type NoRoomData struct {
	Message string `json:"message"`
}

// RoomMembersData is the GM-only membership snapshot.
type RoomMembersData struct {
	Code    string      `json:"code"`
	Members []MemberRef `json:"members"`
}

// NewStoresData delivers an opaque store payload.
type NewStoresData struct {
	Stores json.RawMessage `json:"stores"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
