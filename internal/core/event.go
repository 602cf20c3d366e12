package core

import "encoding/json"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventRoomJoined confirms a join with the resolved room code.
	EventRoomJoined EventKind = iota
	// EventNoRoom tells a player the requested room does not exist.
	EventNoRoom
	// EventError notifies a client about a rejected request.
	EventError
	// EventRoomMembers delivers the membership snapshot to the room's GM.
	EventRoomMembers
	// EventNewStores delivers store data to a recipient.
	EventNewStores
	// EventStoresCleared asks a recipient to drop its stores.
	EventStoresCleared
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind    EventKind
	Room    string
	Message string
	Members []Member
	Stores  json.RawMessage
	Error   *CoreError
}
