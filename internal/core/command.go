package core

import "encoding/json"

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom joins an existing room or, for a GM, creates one.
	CommandJoinRoom CommandKind = iota
	// CommandBroadcastStores pushes store data to selected recipients.
	CommandBroadcastStores
	// CommandClearStores asks recipients to drop their stores.
	CommandClearStores
)

// Command represents an action requested by a client.
type Command struct {
	Kind     CommandKind
	Username string
	Role     string
	Room     string

	// Stores is opaque payload data; the core never inspects it.
	Stores json.RawMessage
	// Recipients is the explicit delivery list for broadcast/clear.
	// An empty list means "nobody" for broadcast and "whole room" for clear.
	Recipients []string
}
