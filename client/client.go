// Package client is a convenience wrapper around the game socket protocol:
// it dials the server, dispatches inbound events to registered handlers and
// exposes the join, broadcast and clear operations.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/qwerji/gameSocketRooms/internal/proto"
)

// Member is one room occupant as listed in a membership update.
type Member struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Handlers holds optional callbacks for server events. Nil handlers are
// skipped. Callbacks run on the client's read goroutine, one at a time.
type Handlers struct {
	OnRoomJoined    func(code string)
	OnNoRoom        func(message string)
	OnRoomMembers   func(members []Member)
	OnNewStores     func(stores json.RawMessage)
	OnStoresCleared func()
	OnError         func(code, message string)
}

// Client is a connected game socket client.
type Client struct {
	conn     *websocket.Conn
	handlers Handlers

	mu      sync.RWMutex
	members []Member
	stores  json.RawMessage

	done chan struct{}
	err  error
}

// Dial connects to a game socket server at url (e.g. ws://host:8000/ws) and
// starts dispatching events to handlers.
func Dial(ctx context.Context, url string, handlers Handlers) (*Client, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		conn:     conn,
		handlers: handlers,
		done:     make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// JoinOrCreateRoom requests to join code, or to create a room when the
// caller is a GM and code is empty or stale. The resolved code arrives via
// OnRoomJoined.
func (c *Client) JoinOrCreateRoom(ctx context.Context, username, role, code string) error {
	return c.write(ctx, proto.InboundTypeRoom, proto.RoomData{
		Username: username,
		Role:     role,
		Code:     code,
	})
}

// BroadcastStores pushes opaque store data to the listed connection ids.
// An empty recipient list delivers to nobody.
func (c *Client) BroadcastStores(ctx context.Context, stores json.RawMessage, recipients []string) error {
	return c.write(ctx, proto.InboundTypeBroadcastStores, proto.BroadcastStoresData{
		Stores:     stores,
		Recipients: recipients,
	})
}

// ClearStores asks recipients to drop their stores. An empty list clears the
// caller's whole room.
func (c *Client) ClearStores(ctx context.Context, recipients []Member) error {
	refs := make([]proto.MemberRef, 0, len(recipients))
	for _, m := range recipients {
		refs = append(refs, proto.MemberRef{ID: m.ID, Username: m.Username, Role: m.Role})
	}
	return c.write(ctx, proto.InboundTypeClearStores, proto.ClearStoresData{Recipients: refs})
}

// RoomMembers returns the members from the latest membership update.
func (c *Client) RoomMembers() []Member {
	c.mu.RLock()
	defer c.mu.RUnlock()
	members := make([]Member, len(c.members))
	copy(members, c.members)
	return members
}

// Stores returns the payload from the latest new_stores event, nil after a
// clear.
func (c *Client) Stores() json.RawMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stores
}

// Done is closed when the read loop exits.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Err returns the read loop's terminal error, if any.
func (c *Client) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "closing")
}

func (c *Client) write(ctx context.Context, msgType string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return wsjson.Write(ctx, c.conn, proto.Inbound{Type: msgType, Data: payload})
}

func (c *Client) readLoop() {
	defer close(c.done)
	ctx := context.Background()
	for {
		var outbound rawOutbound
		if err := wsjson.Read(ctx, c.conn, &outbound); err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, context.Canceled) {
				c.err = err
			}
			return
		}
		c.dispatch(outbound)
	}
}

type rawOutbound struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

func (c *Client) dispatch(outbound rawOutbound) {
	switch outbound.Type {
	case proto.OutboundTypeRoomJoined:
		var data proto.RoomJoinedData
		if json.Unmarshal(outbound.Data, &data) != nil {
			return
		}
		if c.handlers.OnRoomJoined != nil {
			c.handlers.OnRoomJoined(data.Code)
		}
	case proto.OutboundTypeNoRoom:
		var data proto.NoRoomData
		if json.Unmarshal(outbound.Data, &data) != nil {
			return
		}
		if c.handlers.OnNoRoom != nil {
			c.handlers.OnNoRoom(data.Message)
		}
	case proto.OutboundTypeRoomMembers:
		var data proto.RoomMembersData
		if json.Unmarshal(outbound.Data, &data) != nil {
			return
		}
		members := make([]Member, 0, len(data.Members))
		for _, m := range data.Members {
			members = append(members, Member{ID: m.ID, Username: m.Username, Role: m.Role})
		}
		c.mu.Lock()
		c.members = members
		c.mu.Unlock()
		if c.handlers.OnRoomMembers != nil {
			c.handlers.OnRoomMembers(members)
		}
	case proto.OutboundTypeNewStores:
		var data proto.NewStoresData
		if json.Unmarshal(outbound.Data, &data) != nil {
			return
		}
		c.mu.Lock()
		c.stores = data.Stores
		c.mu.Unlock()
		if c.handlers.OnNewStores != nil {
			c.handlers.OnNewStores(data.Stores)
		}
	case proto.OutboundTypeStoresCleared:
		c.mu.Lock()
		c.stores = nil
		c.mu.Unlock()
		if c.handlers.OnStoresCleared != nil {
			c.handlers.OnStoresCleared()
		}
	case proto.OutboundTypeError:
		if outbound.Error != nil && c.handlers.OnError != nil {
			c.handlers.OnError(outbound.Error.Code, outbound.Error.Msg)
		}
	}
}
