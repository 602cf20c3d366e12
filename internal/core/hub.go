package core

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/qwerji/gameSocketRooms/internal/store"
)

// Hub coordinates every connection's lifecycle: it resolves join-or-create
// requests, tracks membership, fans store payloads out to recipients and
// keeps the room's GM updated after churn. All shared state is confined to
// the run loop, which consumes registrations, disconnects and commands one
// at a time.
type Hub struct {
	log    *zerolog.Logger
	store  store.Store // nil disables activity recording
	roster *Roster

	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	inbound    chan envelope
	queries    chan roomsQuery
}

type envelope struct {
	client *Client
	cmd    *Command
}

type roomsQuery struct {
	reply chan []RoomInfo
}

// NewHub constructs a hub. The store may be nil when activity recording is
// not wanted (tests, no database configured).
func NewHub(st store.Store, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		log:        logger,
		store:      st,
		roster:     NewRoster(),
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan envelope),
		queries:    make(chan roomsQuery),
	}
}

// RegisterClient hands a freshly connected client to the run loop.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient removes a disconnected client and its membership state.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Rooms returns a snapshot of active rooms, served by the run loop.
func (h *Hub) Rooms(ctx context.Context) ([]RoomInfo, error) {
	q := roomsQuery{reply: make(chan []RoomInfo, 1)}
	select {
	case h.queries <- q:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case infos := <-q.reply:
		return infos, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run processes hub traffic until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c.ID] = c
			go h.pump(ctx, c)
			h.log.Debug().Str("client_id", c.ID).Msg("client connected")
		case c := <-h.unregister:
			h.handleDisconnect(c)
		case env := <-h.inbound:
			if _, ok := h.clients[env.client.ID]; !ok {
				// Command raced a disconnect.
				continue
			}
			h.handleCommand(env.client, env.cmd)
		case q := <-h.queries:
			q.reply <- h.roster.Rooms()
		}
	}
}

// pump forwards one client's commands into the shared inbound channel so the
// run loop sees a single serialized stream. It exits when the client is
// unregistered or the hub shuts down; the Commands channel is never closed,
// so done is the only disconnect signal.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.inbound <- envelope{client: c, cmd: cmd}:
			case <-c.done:
				return
			case <-ctx.Done():
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handleCommand(c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandJoinRoom:
		h.handleJoin(c, cmd)
	case CommandBroadcastStores:
		h.handleBroadcastStores(c, cmd)
	case CommandClearStores:
		h.handleClearStores(c, cmd)
	}
}

// handleJoin resolves a join-or-create request. Players may only join codes
// that already exist; a GM rejoins an existing code or gets a freshly minted
// one, never a vanity code of its own choosing.
func (h *Hub) handleJoin(c *Client, cmd *Command) {
	role, ok := ParseRole(cmd.Role)
	if !ok {
		// Invalid role still becomes a usable player, but gets no room.
		c.Role = RolePlayer
		h.send(c, &Event{Kind: EventError, Error: coreError(ErrCodeInvalidRole, "invalid user type")})
		h.log.Warn().Str("client_id", c.ID).Str("role", cmd.Role).Msg("join with invalid role")
		return
	}
	if c.Room != "" {
		h.send(c, &Event{Kind: EventError, Error: coreError(ErrCodeAlreadyJoined, "already in a room")})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(cmd.Room))
	created := false
	switch role {
	case RolePlayer:
		if !h.roster.RoomExists(code) {
			h.send(c, &Event{Kind: EventNoRoom, Message: "room does not exist"})
			h.log.Debug().Str("client_id", c.ID).Str("room", code).Msg("player requested nonexistent room")
			return
		}
	case RoleGM:
		if !h.roster.RoomExists(code) {
			code = GenerateRoomCode(h.roster.RoomExists)
			created = true
		}
	}

	if err := h.roster.Join(c.ID, cmd.Username, role, code); err != nil {
		c.Role = RolePlayer
		h.send(c, &Event{Kind: EventError, Error: coreError(ErrCodeInvalidRole, "invalid user type")})
		return
	}
	c.Username = cmd.Username
	c.Role = role
	c.Room = code

	h.send(c, &Event{Kind: EventRoomJoined, Room: code})
	h.pushMembershipUpdate(code)

	h.log.Info().
		Str("client_id", c.ID).
		Str("username", c.Username).
		Str("role", string(role)).
		Str("room", code).
		Bool("created", created).
		Msg("client joined room")

	if created {
		h.record(store.EventRoomCreated, c, code)
	}
	h.record(store.EventJoin, c, code)
}

// handleBroadcastStores delivers the payload to each listed recipient.
// Unknown or disconnected ids are skipped; an empty list delivers to nobody.
func (h *Hub) handleBroadcastStores(c *Client, cmd *Command) {
	for _, id := range cmd.Recipients {
		recipient, ok := h.clients[id]
		if !ok {
			continue
		}
		h.send(recipient, &Event{Kind: EventNewStores, Stores: cmd.Stores})
	}
	h.log.Debug().
		Str("client_id", c.ID).
		Int("recipients", len(cmd.Recipients)).
		Msg("stores broadcast")
	h.record(store.EventBroadcastStores, c, c.Room)
}

// handleClearStores notifies recipients to drop their stores. An empty
// recipient list resolves to the caller's whole room; a non-empty list is
// delivered exactly as given.
func (h *Hub) handleClearStores(c *Client, cmd *Command) {
	ids := cmd.Recipients
	if len(ids) == 0 {
		for _, m := range h.roster.MembersOf(c.Room) {
			ids = append(ids, m.ID)
		}
	}
	for _, id := range ids {
		recipient, ok := h.clients[id]
		if !ok {
			continue
		}
		h.send(recipient, &Event{Kind: EventStoresCleared})
	}
	h.log.Debug().
		Str("client_id", c.ID).
		Int("recipients", len(ids)).
		Msg("stores cleared")
	h.record(store.EventClearStores, c, c.Room)
}

func (h *Hub) handleDisconnect(c *Client) {
	if _, ok := h.clients[c.ID]; ok {
		delete(h.clients, c.ID)
		close(c.done)
	}
	code := h.roster.Leave(c.ID)
	h.log.Debug().Str("client_id", c.ID).Str("room", code).Msg("client disconnected")
	if code == "" {
		return
	}
	h.pushMembershipUpdate(code)
	h.record(store.EventLeave, c, code)
}

// pushMembershipUpdate sends the current member list to the room's GM.
// Rooms without a GM get nothing; members are never notified directly.
func (h *Hub) pushMembershipUpdate(code string) {
	gmID, ok := h.roster.GMOf(code)
	if !ok {
		return
	}
	gm, ok := h.clients[gmID]
	if !ok {
		return
	}
	h.send(gm, &Event{Kind: EventRoomMembers, Room: code, Members: h.roster.MembersOf(code)})
}

func (h *Hub) send(c *Client, ev *Event) {
	select {
	case c.Events <- ev:
	default:
		h.log.Warn().Str("client_id", c.ID).Msg("dropping event for slow consumer")
	}
}

// record writes a room activity entry off the run loop. Failures are logged
// and otherwise ignored; the log is an audit trail, not state.
func (h *Hub) record(eventType store.EventType, c *Client, code string) {
	if h.store == nil || code == "" {
		return
	}
	ev := &store.RoomEvent{
		RoomCode: code,
		Type:     eventType,
		ClientID: c.ID,
		Username: c.Username,
		Role:     string(c.Role),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := h.store.RecordEvent(ctx, ev); err != nil {
			h.log.Warn().Err(err).Str("room", code).Msg("failed to record room event")
		}
	}()
}
