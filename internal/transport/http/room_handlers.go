package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/qwerji/gameSocketRooms/internal/core"
	"github.com/qwerji/gameSocketRooms/internal/store"
)

// RoomHandlers provides HTTP handlers for the room REST surface.
type RoomHandlers struct {
	hub   *core.Hub
	store store.Store
	log   *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance. st may be nil when
// no activity store is configured.
func NewRoomHandlers(hub *core.Hub, st store.Store, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		hub:   hub,
		store: st,
		log:   logger,
	}
}

// RoomResponse represents an active room in API responses.
type RoomResponse struct {
	Code    string `json:"code"`
	Members int    `json:"members"`
}

// RoomEventResponse represents one activity log entry.
type RoomEventResponse struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	ClientID  string `json:"client_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListRooms returns a snapshot of currently active rooms.
// GET /api/rooms
func (h *RoomHandlers) ListRooms(c *gin.Context) {
	infos, err := h.hub.Rooms(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to snapshot rooms")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	response := make([]RoomResponse, 0, len(infos))
	for _, info := range infos {
		response = append(response, RoomResponse{Code: info.Code, Members: info.Members})
	}
	c.JSON(http.StatusOK, response)
}

// ListRoomEvents returns the recent activity log for a room.
// GET /api/rooms/:code/events
func (h *RoomHandlers) ListRoomEvents(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "activity log not enabled"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	events, err := h.store.ListEvents(c.Request.Context(), code, 50)
	if err != nil {
		h.log.Error().Err(err).Str("room", code).Msg("failed to list room events")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	response := make([]RoomEventResponse, 0, len(events))
	for _, ev := range events {
		response = append(response, RoomEventResponse{
			ID:        ev.ID,
			Type:      string(ev.Type),
			ClientID:  ev.ClientID,
			Username:  ev.Username,
			Role:      ev.Role,
			CreatedAt: ev.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	c.JSON(http.StatusOK, response)
}
