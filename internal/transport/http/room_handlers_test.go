package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/qwerji/gameSocketRooms/client"
	"github.com/qwerji/gameSocketRooms/internal/config"
	"github.com/qwerji/gameSocketRooms/internal/core"
)

func startRESTServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zerolog.Nop()
	hub := core.NewHub(nil, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	server := NewServer(hub, nil, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}, &logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthEndpoint(t *testing.T) {
	ts := startRESTServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestListRooms(t *testing.T) {
	ts := startRESTServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	joined := make(chan string, 1)
	gm, err := client.Dial(ctx, strings.Replace(ts.URL, "http", "ws", 1)+"/ws", client.Handlers{
		OnRoomJoined: func(code string) { joined <- code },
	})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer gm.Close()

	if err := gm.JoinOrCreateRoom(ctx, "alice", "gm", ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	code := waitString(t, joined, "room_joined")

	resp, err := ts.Client().Get(ts.URL + "/api/rooms")
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	var rooms []RoomResponse
	if err := json.NewDecoder(resp.Body).Decode(&rooms); err != nil {
		t.Fatalf("decode rooms: %v", err)
	}
	if len(rooms) != 1 || rooms[0].Code != code || rooms[0].Members != 1 {
		t.Fatalf("unexpected rooms payload: %+v", rooms)
	}
}

func TestListRoomEventsWithoutStore(t *testing.T) {
	ts := startRESTServer(t)

	resp, err := ts.Client().Get(ts.URL + "/api/rooms/ABCDE/events")
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 without a store, got %d", resp.StatusCode)
	}
}
