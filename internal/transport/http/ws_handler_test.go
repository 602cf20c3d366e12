package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/qwerji/gameSocketRooms/client"
	"github.com/qwerji/gameSocketRooms/internal/config"
	"github.com/qwerji/gameSocketRooms/internal/core"
)

func startTestServer(t *testing.T) string {
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

	return strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
}

func waitString(t *testing.T, ch <-chan string, what string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		return ""
	}
}

func waitMembers(t *testing.T, ch <-chan []client.Member, count int) []client.Member {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case members := <-ch:
			if len(members) == count {
				return members
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %d members", count)
			return nil
		}
	}
}

func TestGameRoundTrip(t *testing.T) {
	wsURL := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	gmJoined := make(chan string, 1)
	gmMembers := make(chan []client.Member, 8)
	gm, err := client.Dial(ctx, wsURL, client.Handlers{
		OnRoomJoined:  func(code string) { gmJoined <- code },
		OnRoomMembers: func(members []client.Member) { gmMembers <- members },
	})
	if err != nil {
		t.Fatalf("dial gm: %v", err)
	}
	defer gm.Close()

	if err := gm.JoinOrCreateRoom(ctx, "alice", "gm", ""); err != nil {
		t.Fatalf("gm join: %v", err)
	}
	code := waitString(t, gmJoined, "gm room_joined")
	if len(code) != 5 || code != strings.ToUpper(code) {
		t.Fatalf("unexpected room code %q", code)
	}
	waitMembers(t, gmMembers, 1)

	playerJoined := make(chan string, 1)
	playerStores := make(chan json.RawMessage, 1)
	playerCleared := make(chan struct{}, 1)
	player, err := client.Dial(ctx, wsURL, client.Handlers{
		OnRoomJoined:    func(code string) { playerJoined <- code },
		OnNewStores:     func(stores json.RawMessage) { playerStores <- stores },
		OnStoresCleared: func() { playerCleared <- struct{}{} },
	})
	if err != nil {
		t.Fatalf("dial player: %v", err)
	}
	defer player.Close()

	if err := player.JoinOrCreateRoom(ctx, "bob", "player", code); err != nil {
		t.Fatalf("player join: %v", err)
	}
	if got := waitString(t, playerJoined, "player room_joined"); got != code {
		t.Fatalf("player resolved to %q, want %q", got, code)
	}

	members := waitMembers(t, gmMembers, 2)
	if members[0].Username != "alice" || members[0].Role != "gm" {
		t.Fatalf("unexpected first member: %+v", members[0])
	}
	if members[1].Username != "bob" || members[1].Role != "player" {
		t.Fatalf("unexpected second member: %+v", members[1])
	}

	// GM pushes stores to Bob only.
	payload := json.RawMessage(`[{"name":"general store","items":["rope"]}]`)
	if err := gm.BroadcastStores(ctx, payload, []string{members[1].ID}); err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	select {
	case stores := <-playerStores:
		if string(stores) != string(payload) {
			t.Fatalf("payload mangled in transit: %s", stores)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for new_stores")
	}

	// Empty recipient list clears the whole room.
	if err := gm.ClearStores(ctx, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	select {
	case <-playerCleared:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for clear_stores")
	}
	if player.Stores() != nil {
		t.Fatal("player stores not cleared")
	}

	// Player disconnects; GM's next push lists alice only.
	player.Close()
	members = waitMembers(t, gmMembers, 1)
	if members[0].Username != "alice" {
		t.Fatalf("unexpected remaining member: %+v", members[0])
	}
}

func TestPlayerJoinUnknownRoomOverWire(t *testing.T) {
	wsURL := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	noRoom := make(chan string, 1)
	c, err := client.Dial(ctx, wsURL, client.Handlers{
		OnNoRoom: func(message string) { noRoom <- message },
	})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	if err := c.JoinOrCreateRoom(ctx, "bob", "player", "ZZZZZ"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if msg := waitString(t, noRoom, "no_room"); msg == "" {
		t.Fatal("expected a no_room message")
	}
}

func TestInvalidRoleOverWire(t *testing.T) {
	wsURL := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errCh := make(chan string, 1)
	c, err := client.Dial(ctx, wsURL, client.Handlers{
		OnError: func(code, _ string) { errCh <- code },
	})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	if err := c.JoinOrCreateRoom(ctx, "mallory", "wizard", ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	if code := waitString(t, errCh, "error"); code != core.ErrCodeInvalidRole {
		t.Fatalf("expected invalid_role, got %q", code)
	}
}
