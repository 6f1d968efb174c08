package hub

import (
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, h *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(rw, r, nil)
		require.Nil(t, err)
		userID := reminder.UserID(7)
		go NewClient(h, conn, userID).Serve()
	}))
}

func waitForSessions(t *testing.T, h *Hub, userID reminder.UserID, count int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.SessionCount(userID) != count {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d sessions for user %d", count, userID)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubPushesEventToUserSessions(t *testing.T) {
	// Setup ---
	h := New(logging.NewFakeLogger())
	go h.Run()
	defer h.Close()
	server := newTestServer(t, h)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.Nil(t, err)
	defer conn.Close()
	waitForSessions(t, h, 7, 1)

	// Exercise ---
	err = h.PublishEvent(
		context.Background(),
		7,
		reminder.EventDue,
		reminder.DueEvent{ID: 1, Title: "Lecture"},
	)

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err := conn.ReadMessage()
	assert.Nil(err)

	var envelope Envelope
	assert.Nil(json.Unmarshal(message, &envelope))
	assert.Equal(reminder.EventDue, envelope.Event)
}

func TestHubPublishToEmptyRoomIsNotAnError(t *testing.T) {
	h := New(logging.NewFakeLogger())
	go h.Run()
	defer h.Close()

	err := h.PublishEvent(context.Background(), 42, reminder.EventDue, nil)
	require.Nil(t, err)
}

func TestHubDropsClientWithFullSendBuffer(t *testing.T) {
	// Setup ---
	log := logging.NewFakeLogger()
	h := New(log)
	go h.Run()
	defer h.Close()

	// Unbuffered send channel with no reader, so the publish hits the
	// stale-client branch immediately.
	client := &Client{hub: h, send: make(chan []byte), userID: 7}
	h.add(client)

	// Exercise ---
	err := h.PublishEvent(context.Background(), 7, reminder.EventDue, reminder.DueEvent{ID: 1})

	// Verify ---
	require.Nil(t, err)
	waitForSessions(t, h, 7, 0)
	require.NotEmpty(t, log.LoggedWithLevel(logging.WARNING))
}

func TestHubRejoinMovesSessionToNewRoom(t *testing.T) {
	// Setup ---
	h := New(logging.NewFakeLogger())
	go h.Run()
	defer h.Close()
	server := newTestServer(t, h)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.Nil(t, err)
	defer conn.Close()
	waitForSessions(t, h, 7, 1)

	// Exercise ---
	err = conn.WriteJSON(joinMessage{Event: joinEvent, UserID: 9})

	// Verify ---
	require.Nil(t, err)
	waitForSessions(t, h, 9, 1)
	waitForSessions(t, h, 7, 0)
}
