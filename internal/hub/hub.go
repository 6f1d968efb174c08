package hub

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"context"
	"encoding/json"
	"sync"
)

// Envelope is the wire format of every pushed event.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub keeps the open websocket sessions grouped into per-user rooms and
// pushes events to every session of the addressed user. It implements
// reminder.EventPublisher.
type Hub struct {
	log        logging.Logger
	register   chan *Client
	unregister chan *Client
	clients    map[*Client]struct{}
	rooms      map[reminder.UserID]map[*Client]struct{}
	closeOnce  sync.Once
	done       chan struct{}
	mu         sync.RWMutex
}

func New(log logging.Logger) *Hub {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &Hub{
		log:        log,
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		clients:    make(map[*Client]struct{}),
		rooms:      make(map[reminder.UserID]map[*Client]struct{}),
		done:       make(chan struct{}),
	}
}

// Run processes registrations until Close is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
			}
			h.clients = make(map[*Client]struct{})
			h.rooms = make(map[reminder.UserID]map[*Client]struct{})
			h.mu.Unlock()
			return
		}
	}
}

// Close shuts the hub down and drops every open session.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// PublishEvent pushes an event to every open session of the user. A user
// with no connected sessions is not an error; the SSE fallback and the
// polling checker cover that case.
func (h *Hub) PublishEvent(
	ctx context.Context,
	userID reminder.UserID,
	name string,
	payload interface{},
) error {
	body, err := json.Marshal(Envelope{Event: name, Data: payload})
	if err != nil {
		return err
	}

	// client.userID may be rewritten by rejoin, so it is captured while the
	// lock is still held.
	type staleClient struct {
		client *Client
		userID reminder.UserID
	}

	h.mu.RLock()
	room := h.rooms[userID]
	stale := make([]staleClient, 0)
	for client := range room {
		select {
		case client.send <- body:
		default:
			stale = append(stale, staleClient{client: client, userID: client.userID})
		}
	}
	h.mu.RUnlock()

	for _, s := range stale {
		h.log.Warning(
			ctx,
			"Client send buffer full, dropping session.",
			logging.Entry("userID", s.userID),
		)
		h.Unregister(s.client)
	}
	return nil
}

// SessionCount reports the number of open sessions for the user.
func (h *Hub) SessionCount(userID reminder.UserID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) add(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
	room, ok := h.rooms[client.userID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[client.userID] = room
	}
	room[client] = struct{}{}
	h.log.Info(
		context.Background(),
		"Client joined user room.",
		logging.Entry("userID", client.userID),
		logging.Entry("roomSize", len(room)),
	)
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	room := h.rooms[client.userID]
	delete(room, client)
	if len(room) == 0 {
		delete(h.rooms, client.userID)
	}
	h.log.Info(
		context.Background(),
		"Client left user room.",
		logging.Entry("userID", client.userID),
	)
}

// rejoin moves a registered client into another user room. Happens when a
// reconnecting client re-announces its user id over an existing session.
func (h *Hub) rejoin(client *Client, userID reminder.UserID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	room := h.rooms[client.userID]
	delete(room, client)
	if len(room) == 0 {
		delete(h.rooms, client.userID)
	}
	client.userID = userID
	newRoom, ok := h.rooms[userID]
	if !ok {
		newRoom = make(map[*Client]struct{})
		h.rooms[userID] = newRoom
	}
	newRoom[client] = struct{}{}
}
