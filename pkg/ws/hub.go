package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Event names pushed to board rooms. Payloads are full entity snapshots,
// except taskDeleted/commentDeleted which carry only the id.
const (
	EventTaskCreated    = "taskCreated"
	EventTaskUpdated    = "taskUpdated"
	EventTaskMoved      = "taskMoved"
	EventTaskDeleted    = "taskDeleted"
	EventTaskDueSoon    = "taskDueSoon"
	EventCommentAdded   = "commentAdded"
	EventCommentUpdated = "commentUpdated"
	EventCommentDeleted = "commentDeleted"
	EventColumnsUpdated = "columnsUpdated"
	EventUserJoined     = "userJoined"
	EventUserLeft       = "userLeft"
	EventTyping         = "typing"
	EventCursorMoved    = "cursorMoved"
	EventTaskFocused    = "taskFocused"
	EventTaskUnfocused  = "taskUnfocused"
)

// BoardRoom returns the room key for a board.
func BoardRoom(boardID string) string { return "board:" + boardID }

// WorkspaceRoom returns the room key for a workspace.
func WorkspaceRoom(workspaceID string) string { return "workspace:" + workspaceID }

// UserSummary identifies a connected user to other room members.
type UserSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Frame is the envelope for every outbound socket message.
type Frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type presenceEntry struct {
	user  UserSummary
	conns int
}

// Hub is the in-memory room registry. Membership is volatile: it is not
// persisted and does not survive a restart, clients re-join on reconnect.
type Hub struct {
	mu       sync.Mutex
	rooms    map[string]map[*Client]struct{}
	presence map[string]map[string]*presenceEntry
}

func NewHub() *Hub {
	return &Hub{
		rooms:    make(map[string]map[*Client]struct{}),
		presence: make(map[string]map[string]*presenceEntry),
	}
}

// Join adds the client to a room. The first connection of a user in a room
// announces userJoined to the other members.
func (h *Hub) Join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	if _, joined := members[c]; joined {
		return
	}
	members[c] = struct{}{}
	c.rooms[room] = struct{}{}

	users, ok := h.presence[room]
	if !ok {
		users = make(map[string]*presenceEntry)
		h.presence[room] = users
	}
	entry, ok := users[c.user.ID]
	if !ok {
		users[c.user.ID] = &presenceEntry{user: c.user, conns: 1}
		h.announceLocked(room, EventUserJoined, c.user, c)
		return
	}
	entry.conns++
}

// Leave removes the client from a room. The last connection of a user in a
// room announces userLeft.
func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c, room)
}

func (h *Hub) leaveLocked(c *Client, room string) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	if _, joined := members[c]; !joined {
		return
	}
	delete(members, c)
	delete(c.rooms, room)
	if len(members) == 0 {
		delete(h.rooms, room)
	}

	users, ok := h.presence[room]
	if !ok {
		return
	}
	entry, ok := users[c.user.ID]
	if !ok {
		return
	}
	entry.conns--
	if entry.conns <= 0 {
		delete(users, c.user.ID)
		if len(users) == 0 {
			delete(h.presence, room)
		}
		h.broadcastLocked(room, EventUserLeft, c.user)
	}
}

// Disconnect removes the client from every room it joined and stops its
// write pump.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	for room := range c.rooms {
		h.leaveLocked(c, room)
	}
	h.mu.Unlock()
	c.close()
}

// Broadcast delivers an event to every connection in a room, including the
// originator. Delivery is best-effort: a slow or dead client is skipped.
func (h *Hub) Broadcast(room, event string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastLocked(room, event, payload)
}

func (h *Hub) broadcastLocked(room, event string, payload interface{}) {
	h.announceLocked(room, event, payload, nil)
}

// announceLocked delivers to every room connection except the one excluded.
func (h *Hub) announceLocked(room, event string, payload interface{}, except *Client) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	b, err := json.Marshal(Frame{Event: event, Data: payload})
	if err != nil {
		log.Printf("[Hub] marshal %s failed: %v", event, err)
		return
	}
	for client := range members {
		if client == except {
			continue
		}
		client.enqueue(b)
	}
}

// OnlineUsers returns the users currently present in a room.
func (h *Hub) OnlineUsers(room string) []UserSummary {
	h.mu.Lock()
	defer h.mu.Unlock()

	users := h.presence[room]
	online := make([]UserSummary, 0, len(users))
	for _, entry := range users {
		online = append(online, entry.user)
	}
	return online
}

// InRoom reports whether the client has joined a room.
func (h *Hub) InRoom(c *Client, room string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := c.rooms[room]
	return ok
}

// RoomSize returns the number of connections in a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[room])
}

// Reset drops all rooms and presence state and closes every connection.
func (h *Hub) Reset() {
	h.mu.Lock()
	clients := make(map[*Client]struct{})
	for _, members := range h.rooms {
		for c := range members {
			clients[c] = struct{}{}
		}
	}
	h.rooms = make(map[string]map[*Client]struct{})
	h.presence = make(map[string]map[string]*presenceEntry)
	h.mu.Unlock()

	for c := range clients {
		c.close()
	}
}
