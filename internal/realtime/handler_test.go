package realtime

import (
	"encoding/json"
	"testing"

	wsdomain "teamboard-backend/internal/workspace/domain"
	"teamboard-backend/pkg/apperr"
	"teamboard-backend/pkg/ws"

	"github.com/stretchr/testify/assert"
)

type fakeGate struct {
	roles map[string]wsdomain.Role // "workspaceID/userID" -> role
}

func (g *fakeGate) ResolveRole(workspaceID, userID string) (wsdomain.Role, bool, error) {
	role, ok := g.roles[workspaceID+"/"+userID]
	return role, ok, nil
}

func (g *fakeGate) Authorize(workspaceID, userID string, minRole wsdomain.Role) (wsdomain.Role, error) {
	role, ok, _ := g.ResolveRole(workspaceID, userID)
	if !ok || !role.AtLeast(minRole) {
		return "", apperr.Forbidden("user %s may not access workspace %s", userID, workspaceID)
	}
	return role, nil
}

func newWorkspaceRoomHandler() (*Handler, *ws.Hub) {
	hub := ws.NewHub()
	gate := &fakeGate{roles: map[string]wsdomain.Role{
		"ws-1/u1": wsdomain.RoleViewer,
	}}
	return NewHandler(nil, nil, gate, hub, "*"), hub
}

func TestJoinWorkspaceRequiresMembership(t *testing.T) {
	h, hub := newWorkspaceRoomHandler()

	member := hub.NewClient(nil, ws.UserSummary{ID: "u1", Name: "Member"})
	h.handleJoinWorkspace(member, json.RawMessage(`{"workspace_id":"ws-1"}`))
	assert.True(t, hub.InRoom(member, ws.WorkspaceRoom("ws-1")))
	assert.Len(t, hub.OnlineUsers(ws.WorkspaceRoom("ws-1")), 1)

	outsider := hub.NewClient(nil, ws.UserSummary{ID: "u2", Name: "Outsider"})
	h.handleJoinWorkspace(outsider, json.RawMessage(`{"workspace_id":"ws-1"}`))
	assert.False(t, hub.InRoom(outsider, ws.WorkspaceRoom("ws-1")))
	assert.Len(t, hub.OnlineUsers(ws.WorkspaceRoom("ws-1")), 1)
}

func TestLeaveWorkspace(t *testing.T) {
	h, hub := newWorkspaceRoomHandler()

	client := hub.NewClient(nil, ws.UserSummary{ID: "u1", Name: "Member"})
	h.handleJoinWorkspace(client, json.RawMessage(`{"workspace_id":"ws-1"}`))
	h.handleLeaveWorkspace(client, json.RawMessage(`{"workspace_id":"ws-1"}`))

	assert.False(t, hub.InRoom(client, ws.WorkspaceRoom("ws-1")))
	assert.Empty(t, hub.OnlineUsers(ws.WorkspaceRoom("ws-1")))
}

func TestJoinWorkspaceRejectsEmptyPayload(t *testing.T) {
	h, hub := newWorkspaceRoomHandler()

	client := hub.NewClient(nil, ws.UserSummary{ID: "u1", Name: "Member"})
	h.handleJoinWorkspace(client, json.RawMessage(`{}`))

	assert.False(t, hub.InRoom(client, ws.WorkspaceRoom("ws-1")))
}