package realtime

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	authusecase "teamboard-backend/internal/auth/usecase"
	boardusecase "teamboard-backend/internal/board/usecase"
	wsdomain "teamboard-backend/internal/workspace/domain"
	"teamboard-backend/pkg/ws"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
)

// Handler owns the socket endpoint: it authenticates the connection,
// manages board and workspace room membership through the hub and relays
// ephemeral presence signals. Room membership is volatile, a reconnecting
// client must re-join its rooms and re-fetch the board.
type Handler struct {
	authUsecase   authusecase.AuthUsecase
	boardUsecase  boardusecase.BoardUsecase
	gate          boardusecase.AuthorizationGate
	hub           *ws.Hub
	allowedOrigin string
}

func NewHandler(
	authUsecase authusecase.AuthUsecase,
	boardUsecase boardusecase.BoardUsecase,
	gate boardusecase.AuthorizationGate,
	hub *ws.Hub,
	allowedOrigin string,
) *Handler {
	return &Handler{
		authUsecase:   authUsecase,
		boardUsecase:  boardUsecase,
		gate:          gate,
		hub:           hub,
		allowedOrigin: allowedOrigin,
	}
}

type inboundFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type boardPayload struct {
	BoardID string `json:"board_id"`
}

type workspacePayload struct {
	WorkspaceID string `json:"workspace_id"`
}

// Serve upgrades the connection and runs the read loop until the client
// disconnects.
// GET /api/ws?token=...
func (h *Handler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
		return
	}
	user, err := h.authUsecase.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	opts := &websocket.AcceptOptions{}
	if h.allowedOrigin == "*" {
		opts.InsecureSkipVerify = true
	} else {
		opts.OriginPatterns = []string{h.allowedOrigin}
	}

	conn, err := websocket.Accept(c.Writer, c.Request, opts)
	if err != nil {
		log.Printf("[Realtime] upgrade failed for %s: %v", user.ID, err)
		return
	}

	client := h.hub.NewClient(conn, ws.UserSummary{
		ID:        user.ID,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	})
	defer h.hub.Disconnect(client)

	ctx := c.Request.Context()
	go client.WritePump(ctx)

	h.readLoop(ctx, conn, client)
}

func (h *Handler) readLoop(ctx context.Context, conn *websocket.Conn, client *ws.Client) {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			client.Send("error", gin.H{"message": "malformed frame"})
			continue
		}

		switch frame.Type {
		case "joinBoard":
			h.handleJoin(client, frame.Payload)
		case "leaveBoard":
			h.handleLeave(client, frame.Payload)
		case "joinWorkspace":
			h.handleJoinWorkspace(client, frame.Payload)
		case "leaveWorkspace":
			h.handleLeaveWorkspace(client, frame.Payload)
		case "typing":
			h.relay(client, frame, ws.EventTyping)
		case "cursor":
			h.relay(client, frame, ws.EventCursorMoved)
		case "focusTask":
			h.relay(client, frame, ws.EventTaskFocused)
		case "blurTask":
			h.relay(client, frame, ws.EventTaskUnfocused)
		default:
			client.Send("error", gin.H{"message": "unknown frame type " + frame.Type})
		}
	}
}

// handleJoin subscribes the client to a board room after checking
// workspace membership.
func (h *Handler) handleJoin(client *ws.Client, payload json.RawMessage) {
	var req boardPayload
	if err := json.Unmarshal(payload, &req); err != nil || req.BoardID == "" {
		client.Send("error", gin.H{"message": "board_id required"})
		return
	}

	if err := h.boardUsecase.AuthorizeBoard(client.User().ID, req.BoardID); err != nil {
		client.Send("error", gin.H{"message": "not allowed to join this board"})
		return
	}

	room := ws.BoardRoom(req.BoardID)
	h.hub.Join(client, room)
	client.Send("joined", gin.H{
		"board_id":     req.BoardID,
		"online_users": h.hub.OnlineUsers(room),
	})
}

func (h *Handler) handleLeave(client *ws.Client, payload json.RawMessage) {
	var req boardPayload
	if err := json.Unmarshal(payload, &req); err != nil || req.BoardID == "" {
		return
	}
	h.hub.Leave(client, ws.BoardRoom(req.BoardID))
}

// handleJoinWorkspace subscribes the client to a workspace room. Any
// membership level may listen, the room carries presence only.
func (h *Handler) handleJoinWorkspace(client *ws.Client, payload json.RawMessage) {
	var req workspacePayload
	if err := json.Unmarshal(payload, &req); err != nil || req.WorkspaceID == "" {
		client.Send("error", gin.H{"message": "workspace_id required"})
		return
	}

	if _, err := h.gate.Authorize(req.WorkspaceID, client.User().ID, wsdomain.RoleViewer); err != nil {
		client.Send("error", gin.H{"message": "not allowed to join this workspace"})
		return
	}

	room := ws.WorkspaceRoom(req.WorkspaceID)
	h.hub.Join(client, room)
	client.Send("joined", gin.H{
		"workspace_id": req.WorkspaceID,
		"online_users": h.hub.OnlineUsers(room),
	})
}

func (h *Handler) handleLeaveWorkspace(client *ws.Client, payload json.RawMessage) {
	var req workspacePayload
	if err := json.Unmarshal(payload, &req); err != nil || req.WorkspaceID == "" {
		return
	}
	h.hub.Leave(client, ws.WorkspaceRoom(req.WorkspaceID))
}

// relay forwards an ephemeral signal to a room the client has joined.
// Signals are never persisted or queued, newer state supersedes older.
func (h *Handler) relay(client *ws.Client, frame inboundFrame, event string) {
	var body map[string]interface{}
	if err := json.Unmarshal(frame.Payload, &body); err != nil {
		return
	}
	boardID, _ := body["board_id"].(string)
	if boardID == "" {
		return
	}

	room := ws.BoardRoom(boardID)
	if !h.hub.InRoom(client, room) {
		return
	}

	body["user"] = client.User()
	h.hub.Broadcast(room, event, body)
}
