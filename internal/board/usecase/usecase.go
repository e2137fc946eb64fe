package usecase

import (
	boarddomain "teamboard-backend/internal/board/domain"
	wsdomain "teamboard-backend/internal/workspace/domain"
)

// AuthorizationGate resolves a user's role in a workspace and rejects
// callers below the minimum required role. Satisfied by the workspace
// usecase.
type AuthorizationGate interface {
	Authorize(workspaceID, userID string, minRole wsdomain.Role) (wsdomain.Role, error)
	ResolveRole(workspaceID, userID string) (wsdomain.Role, bool, error)
}

// Broadcaster pushes canonical state events to a board room. Satisfied by
// the websocket hub. Delivery is best-effort and never fails a mutation.
type Broadcaster interface {
	Broadcast(room, event string, payload interface{})
}

// BoardSnapshot is the full board state a client loads on (re)connect.
type BoardSnapshot struct {
	Board   *boarddomain.Board    `json:"board"`
	Columns []*boarddomain.Column `json:"columns"`
	Tasks   []*boarddomain.Task   `json:"tasks"`
}

// BoardUsecase covers projects and board structure. Structural edits
// require the ADMIN role.
type BoardUsecase interface {
	CreateProject(userID, workspaceID, name string) (*boarddomain.Project, error)
	ListProjects(userID, workspaceID string) ([]*boarddomain.Project, error)
	DeleteProject(userID, projectID string) error

	GetBoard(userID, boardID string) (*BoardSnapshot, error)
	GetBoardByProject(userID, projectID string) (*BoardSnapshot, error)
	// AuthorizeBoard checks the user may view the board. Used by the
	// socket handler before a room join and by presence queries.
	AuthorizeBoard(userID, boardID string) error

	AddColumn(userID, boardID, title string) (*boarddomain.Column, error)
	RenameColumn(userID, columnID, title string) (*boarddomain.Column, error)
	ReorderColumns(userID, boardID string, orderedColumnIDs []string) ([]*boarddomain.Column, error)
	DeleteColumn(userID, columnID string) error
}

// CreateTaskRequest carries the fields for a new task. Position nil means
// end of column.
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	AssigneeID  *string `json:"assignee_id"`
	Position    *int    `json:"position"`
}

// UpdateTaskRequest is a partial patch. Nil fields are untouched; an empty
// string for DueDate or AssigneeID clears the value. Position and column
// are never patched here, moves go through MoveTask.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	AssigneeID  *string `json:"assignee_id"`
}

// TaskUsecase is the board mutation service. Every operation clears the
// authorization gate first and emits exactly one canonical-state event to
// the board room on success.
type TaskUsecase interface {
	CreateTask(userID, boardID, columnID string, req CreateTaskRequest) (*boarddomain.Task, error)
	GetTasksForBoard(userID, boardID string) ([]*boarddomain.Task, error)
	UpdateTask(userID, taskID string, req UpdateTaskRequest) (*boarddomain.Task, error)
	MoveTask(userID, taskID, destColumnID string, destPosition int) (*boarddomain.Task, error)
	DeleteTask(userID, taskID string) error
	SearchTasks(userID, boardID, query string) ([]*boarddomain.Task, error)

	AddComment(userID, taskID, content string) (*boarddomain.Comment, error)
	ListComments(userID, taskID string) ([]*boarddomain.Comment, error)
	UpdateComment(userID, commentID, content string) (*boarddomain.Comment, error)
	DeleteComment(userID, commentID string) error
}
