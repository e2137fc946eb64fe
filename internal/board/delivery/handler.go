package delivery

import (
	"net/http"

	"teamboard-backend/internal/board/usecase"
	"teamboard-backend/pkg/apperr"
	"teamboard-backend/pkg/ws"

	"github.com/gin-gonic/gin"
)

// BoardHandler handles project, board, task and comment HTTP requests
type BoardHandler struct {
	boardUsecase usecase.BoardUsecase
	taskUsecase  usecase.TaskUsecase
	hub          *ws.Hub
}

func NewBoardHandler(boardUsecase usecase.BoardUsecase, taskUsecase usecase.TaskUsecase, hub *ws.Hub) *BoardHandler {
	return &BoardHandler{
		boardUsecase: boardUsecase,
		taskUsecase:  taskUsecase,
		hub:          hub,
	}
}

type createProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

type columnRequest struct {
	Title string `json:"title" binding:"required"`
}

type reorderColumnsRequest struct {
	ColumnIDs []string `json:"column_ids" binding:"required"`
}

type moveTaskRequest struct {
	ColumnID string `json:"column_id" binding:"required"`
	Position *int   `json:"position" binding:"required"`
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateProject creates a project with its board and default columns
// POST /api/workspaces/:id/projects
func (h *BoardHandler) CreateProject(c *gin.Context) {
	userID := c.GetString("userID")
	workspaceID := c.Param("id")

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.boardUsecase.CreateProject(userID, workspaceID, req.Name)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, project)
}

// ListProjects returns a workspace's projects
// GET /api/workspaces/:id/projects
func (h *BoardHandler) ListProjects(c *gin.Context) {
	userID := c.GetString("userID")
	workspaceID := c.Param("id")

	projects, err := h.boardUsecase.ListProjects(userID, workspaceID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// DeleteProject removes a project and everything on its board
// DELETE /api/projects/:id
func (h *BoardHandler) DeleteProject(c *gin.Context) {
	userID := c.GetString("userID")
	projectID := c.Param("id")

	if err := h.boardUsecase.DeleteProject(userID, projectID); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

// GetBoardByProject returns the project's board snapshot
// GET /api/projects/:id/board
func (h *BoardHandler) GetBoardByProject(c *gin.Context) {
	userID := c.GetString("userID")
	projectID := c.Param("id")

	snapshot, err := h.boardUsecase.GetBoardByProject(userID, projectID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetBoard returns the board with columns and ordered tasks
// GET /api/boards/:id
func (h *BoardHandler) GetBoard(c *gin.Context) {
	userID := c.GetString("userID")
	boardID := c.Param("id")

	snapshot, err := h.boardUsecase.GetBoard(userID, boardID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetTasks returns the board's tasks ordered by column and position
// GET /api/boards/:id/tasks
func (h *BoardHandler) GetTasks(c *gin.Context) {
	userID := c.GetString("userID")
	boardID := c.Param("id")

	tasks, err := h.taskUsecase.GetTasksForBoard(userID, boardID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// SearchTasks fuzzy-searches tasks on a board
// GET /api/boards/:id/search?q=...
func (h *BoardHandler) SearchTasks(c *gin.Context) {
	userID := c.GetString("userID")
	boardID := c.Param("id")
	query := c.Query("q")

	tasks, err := h.taskUsecase.SearchTasks(userID, boardID, query)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// GetOnlineUsers returns the users currently present in the board room
// GET /api/boards/:id/online
func (h *BoardHandler) GetOnlineUsers(c *gin.Context) {
	userID := c.GetString("userID")
	boardID := c.Param("id")

	if err := h.boardUsecase.AuthorizeBoard(userID, boardID); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": h.hub.OnlineUsers(ws.BoardRoom(boardID))})
}

// AddColumn appends a column to the board
// POST /api/boards/:id/columns
func (h *BoardHandler) AddColumn(c *gin.Context) {
	userID := c.GetString("userID")
	boardID := c.Param("id")

	var req columnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	column, err := h.boardUsecase.AddColumn(userID, boardID, req.Title)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, column)
}

// RenameColumn retitles a column
// PUT /api/columns/:id
func (h *BoardHandler) RenameColumn(c *gin.Context) {
	userID := c.GetString("userID")
	columnID := c.Param("id")

	var req columnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	column, err := h.boardUsecase.RenameColumn(userID, columnID, req.Title)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, column)
}

// ReorderColumns applies a full column ordering
// PUT /api/boards/:id/columns/order
func (h *BoardHandler) ReorderColumns(c *gin.Context) {
	userID := c.GetString("userID")
	boardID := c.Param("id")

	var req reorderColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	columns, err := h.boardUsecase.ReorderColumns(userID, boardID, req.ColumnIDs)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"columns": columns})
}

// DeleteColumn removes an empty column
// DELETE /api/columns/:id
func (h *BoardHandler) DeleteColumn(c *gin.Context) {
	userID := c.GetString("userID")
	columnID := c.Param("id")

	if err := h.boardUsecase.DeleteColumn(userID, columnID); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "column deleted"})
}

// CreateTask creates a task in a column
// POST /api/boards/:id/columns/:columnId/tasks
func (h *BoardHandler) CreateTask(c *gin.Context) {
	userID := c.GetString("userID")
	boardID := c.Param("id")
	columnID := c.Param("columnId")

	var req usecase.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.CreateTask(userID, boardID, columnID, req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial field patch
// PATCH /api/tasks/:id
func (h *BoardHandler) UpdateTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var req usecase.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.UpdateTask(userID, taskID, req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, task)
}

// MoveTask reassigns column and position
// PATCH /api/tasks/:id/move
func (h *BoardHandler) MoveTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var req moveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskUsecase.MoveTask(userID, taskID, req.ColumnID, *req.Position)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task and its comments
// DELETE /api/tasks/:id
func (h *BoardHandler) DeleteTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	if err := h.taskUsecase.DeleteTask(userID, taskID); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

// AddComment adds a comment to a task
// POST /api/tasks/:id/comments
func (h *BoardHandler) AddComment(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.taskUsecase.AddComment(userID, taskID, req.Content)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments returns a task's comments
// GET /api/tasks/:id/comments
func (h *BoardHandler) ListComments(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	comments, err := h.taskUsecase.ListComments(userID, taskID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// UpdateComment edits a comment, author only
// PUT /api/comments/:id
func (h *BoardHandler) UpdateComment(c *gin.Context) {
	userID := c.GetString("userID")
	commentID := c.Param("id")

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.taskUsecase.UpdateComment(userID, commentID, req.Content)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment, author only
// DELETE /api/comments/:id
func (h *BoardHandler) DeleteComment(c *gin.Context) {
	userID := c.GetString("userID")
	commentID := c.Param("id")

	if err := h.taskUsecase.DeleteComment(userID, commentID); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
