package delivery

import (
	"net/http"

	wsdomain "teamboard-backend/internal/workspace/domain"
	wsdto "teamboard-backend/internal/workspace/dto"
	"teamboard-backend/internal/workspace/usecase"
	"teamboard-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// WorkspaceHandler handles workspace HTTP requests
type WorkspaceHandler struct {
	workspaceUsecase usecase.WorkspaceUsecase
}

func NewWorkspaceHandler(workspaceUsecase usecase.WorkspaceUsecase) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceUsecase: workspaceUsecase,
	}
}

// CreateWorkspace creates a workspace with the caller as admin
// POST /api/workspaces
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	userID := c.GetString("userID")

	var req wsdto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workspace, err := h.workspaceUsecase.CreateWorkspace(userID, req.Name)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, workspace)
}

// ListWorkspaces returns the caller's workspaces
// GET /api/workspaces
func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	userID := c.GetString("userID")

	workspaces, err := h.workspaceUsecase.ListWorkspaces(userID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"workspaces": workspaces})
}

// GetWorkspace returns a workspace with its members
// GET /api/workspaces/:id
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	userID := c.GetString("userID")
	workspaceID := c.Param("id")

	workspace, err := h.workspaceUsecase.GetWorkspace(userID, workspaceID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, workspace)
}

// DeleteWorkspace is restricted to the workspace creator
// DELETE /api/workspaces/:id
func (h *WorkspaceHandler) DeleteWorkspace(c *gin.Context) {
	userID := c.GetString("userID")
	workspaceID := c.Param("id")

	if err := h.workspaceUsecase.DeleteWorkspace(userID, workspaceID); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "workspace deleted"})
}

// InviteMember adds a user to the workspace by email
// POST /api/workspaces/:id/members
func (h *WorkspaceHandler) InviteMember(c *gin.Context) {
	userID := c.GetString("userID")
	workspaceID := c.Param("id")

	var req wsdto.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.workspaceUsecase.InviteMember(userID, workspaceID, req.Email, wsdomain.Role(req.Role))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, member)
}

// ChangeMemberRole updates a member's role
// PATCH /api/workspaces/:id/members/:userId
func (h *WorkspaceHandler) ChangeMemberRole(c *gin.Context) {
	userID := c.GetString("userID")
	workspaceID := c.Param("id")
	targetUserID := c.Param("userId")

	var req wsdto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.workspaceUsecase.ChangeMemberRole(userID, workspaceID, targetUserID, wsdomain.Role(req.Role))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, member)
}

// RemoveMember removes a member from the workspace
// DELETE /api/workspaces/:id/members/:userId
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	userID := c.GetString("userID")
	workspaceID := c.Param("id")
	targetUserID := c.Param("userId")

	if err := h.workspaceUsecase.RemoveMember(userID, workspaceID, targetUserID); err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "member removed"})
}
