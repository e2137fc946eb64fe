package usecase

import (
	wsdomain "teamboard-backend/internal/workspace/domain"
)

// WorkspaceUsecase defines workspace and membership operations.
//
// Authorize is the authorization gate consulted by every board mutation:
// it resolves the caller's role in a workspace and rejects anything below
// the minimum required role.
type WorkspaceUsecase interface {
	CreateWorkspace(userID, name string) (*wsdomain.Workspace, error)
	GetWorkspace(userID, workspaceID string) (*wsdomain.Workspace, error)
	ListWorkspaces(userID string) ([]*wsdomain.Workspace, error)
	DeleteWorkspace(userID, workspaceID string) error

	InviteMember(actorID, workspaceID, email string, role wsdomain.Role) (*wsdomain.Member, error)
	ChangeMemberRole(actorID, workspaceID, targetUserID string, role wsdomain.Role) (*wsdomain.Member, error)
	RemoveMember(actorID, workspaceID, targetUserID string) error

	// ResolveRole looks up membership without judging it. The boolean is
	// false when the user is not a member.
	ResolveRole(workspaceID, userID string) (wsdomain.Role, bool, error)
	// Authorize fails with ErrForbidden when the user is not a member or
	// the member's role is below minRole.
	Authorize(workspaceID, userID string, minRole wsdomain.Role) (wsdomain.Role, error)
}
