package repository

import wsdomain "teamboard-backend/internal/workspace/domain"

// WorkspaceRepository defines the interface for workspace persistence
type WorkspaceRepository interface {
	Create(workspace *wsdomain.Workspace, creatorMember *wsdomain.Member) error
	FindByID(id string) (*wsdomain.Workspace, error)
	FindByUserID(userID string) ([]*wsdomain.Workspace, error)
	Delete(id string) error

	FindMember(workspaceID, userID string) (*wsdomain.Member, error)
	ListMembers(workspaceID string) ([]*wsdomain.Member, error)
	AddMember(member *wsdomain.Member) error
	UpdateMember(member *wsdomain.Member) error
	RemoveMember(workspaceID, userID string) error
}
