package usecase

import (
	authrepo "teamboard-backend/internal/auth/repository"
	wsdomain "teamboard-backend/internal/workspace/domain"
	"teamboard-backend/internal/workspace/repository"
	"teamboard-backend/pkg/apperr"
)

// workspaceUsecase implements WorkspaceUsecase interface
type workspaceUsecase struct {
	workspaceRepo repository.WorkspaceRepository
	userRepo      authrepo.UserRepository
}

// NewWorkspaceUsecase creates a new instance of workspaceUsecase
func NewWorkspaceUsecase(workspaceRepo repository.WorkspaceRepository, userRepo authrepo.UserRepository) WorkspaceUsecase {
	return &workspaceUsecase{
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
	}
}

func (u *workspaceUsecase) CreateWorkspace(userID, name string) (*wsdomain.Workspace, error) {
	workspace := &wsdomain.Workspace{
		Name:      name,
		CreatorID: userID,
	}
	creator := &wsdomain.Member{
		UserID: userID,
		Role:   wsdomain.RoleAdmin,
	}

	if err := u.workspaceRepo.Create(workspace, creator); err != nil {
		return nil, err
	}

	workspace.Members = []wsdomain.Member{*creator}
	return workspace, nil
}

func (u *workspaceUsecase) GetWorkspace(userID, workspaceID string) (*wsdomain.Workspace, error) {
	if _, err := u.Authorize(workspaceID, userID, wsdomain.RoleViewer); err != nil {
		return nil, err
	}

	workspace, err := u.workspaceRepo.FindByID(workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, apperr.NotFound("workspace %s", workspaceID)
	}
	return workspace, nil
}

func (u *workspaceUsecase) ListWorkspaces(userID string) ([]*wsdomain.Workspace, error) {
	return u.workspaceRepo.FindByUserID(userID)
}

// DeleteWorkspace is restricted to the original creator, independent of role.
func (u *workspaceUsecase) DeleteWorkspace(userID, workspaceID string) error {
	workspace, err := u.workspaceRepo.FindByID(workspaceID)
	if err != nil {
		return err
	}
	if workspace == nil {
		return apperr.NotFound("workspace %s", workspaceID)
	}
	if workspace.CreatorID != userID {
		return apperr.Forbidden("only the workspace creator can delete it")
	}
	return u.workspaceRepo.Delete(workspaceID)
}

func (u *workspaceUsecase) InviteMember(actorID, workspaceID, email string, role wsdomain.Role) (*wsdomain.Member, error) {
	if !role.Valid() {
		return nil, apperr.Validation("unknown role %q", role)
	}
	if _, err := u.Authorize(workspaceID, actorID, wsdomain.RoleAdmin); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("no user with email %s", email)
	}

	existing, err := u.workspaceRepo.FindMember(workspaceID, user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("user %s is already a member", user.ID)
	}

	member := &wsdomain.Member{
		WorkspaceID: workspaceID,
		UserID:      user.ID,
		Role:        role,
	}
	if err := u.workspaceRepo.AddMember(member); err != nil {
		return nil, err
	}
	return member, nil
}

func (u *workspaceUsecase) ChangeMemberRole(actorID, workspaceID, targetUserID string, role wsdomain.Role) (*wsdomain.Member, error) {
	if !role.Valid() {
		return nil, apperr.Validation("unknown role %q", role)
	}
	if _, err := u.Authorize(workspaceID, actorID, wsdomain.RoleAdmin); err != nil {
		return nil, err
	}

	workspace, err := u.workspaceRepo.FindByID(workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, apperr.NotFound("workspace %s", workspaceID)
	}
	if workspace.CreatorID == targetUserID && role != wsdomain.RoleAdmin {
		return nil, apperr.Forbidden("the workspace creator cannot be demoted")
	}

	member, err := u.workspaceRepo.FindMember(workspaceID, targetUserID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperr.NotFound("user %s is not a member", targetUserID)
	}

	member.Role = role
	if err := u.workspaceRepo.UpdateMember(member); err != nil {
		return nil, err
	}
	return member, nil
}

func (u *workspaceUsecase) RemoveMember(actorID, workspaceID, targetUserID string) error {
	if _, err := u.Authorize(workspaceID, actorID, wsdomain.RoleAdmin); err != nil {
		return err
	}

	workspace, err := u.workspaceRepo.FindByID(workspaceID)
	if err != nil {
		return err
	}
	if workspace == nil {
		return apperr.NotFound("workspace %s", workspaceID)
	}
	if workspace.CreatorID == targetUserID {
		return apperr.Forbidden("the workspace creator cannot be removed")
	}

	member, err := u.workspaceRepo.FindMember(workspaceID, targetUserID)
	if err != nil {
		return err
	}
	if member == nil {
		return apperr.NotFound("user %s is not a member", targetUserID)
	}

	return u.workspaceRepo.RemoveMember(workspaceID, targetUserID)
}

func (u *workspaceUsecase) ResolveRole(workspaceID, userID string) (wsdomain.Role, bool, error) {
	member, err := u.workspaceRepo.FindMember(workspaceID, userID)
	if err != nil {
		return "", false, err
	}
	if member == nil {
		return "", false, nil
	}
	return member.Role, true, nil
}

func (u *workspaceUsecase) Authorize(workspaceID, userID string, minRole wsdomain.Role) (wsdomain.Role, error) {
	role, ok, err := u.ResolveRole(workspaceID, userID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.Forbidden("user %s is not a member of workspace %s", userID, workspaceID)
	}
	if !role.AtLeast(minRole) {
		return "", apperr.Forbidden("role %s is below required %s", role, minRole)
	}
	return role, nil
}
