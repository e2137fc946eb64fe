package usecase

import (
	"fmt"
	"testing"

	authdomain "teamboard-backend/internal/auth/domain"
	wsdomain "teamboard-backend/internal/workspace/domain"
	"teamboard-backend/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorkspaceRepo struct {
	seq        int
	workspaces map[string]*wsdomain.Workspace
	members    map[string]*wsdomain.Member // "workspaceID/userID"
}

func newFakeWorkspaceRepo() *fakeWorkspaceRepo {
	return &fakeWorkspaceRepo{
		workspaces: make(map[string]*wsdomain.Workspace),
		members:    make(map[string]*wsdomain.Member),
	}
}

func memberKey(workspaceID, userID string) string {
	return workspaceID + "/" + userID
}

func (r *fakeWorkspaceRepo) Create(workspace *wsdomain.Workspace, creatorMember *wsdomain.Member) error {
	r.seq++
	workspace.ID = fmt.Sprintf("ws-%d", r.seq)
	creatorMember.WorkspaceID = workspace.ID
	cp := *workspace
	r.workspaces[workspace.ID] = &cp
	mcp := *creatorMember
	r.members[memberKey(workspace.ID, creatorMember.UserID)] = &mcp
	return nil
}

func (r *fakeWorkspaceRepo) FindByID(id string) (*wsdomain.Workspace, error) {
	workspace, ok := r.workspaces[id]
	if !ok {
		return nil, nil
	}
	cp := *workspace
	return &cp, nil
}

func (r *fakeWorkspaceRepo) FindByUserID(userID string) ([]*wsdomain.Workspace, error) {
	var out []*wsdomain.Workspace
	for _, member := range r.members {
		if member.UserID != userID {
			continue
		}
		if workspace, ok := r.workspaces[member.WorkspaceID]; ok {
			cp := *workspace
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeWorkspaceRepo) Delete(id string) error {
	delete(r.workspaces, id)
	for key, member := range r.members {
		if member.WorkspaceID == id {
			delete(r.members, key)
		}
	}
	return nil
}

func (r *fakeWorkspaceRepo) FindMember(workspaceID, userID string) (*wsdomain.Member, error) {
	member, ok := r.members[memberKey(workspaceID, userID)]
	if !ok {
		return nil, nil
	}
	cp := *member
	return &cp, nil
}

func (r *fakeWorkspaceRepo) ListMembers(workspaceID string) ([]*wsdomain.Member, error) {
	var out []*wsdomain.Member
	for _, member := range r.members {
		if member.WorkspaceID == workspaceID {
			cp := *member
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeWorkspaceRepo) AddMember(member *wsdomain.Member) error {
	key := memberKey(member.WorkspaceID, member.UserID)
	if _, exists := r.members[key]; exists {
		return apperr.Conflict("member exists")
	}
	cp := *member
	r.members[key] = &cp
	return nil
}

func (r *fakeWorkspaceRepo) UpdateMember(member *wsdomain.Member) error {
	cp := *member
	r.members[memberKey(member.WorkspaceID, member.UserID)] = &cp
	return nil
}

func (r *fakeWorkspaceRepo) RemoveMember(workspaceID, userID string) error {
	delete(r.members, memberKey(workspaceID, userID))
	return nil
}

type fakeUserRepo struct {
	users map[string]*authdomain.User // keyed by id
}

func newFakeUserRepo(emails ...string) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*authdomain.User)}
	for _, email := range emails {
		id := email[:len(email)-len("@example.com")]
		r.users[id] = &authdomain.User{ID: id, Email: email, Name: id}
	}
	return r
}

func (r *fakeUserRepo) Create(user *authdomain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*authdomain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(id string) (*authdomain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) Update(user *authdomain.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) SaveRefreshToken(token *authdomain.RefreshToken) error { return nil }

func (r *fakeUserRepo) FindRefreshToken(token string) (*authdomain.RefreshToken, error) {
	return nil, nil
}

func (r *fakeUserRepo) DeleteRefreshToken(token string) error { return nil }

// newWorkspaceUnderTest seeds a workspace created by alice with bob as a
// member and carol as a viewer.
func newWorkspaceUnderTest(t *testing.T) (WorkspaceUsecase, string) {
	t.Helper()
	repo := newFakeWorkspaceRepo()
	users := newFakeUserRepo("alice@example.com", "bob@example.com", "carol@example.com", "dave@example.com")
	uc := NewWorkspaceUsecase(repo, users)

	workspace, err := uc.CreateWorkspace("alice", "Team")
	require.NoError(t, err)

	_, err = uc.InviteMember("alice", workspace.ID, "bob@example.com", wsdomain.RoleMember)
	require.NoError(t, err)
	_, err = uc.InviteMember("alice", workspace.ID, "carol@example.com", wsdomain.RoleViewer)
	require.NoError(t, err)

	return uc, workspace.ID
}

func TestCreateWorkspaceMakesCreatorAdmin(t *testing.T) {
	uc := NewWorkspaceUsecase(newFakeWorkspaceRepo(), newFakeUserRepo())

	workspace, err := uc.CreateWorkspace("alice", "Team")
	require.NoError(t, err)

	role, ok, err := uc.ResolveRole(workspace.ID, "alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, wsdomain.RoleAdmin, role)
}

func TestResolveRoleNonMember(t *testing.T) {
	uc, wsID := newWorkspaceUnderTest(t)

	_, ok, err := uc.ResolveRole(wsID, "mallory")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthorizeRoleOrdering(t *testing.T) {
	uc, wsID := newWorkspaceUnderTest(t)

	cases := []struct {
		userID  string
		minRole wsdomain.Role
		allowed bool
	}{
		{"alice", wsdomain.RoleAdmin, true},
		{"alice", wsdomain.RoleViewer, true},
		{"bob", wsdomain.RoleViewer, true},
		{"bob", wsdomain.RoleMember, true},
		{"bob", wsdomain.RoleAdmin, false},
		{"carol", wsdomain.RoleViewer, true},
		{"carol", wsdomain.RoleMember, false},
		{"mallory", wsdomain.RoleViewer, false},
	}
	for _, tc := range cases {
		_, err := uc.Authorize(wsID, tc.userID, tc.minRole)
		if tc.allowed {
			assert.NoError(t, err, "%s at %s", tc.userID, tc.minRole)
		} else {
			assert.ErrorIs(t, err, apperr.ErrForbidden, "%s at %s", tc.userID, tc.minRole)
		}
	}
}

func TestInviteMember(t *testing.T) {
	uc, wsID := newWorkspaceUnderTest(t)

	member, err := uc.InviteMember("alice", wsID, "dave@example.com", wsdomain.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, "dave", member.UserID)
	assert.Equal(t, wsdomain.RoleMember, member.Role)
}

func TestInviteMemberRejectsDuplicate(t *testing.T) {
	uc, wsID := newWorkspaceUnderTest(t)

	_, err := uc.InviteMember("alice", wsID, "bob@example.com", wsdomain.RoleViewer)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestInviteMemberUnknownEmail(t *testing.T) {
	uc, wsID := newWorkspaceUnderTest(t)

	_, err := uc.InviteMember("alice", wsID, "nobody@example.com", wsdomain.RoleMember)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestInviteMemberRequiresAdmin(t *testing.T) {
	uc, wsID := newWorkspaceUnderTest(t)

	_, err := uc.InviteMember("bob", wsID, "dave@example.com", wsdomain.RoleMember)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestInviteMemberRejectsUnknownRole(t *testing.T) {
	uc, wsID := newWorkspaceUnderTest(t)

	_, err := uc.InviteMember("alice", wsID, "dave@example.com", wsdomain.Role("owner"))
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestChangeMemberRole(t *testing.T) {
	uc, wsID := newWorkspaceUnderTest(t)

	member, err := uc.ChangeMemberRole("alice", wsID, "carol", wsdomain.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, wsdomain.RoleMember, member.Role)

	role, ok, err := uc.ResolveRole(wsID, "carol")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, wsdomain.RoleMember, role)
}

func TestCreatorCannotBeDemotedOrRemoved(t *testing.T) {
	uc, wsID := newWorkspaceUnderTest(t)

	// Promote bob so a second admin exists to attempt it.
	_, err := uc.ChangeMemberRole("alice", wsID, "bob", wsdomain.RoleAdmin)
	require.NoError(t, err)

	_, err = uc.ChangeMemberRole("bob", wsID, "alice", wsdomain.RoleMember)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	assert.ErrorIs(t, uc.RemoveMember("bob", wsID, "alice"), apperr.ErrForbidden)
}

func TestRemoveMember(t *testing.T) {
	uc, wsID := newWorkspaceUnderTest(t)

	require.NoError(t, uc.RemoveMember("alice", wsID, "carol"))

	_, ok, err := uc.ResolveRole(wsID, "carol")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, uc.RemoveMember("alice", wsID, "carol"), apperr.ErrNotFound)
}

func TestDeleteWorkspaceCreatorOnly(t *testing.T) {
	uc, wsID := newWorkspaceUnderTest(t)

	// bob is promoted to admin but still cannot delete.
	_, err := uc.ChangeMemberRole("alice", wsID, "bob", wsdomain.RoleAdmin)
	require.NoError(t, err)
	assert.ErrorIs(t, uc.DeleteWorkspace("bob", wsID), apperr.ErrForbidden)

	require.NoError(t, uc.DeleteWorkspace("alice", wsID))
	assert.ErrorIs(t, uc.DeleteWorkspace("alice", wsID), apperr.ErrNotFound)
}

func TestGetWorkspaceRequiresMembership(t *testing.T) {
	uc, wsID := newWorkspaceUnderTest(t)

	_, err := uc.GetWorkspace("mallory", wsID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	workspace, err := uc.GetWorkspace("carol", wsID)
	require.NoError(t, err)
	assert.Equal(t, wsID, workspace.ID)
}
