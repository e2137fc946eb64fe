package domain

import "time"

// Role is the per-workspace capability level, strictly ordered
// ADMIN > MEMBER > VIEWER. VIEWER is read-only.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

var roleLevel = map[Role]int{
	RoleViewer: 1,
	RoleMember: 2,
	RoleAdmin:  3,
}

func (r Role) Valid() bool {
	_, ok := roleLevel[r]
	return ok
}

// AtLeast reports whether r grants the capability of min.
func (r Role) AtLeast(min Role) bool {
	return roleLevel[r] >= roleLevel[min]
}

type Workspace struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	CreatorID string    `json:"creator_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Members []Member `json:"members,omitempty" gorm:"foreignKey:WorkspaceID"`
}

// Member links a user to a workspace with a role. The workspace creator is
// always an admin member and can never be demoted or removed.
type Member struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	WorkspaceID string    `json:"workspace_id" gorm:"uniqueIndex:idx_workspace_user;not null"`
	UserID      string    `json:"user_id" gorm:"uniqueIndex:idx_workspace_user;not null"`
	Role        Role      `json:"role" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
