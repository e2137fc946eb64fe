package repository

import (
	"errors"
	"time"

	wsdomain "teamboard-backend/internal/workspace/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// workspaceRepository implements WorkspaceRepository interface
type workspaceRepository struct {
	db *gorm.DB
}

// NewWorkspaceRepository creates a new instance of workspaceRepository
func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &workspaceRepository{
		db: db,
	}
}

// Create persists the workspace together with its creator membership so a
// workspace never exists without its admin.
func (r *workspaceRepository) Create(workspace *wsdomain.Workspace, creatorMember *wsdomain.Member) error {
	workspace.ID = uuid.New().String()
	workspace.CreatedAt = time.Now()
	workspace.UpdatedAt = time.Now()

	creatorMember.ID = uuid.New().String()
	creatorMember.WorkspaceID = workspace.ID
	creatorMember.CreatedAt = time.Now()
	creatorMember.UpdatedAt = time.Now()

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(workspace).Error; err != nil {
			return err
		}
		return tx.Create(creatorMember).Error
	})
}

func (r *workspaceRepository) FindByID(id string) (*wsdomain.Workspace, error) {
	var workspace wsdomain.Workspace
	err := r.db.Preload("Members").Where("id = ?", id).First(&workspace).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &workspace, nil
}

func (r *workspaceRepository) FindByUserID(userID string) ([]*wsdomain.Workspace, error) {
	var workspaces []*wsdomain.Workspace
	err := r.db.
		Joins("JOIN members ON members.workspace_id = workspaces.id").
		Where("members.user_id = ?", userID).
		Order("workspaces.created_at ASC").
		Find(&workspaces).Error
	if err != nil {
		return nil, err
	}
	return workspaces, nil
}

func (r *workspaceRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workspace_id = ?", id).Delete(&wsdomain.Member{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&wsdomain.Workspace{}).Error
	})
}

func (r *workspaceRepository) FindMember(workspaceID, userID string) (*wsdomain.Member, error) {
	var member wsdomain.Member
	err := r.db.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *workspaceRepository) ListMembers(workspaceID string) ([]*wsdomain.Member, error) {
	var members []*wsdomain.Member
	err := r.db.Where("workspace_id = ?", workspaceID).Order("created_at ASC").Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *workspaceRepository) AddMember(member *wsdomain.Member) error {
	member.ID = uuid.New().String()
	member.CreatedAt = time.Now()
	member.UpdatedAt = time.Now()
	return r.db.Create(member).Error
}

func (r *workspaceRepository) UpdateMember(member *wsdomain.Member) error {
	member.UpdatedAt = time.Now()
	return r.db.Save(member).Error
}

func (r *workspaceRepository) RemoveMember(workspaceID, userID string) error {
	return r.db.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).Delete(&wsdomain.Member{}).Error
}
