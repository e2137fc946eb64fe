package repository

import (
	"errors"
	"time"

	boarddomain "teamboard-backend/internal/board/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// projectRepository implements ProjectRepository interface
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of projectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{
		db: db,
	}
}

func (r *projectRepository) Create(project *boarddomain.Project, board *boarddomain.Board, columns []*boarddomain.Column) error {
	now := time.Now()

	project.ID = uuid.New().String()
	project.CreatedAt = now
	project.UpdatedAt = now

	board.ID = uuid.New().String()
	board.ProjectID = project.ID
	board.WorkspaceID = project.WorkspaceID
	board.CreatedAt = now
	board.UpdatedAt = now

	for i, column := range columns {
		column.ID = uuid.New().String()
		column.BoardID = board.ID
		column.Position = i
		column.CreatedAt = now
		column.UpdatedAt = now
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		for _, column := range columns {
			if err := tx.Create(column).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *projectRepository) FindByID(id string) (*boarddomain.Project, error) {
	var project boarddomain.Project
	err := r.db.Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindByWorkspaceID(workspaceID string) ([]*boarddomain.Project, error) {
	var projects []*boarddomain.Project
	err := r.db.Where("workspace_id = ?", workspaceID).Order("created_at ASC").Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var board boarddomain.Board
		err := tx.Where("project_id = ?", id).First(&board).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err == nil {
			taskIDs := tx.Model(&boarddomain.Task{}).Select("id").Where("board_id = ?", board.ID)
			if err := tx.Where("task_id IN (?)", taskIDs).Delete(&boarddomain.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("board_id = ?", board.ID).Delete(&boarddomain.Task{}).Error; err != nil {
				return err
			}
			if err := tx.Where("board_id = ?", board.ID).Delete(&boarddomain.Column{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id = ?", board.ID).Delete(&boarddomain.Board{}).Error; err != nil {
				return err
			}
		}

		return tx.Where("id = ?", id).Delete(&boarddomain.Project{}).Error
	})
}
