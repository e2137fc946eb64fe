package repository

import (
	"errors"
	"time"

	boarddomain "teamboard-backend/internal/board/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// commentRepository implements CommentRepository interface
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of commentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{
		db: db,
	}
}

func (r *commentRepository) Create(comment *boarddomain.Comment) error {
	comment.ID = uuid.New().String()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()
	return r.db.Create(comment).Error
}

func (r *commentRepository) FindByID(id string) (*boarddomain.Comment, error) {
	var comment boarddomain.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindByTaskID(taskID string) ([]*boarddomain.Comment, error) {
	var comments []*boarddomain.Comment
	err := r.db.Where("task_id = ?", taskID).Order("created_at ASC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Update(comment *boarddomain.Comment) error {
	comment.UpdatedAt = time.Now()
	return r.db.Save(comment).Error
}

func (r *commentRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&boarddomain.Comment{}).Error
}

func (r *commentRepository) CountByTaskIDs(taskIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(taskIDs))
	if len(taskIDs) == 0 {
		return counts, nil
	}

	type row struct {
		TaskID string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&boarddomain.Comment{}).
		Select("task_id, COUNT(*) as count").
		Where("task_id IN ?", taskIDs).
		Group("task_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.TaskID] = row.Count
	}
	return counts, nil
}

func (r *commentRepository) DeleteByTaskID(taskID string) error {
	return r.db.Where("task_id = ?", taskID).Delete(&boarddomain.Comment{}).Error
}
