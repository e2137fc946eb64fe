package repository

import (
	"errors"
	"time"

	boarddomain "teamboard-backend/internal/board/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// taskRepository implements TaskRepository interface
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of taskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{
		db: db,
	}
}

func (r *taskRepository) FindByID(id string) (*boarddomain.Task, error) {
	var task boarddomain.Task
	err := r.db.Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) FindByBoardID(boardID string) ([]*boarddomain.Task, error) {
	var tasks []*boarddomain.Task
	err := r.db.Where("board_id = ?", boardID).
		Order("column_id ASC, position ASC, created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) FindByColumnID(boardID, columnID string) ([]*boarddomain.Task, error) {
	var tasks []*boarddomain.Task
	err := r.db.Where("board_id = ? AND column_id = ?", boardID, columnID).
		Order("position ASC, created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Create(task *boarddomain.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()
	return r.db.Create(task).Error
}

func (r *taskRepository) Update(task *boarddomain.Task) error {
	task.UpdatedAt = time.Now()
	return r.db.Save(task).Error
}

func (r *taskRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&boarddomain.Task{}).Error
}

func (r *taskRepository) ApplyPositions(writes []PositionWrite) error {
	for _, write := range writes {
		err := r.db.Model(&boarddomain.Task{}).
			Where("id = ?", write.TaskID).
			Updates(map[string]interface{}{"position": write.Position, "updated_at": time.Now()}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *taskRepository) FindDueBetween(from, to time.Time) ([]*boarddomain.Task, error) {
	var tasks []*boarddomain.Task
	err := r.db.Where("due_date IS NOT NULL AND due_date > ? AND due_date <= ? AND due_soon_notified = ?", from, to, false).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) MarkDueSoonNotified(id string) error {
	return r.db.Model(&boarddomain.Task{}).
		Where("id = ?", id).
		Update("due_soon_notified", true).Error
}

// InTransaction binds the task and comment repositories to a single
// storage transaction. All position mutations for a move run through here
// so concurrent moves on the same column serialize on the database.
func (r *taskRepository) InTransaction(fn func(TaskRepository, CommentRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&taskRepository{db: tx}, &commentRepository{db: tx})
	})
}
