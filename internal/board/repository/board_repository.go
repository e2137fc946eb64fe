package repository

import (
	"errors"
	"time"

	boarddomain "teamboard-backend/internal/board/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// boardRepository implements BoardRepository interface
type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new instance of boardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{
		db: db,
	}
}

func (r *boardRepository) FindByID(id string) (*boarddomain.Board, error) {
	var board boarddomain.Board
	err := r.db.Where("id = ?", id).First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

func (r *boardRepository) FindByProjectID(projectID string) (*boarddomain.Board, error) {
	var board boarddomain.Board
	err := r.db.Where("project_id = ?", projectID).First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

func (r *boardRepository) ListColumns(boardID string) ([]*boarddomain.Column, error) {
	var columns []*boarddomain.Column
	err := r.db.Where("board_id = ?", boardID).Order("position ASC").Find(&columns).Error
	if err != nil {
		return nil, err
	}
	return columns, nil
}

func (r *boardRepository) FindColumn(columnID string) (*boarddomain.Column, error) {
	var column boarddomain.Column
	err := r.db.Where("id = ?", columnID).First(&column).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &column, nil
}

func (r *boardRepository) CreateColumn(column *boarddomain.Column) error {
	column.ID = uuid.New().String()
	column.CreatedAt = time.Now()
	column.UpdatedAt = time.Now()
	return r.db.Create(column).Error
}

func (r *boardRepository) UpdateColumn(column *boarddomain.Column) error {
	column.UpdatedAt = time.Now()
	return r.db.Save(column).Error
}

func (r *boardRepository) UpdateColumnPositions(boardID string, positions map[string]int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for columnID, position := range positions {
			err := tx.Model(&boarddomain.Column{}).
				Where("board_id = ? AND id = ?", boardID, columnID).
				Update("position", position).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *boardRepository) DeleteColumnIfEmpty(columnID string) (bool, error) {
	// The emptiness check rides in the delete statement itself, so a task
	// created concurrently either blocks the delete or lands in a column
	// that still exists.
	res := r.db.
		Where("id = ? AND NOT EXISTS (SELECT 1 FROM tasks WHERE tasks.column_id = columns.id)", columnID).
		Delete(&boarddomain.Column{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
