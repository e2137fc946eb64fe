package domain

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task belongs to a board column. ColumnID is not a relational constraint,
// the usecase checks it against the board's column set. Position is the
// zero-based rank within (BoardID, ColumnID): after every committed
// mutation the positions in a column are exactly {0..n-1}.
type Task struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	BoardID         string     `json:"board_id" gorm:"index:idx_board_column;not null"`
	ColumnID        string     `json:"column_id" gorm:"index:idx_board_column;not null"`
	Title           string     `json:"title" gorm:"not null"`
	Description     string     `json:"description"`
	Priority        Priority   `json:"priority" gorm:"not null;default:'medium'"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	AssigneeID      *string    `json:"assignee_id,omitempty"`
	Position        int        `json:"position" gorm:"not null"`
	CreatedBy       string     `json:"created_by" gorm:"not null"`
	DueSoonNotified bool       `json:"-" gorm:"not null;default:false"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Denormalized for responses, not stored.
	CommentCount int64 `json:"comment_count" gorm:"-"`
}
