package repository

import (
	"time"

	boarddomain "teamboard-backend/internal/board/domain"
)

// PositionWrite is a single task position update produced by the position
// allocator and applied inside a transaction.
type PositionWrite struct {
	TaskID   string
	Position int
}

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	// Create persists the project with its board and initial columns in one
	// transaction.
	Create(project *boarddomain.Project, board *boarddomain.Board, columns []*boarddomain.Column) error
	FindByID(id string) (*boarddomain.Project, error)
	FindByWorkspaceID(workspaceID string) ([]*boarddomain.Project, error)
	// Delete removes the project and cascades its board, columns, tasks and
	// comments.
	Delete(id string) error
}

// BoardRepository defines the interface for board and column persistence
type BoardRepository interface {
	FindByID(id string) (*boarddomain.Board, error)
	FindByProjectID(projectID string) (*boarddomain.Board, error)
	ListColumns(boardID string) ([]*boarddomain.Column, error)
	FindColumn(columnID string) (*boarddomain.Column, error)
	CreateColumn(column *boarddomain.Column) error
	UpdateColumn(column *boarddomain.Column) error
	UpdateColumnPositions(boardID string, positions map[string]int) error
	// DeleteColumnIfEmpty deletes the column only if it contains no tasks,
	// checked and deleted in a single statement so a concurrent task create
	// cannot be orphaned. Returns whether the column was deleted.
	DeleteColumnIfEmpty(columnID string) (bool, error)
}

// TaskRepository defines the interface for task persistence.
//
// InTransaction runs fn against repositories bound to a single storage
// transaction; the column position sequence is only ever mutated through
// it, so concurrent moves serialize on the database. The comment
// repository rides along so a task delete and its comment cascade commit
// or roll back together.
type TaskRepository interface {
	FindByID(id string) (*boarddomain.Task, error)
	FindByBoardID(boardID string) ([]*boarddomain.Task, error)
	// FindByColumnID returns the column's tasks ordered by position, ties
	// broken by creation time.
	FindByColumnID(boardID, columnID string) ([]*boarddomain.Task, error)
	Create(task *boarddomain.Task) error
	Update(task *boarddomain.Task) error
	Delete(id string) error
	ApplyPositions(writes []PositionWrite) error
	FindDueBetween(from, to time.Time) ([]*boarddomain.Task, error)
	MarkDueSoonNotified(id string) error
	InTransaction(fn func(tasks TaskRepository, comments CommentRepository) error) error
}

// CommentRepository defines the interface for comment persistence
type CommentRepository interface {
	Create(comment *boarddomain.Comment) error
	FindByID(id string) (*boarddomain.Comment, error)
	FindByTaskID(taskID string) ([]*boarddomain.Comment, error)
	Update(comment *boarddomain.Comment) error
	Delete(id string) error
	CountByTaskIDs(taskIDs []string) (map[string]int64, error)
	DeleteByTaskID(taskID string) error
}
