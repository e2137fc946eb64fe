package domain

import "time"

type Board struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ProjectID   string    `json:"project_id" gorm:"uniqueIndex;not null"`
	WorkspaceID string    `json:"workspace_id" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Column is a board lane. Position is the zero-based display order within
// the board.
type Column struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	BoardID   string    `json:"board_id" gorm:"index;not null"`
	Title     string    `json:"title" gorm:"not null"`
	Position  int       `json:"position" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultColumnTitles are created with every new board.
var DefaultColumnTitles = []string{"To Do", "In Progress", "Done"}
