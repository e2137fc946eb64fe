package usecase

import (
	boarddomain "teamboard-backend/internal/board/domain"
	"teamboard-backend/internal/board/repository"
	wsdomain "teamboard-backend/internal/workspace/domain"
	"teamboard-backend/pkg/apperr"
	"teamboard-backend/pkg/ws"
)

// boardUsecase implements BoardUsecase interface
type boardUsecase struct {
	projectRepo repository.ProjectRepository
	boardRepo   repository.BoardRepository
	taskRepo    repository.TaskRepository
	commentRepo repository.CommentRepository
	gate        AuthorizationGate
	broadcaster Broadcaster
}

// NewBoardUsecase creates a new instance of boardUsecase
func NewBoardUsecase(
	projectRepo repository.ProjectRepository,
	boardRepo repository.BoardRepository,
	taskRepo repository.TaskRepository,
	commentRepo repository.CommentRepository,
	gate AuthorizationGate,
	broadcaster Broadcaster,
) BoardUsecase {
	return &boardUsecase{
		projectRepo: projectRepo,
		boardRepo:   boardRepo,
		taskRepo:    taskRepo,
		commentRepo: commentRepo,
		gate:        gate,
		broadcaster: broadcaster,
	}
}

// CreateProject creates the project together with its board and default
// columns.
func (u *boardUsecase) CreateProject(userID, workspaceID, name string) (*boarddomain.Project, error) {
	if _, err := u.gate.Authorize(workspaceID, userID, wsdomain.RoleMember); err != nil {
		return nil, err
	}

	project := &boarddomain.Project{
		WorkspaceID: workspaceID,
		Name:        name,
		CreatedBy:   userID,
	}
	board := &boarddomain.Board{}
	columns := make([]*boarddomain.Column, 0, len(boarddomain.DefaultColumnTitles))
	for _, title := range boarddomain.DefaultColumnTitles {
		columns = append(columns, &boarddomain.Column{Title: title})
	}

	if err := u.projectRepo.Create(project, board, columns); err != nil {
		return nil, err
	}
	return project, nil
}

func (u *boardUsecase) ListProjects(userID, workspaceID string) ([]*boarddomain.Project, error) {
	if _, err := u.gate.Authorize(workspaceID, userID, wsdomain.RoleViewer); err != nil {
		return nil, err
	}
	return u.projectRepo.FindByWorkspaceID(workspaceID)
}

func (u *boardUsecase) DeleteProject(userID, projectID string) error {
	project, err := u.projectRepo.FindByID(projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return apperr.NotFound("project %s", projectID)
	}
	if _, err := u.gate.Authorize(project.WorkspaceID, userID, wsdomain.RoleAdmin); err != nil {
		return err
	}
	return u.projectRepo.Delete(projectID)
}

func (u *boardUsecase) GetBoard(userID, boardID string) (*BoardSnapshot, error) {
	board, err := u.boardRepo.FindByID(boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apperr.NotFound("board %s", boardID)
	}
	if _, err := u.gate.Authorize(board.WorkspaceID, userID, wsdomain.RoleViewer); err != nil {
		return nil, err
	}
	return u.snapshot(board)
}

func (u *boardUsecase) GetBoardByProject(userID, projectID string) (*BoardSnapshot, error) {
	board, err := u.boardRepo.FindByProjectID(projectID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apperr.NotFound("board for project %s", projectID)
	}
	return u.GetBoard(userID, board.ID)
}

func (u *boardUsecase) AuthorizeBoard(userID, boardID string) error {
	board, err := u.requireBoard(boardID)
	if err != nil {
		return err
	}
	_, err = u.gate.Authorize(board.WorkspaceID, userID, wsdomain.RoleViewer)
	return err
}

func (u *boardUsecase) snapshot(board *boarddomain.Board) (*BoardSnapshot, error) {
	columns, err := u.boardRepo.ListColumns(board.ID)
	if err != nil {
		return nil, err
	}
	tasks, err := u.taskRepo.FindByBoardID(board.ID)
	if err != nil {
		return nil, err
	}
	if err := attachCommentCounts(u.commentRepo, tasks); err != nil {
		return nil, err
	}

	return &BoardSnapshot{
		Board:   board,
		Columns: columns,
		Tasks:   tasks,
	}, nil
}

func (u *boardUsecase) AddColumn(userID, boardID, title string) (*boarddomain.Column, error) {
	board, err := u.requireBoard(boardID)
	if err != nil {
		return nil, err
	}
	if _, err := u.gate.Authorize(board.WorkspaceID, userID, wsdomain.RoleAdmin); err != nil {
		return nil, err
	}

	columns, err := u.boardRepo.ListColumns(boardID)
	if err != nil {
		return nil, err
	}

	column := &boarddomain.Column{
		BoardID:  boardID,
		Title:    title,
		Position: len(columns),
	}
	if err := u.boardRepo.CreateColumn(column); err != nil {
		return nil, err
	}

	u.broadcastColumns(boardID)
	return column, nil
}

func (u *boardUsecase) RenameColumn(userID, columnID, title string) (*boarddomain.Column, error) {
	column, board, err := u.requireColumn(columnID)
	if err != nil {
		return nil, err
	}
	if _, err := u.gate.Authorize(board.WorkspaceID, userID, wsdomain.RoleAdmin); err != nil {
		return nil, err
	}

	column.Title = title
	if err := u.boardRepo.UpdateColumn(column); err != nil {
		return nil, err
	}

	u.broadcastColumns(board.ID)
	return column, nil
}

func (u *boardUsecase) ReorderColumns(userID, boardID string, orderedColumnIDs []string) ([]*boarddomain.Column, error) {
	board, err := u.requireBoard(boardID)
	if err != nil {
		return nil, err
	}
	if _, err := u.gate.Authorize(board.WorkspaceID, userID, wsdomain.RoleAdmin); err != nil {
		return nil, err
	}

	columns, err := u.boardRepo.ListColumns(boardID)
	if err != nil {
		return nil, err
	}
	if len(orderedColumnIDs) != len(columns) {
		return nil, apperr.Validation("expected %d column ids, got %d", len(columns), len(orderedColumnIDs))
	}
	known := make(map[string]*boarddomain.Column, len(columns))
	for _, column := range columns {
		known[column.ID] = column
	}

	positions := make(map[string]int, len(orderedColumnIDs))
	for i, id := range orderedColumnIDs {
		column, ok := known[id]
		if !ok {
			return nil, apperr.Validation("column %s does not belong to board %s", id, boardID)
		}
		positions[id] = i
		column.Position = i
	}
	if len(positions) != len(columns) {
		return nil, apperr.Validation("duplicate column ids in order")
	}

	if err := u.boardRepo.UpdateColumnPositions(boardID, positions); err != nil {
		return nil, err
	}

	u.broadcastColumns(boardID)
	return u.boardRepo.ListColumns(boardID)
}

// DeleteColumn rejects columns that still contain tasks. The emptiness
// check and the delete are one atomic storage operation.
func (u *boardUsecase) DeleteColumn(userID, columnID string) error {
	column, board, err := u.requireColumn(columnID)
	if err != nil {
		return err
	}
	if _, err := u.gate.Authorize(board.WorkspaceID, userID, wsdomain.RoleAdmin); err != nil {
		return err
	}

	deleted, err := u.boardRepo.DeleteColumnIfEmpty(column.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.Validation("column %s still contains tasks", columnID)
	}

	// Keep the remaining column positions dense.
	columns, err := u.boardRepo.ListColumns(board.ID)
	if err != nil {
		return err
	}
	positions := make(map[string]int, len(columns))
	for i, remaining := range columns {
		if remaining.Position != i {
			positions[remaining.ID] = i
		}
	}
	if len(positions) > 0 {
		if err := u.boardRepo.UpdateColumnPositions(board.ID, positions); err != nil {
			return err
		}
	}

	u.broadcastColumns(board.ID)
	return nil
}

func (u *boardUsecase) requireBoard(boardID string) (*boarddomain.Board, error) {
	board, err := u.boardRepo.FindByID(boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apperr.NotFound("board %s", boardID)
	}
	return board, nil
}

func (u *boardUsecase) requireColumn(columnID string) (*boarddomain.Column, *boarddomain.Board, error) {
	column, err := u.boardRepo.FindColumn(columnID)
	if err != nil {
		return nil, nil, err
	}
	if column == nil {
		return nil, nil, apperr.NotFound("column %s", columnID)
	}
	board, err := u.requireBoard(column.BoardID)
	if err != nil {
		return nil, nil, err
	}
	return column, board, nil
}

func (u *boardUsecase) broadcastColumns(boardID string) {
	columns, err := u.boardRepo.ListColumns(boardID)
	if err != nil {
		return
	}
	u.broadcaster.Broadcast(ws.BoardRoom(boardID), ws.EventColumnsUpdated, columns)
}
