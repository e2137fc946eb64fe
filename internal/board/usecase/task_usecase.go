package usecase

import (
	"strings"
	"time"

	boarddomain "teamboard-backend/internal/board/domain"
	"teamboard-backend/internal/board/repository"
	wsdomain "teamboard-backend/internal/workspace/domain"
	"teamboard-backend/pkg/apperr"
	"teamboard-backend/pkg/ws"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// taskUsecase implements TaskUsecase interface
type taskUsecase struct {
	boardRepo   repository.BoardRepository
	taskRepo    repository.TaskRepository
	commentRepo repository.CommentRepository
	gate        AuthorizationGate
	broadcaster Broadcaster
}

// NewTaskUsecase creates a new instance of taskUsecase
func NewTaskUsecase(
	boardRepo repository.BoardRepository,
	taskRepo repository.TaskRepository,
	commentRepo repository.CommentRepository,
	gate AuthorizationGate,
	broadcaster Broadcaster,
) TaskUsecase {
	return &taskUsecase{
		boardRepo:   boardRepo,
		taskRepo:    taskRepo,
		commentRepo: commentRepo,
		gate:        gate,
		broadcaster: broadcaster,
	}
}

func (u *taskUsecase) CreateTask(userID, boardID, columnID string, req CreateTaskRequest) (*boarddomain.Task, error) {
	board, err := u.requireBoard(boardID)
	if err != nil {
		return nil, err
	}
	if _, err := u.gate.Authorize(board.WorkspaceID, userID, wsdomain.RoleMember); err != nil {
		return nil, err
	}
	if err := u.requireBoardColumn(board.ID, columnID); err != nil {
		return nil, err
	}

	task := &boarddomain.Task{
		BoardID:   boardID,
		ColumnID:  columnID,
		Title:     req.Title,
		Priority:  boarddomain.PriorityMedium,
		CreatedBy: userID,
	}
	task.Description = req.Description

	if req.Priority != "" {
		priority := boarddomain.Priority(req.Priority)
		if !priority.Valid() {
			return nil, apperr.Validation("unknown priority %q", req.Priority)
		}
		task.Priority = priority
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			return nil, apperr.Validation("due_date must be RFC3339")
		}
		task.DueDate = &due
	}
	if req.AssigneeID != nil && *req.AssigneeID != "" {
		if err := u.requireWorkspaceMember(board.WorkspaceID, *req.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = req.AssigneeID
	}

	err = u.taskRepo.InTransaction(func(tx repository.TaskRepository, _ repository.CommentRepository) error {
		columnTasks, err := tx.FindByColumnID(boardID, columnID)
		if err != nil {
			return err
		}

		if req.Position == nil {
			task.Position = nextPosition(columnTasks)
			return tx.Create(task)
		}

		// Explicit position: insert and shift the tasks at or after it.
		p := clampIndex(*req.Position, len(columnTasks))
		task.Position = p
		desired := insertAt(columnTasks, task, p)
		if err := tx.ApplyPositions(renumberExcluding(desired, task.ID)); err != nil {
			return err
		}
		return tx.Create(task)
	})
	if err != nil {
		return nil, err
	}

	u.broadcaster.Broadcast(ws.BoardRoom(boardID), ws.EventTaskCreated, task)
	return task, nil
}

func (u *taskUsecase) GetTasksForBoard(userID, boardID string) ([]*boarddomain.Task, error) {
	board, err := u.requireBoard(boardID)
	if err != nil {
		return nil, err
	}
	if _, err := u.gate.Authorize(board.WorkspaceID, userID, wsdomain.RoleViewer); err != nil {
		return nil, err
	}

	tasks, err := u.taskRepo.FindByBoardID(boardID)
	if err != nil {
		return nil, err
	}
	if err := attachCommentCounts(u.commentRepo, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (u *taskUsecase) UpdateTask(userID, taskID string, req UpdateTaskRequest) (*boarddomain.Task, error) {
	task, board, err := u.taskForMutation(userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperr.Validation("title cannot be empty")
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		priority := boarddomain.Priority(*req.Priority)
		if !priority.Valid() {
			return nil, apperr.Validation("unknown priority %q", *req.Priority)
		}
		task.Priority = priority
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
			task.DueSoonNotified = false
		} else {
			due, err := time.Parse(time.RFC3339, *req.DueDate)
			if err != nil {
				return nil, apperr.Validation("due_date must be RFC3339")
			}
			task.DueDate = &due
			task.DueSoonNotified = false
		}
	}
	if req.AssigneeID != nil {
		if *req.AssigneeID == "" {
			task.AssigneeID = nil
		} else {
			if err := u.requireWorkspaceMember(board.WorkspaceID, *req.AssigneeID); err != nil {
				return nil, err
			}
			task.AssigneeID = req.AssigneeID
		}
	}

	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}

	u.broadcaster.Broadcast(ws.BoardRoom(task.BoardID), ws.EventTaskUpdated, task)
	return task, nil
}

// MoveTask reassigns column and position in a single storage transaction.
// A move to the task's current column and position is a no-op: no writes
// and no broadcast.
func (u *taskUsecase) MoveTask(userID, taskID, destColumnID string, destPosition int) (*boarddomain.Task, error) {
	task, board, err := u.taskForMutation(userID, taskID)
	if err != nil {
		return nil, err
	}
	if err := u.requireBoardColumn(board.ID, destColumnID); err != nil {
		return nil, err
	}

	if task.ColumnID == destColumnID && task.Position == destPosition {
		return task, nil
	}

	var moved *boarddomain.Task
	var performed bool
	err = u.taskRepo.InTransaction(func(tx repository.TaskRepository, _ repository.CommentRepository) error {
		current, err := tx.FindByID(taskID)
		if err != nil {
			return err
		}
		if current == nil {
			return apperr.NotFound("task %s", taskID)
		}
		if current.ColumnID == destColumnID && current.Position == destPosition {
			moved = current
			return nil
		}
		performed = true

		if current.ColumnID == destColumnID {
			columnTasks, err := tx.FindByColumnID(board.ID, destColumnID)
			if err != nil {
				return err
			}
			rest := withoutTask(columnTasks, taskID)
			p := clampIndex(destPosition, len(rest))
			desired := insertAt(rest, current, p)
			if err := tx.ApplyPositions(renumberExcluding(desired, taskID)); err != nil {
				return err
			}
			current.Position = p
			if err := tx.Update(current); err != nil {
				return err
			}
			moved = current
			return nil
		}

		// Cross-column: shift the destination tasks at or after the
		// insertion index, compact the source column.
		destTasks, err := tx.FindByColumnID(board.ID, destColumnID)
		if err != nil {
			return err
		}
		sourceTasks, err := tx.FindByColumnID(board.ID, current.ColumnID)
		if err != nil {
			return err
		}

		p := clampIndex(destPosition, len(destTasks))
		destDesired := insertAt(destTasks, current, p)
		writes := renumberExcluding(destDesired, taskID)
		writes = append(writes, renumber(withoutTask(sourceTasks, taskID))...)
		if err := tx.ApplyPositions(writes); err != nil {
			return err
		}

		current.ColumnID = destColumnID
		current.Position = p
		if err := tx.Update(current); err != nil {
			return err
		}
		moved = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !performed {
		// The transaction observed a no-op, nothing to announce.
		return moved, nil
	}

	u.broadcaster.Broadcast(ws.BoardRoom(moved.BoardID), ws.EventTaskMoved, moved)
	return moved, nil
}

// DeleteTask removes the task with its comments and compacts the column it
// occupied.
func (u *taskUsecase) DeleteTask(userID, taskID string) error {
	task, board, err := u.taskForMutation(userID, taskID)
	if err != nil {
		return err
	}

	err = u.taskRepo.InTransaction(func(tx repository.TaskRepository, txComments repository.CommentRepository) error {
		if err := txComments.DeleteByTaskID(taskID); err != nil {
			return err
		}
		if err := tx.Delete(taskID); err != nil {
			return err
		}
		columnTasks, err := tx.FindByColumnID(board.ID, task.ColumnID)
		if err != nil {
			return err
		}
		return tx.ApplyPositions(renumber(withoutTask(columnTasks, taskID)))
	})
	if err != nil {
		return err
	}

	u.broadcaster.Broadcast(ws.BoardRoom(task.BoardID), ws.EventTaskDeleted, map[string]string{"taskId": taskID})
	return nil
}

// SearchTasks fuzzy-matches the query against task titles and descriptions
// within one board.
func (u *taskUsecase) SearchTasks(userID, boardID, query string) ([]*boarddomain.Task, error) {
	tasks, err := u.GetTasksForBoard(userID, boardID)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return tasks, nil
	}

	matched := make([]*boarddomain.Task, 0, len(tasks))
	for _, task := range tasks {
		if fuzzy.MatchNormalizedFold(query, task.Title) ||
			fuzzy.MatchNormalizedFold(query, task.Description) {
			matched = append(matched, task)
		}
	}
	return matched, nil
}

// taskForMutation loads the task and its board and clears the gate at
// MEMBER level.
func (u *taskUsecase) taskForMutation(userID, taskID string) (*boarddomain.Task, *boarddomain.Board, error) {
	task, err := u.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, nil, err
	}
	if task == nil {
		return nil, nil, apperr.NotFound("task %s", taskID)
	}
	board, err := u.requireBoard(task.BoardID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := u.gate.Authorize(board.WorkspaceID, userID, wsdomain.RoleMember); err != nil {
		return nil, nil, err
	}
	return task, board, nil
}

func (u *taskUsecase) requireBoard(boardID string) (*boarddomain.Board, error) {
	board, err := u.boardRepo.FindByID(boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apperr.NotFound("board %s", boardID)
	}
	return board, nil
}

// requireBoardColumn checks the column id against the board's column set.
// The task table has no relational constraint on it.
func (u *taskUsecase) requireBoardColumn(boardID, columnID string) error {
	column, err := u.boardRepo.FindColumn(columnID)
	if err != nil {
		return err
	}
	if column == nil || column.BoardID != boardID {
		return apperr.Validation("column %s does not belong to board %s", columnID, boardID)
	}
	return nil
}

func (u *taskUsecase) requireWorkspaceMember(workspaceID, userID string) error {
	_, ok, err := u.gate.ResolveRole(workspaceID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation("assignee %s is not a member of the workspace", userID)
	}
	return nil
}

func attachCommentCounts(commentRepo repository.CommentRepository, tasks []*boarddomain.Task) error {
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	counts, err := commentRepo.CountByTaskIDs(ids)
	if err != nil {
		return err
	}
	for _, task := range tasks {
		task.CommentCount = counts[task.ID]
	}
	return nil
}
