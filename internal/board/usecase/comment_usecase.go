package usecase

import (
	"strings"

	boarddomain "teamboard-backend/internal/board/domain"
	wsdomain "teamboard-backend/internal/workspace/domain"
	"teamboard-backend/pkg/apperr"
	"teamboard-backend/pkg/ws"
)

// Comment operations of the board mutation service. Any workspace member
// may add a comment; edit and delete are restricted to the author
// regardless of role.

func (u *taskUsecase) AddComment(userID, taskID, content string) (*boarddomain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("comment content cannot be empty")
	}

	task, _, err := u.taskForMutation(userID, taskID)
	if err != nil {
		return nil, err
	}

	comment := &boarddomain.Comment{
		TaskID:   taskID,
		AuthorID: userID,
		Content:  content,
	}
	if err := u.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	u.broadcaster.Broadcast(ws.BoardRoom(task.BoardID), ws.EventCommentAdded, comment)
	return comment, nil
}

func (u *taskUsecase) ListComments(userID, taskID string) ([]*boarddomain.Comment, error) {
	task, err := u.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.NotFound("task %s", taskID)
	}
	board, err := u.requireBoard(task.BoardID)
	if err != nil {
		return nil, err
	}
	if _, err := u.gate.Authorize(board.WorkspaceID, userID, wsdomain.RoleViewer); err != nil {
		return nil, err
	}

	return u.commentRepo.FindByTaskID(taskID)
}

func (u *taskUsecase) UpdateComment(userID, commentID, content string) (*boarddomain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("comment content cannot be empty")
	}

	comment, task, err := u.commentForAuthor(userID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := u.commentRepo.Update(comment); err != nil {
		return nil, err
	}

	u.broadcaster.Broadcast(ws.BoardRoom(task.BoardID), ws.EventCommentUpdated, comment)
	return comment, nil
}

func (u *taskUsecase) DeleteComment(userID, commentID string) error {
	comment, task, err := u.commentForAuthor(userID, commentID)
	if err != nil {
		return err
	}

	if err := u.commentRepo.Delete(commentID); err != nil {
		return err
	}

	u.broadcaster.Broadcast(ws.BoardRoom(task.BoardID), ws.EventCommentDeleted, map[string]string{
		"commentId": comment.ID,
		"taskId":    comment.TaskID,
	})
	return nil
}

// commentForAuthor loads the comment and enforces author-only access on
// top of workspace membership.
func (u *taskUsecase) commentForAuthor(userID, commentID string) (*boarddomain.Comment, *boarddomain.Task, error) {
	comment, err := u.commentRepo.FindByID(commentID)
	if err != nil {
		return nil, nil, err
	}
	if comment == nil {
		return nil, nil, apperr.NotFound("comment %s", commentID)
	}

	task, board, err := u.commentTask(comment.TaskID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := u.gate.Authorize(board.WorkspaceID, userID, wsdomain.RoleMember); err != nil {
		return nil, nil, err
	}
	if comment.AuthorID != userID {
		return nil, nil, apperr.Forbidden("only the author can modify this comment")
	}
	return comment, task, nil
}

func (u *taskUsecase) commentTask(taskID string) (*boarddomain.Task, *boarddomain.Board, error) {
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
	return task, board, nil
}
