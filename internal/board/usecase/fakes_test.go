package usecase

import (
	"fmt"
	"sort"
	"sync"
	"time"

	boarddomain "teamboard-backend/internal/board/domain"
	"teamboard-backend/internal/board/repository"
	wsdomain "teamboard-backend/internal/workspace/domain"
	"teamboard-backend/pkg/apperr"
)

// In-memory fakes of the repository interfaces, the gate and the
// broadcaster, used by the usecase tests.

type fakeGate struct {
	roles map[string]wsdomain.Role // "workspaceID/userID" -> role
}

func newFakeGate() *fakeGate {
	return &fakeGate{roles: make(map[string]wsdomain.Role)}
}

func (g *fakeGate) grant(workspaceID, userID string, role wsdomain.Role) {
	g.roles[workspaceID+"/"+userID] = role
}

func (g *fakeGate) ResolveRole(workspaceID, userID string) (wsdomain.Role, bool, error) {
	role, ok := g.roles[workspaceID+"/"+userID]
	return role, ok, nil
}

func (g *fakeGate) Authorize(workspaceID, userID string, minRole wsdomain.Role) (wsdomain.Role, error) {
	role, ok, _ := g.ResolveRole(workspaceID, userID)
	if !ok {
		return "", apperr.Forbidden("user %s is not a member of workspace %s", userID, workspaceID)
	}
	if !role.AtLeast(minRole) {
		return "", apperr.Forbidden("role %s is below required %s", role, minRole)
	}
	return role, nil
}

type broadcastEvent struct {
	Room    string
	Event   string
	Payload interface{}
}

type fakeBroadcaster struct {
	events []broadcastEvent
}

func (b *fakeBroadcaster) Broadcast(room, event string, payload interface{}) {
	b.events = append(b.events, broadcastEvent{Room: room, Event: event, Payload: payload})
}

func (b *fakeBroadcaster) eventNames() []string {
	names := make([]string, 0, len(b.events))
	for _, e := range b.events {
		names = append(names, e.Event)
	}
	return names
}

type fakeProjectRepo struct {
	seq      int
	projects map[string]*boarddomain.Project
	boards   *fakeBoardRepo
}

func newFakeProjectRepo(boards *fakeBoardRepo) *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*boarddomain.Project), boards: boards}
}

func (r *fakeProjectRepo) Create(project *boarddomain.Project, board *boarddomain.Board, columns []*boarddomain.Column) error {
	r.seq++
	project.ID = fmt.Sprintf("project-%d", r.seq)
	board.ID = fmt.Sprintf("board-%d", r.seq)
	board.ProjectID = project.ID
	board.WorkspaceID = project.WorkspaceID
	r.projects[project.ID] = project
	r.boards.boards[board.ID] = board
	for i, column := range columns {
		column.ID = fmt.Sprintf("%s-col-%d", board.ID, i)
		column.BoardID = board.ID
		column.Position = i
		r.boards.columns[column.ID] = column
	}
	return nil
}

func (r *fakeProjectRepo) FindByID(id string) (*boarddomain.Project, error) {
	return r.projects[id], nil
}

func (r *fakeProjectRepo) FindByWorkspaceID(workspaceID string) ([]*boarddomain.Project, error) {
	var out []*boarddomain.Project
	for _, p := range r.projects {
		if p.WorkspaceID == workspaceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) Delete(id string) error {
	delete(r.projects, id)
	return nil
}

type fakeBoardRepo struct {
	seq     int
	boards  map[string]*boarddomain.Board
	columns map[string]*boarddomain.Column

	// tasks backs DeleteColumnIfEmpty's emptiness check.
	tasks *fakeTaskRepo
}

func newFakeBoardRepo() *fakeBoardRepo {
	return &fakeBoardRepo{
		boards:  make(map[string]*boarddomain.Board),
		columns: make(map[string]*boarddomain.Column),
	}
}

func (r *fakeBoardRepo) addBoard(id, workspaceID string, columnIDs ...string) {
	r.boards[id] = &boarddomain.Board{ID: id, ProjectID: id + "-project", WorkspaceID: workspaceID}
	for i, columnID := range columnIDs {
		r.columns[columnID] = &boarddomain.Column{ID: columnID, BoardID: id, Title: columnID, Position: i}
	}
}

func (r *fakeBoardRepo) FindByID(id string) (*boarddomain.Board, error) {
	return r.boards[id], nil
}

func (r *fakeBoardRepo) FindByProjectID(projectID string) (*boarddomain.Board, error) {
	for _, b := range r.boards {
		if b.ProjectID == projectID {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBoardRepo) ListColumns(boardID string) ([]*boarddomain.Column, error) {
	var out []*boarddomain.Column
	for _, c := range r.columns {
		if c.BoardID == boardID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeBoardRepo) FindColumn(columnID string) (*boarddomain.Column, error) {
	return r.columns[columnID], nil
}

func (r *fakeBoardRepo) CreateColumn(column *boarddomain.Column) error {
	r.seq++
	column.ID = fmt.Sprintf("col-%d", r.seq)
	r.columns[column.ID] = column
	return nil
}

func (r *fakeBoardRepo) UpdateColumn(column *boarddomain.Column) error {
	r.columns[column.ID] = column
	return nil
}

func (r *fakeBoardRepo) UpdateColumnPositions(boardID string, positions map[string]int) error {
	for id, position := range positions {
		if column, ok := r.columns[id]; ok && column.BoardID == boardID {
			column.Position = position
		}
	}
	return nil
}

func (r *fakeBoardRepo) DeleteColumnIfEmpty(columnID string) (bool, error) {
	column, ok := r.columns[columnID]
	if !ok {
		return false, nil
	}
	if r.tasks != nil {
		inColumn, err := r.tasks.FindByColumnID(column.BoardID, columnID)
		if err != nil {
			return false, err
		}
		if len(inColumn) > 0 {
			return false, nil
		}
	}
	delete(r.columns, columnID)
	return true, nil
}

type fakeTaskRepo struct {
	mu       sync.Mutex
	seq      int
	tasks    map[string]*boarddomain.Task
	comments *fakeCommentRepo
}

func newFakeTaskRepo(comments *fakeCommentRepo) *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*boarddomain.Task), comments: comments}
}

func (r *fakeTaskRepo) FindByID(id string) (*boarddomain.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *task
	return &cp, nil
}

func (r *fakeTaskRepo) FindByBoardID(boardID string) ([]*boarddomain.Task, error) {
	var out []*boarddomain.Task
	for _, task := range r.tasks {
		if task.BoardID == boardID {
			cp := *task
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ColumnID != out[j].ColumnID {
			return out[i].ColumnID < out[j].ColumnID
		}
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeTaskRepo) FindByColumnID(boardID, columnID string) ([]*boarddomain.Task, error) {
	var out []*boarddomain.Task
	for _, task := range r.tasks {
		if task.BoardID == boardID && task.ColumnID == columnID {
			cp := *task
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeTaskRepo) Create(task *boarddomain.Task) error {
	if task.ID == "" {
		r.seq++
		task.ID = fmt.Sprintf("task-%d", r.seq)
	}
	task.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	task.UpdatedAt = task.CreatedAt
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) Update(task *boarddomain.Task) error {
	task.UpdatedAt = time.Now()
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) Delete(id string) error {
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) ApplyPositions(writes []repository.PositionWrite) error {
	for _, write := range writes {
		if task, ok := r.tasks[write.TaskID]; ok {
			task.Position = write.Position
		}
	}
	return nil
}

func (r *fakeTaskRepo) FindDueBetween(from, to time.Time) ([]*boarddomain.Task, error) {
	var out []*boarddomain.Task
	for _, task := range r.tasks {
		if task.DueDate == nil || task.DueSoonNotified {
			continue
		}
		if task.DueDate.After(from) && !task.DueDate.After(to) {
			cp := *task
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) MarkDueSoonNotified(id string) error {
	if task, ok := r.tasks[id]; ok {
		task.DueSoonNotified = true
	}
	return nil
}

func (r *fakeTaskRepo) InTransaction(fn func(repository.TaskRepository, repository.CommentRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r, r.comments)
}

type fakeCommentRepo struct {
	seq      int
	comments map[string]*boarddomain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*boarddomain.Comment)}
}

func (r *fakeCommentRepo) Create(comment *boarddomain.Comment) error {
	r.seq++
	comment.ID = fmt.Sprintf("comment-%d", r.seq)
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	cp := *comment
	r.comments[comment.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) FindByID(id string) (*boarddomain.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *comment
	return &cp, nil
}

func (r *fakeCommentRepo) FindByTaskID(taskID string) ([]*boarddomain.Comment, error) {
	var out []*boarddomain.Comment
	for _, comment := range r.comments {
		if comment.TaskID == taskID {
			cp := *comment
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCommentRepo) Update(comment *boarddomain.Comment) error {
	comment.UpdatedAt = time.Now()
	cp := *comment
	r.comments[comment.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) Delete(id string) error {
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) CountByTaskIDs(taskIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, comment := range r.comments {
		counts[comment.TaskID]++
	}
	out := make(map[string]int64, len(taskIDs))
	for _, id := range taskIDs {
		out[id] = counts[id]
	}
	return out, nil
}

func (r *fakeCommentRepo) DeleteByTaskID(taskID string) error {
	for id, comment := range r.comments {
		if comment.TaskID == taskID {
			delete(r.comments, id)
		}
	}
	return nil
}
