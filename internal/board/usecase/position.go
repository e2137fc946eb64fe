package usecase

import (
	boarddomain "teamboard-backend/internal/board/domain"
	"teamboard-backend/internal/board/repository"
)

// Position allocation helpers. They operate on a column's tasks ordered by
// position and produce the minimal set of writes that keeps the column
// dense: after every committed mutation the positions in a column are
// exactly {0..n-1}.

// nextPosition returns the end-of-column position for a new task.
func nextPosition(tasks []*boarddomain.Task) int {
	max := -1
	for _, task := range tasks {
		if task.Position > max {
			max = task.Position
		}
	}
	return max + 1
}

// clampIndex bounds an insertion index to [0, n].
func clampIndex(p, n int) int {
	if p < 0 {
		return 0
	}
	if p > n {
		return n
	}
	return p
}

// withoutTask returns tasks excluding id, preserving order.
func withoutTask(tasks []*boarddomain.Task, id string) []*boarddomain.Task {
	out := make([]*boarddomain.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.ID != id {
			out = append(out, task)
		}
	}
	return out
}

// insertAt returns the column order with task inserted at index p. The
// caller clamps p first.
func insertAt(tasks []*boarddomain.Task, task *boarddomain.Task, p int) []*boarddomain.Task {
	out := make([]*boarddomain.Task, 0, len(tasks)+1)
	out = append(out, tasks[:p]...)
	out = append(out, task)
	out = append(out, tasks[p:]...)
	return out
}

// renumber emits a write for every task whose stored position differs from
// its index in the desired order. Tasks already in place produce no write,
// so the cost is bounded by the tasks at or after the insertion point.
func renumber(ordered []*boarddomain.Task) []repository.PositionWrite {
	return renumberExcluding(ordered, "")
}

// renumberExcluding is renumber with one task left out; the excluded task
// is persisted separately by the caller (it may also change column).
func renumberExcluding(ordered []*boarddomain.Task, excludeID string) []repository.PositionWrite {
	var writes []repository.PositionWrite
	for i, task := range ordered {
		if task.ID == excludeID {
			continue
		}
		if task.Position != i {
			writes = append(writes, repository.PositionWrite{TaskID: task.ID, Position: i})
		}
	}
	return writes
}

// indexOf returns the index of a task id in the ordered slice, or -1.
func indexOf(tasks []*boarddomain.Task, id string) int {
	for i, task := range tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}
