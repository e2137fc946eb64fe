package scheduler

import (
	"log"
	"time"

	"teamboard-backend/internal/board/repository"
	"teamboard-backend/pkg/ws"
)

// DueSoonScanner broadcasts taskDueSoon to a task's board room when its
// due date falls within the lookahead window. Best-effort: a missed
// broadcast is recovered by the client's next full board load.
type DueSoonScanner struct {
	taskRepo  repository.TaskRepository
	hub       *ws.Hub
	interval  time.Duration
	lookahead time.Duration
	stopChan  chan struct{}
}

// NewDueSoonScanner creates a new scanner
func NewDueSoonScanner(taskRepo repository.TaskRepository, hub *ws.Hub) *DueSoonScanner {
	return &DueSoonScanner{
		taskRepo:  taskRepo,
		hub:       hub,
		interval:  1 * time.Minute,
		lookahead: 1 * time.Hour,
		stopChan:  make(chan struct{}),
	}
}

// Start begins the scanner loop
func (s *DueSoonScanner) Start() {
	log.Printf("[DueSoonScanner] Starting (interval: %s, lookahead: %s)", s.interval, s.lookahead)

	go func() {
		// Run immediately on start
		s.scan()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.scan()
			case <-s.stopChan:
				log.Println("[DueSoonScanner] Stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scanner
func (s *DueSoonScanner) Stop() {
	close(s.stopChan)
}

func (s *DueSoonScanner) scan() {
	now := time.Now()

	tasks, err := s.taskRepo.FindDueBetween(now, now.Add(s.lookahead))
	if err != nil {
		log.Printf("[DueSoonScanner] Error finding due tasks: %v", err)
		return
	}

	for _, task := range tasks {
		s.hub.Broadcast(ws.BoardRoom(task.BoardID), ws.EventTaskDueSoon, task)
		if err := s.taskRepo.MarkDueSoonNotified(task.ID); err != nil {
			log.Printf("[DueSoonScanner] Error marking task %s notified: %v", task.ID, err)
		}
	}
}
