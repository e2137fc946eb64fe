package main

import (
	"log"

	api "teamboard-backend/cmd/api"
	authdomain "teamboard-backend/internal/auth/domain"
	authRepo "teamboard-backend/internal/auth/repository"
	authUsecase "teamboard-backend/internal/auth/usecase"
	boarddomain "teamboard-backend/internal/board/domain"
	boardRepo "teamboard-backend/internal/board/repository"
	"teamboard-backend/internal/board/scheduler"
	boardUsecase "teamboard-backend/internal/board/usecase"
	wsdomain "teamboard-backend/internal/workspace/domain"
	workspaceRepo "teamboard-backend/internal/workspace/repository"
	workspaceUsecase "teamboard-backend/internal/workspace/usecase"
	"teamboard-backend/pkg/config"
	"teamboard-backend/pkg/database"
	"teamboard-backend/pkg/ws"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&wsdomain.Workspace{},
		&wsdomain.Member{},
		&boarddomain.Project{},
		&boarddomain.Board{},
		&boarddomain.Column{},
		&boarddomain.Task{},
		&boarddomain.Comment{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	workspaceRepository := workspaceRepo.NewWorkspaceRepository(db)
	projectRepository := boardRepo.NewProjectRepository(db)
	boardRepository := boardRepo.NewBoardRepository(db)
	taskRepository := boardRepo.NewTaskRepository(db)
	commentRepository := boardRepo.NewCommentRepository(db)

	// Initialize the websocket hub (in-memory room registry)
	hub := ws.NewHub()
	defer hub.Reset()

	// Initialize use cases
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, cfg)
	workspaceUsecaseInstance := workspaceUsecase.NewWorkspaceUsecase(workspaceRepository, userRepository)
	boardUsecaseInstance := boardUsecase.NewBoardUsecase(projectRepository, boardRepository, taskRepository, commentRepository, workspaceUsecaseInstance, hub)
	taskUsecaseInstance := boardUsecase.NewTaskUsecase(boardRepository, taskRepository, commentRepository, workspaceUsecaseInstance, hub)

	// Start the due-soon scanner
	dueSoonScanner := scheduler.NewDueSoonScanner(taskRepository, hub)
	dueSoonScanner.Start()
	defer dueSoonScanner.Stop()

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, workspaceUsecaseInstance, boardUsecaseInstance, taskUsecaseInstance, hub, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
