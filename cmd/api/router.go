package api

import (
	"net/http"

	authDelivery "teamboard-backend/internal/auth/delivery"
	authUsecase "teamboard-backend/internal/auth/usecase"
	boardDelivery "teamboard-backend/internal/board/delivery"
	"teamboard-backend/internal/realtime"
	wsDelivery "teamboard-backend/internal/workspace/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authUc authUsecase.AuthUsecase,
	authHandler *authDelivery.AuthHandler,
	workspaceHandler *wsDelivery.WorkspaceHandler,
	boardHandler *boardDelivery.BoardHandler,
	realtimeHandler *realtime.Handler,
) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// WebSocket endpoint (token authenticated via query param)
		api.GET("/ws", realtimeHandler.Serve)

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authDelivery.AuthMiddleware(authUc), authHandler.Me)
		}

		// Workspace routes (protected)
		workspaces := api.Group("/workspaces")
		workspaces.Use(authDelivery.AuthMiddleware(authUc))
		{
			workspaces.POST("", workspaceHandler.CreateWorkspace)
			workspaces.GET("", workspaceHandler.ListWorkspaces)
			workspaces.GET("/:id", workspaceHandler.GetWorkspace)
			workspaces.DELETE("/:id", workspaceHandler.DeleteWorkspace)
			workspaces.POST("/:id/members", workspaceHandler.InviteMember)
			workspaces.PATCH("/:id/members/:userId", workspaceHandler.ChangeMemberRole)
			workspaces.DELETE("/:id/members/:userId", workspaceHandler.RemoveMember)
			workspaces.POST("/:id/projects", boardHandler.CreateProject)
			workspaces.GET("/:id/projects", boardHandler.ListProjects)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(authDelivery.AuthMiddleware(authUc))
		{
			projects.GET("/:id/board", boardHandler.GetBoardByProject)
			projects.DELETE("/:id", boardHandler.DeleteProject)
		}

		// Board routes (protected)
		boards := api.Group("/boards")
		boards.Use(authDelivery.AuthMiddleware(authUc))
		{
			boards.GET("/:id", boardHandler.GetBoard)
			boards.GET("/:id/tasks", boardHandler.GetTasks)
			boards.GET("/:id/search", boardHandler.SearchTasks)
			boards.GET("/:id/online", boardHandler.GetOnlineUsers)
			boards.POST("/:id/columns", boardHandler.AddColumn)
			boards.PUT("/:id/columns/order", boardHandler.ReorderColumns)
			boards.POST("/:id/columns/:columnId/tasks", boardHandler.CreateTask)
		}

		// Column routes (protected)
		columns := api.Group("/columns")
		columns.Use(authDelivery.AuthMiddleware(authUc))
		{
			columns.PUT("/:id", boardHandler.RenameColumn)
			columns.DELETE("/:id", boardHandler.DeleteColumn)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(authDelivery.AuthMiddleware(authUc))
		{
			tasks.PATCH("/:id", boardHandler.UpdateTask)
			tasks.PATCH("/:id/move", boardHandler.MoveTask)
			tasks.DELETE("/:id", boardHandler.DeleteTask)
			tasks.POST("/:id/comments", boardHandler.AddComment)
			tasks.GET("/:id/comments", boardHandler.ListComments)
		}

		// Comment routes (protected)
		comments := api.Group("/comments")
		comments.Use(authDelivery.AuthMiddleware(authUc))
		{
			comments.PUT("/:id", boardHandler.UpdateComment)
			comments.DELETE("/:id", boardHandler.DeleteComment)
		}
	}
}
