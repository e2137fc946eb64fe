package api

import (
	authDelivery "teamboard-backend/internal/auth/delivery"
	authUsecase "teamboard-backend/internal/auth/usecase"
	boardDelivery "teamboard-backend/internal/board/delivery"
	boardUsecase "teamboard-backend/internal/board/usecase"
	"teamboard-backend/internal/realtime"
	wsDelivery "teamboard-backend/internal/workspace/delivery"
	workspaceUsecase "teamboard-backend/internal/workspace/usecase"
	"teamboard-backend/pkg/config"
	"teamboard-backend/pkg/ws"

	"github.com/gin-gonic/gin"
)

// Handler wires the HTTP surface together and owns the gin engine.
type Handler struct {
	engine *gin.Engine
}

func NewHandler(
	authUc authUsecase.AuthUsecase,
	workspaceUc workspaceUsecase.WorkspaceUsecase,
	boardUc boardUsecase.BoardUsecase,
	taskUc boardUsecase.TaskUsecase,
	hub *ws.Hub,
	cfg *config.Config,
) *Handler {
	r := gin.Default()
	r.Use(corsMiddleware(cfg.AllowedOrigin))

	authHandler := authDelivery.NewAuthHandler(authUc)
	workspaceHandler := wsDelivery.NewWorkspaceHandler(workspaceUc)
	boardHandler := boardDelivery.NewBoardHandler(boardUc, taskUc, hub)
	realtimeHandler := realtime.NewHandler(authUc, boardUc, workspaceUc, hub, cfg.AllowedOrigin)

	SetupRoutes(r, authUc, authHandler, workspaceHandler, boardHandler, realtimeHandler)

	return &Handler{engine: r}
}

func (h *Handler) Start(addr string) error {
	return h.engine.Run(addr)
}

func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
