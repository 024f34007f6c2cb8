package http

import (
	"context"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/config"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/log"
	"github.com/fabiofalopes/annotation-tool-backend/internal/interfaces/http/handler"
	"github.com/fabiofalopes/annotation-tool-backend/internal/interfaces/http/middleware"

	_ "github.com/fabiofalopes/annotation-tool-backend/docs" // Swagger docs
)

// HTTPServer HTTP 服务器
type HTTPServer struct {
	router   *gin.Engine
	httpPort string
	server   *http.Server
	logger   *slog.Logger
}

// NewServer 创建 HTTP 服务器
func NewServer(
	serverCfg *config.ServerConfig,
	chatRoomHandler *handler.ChatRoomHandler,
	notificationHandler *handler.NotificationHandler,
) *HTTPServer {
	router := gin.Default()
	router.Use(middleware.EnsureUTF8Body())

	logger := log.NewModuleLogger("http", "server")

	// 注册路由
	api := router.Group("/api/v1")
	{
		disentanglement := api.Group("/disentanglement")
		{
			disentanglement.POST("/chatroom/import", chatRoomHandler.Import)
			disentanglement.GET("/chatrooms", chatRoomHandler.List)
			disentanglement.GET("/chatroom/:room_id", chatRoomHandler.Get)
			disentanglement.PUT("/chatroom/:room_id/turns/:turn_id/annotate", chatRoomHandler.Annotate)
			disentanglement.GET("/chatroom/:room_id/threads", chatRoomHandler.ThreadSummary)
			disentanglement.GET("/chatroom/:room_id/export/:format", chatRoomHandler.Export)
			disentanglement.DELETE("/chatroom/:room_id", chatRoomHandler.Delete)

			// 标注历史和统计
			disentanglement.GET("/chatroom/:room_id/history", chatRoomHandler.History)
			disentanglement.GET("/chatroom/:room_id/stats", chatRoomHandler.Stats)
		}

		// 房间变更通知
		api.GET("/ws", notificationHandler.Subscribe)
	}

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &HTTPServer{
		router:   router,
		httpPort: serverCfg.HTTPPort,
		logger:   logger,
	}
}

// Start 启动服务器
func (s *HTTPServer) Start() error {
	s.server = &http.Server{
		Addr:    s.httpPort,
		Handler: s.router,
	}

	s.logger.Info("HTTP server starting",
		"port", s.httpPort,
	)

	return s.server.ListenAndServe()
}

// Shutdown 优雅关闭
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Stop 停止服务器
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}
