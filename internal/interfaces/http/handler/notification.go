package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"

	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/config"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/log"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/websocket"
)

// NotificationHandler 房间变更通知处理器
// 客户端通过 WebSocket 订阅房间文件变化通知
type NotificationHandler struct {
	hub      *websocket.Hub
	upgrader gorillaws.Upgrader
	logger   *slog.Logger
}

// NewNotificationHandler 创建通知处理器
func NewNotificationHandler(hub *websocket.Hub, cfg *config.Config) *NotificationHandler {
	return &NotificationHandler{
		hub: hub,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
			WriteBufferSize: cfg.WebSocket.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true // 本地标注工具允许所有来源
			},
		},
		logger: log.NewModuleLogger("http", "notification"),
	}
}

// Subscribe 订阅房间变更通知
// @Summary 订阅房间变更通知
// @Description 升级为 WebSocket 连接，推送房间文件变化通知
// @Tags 通知
// @Router /ws [get]
func (h *NotificationHandler) Subscribe(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &websocket.Connection{
		ID:   uuid.New().String(),
		Send: make(chan []byte, 16),
	}
	h.hub.Register(client)

	h.logger.Info("notification client connected", "conn_id", client.ID)

	go h.writePump(conn, client)
	go h.readPump(conn, client)
}

// writePump 将 Hub 广播的消息写入连接
func (h *NotificationHandler) writePump(conn *gorillaws.Conn, client *websocket.Connection) {
	defer conn.Close()

	for data := range client.Send {
		if err := conn.WriteMessage(gorillaws.TextMessage, data); err != nil {
			return
		}
	}

	// Send 被关闭，发送关闭帧
	_ = conn.WriteMessage(gorillaws.CloseMessage, []byte{})
}

// readPump 读取连接直到关闭，仅用于感知断开
func (h *NotificationHandler) readPump(conn *gorillaws.Conn, client *websocket.Connection) {
	defer func() {
		h.hub.Unregister(client)
		conn.Close()
		h.logger.Info("notification client disconnected", "conn_id", client.ID)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
