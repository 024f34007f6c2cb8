// Package notification 提供通知推送的基础设施实现
package notification

import (
	"github.com/fabiofalopes/annotation-tool-backend/internal/application/annotation"
	domainNotification "github.com/fabiofalopes/annotation-tool-backend/internal/domain/notification"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/websocket"
)

// WebSocketPusher WebSocket 推送实现
type WebSocketPusher struct {
	hub *websocket.Hub
}

// NewWebSocketPusher 创建 WebSocket 推送器
func NewWebSocketPusher(hub *websocket.Hub) *WebSocketPusher {
	return &WebSocketPusher{hub: hub}
}

// Push 推送通知到所有连接的客户端
func (p *WebSocketPusher) Push(n *domainNotification.Notification) error {
	return p.hub.Broadcast(n)
}

// 编译时检查接口实现
var _ annotation.Pusher = (*WebSocketPusher)(nil)
