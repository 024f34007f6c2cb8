package annotation

import (
	"github.com/fabiofalopes/annotation-tool-backend/internal/domain/notification"
)

// Pusher 通知推送接口
// 由基础设施层实现（如 WebSocket 推送）
type Pusher interface {
	// Push 推送通知到所有订阅的客户端
	Push(n *notification.Notification) error
}
