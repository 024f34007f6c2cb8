package notification

import "time"

// Notification 推送给标注客户端的通知实体
type Notification struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	Event     string    `json:"event"`
	Message   string    `json:"message"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Type 通知类型
type Type int

const (
	// TypeInfo 信息通知
	TypeInfo Type = iota + 1
	// TypeWarning 警告通知
	TypeWarning
	// TypeError 错误通知
	TypeError
)
