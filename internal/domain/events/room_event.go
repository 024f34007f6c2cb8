package events

import "time"

// RoomFileEvent 房间文件变更事件
// 当 <数据目录>/chatrooms/*.json 文件发生变更时触发
type RoomFileEvent struct {
	// EventType 事件类型（created/modified/deleted）
	EventType EventType
	// RoomID 房间 ID（文件名去掉 .json 后缀）
	RoomID string
	// FilePath 文件完整路径
	FilePath string
	// EventTime 事件发生时间
	EventTime time.Time
}

// Type 实现 Event 接口
func (e *RoomFileEvent) Type() EventType {
	return e.EventType
}

// Timestamp 实现 Event 接口
func (e *RoomFileEvent) Timestamp() time.Time {
	return e.EventTime
}
