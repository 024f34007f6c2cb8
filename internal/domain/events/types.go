// Package events 定义领域事件类型和接口
// 用于系统内部的事件驱动通信
package events

import "time"

// EventType 事件类型标识
type EventType string

// 房间文件相关事件类型
const (
	// RoomFileCreated 房间文件创建事件
	RoomFileCreated EventType = "room.file.created"
	// RoomFileModified 房间文件修改事件
	RoomFileModified EventType = "room.file.modified"
	// RoomFileDeleted 房间文件删除事件
	RoomFileDeleted EventType = "room.file.deleted"
)

// Event 领域事件接口
// 所有事件类型都必须实现此接口
type Event interface {
	// Type 返回事件类型
	Type() EventType
	// Timestamp 返回事件发生时间
	Timestamp() time.Time
}
