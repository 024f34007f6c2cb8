package chatroom

import "errors"

// 房间与消息相关错误
var (
	// ErrRoomNotFound 聊天室不存在
	ErrRoomNotFound = errors.New("chat room not found")
	// ErrTurnNotFound 消息不存在
	ErrTurnNotFound = errors.New("turn not found")
)

// 导入导出相关错误
var (
	// ErrUnsupportedFormat 不支持的格式（仅支持 csv/json）
	ErrUnsupportedFormat = errors.New("unsupported format, expected csv or json")
	// ErrSourceParse 源数据解析失败（缺少必需列/字段或无法读取）
	ErrSourceParse = errors.New("failed to parse source data")
)
