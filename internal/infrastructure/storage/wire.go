package storage

import "github.com/google/wire"

// ProviderSet Storage 基础设施层 ProviderSet
var ProviderSet = wire.NewSet(
	OpenDB,                     // 提供数据库连接
	NewRoomStore,               // 聊天室存储
	NewAnnotationLogRepository, // 标注日志仓储
)
