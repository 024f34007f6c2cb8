package notification

import (
	"github.com/google/wire"
)

// ProviderSet 通知基础设施层 ProviderSet
var ProviderSet = wire.NewSet(
	NewWebSocketPusher,
)
