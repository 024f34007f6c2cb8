package infrastructure

import (
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/config"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/notification"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/storage"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/websocket"
	"github.com/google/wire"
)

// ProviderSet Infrastructure 层总 ProviderSet
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	websocket.ProviderSet,
	notification.ProviderSet,
	storage.ProviderSet,
)
