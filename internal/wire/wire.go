//go:build wireinject
// +build wireinject

package wire

import (
	appAnnotation "github.com/fabiofalopes/annotation-tool-backend/internal/application"
	"github.com/fabiofalopes/annotation-tool-backend/internal/application/annotation"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure"
	infraNotification "github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/notification"
	"github.com/fabiofalopes/annotation-tool-backend/internal/interfaces"
	"github.com/google/wire"
)

// InitializeAll 初始化所有服务
func InitializeAll() (*App, error) {
	wire.Build(
		// 按层组合 ProviderSet
		infrastructure.ProviderSet, // 基础设施层
		appAnnotation.ProviderSet,  // 应用层
		interfaces.ProviderSet,     // 接口层
		// 接口绑定：application.Pusher -> infrastructure.WebSocketPusher
		wire.Bind(
			new(annotation.Pusher),
			new(*infraNotification.WebSocketPusher),
		),
		NewApp, // 组合所有服务的应用结构
	)
	return nil, nil
}
