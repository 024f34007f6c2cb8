// Package wire 组装并管理应用的全部服务
package wire

import (
	"database/sql"

	"log/slog"

	"github.com/fabiofalopes/annotation-tool-backend/internal/application/annotation"
	"github.com/fabiofalopes/annotation-tool-backend/internal/domain/events"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/config"
	applog "github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/log"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/watcher"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/websocket"
	"github.com/fabiofalopes/annotation-tool-backend/internal/interfaces"
)

// App 应用主结构，组合所有服务
type App struct {
	HTTPServer *interfaces.HTTPServer
	wsHub      *websocket.Hub
	service    *annotation.Service
	db         *sql.DB
	logger     *slog.Logger

	// 文件监听相关
	eventBus    events.EventBus
	fileWatcher *watcher.FileWatcher
}

// NewApp 创建应用实例
func NewApp(
	httpServer *interfaces.HTTPServer,
	wsHub *websocket.Hub,
	service *annotation.Service,
	storeCfg *config.StoreConfig,
	db *sql.DB,
) *App {
	logger := applog.NewModuleLogger("app", "main")

	// 初始化事件总线
	eventBus := watcher.NewEventBus()

	// 初始化文件监听器（监听房间文件目录）
	fileWatcher, err := watcher.NewFileWatcher(watcher.DefaultWatchConfig(storeCfg.Dir), eventBus)
	if err != nil {
		logger.Error("Failed to create file watcher", "error", err)
	}

	return &App{
		HTTPServer:  httpServer,
		wsHub:       wsHub,
		service:     service,
		db:          db,
		logger:      logger,
		eventBus:    eventBus,
		fileWatcher: fileWatcher,
	}
}

// Start 启动所有服务
func (a *App) Start() error {
	a.logger.Info("Starting annotation backend application")

	// 启动 WebSocket Hub
	a.wsHub.Start()

	// 注册事件订阅者并启动文件监听
	a.setupEventSubscribers()
	if a.fileWatcher != nil {
		if err := a.fileWatcher.Start(); err != nil {
			a.logger.Error("Failed to start file watcher",
				"error", err,
			)
		} else {
			a.logger.Info("File watcher started successfully")
		}
	}

	// 启动 HTTP 服务器（goroutine）
	go func() {
		if err := a.HTTPServer.Start(); err != nil {
			a.logger.Error("Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	a.logger.Info("Annotation backend application started successfully")

	return nil
}

// setupEventSubscribers 注册事件订阅者
// 房间文件的外部变化经标注服务同步到内存并推送给客户端
func (a *App) setupEventSubscribers() {
	if a.eventBus == nil {
		return
	}

	a.eventBus.SubscribeMultiple(
		[]events.EventType{
			events.RoomFileCreated,
			events.RoomFileModified,
			events.RoomFileDeleted,
		},
		events.HandlerFunc(func(event events.Event) error {
			roomEvent, ok := event.(*events.RoomFileEvent)
			if !ok {
				return nil
			}
			return a.service.SyncRoomFile(roomEvent)
		}),
	)
	a.logger.Info("Annotation service subscribed to room file events")
}

// Stop 停止所有服务
func (a *App) Stop() error {
	a.logger.Info("Stopping annotation backend application")

	// 停止文件监听器
	if a.fileWatcher != nil {
		a.fileWatcher.Stop()
		a.logger.Info("File watcher stopped")
	}

	// 关闭事件总线
	if a.eventBus != nil {
		a.eventBus.Close()
		a.logger.Info("Event bus closed")
	}

	if err := a.HTTPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop HTTP server",
			"error", err,
		)
	}

	// 关闭数据库连接
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("Failed to close database",
				"error", err,
			)
		}
	}

	a.logger.Info("Annotation backend application stopped")

	return nil
}
