package watcher

import (
	"github.com/fabiofalopes/annotation-tool-backend/internal/domain/events"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/config"
)

// ProvideEventBus 提供事件总线实例
func ProvideEventBus() events.EventBus {
	return NewEventBus()
}

// ProvideFileWatcher 提供文件监听器实例
func ProvideFileWatcher(eventBus events.EventBus, cfg *config.StoreConfig) (*FileWatcher, error) {
	return NewFileWatcher(DefaultWatchConfig(cfg.Dir), eventBus)
}
