package watcher

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fabiofalopes/annotation-tool-backend/internal/domain/events"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/log"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/storage"
	"github.com/fsnotify/fsnotify"
)

// WatchConfig FileWatcher 配置
type WatchConfig struct {
	// RoomDir 聊天室文件目录（<数据目录>/chatrooms）
	RoomDir string
	// DebounceDelay 防抖延迟
	DebounceDelay time.Duration
}

// DefaultWatchConfig 返回默认配置
func DefaultWatchConfig(roomDir string) WatchConfig {
	return WatchConfig{
		RoomDir:       roomDir,
		DebounceDelay: 500 * time.Millisecond,
	}
}

// FileWatcher 聊天室文件监听器
// 监听存储目录中 JSON 文件的变化，将外部修改（手动编辑、文件同步等）
// 转换为领域事件发布到事件总线。
type FileWatcher struct {
	config   WatchConfig
	eventBus events.EventBus
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	// 防抖相关
	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	// 控制
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewFileWatcher 创建文件监听器
func NewFileWatcher(config WatchConfig, eventBus events.EventBus) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		config:         config,
		eventBus:       eventBus,
		watcher:        watcher,
		logger:         log.NewModuleLogger("watcher", "file_watcher"),
		debounceTimers: make(map[string]*time.Timer),
		stopCh:         make(chan struct{}),
	}, nil
}

// Start 启动文件监听
func (fw *FileWatcher) Start() error {
	fw.logger.Info("Starting file watcher", "room_dir", fw.config.RoomDir)

	if err := fw.watcher.Add(fw.config.RoomDir); err != nil {
		return err
	}

	// 启动事件处理循环
	fw.wg.Add(1)
	go fw.watchLoop()

	return nil
}

// Stop 停止文件监听
func (fw *FileWatcher) Stop() {
	fw.logger.Info("Stopping file watcher")

	close(fw.stopCh)
	fw.watcher.Close()
	fw.wg.Wait()

	// 取消所有防抖定时器
	fw.debounceMu.Lock()
	for _, timer := range fw.debounceTimers {
		timer.Stop()
	}
	fw.debounceMu.Unlock()

	fw.logger.Info("File watcher stopped")
}

// watchLoop 事件监听循环
func (fw *FileWatcher) watchLoop() {
	defer fw.wg.Done()

	for {
		select {
		case <-fw.stopCh:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleFsEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("Watcher error", "error", err)
		}
	}
}

// handleFsEvent 处理文件系统事件（带防抖）
func (fw *FileWatcher) handleFsEvent(fsEvent fsnotify.Event) {
	if !fw.isRoomFile(fsEvent.Name) {
		return
	}

	fw.debounceMu.Lock()
	defer fw.debounceMu.Unlock()

	// 取消之前的定时器
	if timer, exists := fw.debounceTimers[fsEvent.Name]; exists {
		timer.Stop()
	}

	// 创建新的防抖定时器
	fw.debounceTimers[fsEvent.Name] = time.AfterFunc(fw.config.DebounceDelay, func() {
		fw.emitRoomFileEvent(fsEvent)

		// 清理定时器
		fw.debounceMu.Lock()
		delete(fw.debounceTimers, fsEvent.Name)
		fw.debounceMu.Unlock()
	})
}

// isRoomFile 判断是否为聊天室文件
// 导出文件（export_ 前缀）写入同一目录，不作为聊天室处理
func (fw *FileWatcher) isRoomFile(path string) bool {
	fileName := filepath.Base(path)
	if !strings.HasSuffix(fileName, ".json") {
		return false
	}
	return !strings.HasPrefix(fileName, storage.ExportFilePrefix)
}

// emitRoomFileEvent 发送聊天室文件事件
func (fw *FileWatcher) emitRoomFileEvent(fsEvent fsnotify.Event) {
	roomID := strings.TrimSuffix(filepath.Base(fsEvent.Name), ".json")
	if roomID == "" {
		return
	}

	// 确定事件类型
	var eventType events.EventType
	switch {
	case fsEvent.Has(fsnotify.Create):
		eventType = events.RoomFileCreated
	case fsEvent.Has(fsnotify.Write):
		eventType = events.RoomFileModified
	case fsEvent.Has(fsnotify.Remove), fsEvent.Has(fsnotify.Rename):
		eventType = events.RoomFileDeleted
	default:
		return
	}

	fw.eventBus.Publish(&events.RoomFileEvent{
		EventType: eventType,
		RoomID:    roomID,
		FilePath:  fsEvent.Name,
		EventTime: time.Now(),
	})

	fw.logger.Debug("Room file event emitted",
		"type", eventType,
		"room_id", roomID,
	)
}
