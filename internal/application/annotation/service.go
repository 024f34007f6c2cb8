// Package annotation 提供聊天消息线程标注的应用服务
package annotation

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/fabiofalopes/annotation-tool-backend/internal/domain/chatroom"
	"github.com/fabiofalopes/annotation-tool-backend/internal/domain/events"
	"github.com/fabiofalopes/annotation-tool-backend/internal/domain/notification"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/log"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/storage"
)

// ImportResult 导入结果
type ImportResult struct {
	Message           string `json:"message"`
	RoomID            string `json:"room_id"`
	TotalTurns        int    `json:"total_turns"`
	PreAnnotatedTurns int    `json:"pre_annotated_turns"`
}

// AnnotateResult 标注结果
type AnnotateResult struct {
	Message             string    `json:"message"`
	AnnotationTimestamp time.Time `json:"annotation_timestamp"`
}

// Service 标注应用服务
// 负责聊天室的导入、标注、导出和查询，协调存储、审计日志和通知推送。
type Service struct {
	store    *storage.RoomStore
	logRepo  storage.AnnotationLogRepository
	importer *Importer
	exporter *Exporter
	pusher   Pusher
	logger   *slog.Logger
}

// NewService 创建标注服务
func NewService(
	store *storage.RoomStore,
	logRepo storage.AnnotationLogRepository,
	pusher Pusher,
) *Service {
	return &Service{
		store:    store,
		logRepo:  logRepo,
		importer: NewImporter(),
		exporter: NewExporter(),
		pusher:   pusher,
		logger:   log.NewModuleLogger("annotation", "service"),
	}
}

// Import 从源文件导入聊天室
// 同名房间被整体替换；带线程标注的消息计入 pre_annotated_turns
func (s *Service) Import(sourcePath string, format Format) (*ImportResult, error) {
	room, err := s.importer.Import(sourcePath, format)
	if err != nil {
		return nil, err
	}

	if err := s.store.Put(room); err != nil {
		return nil, err
	}

	s.logger.Info("chat room imported",
		"room_id", room.RoomID,
		"source", sourcePath,
		"turns", len(room.Turns),
	)

	return &ImportResult{
		Message:           fmt.Sprintf("Successfully imported chat room %s", room.RoomID),
		RoomID:            room.RoomID,
		TotalTurns:        len(room.Turns),
		PreAnnotatedTurns: room.AnnotatedCount(),
	}, nil
}

// Get 获取聊天室完整内容
func (s *Service) Get(roomID string) (*chatroom.ChatRoom, error) {
	return s.store.Get(roomID)
}

// List 获取所有聊天室的摘要列表
func (s *Service) List() []chatroom.RoomSummary {
	rooms := s.store.List()
	summaries := make([]chatroom.RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, room.Summary())
	}
	return summaries
}

// Annotate 标注一条消息的线程归属
// 四个标注字段整体覆盖：thread_id 或 notes 为 nil 时对应字段被清除
func (s *Service) Annotate(roomID, turnID, annotatorID string, threadID, notes *string) (*AnnotateResult, error) {
	now := time.Now()

	err := s.store.Update(roomID, func(room *chatroom.ChatRoom) error {
		turn := room.FindTurn(turnID)
		if turn == nil {
			return chatroom.ErrTurnNotFound
		}
		turn.Annotate(annotatorID, threadID, notes, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 审计日志追加失败不回滚标注
	if err := s.logRepo.Append(&storage.AnnotationLogEntry{
		RoomID:      roomID,
		TurnID:      turnID,
		AnnotatorID: annotatorID,
		ThreadID:    threadID,
		Notes:       notes,
		CreatedAt:   now,
	}); err != nil {
		s.logger.Warn("failed to record annotation log entry",
			"room_id", roomID,
			"turn_id", turnID,
			"error", err,
		)
	}

	return &AnnotateResult{
		Message:             fmt.Sprintf("Turn %s annotated", turnID),
		AnnotationTimestamp: now,
	}, nil
}

// ThreadSummary 获取聊天室的线程摘要
func (s *Service) ThreadSummary(roomID string) (*chatroom.ThreadSummary, error) {
	room, err := s.store.Get(roomID)
	if err != nil {
		return nil, err
	}
	return room.Summarize(), nil
}

// Export 导出聊天室到文件，返回实际写入的路径
// outputPath 为空时写入存储目录下的 export_<room_id>.<format>
func (s *Service) Export(roomID string, format Format, outputPath string) (string, error) {
	room, err := s.store.Get(roomID)
	if err != nil {
		return "", err
	}

	if outputPath == "" {
		outputPath = s.exporter.DefaultExportPath(s.store.Dir(), roomID, format)
	}

	path, err := s.exporter.Export(room, format, outputPath)
	if err != nil {
		return "", err
	}

	s.logger.Info("chat room exported",
		"room_id", roomID,
		"format", format,
		"path", path,
	)

	return path, nil
}

// Delete 删除聊天室（内存和文件）
func (s *Service) Delete(roomID string) error {
	if err := s.store.Delete(roomID); err != nil {
		return err
	}

	s.logger.Info("chat room deleted", "room_id", roomID)
	return nil
}

// History 获取聊天室的标注操作历史（按时间正序）
func (s *Service) History(roomID string) ([]*storage.AnnotationLogEntry, error) {
	// 房间必须存在，历史可以为空
	if _, err := s.store.Get(roomID); err != nil {
		return nil, err
	}
	return s.logRepo.FindByRoom(roomID)
}

// SyncRoomFile 响应房间文件的外部变化（文件监听器事件）
// 创建/修改时重新加载文件，删除时从内存中移除，并向客户端推送通知
func (s *Service) SyncRoomFile(event *events.RoomFileEvent) error {
	var message string

	switch event.EventType {
	case events.RoomFileCreated, events.RoomFileModified:
		if _, statErr := os.Stat(event.FilePath); statErr != nil {
			// 防抖期间文件可能已被删除
			return nil
		}
		room, err := s.store.Reload(event.FilePath)
		if err != nil {
			return fmt.Errorf("failed to reload room file: %w", err)
		}
		message = fmt.Sprintf("Chat room %s reloaded from disk", room.RoomID)

	case events.RoomFileDeleted:
		if !s.store.Evict(event.RoomID) {
			return nil
		}
		message = fmt.Sprintf("Chat room %s removed", event.RoomID)

	default:
		return nil
	}

	s.logger.Info("room file synced",
		"room_id", event.RoomID,
		"event", event.EventType,
	)

	if s.pusher != nil {
		if err := s.pusher.Push(&notification.Notification{
			ID:        uuid.New().String(),
			RoomID:    event.RoomID,
			Event:     string(event.EventType),
			Message:   message,
			Type:      notification.TypeInfo,
			CreatedAt: time.Now(),
		}); err != nil {
			s.logger.Warn("failed to push room notification",
				"room_id", event.RoomID,
				"error", err,
			)
		}
	}

	return nil
}
