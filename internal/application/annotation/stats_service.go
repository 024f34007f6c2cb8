package annotation

import (
	"log/slog"

	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/log"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/storage"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/tokenizer"
)

// RoomStats 聊天室文本统计
type RoomStats struct {
	RoomID         string `json:"room_id"`
	TurnCount      int    `json:"turn_count"`
	AnnotatedTurns int    `json:"annotated_turns"`
	ThreadCount    int    `json:"thread_count"`
	TotalChars     int    `json:"total_chars"`
	TotalTokens    int    `json:"total_tokens"`
	// Method 统计方式："tiktoken" 或降级的 "estimate"
	Method string `json:"method"`
}

// StatsService 聊天室统计服务
// 基于 tiktoken 计算消息文本的 token 数量，分词器不可用时按字符数估算。
type StatsService struct {
	store  *storage.RoomStore
	logger *slog.Logger
}

// NewStatsService 创建统计服务
func NewStatsService(store *storage.RoomStore) *StatsService {
	return &StatsService{
		store:  store,
		logger: log.NewModuleLogger("annotation", "stats"),
	}
}

// RoomStats 计算聊天室的文本统计
func (s *StatsService) RoomStats(roomID string) (*RoomStats, error) {
	room, err := s.store.Get(roomID)
	if err != nil {
		return nil, err
	}

	totalChars := 0
	texts := make([]string, 0, len(room.Turns))
	for _, turn := range room.Turns {
		totalChars += len([]rune(turn.TurnText))
		texts = append(texts, turn.TurnText)
	}

	totalTokens, method := s.countTokens(texts, totalChars)

	summary := room.Summary()
	return &RoomStats{
		RoomID:         summary.RoomID,
		TurnCount:      summary.TurnCount,
		AnnotatedTurns: summary.AnnotatedTurns,
		ThreadCount:    summary.ThreadCount,
		TotalChars:     totalChars,
		TotalTokens:    totalTokens,
		Method:         method,
	}, nil
}

// countTokens 统计 token 数量
// tiktoken 初始化失败时退回到 chars/4 估算
func (s *StatsService) countTokens(texts []string, totalChars int) (int, string) {
	estimator, err := tokenizer.GetTiktokenEstimator()
	if err != nil {
		s.logger.Warn("tiktoken unavailable, falling back to estimate", "error", err)
		return totalChars / 4, "estimate"
	}
	return estimator.CountTokensBatch(texts), estimator.GetMethod()
}
