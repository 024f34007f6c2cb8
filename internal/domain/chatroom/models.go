package chatroom

import "time"

// Turn 聊天室中的一条消息（标注的基本单位）
type Turn struct {
	// UserID 发言用户标识
	UserID string `json:"user_id"`
	// TurnID 消息标识（房间内唯一）
	TurnID string `json:"turn_id"`
	// TurnText 消息文本
	TurnText string `json:"turn_text"`
	// ReplyToTurn 回复的消息标识（可选，仅作参考，不校验是否存在）
	ReplyToTurn *string `json:"reply_to_turn"`

	// 标注字段（四个字段同时设置或同时为空）
	// ThreadID 线程标识
	ThreadID *string `json:"thread_id"`
	// AnnotatorID 标注者标识
	AnnotatorID *string `json:"annotator_id"`
	// AnnotationTimestamp 标注时间
	AnnotationTimestamp *time.Time `json:"annotation_timestamp"`
	// AnnotationNotes 标注备注
	AnnotationNotes *string `json:"annotation_notes"`
}

// IsAnnotated 是否已分配线程
func (t *Turn) IsAnnotated() bool {
	return t.ThreadID != nil
}

// Annotate 覆盖全部四个标注字段（无条件覆盖，不做合并）
// notes 为 nil 时清空备注
func (t *Turn) Annotate(annotatorID string, threadID *string, notes *string, at time.Time) {
	t.ThreadID = threadID
	t.AnnotatorID = &annotatorID
	t.AnnotationTimestamp = &at
	t.AnnotationNotes = notes
}

// ChatRoom 一个导入的聊天室（房间 ID + 按导入顺序排列的消息列表）
type ChatRoom struct {
	RoomID string `json:"room_id"`
	Turns  []Turn `json:"turns"`
}

// FindTurn 按 turn_id 查找消息，不存在返回 nil
func (r *ChatRoom) FindTurn(turnID string) *Turn {
	for i := range r.Turns {
		if r.Turns[i].TurnID == turnID {
			return &r.Turns[i]
		}
	}
	return nil
}

// AnnotatedCount 已分配线程的消息数量
func (r *ChatRoom) AnnotatedCount() int {
	count := 0
	for i := range r.Turns {
		if r.Turns[i].IsAnnotated() {
			count++
		}
	}
	return count
}

// ThreadCount 不同线程标识的数量
func (r *ChatRoom) ThreadCount() int {
	seen := make(map[string]bool)
	for i := range r.Turns {
		if r.Turns[i].ThreadID != nil {
			seen[*r.Turns[i].ThreadID] = true
		}
	}
	return len(seen)
}

// ThreadSummary 线程分组摘要
type ThreadSummary struct {
	RoomID      string              `json:"room_id"`
	ThreadCount int                 `json:"thread_count"`
	Threads     map[string][]string `json:"threads"`
}

// Summarize 单次线性扫描，按线程分组消息标识
// 未分配线程的消息被忽略；每个线程内的消息保持房间顺序
func (r *ChatRoom) Summarize() *ThreadSummary {
	threads := make(map[string][]string)
	for i := range r.Turns {
		turn := &r.Turns[i]
		if turn.ThreadID == nil {
			continue
		}
		threads[*turn.ThreadID] = append(threads[*turn.ThreadID], turn.TurnID)
	}

	return &ThreadSummary{
		RoomID:      r.RoomID,
		ThreadCount: len(threads),
		Threads:     threads,
	}
}

// RoomSummary 房间列表中单个房间的概要信息
type RoomSummary struct {
	RoomID         string `json:"room_id"`
	TurnCount      int    `json:"turn_count"`
	AnnotatedTurns int    `json:"annotated_turns"`
	ThreadCount    int    `json:"thread_count"`
}

// Summary 计算房间概要（每次独立计算，不缓存）
func (r *ChatRoom) Summary() RoomSummary {
	return RoomSummary{
		RoomID:         r.RoomID,
		TurnCount:      len(r.Turns),
		AnnotatedTurns: r.AnnotatedCount(),
		ThreadCount:    r.ThreadCount(),
	}
}
