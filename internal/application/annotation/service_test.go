package annotation

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabiofalopes/annotation-tool-backend/internal/domain/chatroom"
	"github.com/fabiofalopes/annotation-tool-backend/internal/domain/events"
	"github.com/fabiofalopes/annotation-tool-backend/internal/domain/notification"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/config"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/storage"
)

// memoryLogRepo 测试用内存标注日志仓储
type memoryLogRepo struct {
	mu      sync.Mutex
	entries []*storage.AnnotationLogEntry
}

func (r *memoryLogRepo) Append(entry *storage.AnnotationLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memoryLogRepo) FindByRoom(roomID string) ([]*storage.AnnotationLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*storage.AnnotationLogEntry
	for _, entry := range r.entries {
		if entry.RoomID == roomID {
			result = append(result, entry)
		}
	}
	return result, nil
}

// memoryPusher 测试用通知推送器
type memoryPusher struct {
	mu     sync.Mutex
	pushed []*notification.Notification
}

func (p *memoryPusher) Push(n *notification.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushed = append(p.pushed, n)
	return nil
}

func (p *memoryPusher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pushed)
}

func newTestService(t *testing.T) (*Service, *storage.RoomStore, *memoryLogRepo, *memoryPusher) {
	t.Helper()

	store, err := storage.NewRoomStore(&config.StoreConfig{Dir: t.TempDir()})
	require.NoError(t, err)

	logRepo := &memoryLogRepo{}
	pusher := &memoryPusher{}
	return NewService(store, logRepo, pusher), store, logRepo, pusher
}

func importTestRoom(t *testing.T, svc *Service, name string) string {
	t.Helper()

	csvContent := `user_id,turn_id,turn_text,reply_to_turn,thread_id
alice,t1,hello,,T1
bob,t2,hi,t1,
carol,t3,lunch plans,,
`
	path := filepath.Join(t.TempDir(), name+".csv")
	require.NoError(t, os.WriteFile(path, []byte(csvContent), 0644))

	result, err := svc.Import(path, FormatCSV)
	require.NoError(t, err)
	return result.RoomID
}

func TestService_Import(t *testing.T) {
	svc, store, _, _ := newTestService(t)

	roomID := importTestRoom(t, svc, "VAC_R10")
	assert.Equal(t, "VAC_R10", roomID)

	room, err := store.Get(roomID)
	require.NoError(t, err)
	assert.Len(t, room.Turns, 3)
	assert.Equal(t, 1, room.AnnotatedCount())
}

func TestService_ImportResultCounts(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	csvContent := `user_id,turn_id,turn_text,thread_id
alice,t1,hello,T1
bob,t2,hi,T2
carol,t3,hey,
`
	path := filepath.Join(t.TempDir(), "counts.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvContent), 0644))

	result, err := svc.Import(path, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalTurns)
	assert.Equal(t, 2, result.PreAnnotatedTurns)
	assert.Contains(t, result.Message, "counts")
}

func TestService_ImportReplacesExistingRoom(t *testing.T) {
	svc, store, _, _ := newTestService(t)

	importTestRoom(t, svc, "room")

	// 同名房间导入后被整体替换
	csvContent := "user_id,turn_id,turn_text\ndave,t9,replaced\n"
	path := filepath.Join(t.TempDir(), "room.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvContent), 0644))

	_, err := svc.Import(path, FormatCSV)
	require.NoError(t, err)

	room, err := store.Get("room")
	require.NoError(t, err)
	require.Len(t, room.Turns, 1)
	assert.Equal(t, "t9", room.Turns[0].TurnID)
}

func TestService_Annotate(t *testing.T) {
	svc, store, logRepo, _ := newTestService(t)
	roomID := importTestRoom(t, svc, "room")

	threadID := "T5"
	notes := "new thread"
	result, err := svc.Annotate(roomID, "t2", "alice", &threadID, &notes)
	require.NoError(t, err)
	assert.Contains(t, result.Message, "t2")
	assert.False(t, result.AnnotationTimestamp.IsZero())

	room, err := store.Get(roomID)
	require.NoError(t, err)
	turn := room.FindTurn("t2")
	require.NotNil(t, turn)
	require.NotNil(t, turn.ThreadID)
	assert.Equal(t, "T5", *turn.ThreadID)
	require.NotNil(t, turn.AnnotatorID)
	assert.Equal(t, "alice", *turn.AnnotatorID)

	// 审计日志记录了本次操作
	entries, err := logRepo.FindByRoom(roomID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "t2", entries[0].TurnID)
	assert.Equal(t, "alice", entries[0].AnnotatorID)
}

func TestService_AnnotateClearsFields(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	roomID := importTestRoom(t, svc, "room")

	// thread_id 和 notes 均为 nil 时清除原有标注
	_, err := svc.Annotate(roomID, "t1", "bob", nil, nil)
	require.NoError(t, err)

	room, err := store.Get(roomID)
	require.NoError(t, err)
	turn := room.FindTurn("t1")
	require.NotNil(t, turn)
	assert.Nil(t, turn.ThreadID)
	assert.Nil(t, turn.AnnotationNotes)
	require.NotNil(t, turn.AnnotatorID)
	assert.Equal(t, "bob", *turn.AnnotatorID)
}

func TestService_AnnotateNotFound(t *testing.T) {
	svc, _, logRepo, _ := newTestService(t)
	roomID := importTestRoom(t, svc, "room")

	_, err := svc.Annotate("ghost", "t1", "alice", nil, nil)
	assert.ErrorIs(t, err, chatroom.ErrRoomNotFound)

	_, err = svc.Annotate(roomID, "ghost", "alice", nil, nil)
	assert.ErrorIs(t, err, chatroom.ErrTurnNotFound)

	// 失败的操作不写审计日志
	entries, err := logRepo.FindByRoom(roomID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestService_ThreadSummary(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	roomID := importTestRoom(t, svc, "room")

	threadID := "T1"
	_, err := svc.Annotate(roomID, "t2", "alice", &threadID, nil)
	require.NoError(t, err)

	summary, err := svc.ThreadSummary(roomID)
	require.NoError(t, err)
	assert.Equal(t, roomID, summary.RoomID)
	assert.Equal(t, 1, summary.ThreadCount)
	assert.Equal(t, []string{"t1", "t2"}, summary.Threads["T1"])
}

func TestService_List(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	importTestRoom(t, svc, "alpha")
	importTestRoom(t, svc, "beta")

	summaries := svc.List()
	require.Len(t, summaries, 2)
	assert.Equal(t, "alpha", summaries[0].RoomID)
	assert.Equal(t, "beta", summaries[1].RoomID)
	assert.Equal(t, 3, summaries[0].TurnCount)
	assert.Equal(t, 1, summaries[0].AnnotatedTurns)
}

func TestService_ExportDefaultPath(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	roomID := importTestRoom(t, svc, "room")

	path, err := svc.Export(roomID, FormatCSV, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir(), "export_room.csv"), path)

	_, err = os.Stat(path)
	assert.NoError(t, err)

	// 导出文件不被当作房间加载
	reloaded, err := storage.NewRoomStore(&config.StoreConfig{Dir: store.Dir()})
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Count())
}

func TestService_ExportCustomPath(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	roomID := importTestRoom(t, svc, "room")

	outputPath := filepath.Join(t.TempDir(), "custom.json")
	path, err := svc.Export(roomID, FormatJSON, outputPath)
	require.NoError(t, err)
	assert.Equal(t, outputPath, path)
}

func TestService_ExportNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	_, err := svc.Export("ghost", FormatCSV, "")
	assert.ErrorIs(t, err, chatroom.ErrRoomNotFound)
}

func TestService_Delete(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	roomID := importTestRoom(t, svc, "room")

	require.NoError(t, svc.Delete(roomID))

	_, err := store.Get(roomID)
	assert.ErrorIs(t, err, chatroom.ErrRoomNotFound)

	// 再次删除返回 ErrRoomNotFound
	assert.ErrorIs(t, svc.Delete(roomID), chatroom.ErrRoomNotFound)
}

func TestService_History(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	roomID := importTestRoom(t, svc, "room")

	threadID := "T1"
	_, err := svc.Annotate(roomID, "t1", "alice", &threadID, nil)
	require.NoError(t, err)
	_, err = svc.Annotate(roomID, "t2", "bob", &threadID, nil)
	require.NoError(t, err)

	entries, err := svc.History(roomID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "t1", entries[0].TurnID)
	assert.Equal(t, "t2", entries[1].TurnID)

	_, err = svc.History("ghost")
	assert.ErrorIs(t, err, chatroom.ErrRoomNotFound)
}

func TestService_SyncRoomFile(t *testing.T) {
	svc, store, _, pusher := newTestService(t)

	// 模拟外部写入房间文件
	roomFile := filepath.Join(store.Dir(), "external.json")
	content := `{"room_id": "external", "turns": [{"user_id": "alice", "turn_id": "t1", "turn_text": "hi"}]}`
	require.NoError(t, os.WriteFile(roomFile, []byte(content), 0644))

	err := svc.SyncRoomFile(&events.RoomFileEvent{
		EventType: events.RoomFileCreated,
		RoomID:    "external",
		FilePath:  roomFile,
		EventTime: time.Now(),
	})
	require.NoError(t, err)

	room, err := store.Get("external")
	require.NoError(t, err)
	assert.Len(t, room.Turns, 1)
	assert.Equal(t, 1, pusher.count())

	// 外部删除后从内存移除
	require.NoError(t, os.Remove(roomFile))
	err = svc.SyncRoomFile(&events.RoomFileEvent{
		EventType: events.RoomFileDeleted,
		RoomID:    "external",
		FilePath:  roomFile,
		EventTime: time.Now(),
	})
	require.NoError(t, err)

	_, err = store.Get("external")
	assert.ErrorIs(t, err, chatroom.ErrRoomNotFound)
	assert.Equal(t, 2, pusher.count())

	// 未知房间的删除事件不推送
	err = svc.SyncRoomFile(&events.RoomFileEvent{
		EventType: events.RoomFileDeleted,
		RoomID:    "ghost",
		FilePath:  filepath.Join(store.Dir(), "ghost.json"),
		EventTime: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, pusher.count())
}

func TestStatsService_RoomStats(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	roomID := importTestRoom(t, svc, "room")

	stats := NewStatsService(store)
	result, err := stats.RoomStats(roomID)
	require.NoError(t, err)

	assert.Equal(t, roomID, result.RoomID)
	assert.Equal(t, 3, result.TurnCount)
	assert.Equal(t, 1, result.AnnotatedTurns)
	assert.Equal(t, 1, result.ThreadCount)
	assert.Greater(t, result.TotalChars, 0)
	assert.Greater(t, result.TotalTokens, 0)
	assert.NotEmpty(t, result.Method)

	_, err = stats.RoomStats("ghost")
	assert.ErrorIs(t, err, chatroom.ErrRoomNotFound)
}
