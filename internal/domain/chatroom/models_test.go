package chatroom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestTurn_Annotate(t *testing.T) {
	turn := &Turn{
		UserID:   "u1",
		TurnID:   "t1",
		TurnText: "hello",
	}

	// 初始状态：未标注
	assert.False(t, turn.IsAnnotated())

	// 标注
	now := time.Now()
	notes := strPtr("first pass")
	turn.Annotate("alice", strPtr("T1"), notes, now)

	require.NotNil(t, turn.ThreadID)
	assert.Equal(t, "T1", *turn.ThreadID)
	require.NotNil(t, turn.AnnotatorID)
	assert.Equal(t, "alice", *turn.AnnotatorID)
	require.NotNil(t, turn.AnnotationTimestamp)
	assert.Equal(t, now, *turn.AnnotationTimestamp)
	require.NotNil(t, turn.AnnotationNotes)
	assert.Equal(t, "first pass", *turn.AnnotationNotes)
	assert.True(t, turn.IsAnnotated())

	// 再次标注且不带备注：全部四个字段被覆盖，备注被清空
	later := now.Add(time.Minute)
	turn.Annotate("bob", strPtr("T2"), nil, later)

	assert.Equal(t, "T2", *turn.ThreadID)
	assert.Equal(t, "bob", *turn.AnnotatorID)
	assert.Equal(t, later, *turn.AnnotationTimestamp)
	assert.Nil(t, turn.AnnotationNotes, "不提供备注时应清空原有备注")
}

func TestChatRoom_FindTurn(t *testing.T) {
	room := &ChatRoom{
		RoomID: "room1",
		Turns: []Turn{
			{UserID: "u1", TurnID: "t1", TurnText: "a"},
			{UserID: "u2", TurnID: "t2", TurnText: "b"},
		},
	}

	found := room.FindTurn("t2")
	require.NotNil(t, found)
	assert.Equal(t, "b", found.TurnText)

	// 返回的指针可用于原地修改
	found.Annotate("alice", strPtr("T1"), nil, time.Now())
	assert.True(t, room.Turns[1].IsAnnotated())

	assert.Nil(t, room.FindTurn("missing"))
}

func TestChatRoom_Summarize(t *testing.T) {
	room := &ChatRoom{
		RoomID: "room1",
		Turns: []Turn{
			{TurnID: "t1", ThreadID: strPtr("A")},
			{TurnID: "t2", ThreadID: strPtr("B")},
			{TurnID: "t3", ThreadID: strPtr("A")},
			{TurnID: "t4"},
		},
	}

	summary := room.Summarize()
	assert.Equal(t, "room1", summary.RoomID)
	assert.Equal(t, 2, summary.ThreadCount)
	assert.Equal(t, []string{"t1", "t3"}, summary.Threads["A"], "线程内消息应保持房间顺序")
	assert.Equal(t, []string{"t2"}, summary.Threads["B"])
	_, hasNone := summary.Threads[""]
	assert.False(t, hasNone, "未分配线程的消息应被忽略")
}

func TestChatRoom_Summary(t *testing.T) {
	room := &ChatRoom{
		RoomID: "room1",
		Turns: []Turn{
			{TurnID: "t1", ThreadID: strPtr("A")},
			{TurnID: "t2", ThreadID: strPtr("A")},
			{TurnID: "t3"},
		},
	}

	s := room.Summary()
	assert.Equal(t, 3, s.TurnCount)
	assert.Equal(t, 2, s.AnnotatedTurns)
	assert.Equal(t, 1, s.ThreadCount)
}

func TestChatRoom_Summarize_Empty(t *testing.T) {
	room := &ChatRoom{RoomID: "empty"}

	summary := room.Summarize()
	assert.Equal(t, 0, summary.ThreadCount)
	assert.Empty(t, summary.Threads)
}
