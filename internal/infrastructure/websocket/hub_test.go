package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub()
	hub.Start()

	conn := &Connection{ID: "conn-1", Send: make(chan []byte, 8)}
	hub.Register(conn)

	// 等待注册完成
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, hub.ConnectionCount())

	require.NoError(t, hub.Broadcast(map[string]string{"event": "room.file.created"}))

	select {
	case data := <-conn.Send:
		assert.Contains(t, string(data), "room.file.created")
	case <-time.After(time.Second):
		t.Fatal("broadcast message not received")
	}

	hub.Unregister(conn)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, hub.ConnectionCount())
}

func TestHub_BroadcastToMultipleConnections(t *testing.T) {
	hub := NewHub()
	hub.Start()

	conns := make([]*Connection, 3)
	for i := range conns {
		conns[i] = &Connection{Send: make(chan []byte, 8)}
		hub.Register(conns[i])
	}
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, hub.Broadcast(map[string]string{"message": "hello"}))

	for _, conn := range conns {
		select {
		case data := <-conn.Send:
			assert.Contains(t, string(data), "hello")
		case <-time.After(time.Second):
			t.Fatal("broadcast message not received")
		}
	}
}

func TestHub_BroadcastInvalidData(t *testing.T) {
	hub := NewHub()
	hub.Start()

	// 无法序列化的数据应返回错误
	err := hub.Broadcast(make(chan int))
	assert.Error(t, err)
}
