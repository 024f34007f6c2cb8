package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fabiofalopes/annotation-tool-backend/internal/domain/chatroom"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/config"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/log"
)

// ExportFilePrefix 导出文件前缀
// 导出文件写入存储目录，但不作为房间加载
const ExportFilePrefix = "export_"

// RoomStore 聊天室存储
// 每个房间对应 <目录>/<room_id>.json 一个文件
// 启动时扫描目录加载全部房间，之后每次变更重写对应文件
type RoomStore struct {
	mu     sync.RWMutex
	dir    string
	rooms  map[string]*chatroom.ChatRoom // roomID -> ChatRoom
	logger *slog.Logger
}

// NewRoomStore 创建聊天室存储
func NewRoomStore(cfg *config.StoreConfig) (*RoomStore, error) {
	// 确保目录存在
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create chatrooms directory: %w", err)
	}

	store := &RoomStore{
		dir:    cfg.Dir,
		rooms:  make(map[string]*chatroom.ChatRoom),
		logger: log.NewModuleLogger("storage", "room_store"),
	}

	if err := store.loadAll(); err != nil {
		return nil, err
	}

	return store, nil
}

// Dir 返回房间文件目录
func (s *RoomStore) Dir() string {
	return s.dir
}

// loadAll 从目录加载全部房间文件
func (s *RoomStore) loadAll() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read chatrooms directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		// 跳过导出文件
		if strings.HasPrefix(name, ExportFilePrefix) {
			continue
		}

		room, err := s.readRoomFile(filepath.Join(s.dir, name))
		if err != nil {
			// 单个文件损坏不阻止启动
			s.logger.Warn("skipping unreadable room file",
				"file", name,
				"error", err,
			)
			continue
		}
		s.rooms[room.RoomID] = room
	}

	s.logger.Info("room store loaded",
		"dir", s.dir,
		"rooms", len(s.rooms),
	)

	return nil
}

// readRoomFile 读取并解析单个房间文件
func (s *RoomStore) readRoomFile(path string) (*chatroom.ChatRoom, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var room chatroom.ChatRoom
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("failed to parse room file: %w", err)
	}
	if room.RoomID == "" {
		// 容忍缺失 room_id 的旧文件，使用文件名
		room.RoomID = strings.TrimSuffix(filepath.Base(path), ".json")
	}

	return &room, nil
}

// roomPath 房间文件路径
func (s *RoomStore) roomPath(roomID string) string {
	return filepath.Join(s.dir, roomID+".json")
}

// save 保存房间到文件（调用方需持有写锁）
func (s *RoomStore) save(room *chatroom.ChatRoom) error {
	data, err := json.MarshalIndent(room, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	if err := os.WriteFile(s.roomPath(room.RoomID), data, 0644); err != nil {
		return fmt.Errorf("failed to write room file: %w", err)
	}

	return nil
}

// copyRoom 返回房间副本（消息切片独立）
func copyRoom(room *chatroom.ChatRoom) *chatroom.ChatRoom {
	roomCopy := &chatroom.ChatRoom{
		RoomID: room.RoomID,
		Turns:  make([]chatroom.Turn, len(room.Turns)),
	}
	copy(roomCopy.Turns, room.Turns)
	return roomCopy
}

// Get 获取指定房间
func (s *RoomStore) Get(roomID string) (*chatroom.ChatRoom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, exists := s.rooms[roomID]
	if !exists {
		return nil, chatroom.ErrRoomNotFound
	}

	// 返回副本
	return copyRoom(room), nil
}

// List 获取所有房间列表（按房间 ID 排序）
func (s *RoomStore) List() []*chatroom.ChatRoom {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]*chatroom.ChatRoom, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, copyRoom(room))
	}

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].RoomID < rooms[j].RoomID
	})

	return rooms
}

// Put 插入或替换房间并持久化
// 同名房间被整体替换（不合并）
func (s *RoomStore) Put(room *chatroom.ChatRoom) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	roomCopy := copyRoom(room)
	s.rooms[roomCopy.RoomID] = roomCopy

	return s.save(roomCopy)
}

// Update 在单个临界区内读取-修改-持久化一个房间
// fn 返回错误时不持久化；房间不存在返回 ErrRoomNotFound
func (s *RoomStore) Update(roomID string, fn func(room *chatroom.ChatRoom) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, exists := s.rooms[roomID]
	if !exists {
		return chatroom.ErrRoomNotFound
	}

	if err := fn(room); err != nil {
		return err
	}

	return s.save(room)
}

// Delete 删除房间
// 内存中不存在返回 ErrRoomNotFound；文件已不存在不算错误
func (s *RoomStore) Delete(roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rooms[roomID]; !exists {
		return chatroom.ErrRoomNotFound
	}

	delete(s.rooms, roomID)

	if err := os.Remove(s.roomPath(roomID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove room file: %w", err)
	}

	return nil
}

// Reload 重新从文件加载一个房间（文件监听器使用）
func (s *RoomStore) Reload(path string) (*chatroom.ChatRoom, error) {
	room, err := s.readRoomFile(path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.rooms[room.RoomID] = room
	s.mu.Unlock()

	return copyRoom(room), nil
}

// Evict 仅从内存中移除房间（文件已被外部删除时使用）
// 返回是否确实移除
func (s *RoomStore) Evict(roomID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rooms[roomID]; !exists {
		return false
	}
	delete(s.rooms, roomID)
	return true
}

// Count 房间数量
func (s *RoomStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
