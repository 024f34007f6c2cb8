package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AnnotationLogEntry 一条标注操作记录（不可变，仅追加）
type AnnotationLogEntry struct {
	ID          string    `json:"id"`
	RoomID      string    `json:"room_id"`
	TurnID      string    `json:"turn_id"`
	AnnotatorID string    `json:"annotator_id"`
	ThreadID    *string   `json:"thread_id"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// AnnotationLogRepository 标注日志仓储接口
type AnnotationLogRepository interface {
	Append(entry *AnnotationLogEntry) error
	FindByRoom(roomID string) ([]*AnnotationLogEntry, error)
}

// annotationLogRepository 标注日志 SQLite 仓储实现
type annotationLogRepository struct {
	db *sql.DB
}

// NewAnnotationLogRepository 创建标注日志仓储实例
func NewAnnotationLogRepository(db *sql.DB) AnnotationLogRepository {
	// 确保表存在
	if err := initAnnotationLogTable(db); err != nil {
		// 初始化失败时记录错误但不阻止创建
		fmt.Printf("failed to init annotation_log table: %v\n", err)
	}
	return &annotationLogRepository{db: db}
}

// initAnnotationLogTable 初始化标注日志表
func initAnnotationLogTable(db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS annotation_log (
		id TEXT PRIMARY KEY,
		room_id TEXT NOT NULL,
		turn_id TEXT NOT NULL,
		annotator_id TEXT NOT NULL,
		thread_id TEXT,
		notes TEXT,
		created_at INTEGER NOT NULL
	);`

	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create annotation_log table: %w", err)
	}

	// 创建索引
	createIndexSQL := `
	CREATE INDEX IF NOT EXISTS idx_annotation_log_room ON annotation_log(room_id, created_at);`

	if _, err := db.Exec(createIndexSQL); err != nil {
		return fmt.Errorf("failed to create annotation_log indexes: %w", err)
	}

	return nil
}

// Append 追加一条标注记录
func (r *annotationLogRepository) Append(entry *AnnotationLogEntry) error {
	// 如果 ID 为空，生成新的 UUID
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	var threadID sql.NullString
	if entry.ThreadID != nil {
		threadID = sql.NullString{String: *entry.ThreadID, Valid: true}
	}
	var notes sql.NullString
	if entry.Notes != nil {
		notes = sql.NullString{String: *entry.Notes, Valid: true}
	}

	query := `
		INSERT INTO annotation_log
		(id, room_id, turn_id, annotator_id, thread_id, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		entry.ID,
		entry.RoomID,
		entry.TurnID,
		entry.AnnotatorID,
		threadID,
		notes,
		entry.CreatedAt.UnixMilli(),
	)

	if err != nil {
		return fmt.Errorf("failed to append annotation log entry: %w", err)
	}

	return nil
}

// FindByRoom 查询一个房间的全部标注记录（按时间正序）
func (r *annotationLogRepository) FindByRoom(roomID string) ([]*AnnotationLogEntry, error) {
	query := `
		SELECT id, room_id, turn_id, annotator_id, thread_id, notes, created_at
		FROM annotation_log
		WHERE room_id = ?
		ORDER BY created_at ASC`

	rows, err := r.db.Query(query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to query annotation log: %w", err)
	}
	defer rows.Close()

	var entries []*AnnotationLogEntry
	for rows.Next() {
		var entry AnnotationLogEntry
		var threadID sql.NullString
		var notes sql.NullString
		var createdAt int64

		if err := rows.Scan(
			&entry.ID,
			&entry.RoomID,
			&entry.TurnID,
			&entry.AnnotatorID,
			&threadID,
			&notes,
			&createdAt,
		); err != nil {
			continue
		}

		if threadID.Valid {
			entry.ThreadID = &threadID.String
		}
		if notes.Valid {
			entry.Notes = &notes.String
		}
		entry.CreatedAt = time.UnixMilli(createdAt)

		entries = append(entries, &entry)
	}

	return entries, nil
}

// 编译时检查接口实现
var _ AnnotationLogRepository = (*annotationLogRepository)(nil)
