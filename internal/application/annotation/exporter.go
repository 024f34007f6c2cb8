package annotation

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fabiofalopes/annotation-tool-backend/internal/domain/chatroom"
	"github.com/fabiofalopes/annotation-tool-backend/internal/infrastructure/storage"
)

// exportColumns CSV 导出的列顺序
var exportColumns = []string{
	"user_id", "turn_id", "turn_text", "reply_to_turn",
	"thread_id", "annotator_id",
	"annotation_timestamp", "annotation_notes",
}

// Exporter 聊天室导出器
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// DefaultExportPath 返回默认导出路径（存储目录下的 export_<room_id>.<format>）
func (e *Exporter) DefaultExportPath(storeDir, roomID string, format Format) string {
	return filepath.Join(storeDir, fmt.Sprintf("%s%s.%s", storage.ExportFilePrefix, roomID, format))
}

// Export 将聊天室导出到目标文件，返回实际写入的路径
func (e *Exporter) Export(room *chatroom.ChatRoom, format Format, outputPath string) (string, error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatCSV:
		err = e.writeCSV(file, room)
	case FormatJSON:
		err = e.writeJSON(file, room)
	default:
		return "", fmt.Errorf("%w: %q", chatroom.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return "", err
	}

	return outputPath, nil
}

// writeCSV 写入 CSV 格式
// 未标注字段输出为空字符串，时间戳使用 RFC 3339
func (e *Exporter) writeCSV(file *os.File, room *chatroom.ChatRoom) error {
	writer := csv.NewWriter(file)

	if err := writer.Write(exportColumns); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	optional := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	timestamp := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format(time.RFC3339)
	}

	for _, turn := range room.Turns {
		record := []string{
			turn.UserID,
			turn.TurnID,
			turn.TurnText,
			optional(turn.ReplyToTurn),
			optional(turn.ThreadID),
			optional(turn.AnnotatorID),
			timestamp(turn.AnnotationTimestamp),
			optional(turn.AnnotationNotes),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write export record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// writeJSON 写入 JSON 格式
func (e *Exporter) writeJSON(file *os.File, room *chatroom.ChatRoom) error {
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(room); err != nil {
		return fmt.Errorf("failed to write export data: %w", err)
	}
	return nil
}
