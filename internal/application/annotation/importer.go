package annotation

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fabiofalopes/annotation-tool-backend/internal/domain/chatroom"
)

// Format 导入/导出格式
type Format string

const (
	// FormatCSV CSV 格式
	FormatCSV Format = "csv"
	// FormatJSON JSON 格式
	FormatJSON Format = "json"
)

// ParseFormat 解析格式字符串
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", chatroom.ErrUnsupportedFormat, s)
	}
}

// threadColumnVariants CSV 中线程列的候选名称，按优先级排列
var threadColumnVariants = []string{"thread_id", "thread", "thread_num", "thread_number"}

// importedAnnotator 预标注数据的标注者标识
const importedAnnotator = "imported"

// Importer 聊天记录导入器
// 将 CSV 或 JSON 源文件解析为聊天室实体，保留已有的线程标注。
type Importer struct{}

// NewImporter 创建导入器
func NewImporter() *Importer {
	return &Importer{}
}

// Import 从源文件导入聊天室
// room_id 取源文件去掉扩展名后的文件名
func (i *Importer) Import(sourcePath string, format Format) (*chatroom.ChatRoom, error) {
	file, err := os.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer file.Close()

	var turns []chatroom.Turn
	switch format {
	case FormatCSV:
		turns, err = i.parseCSV(file, sourcePath)
	case FormatJSON:
		turns, err = i.parseJSON(file, sourcePath)
	default:
		return nil, fmt.Errorf("%w: %q", chatroom.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	return &chatroom.ChatRoom{
		RoomID: deriveRoomID(sourcePath),
		Turns:  turns,
	}, nil
}

// deriveRoomID 从源文件路径推导聊天室 ID
func deriveRoomID(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// parseCSV 解析 CSV 源文件
// 必需列：user_id、turn_id、turn_text；可选列：reply_to_turn 和线程列
func (i *Importer) parseCSV(r io.Reader, sourcePath string) ([]chatroom.Turn, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chatroom.ErrSourceParse, err)
	}

	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[strings.TrimSpace(name)] = idx
	}

	for _, required := range []string{"user_id", "turn_id", "turn_text"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", chatroom.ErrSourceParse, required)
		}
	}

	// 按优先级查找线程列
	threadColumn := -1
	for _, variant := range threadColumnVariants {
		if idx, ok := columns[variant]; ok {
			threadColumn = idx
			break
		}
	}
	replyColumn := -1
	if idx, ok := columns["reply_to_turn"]; ok {
		replyColumn = idx
	}

	cell := func(record []string, idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	var turns []chatroom.Turn
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", chatroom.ErrSourceParse, err)
		}

		turn := chatroom.Turn{
			UserID:   cell(record, columns["user_id"]),
			TurnID:   cell(record, columns["turn_id"]),
			TurnText: cell(record, columns["turn_text"]),
		}
		if reply := cell(record, replyColumn); reply != "" {
			turn.ReplyToTurn = &reply
		}

		// 保留已有线程标注，带上导入元数据
		if threadID := normalizeThreadID(cell(record, threadColumn)); threadID != "" {
			now := time.Now()
			notes := importNotes(sourcePath)
			annotator := importedAnnotator
			turn.ThreadID = &threadID
			turn.AnnotatorID = &annotator
			turn.AnnotationTimestamp = &now
			turn.AnnotationNotes = &notes
		}

		turns = append(turns, turn)
	}

	return turns, nil
}

// jsonSource JSON 源文件结构
type jsonSource struct {
	Turns []chatroom.Turn `json:"turns"`
}

// parseJSON 解析 JSON 源文件
// 已带 thread_id 的消息补全缺失的标注元数据
func (i *Importer) parseJSON(r io.Reader, sourcePath string) ([]chatroom.Turn, error) {
	var source jsonSource
	if err := json.NewDecoder(r).Decode(&source); err != nil {
		return nil, fmt.Errorf("%w: %v", chatroom.ErrSourceParse, err)
	}

	turns := source.Turns
	for idx := range turns {
		turn := &turns[idx]
		if turn.ThreadID == nil || *turn.ThreadID == "" {
			continue
		}
		if turn.AnnotatorID == nil {
			annotator := importedAnnotator
			turn.AnnotatorID = &annotator
		}
		if turn.AnnotationTimestamp == nil {
			now := time.Now()
			turn.AnnotationTimestamp = &now
		}
		if turn.AnnotationNotes == nil {
			notes := importNotes(sourcePath)
			turn.AnnotationNotes = &notes
		}
	}

	return turns, nil
}

// normalizeThreadID 规范化线程标识
// 空字符串、"none"、"null"（不区分大小写）视为未标注
func normalizeThreadID(raw string) string {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "", "none", "null":
		return ""
	}
	return trimmed
}

// importNotes 生成导入备注
func importNotes(sourcePath string) string {
	return fmt.Sprintf("Imported from %s", sourcePath)
}
