package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fabiofalopes/annotation-tool-backend/internal/application/annotation"
	"github.com/fabiofalopes/annotation-tool-backend/internal/domain/chatroom"
	"github.com/fabiofalopes/annotation-tool-backend/internal/interfaces/http/response"
)

// ChatRoomHandler 聊天室标注处理器
type ChatRoomHandler struct {
	service *annotation.Service
	stats   *annotation.StatsService
}

// NewChatRoomHandler 创建聊天室标注处理器
func NewChatRoomHandler(service *annotation.Service, stats *annotation.StatsService) *ChatRoomHandler {
	return &ChatRoomHandler{service: service, stats: stats}
}

// ImportRequest 导入请求
type ImportRequest struct {
	FilePath string `json:"file_path" binding:"required"`
	Format   string `json:"format"`
}

// AnnotateRequest 标注请求
type AnnotateRequest struct {
	AnnotatorID string  `json:"annotator_id" binding:"required"`
	ThreadID    *string `json:"thread_id"`
	Notes       *string `json:"notes"`
}

// ExportResult 导出结果
type ExportResult struct {
	Message    string `json:"message"`
	OutputPath string `json:"output_path"`
}

// fail 将领域错误映射为 HTTP 响应
func fail(c *gin.Context, err error, fallbackCode int, fallbackMessage string) {
	switch {
	case errors.Is(err, chatroom.ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, 300001, "聊天室不存在")
	case errors.Is(err, chatroom.ErrTurnNotFound):
		response.Error(c, http.StatusNotFound, 300002, "消息不存在")
	case errors.Is(err, chatroom.ErrUnsupportedFormat):
		response.Error(c, http.StatusBadRequest, 300003, "不支持的格式，仅支持 csv 和 json")
	case errors.Is(err, chatroom.ErrSourceParse):
		response.ErrorWithDetail(c, http.StatusBadRequest, 300004, "源文件解析失败", err.Error())
	default:
		response.ErrorWithDetail(c, http.StatusInternalServerError, fallbackCode, fallbackMessage, err.Error())
	}
}

// Import 导入聊天记录
// @Summary 导入聊天记录
// @Description 从 CSV 或 JSON 文件导入聊天室，保留已有线程标注
// @Tags 聊天室
// @Accept json
// @Produce json
// @Param body body ImportRequest true "导入参数"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /disentanglement/chatroom/import [post]
func (h *ChatRoomHandler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, 100001, "参数错误")
		return
	}
	if req.Format == "" {
		req.Format = "csv"
	}

	format, err := annotation.ParseFormat(req.Format)
	if err != nil {
		fail(c, err, 300005, "导入失败")
		return
	}

	result, err := h.service.Import(req.FilePath, format)
	if err != nil {
		fail(c, err, 300005, "导入失败")
		return
	}

	response.Success(c, result)
}

// List 获取聊天室列表
// @Summary 获取聊天室列表
// @Tags 聊天室
// @Produce json
// @Success 200 {object} response.Response
// @Router /disentanglement/chatrooms [get]
func (h *ChatRoomHandler) List(c *gin.Context) {
	response.Success(c, h.service.List())
}

// Get 获取聊天室详情
// @Summary 获取聊天室详情
// @Tags 聊天室
// @Produce json
// @Param room_id path string true "聊天室 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /disentanglement/chatroom/{room_id} [get]
func (h *ChatRoomHandler) Get(c *gin.Context) {
	room, err := h.service.Get(c.Param("room_id"))
	if err != nil {
		fail(c, err, 300008, "查询失败")
		return
	}

	response.Success(c, room)
}

// Annotate 标注消息线程
// @Summary 标注消息线程
// @Description 设置一条消息的线程归属，四个标注字段整体覆盖
// @Tags 标注
// @Accept json
// @Produce json
// @Param room_id path string true "聊天室 ID"
// @Param turn_id path string true "消息 ID"
// @Param body body AnnotateRequest true "标注参数"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /disentanglement/chatroom/{room_id}/turns/{turn_id}/annotate [put]
func (h *ChatRoomHandler) Annotate(c *gin.Context) {
	var req AnnotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, 100001, "参数错误")
		return
	}

	result, err := h.service.Annotate(
		c.Param("room_id"),
		c.Param("turn_id"),
		req.AnnotatorID,
		req.ThreadID,
		req.Notes,
	)
	if err != nil {
		fail(c, err, 300009, "标注失败")
		return
	}

	response.Success(c, result)
}

// ThreadSummary 获取线程摘要
// @Summary 获取线程摘要
// @Tags 标注
// @Produce json
// @Param room_id path string true "聊天室 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /disentanglement/chatroom/{room_id}/threads [get]
func (h *ChatRoomHandler) ThreadSummary(c *gin.Context) {
	summary, err := h.service.ThreadSummary(c.Param("room_id"))
	if err != nil {
		fail(c, err, 300008, "查询失败")
		return
	}

	response.Success(c, summary)
}

// Export 导出聊天室
// @Summary 导出聊天室
// @Description 导出为 CSV 或 JSON 文件，默认写入存储目录
// @Tags 聊天室
// @Produce json
// @Param room_id path string true "聊天室 ID"
// @Param format path string true "导出格式（csv 或 json）"
// @Param output_path query string false "输出文件路径"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /disentanglement/chatroom/{room_id}/export/{format} [get]
func (h *ChatRoomHandler) Export(c *gin.Context) {
	format, err := annotation.ParseFormat(c.Param("format"))
	if err != nil {
		fail(c, err, 300006, "导出失败")
		return
	}

	path, err := h.service.Export(c.Param("room_id"), format, c.Query("output_path"))
	if err != nil {
		fail(c, err, 300006, "导出失败")
		return
	}

	response.Success(c, ExportResult{
		Message:    "导出成功",
		OutputPath: path,
	})
}

// Delete 删除聊天室
// @Summary 删除聊天室
// @Tags 聊天室
// @Produce json
// @Param room_id path string true "聊天室 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /disentanglement/chatroom/{room_id} [delete]
func (h *ChatRoomHandler) Delete(c *gin.Context) {
	roomID := c.Param("room_id")
	if err := h.service.Delete(roomID); err != nil {
		fail(c, err, 300007, "删除失败")
		return
	}

	response.Success(c, gin.H{"message": "聊天室 " + roomID + " 已删除"})
}

// History 获取标注历史
// @Summary 获取标注历史
// @Description 按时间正序返回聊天室的全部标注操作记录
// @Tags 标注
// @Produce json
// @Param room_id path string true "聊天室 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /disentanglement/chatroom/{room_id}/history [get]
func (h *ChatRoomHandler) History(c *gin.Context) {
	entries, err := h.service.History(c.Param("room_id"))
	if err != nil {
		fail(c, err, 300008, "查询失败")
		return
	}

	response.Success(c, entries)
}

// Stats 获取聊天室统计
// @Summary 获取聊天室统计
// @Description 统计消息文本的字符数和 token 数量
// @Tags 统计
// @Produce json
// @Param room_id path string true "聊天室 ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /disentanglement/chatroom/{room_id}/stats [get]
func (h *ChatRoomHandler) Stats(c *gin.Context) {
	result, err := h.stats.RoomStats(c.Param("room_id"))
	if err != nil {
		fail(c, err, 300008, "查询失败")
		return
	}

	response.Success(c, result)
}
