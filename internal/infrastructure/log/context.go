package log

import (
	"context"
	"log/slog"
)

// 上下文键定义
const (
	// RequestContextID HTTP 请求 ID
	RequestContextID = "request_id"

	// RoomContextID 房间 ID
	RoomContextID = "room_id"

	// AnnotatorContextID 标注者 ID
	AnnotatorContextID = "annotator_id"
)

// WithRequestID 在上下文中添加请求 ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestContextID, requestID)
}

// WithRoomID 在上下文中添加房间 ID
func WithRoomID(ctx context.Context, roomID string) context.Context {
	return context.WithValue(ctx, RoomContextID, roomID)
}

// WithAnnotatorID 在上下文中添加标注者 ID
func WithAnnotatorID(ctx context.Context, annotatorID string) context.Context {
	return context.WithValue(ctx, AnnotatorContextID, annotatorID)
}

// LogCtxFromContext 从上下文中提取日志字段
func LogCtxFromContext(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr

	if requestID := ctx.Value(RequestContextID); requestID != nil {
		attrs = append(attrs, slog.String("request_id", requestID.(string)))
	}
	if roomID := ctx.Value(RoomContextID); roomID != nil {
		attrs = append(attrs, slog.String("room_id", roomID.(string)))
	}
	if annotatorID := ctx.Value(AnnotatorContextID); annotatorID != nil {
		attrs = append(attrs, slog.String("annotator_id", annotatorID.(string)))
	}

	return attrs
}
