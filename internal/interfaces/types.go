package interfaces

import (
	"github.com/fabiofalopes/annotation-tool-backend/internal/interfaces/http"
)

// HTTPServer HTTP 服务器类型别名
type HTTPServer = http.HTTPServer
