package interfaces

import (
	"github.com/fabiofalopes/annotation-tool-backend/internal/interfaces/http"
	"github.com/google/wire"
)

// ProviderSet Interfaces 层总 ProviderSet
var ProviderSet = wire.NewSet(
	http.ProviderSet,
)
