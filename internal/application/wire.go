package application

import (
	"github.com/fabiofalopes/annotation-tool-backend/internal/application/annotation"
	"github.com/google/wire"
)

// ProviderSet Application 层总 ProviderSet
var ProviderSet = wire.NewSet(
	annotation.ProviderSet,
)
