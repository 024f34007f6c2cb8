package annotation

import (
	"github.com/google/wire"
)

// ProviderSet 标注应用层 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
	NewStatsService,
)
