package floor

import (
	"github.com/smallbiznis/tavolo/internal/floor/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("floor",
	fx.Provide(repository.New),
)
