package coordinator

import (
	"github.com/smallbiznis/tavolo/internal/coordinator/service"
	"go.uber.org/fx"
)

var Module = fx.Module("coordinator",
	fx.Provide(service.New),
)
