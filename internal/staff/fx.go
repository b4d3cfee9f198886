package staff

import (
	"github.com/smallbiznis/tavolo/internal/staff/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("staff",
	fx.Provide(repository.New),
)
