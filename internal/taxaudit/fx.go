package taxaudit

import (
	"github.com/smallbiznis/tavolo/internal/taxaudit/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("taxaudit",
	fx.Provide(repository.New),
)
