package billrequest

import (
	"github.com/smallbiznis/tavolo/internal/billrequest/repository"
	"github.com/smallbiznis/tavolo/internal/billrequest/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billrequest",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
