package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tavolo/internal/billrequest"
	"github.com/smallbiznis/tavolo/internal/clock"
	"github.com/smallbiznis/tavolo/internal/config"
	"github.com/smallbiznis/tavolo/internal/coordinator"
	"github.com/smallbiznis/tavolo/internal/floor"
	"github.com/smallbiznis/tavolo/internal/idgen"
	"github.com/smallbiznis/tavolo/internal/logger"
	"github.com/smallbiznis/tavolo/internal/migration"
	"github.com/smallbiznis/tavolo/internal/server"
	"github.com/smallbiznis/tavolo/internal/staff"
	"github.com/smallbiznis/tavolo/internal/taxaudit"
	"github.com/smallbiznis/tavolo/internal/transaction"
	"github.com/smallbiznis/tavolo/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		idgen.Module,
		migration.Module,

		// Functional domains
		staff.Module,
		floor.Module,
		transaction.Module,
		taxaudit.Module,
		billrequest.Module,
		coordinator.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
