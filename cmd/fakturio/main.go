package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/fakturio/fakturio/internal/clock"
	"github.com/fakturio/fakturio/internal/config"
	"github.com/fakturio/fakturio/internal/logger"
	"github.com/fakturio/fakturio/internal/migration"
	"github.com/fakturio/fakturio/internal/server"
	"github.com/fakturio/fakturio/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
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
