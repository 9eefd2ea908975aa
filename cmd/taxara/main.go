package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/ledgerline/taxara/internal/audit"
	"github.com/ledgerline/taxara/internal/clock"
	"github.com/ledgerline/taxara/internal/config"
	"github.com/ledgerline/taxara/internal/invoice"
	"github.com/ledgerline/taxara/internal/logger"
	"github.com/ledgerline/taxara/internal/server"
	"github.com/ledgerline/taxara/pkg/db"
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

		// Functional domains
		audit.Module,
		invoice.Module,
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
