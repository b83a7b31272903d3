// Package main provides the API to manage accounts and money transfers.
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/twothirdshuman/minecraft-banking/cmd/httpserver"
	"github.com/twothirdshuman/minecraft-banking/internal/middleware"
	"github.com/twothirdshuman/minecraft-banking/pkg/configpkg"
	"github.com/twothirdshuman/minecraft-banking/pkg/dbpkg"
	"github.com/twothirdshuman/minecraft-banking/pkg/kvpkg"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	var store kvpkg.Store

	switch config.StoreDriver {
	case "memory":
		store = kvpkg.NewMemStore()
	default:
		db, err := dbpkg.Setup(config.StoreDriver, config.StoreSource)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot connect to store")
		}

		sqlStore := kvpkg.NewSQLStore(db)
		if err := sqlStore.EnsureSchema(context.Background()); err != nil {
			logger.Fatal().Err(err).Msg("cannot ensure store schema")
		}

		store = sqlStore
	}

	server, err := httpserver.New(store, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("LEDGER API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
