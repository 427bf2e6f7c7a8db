package main

import (
	"context"
	"fmt"

	"github.com/passnode/passnode/internal/adapter"
	"github.com/passnode/passnode/internal/client"
	"github.com/passnode/passnode/internal/config"
	"github.com/passnode/passnode/internal/logger"
	"github.com/passnode/passnode/internal/service"
	"github.com/passnode/passnode/internal/store"
	"github.com/passnode/passnode/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("passnode")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	remote, err := adapter.NewHTTPRemoteStore(cfg.Remote, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote store adapter")
	}

	// The snapshot cache is optional: without a DSN the client still works,
	// it just cannot open the vault while offline.
	var cache store.SnapshotCache
	if cfg.Storage.Cache.DSN != "" {
		db, dbErr := store.NewConnectSQLite(context.Background(), cfg.Storage.Cache, log)
		if dbErr != nil {
			log.Fatal().Err(dbErr).Msg("create snapshot cache")
		}
		defer db.Close()
		cache = store.NewSnapshotRepository(db, log)
	}

	services := service.NewClientServices(remote, cache, log)

	ui, err := tui.New(services, cfg.App.Version, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
