package main

import (
	"flag"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/joripage/lob-engine/config"
	"github.com/joripage/lob-engine/pkg/infra"
	"github.com/joripage/lob-engine/pkg/logging"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	logger, err := logging.Init("debug")
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // nolint

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	if err := infra.Migrate("file://migration/sql", cfg.EngineDB.MigrationConnURL); err != nil {
		panic(err)
	}
}
