package infra

import (
	"sync"

	"github.com/cenkalti/backoff"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"gorm.io/gorm"

	postgres_wrapper "github.com/joripage/lob-engine/pkg/infra/postgres"
)

var migrateMu sync.Mutex

// Migrate brings the schema from its current version to the latest. A
// dirty version is forced back one step and retried.
func Migrate(source, connStr string) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	zap.S().Infof("migrating from %s", source)

	mg, err := migrate.New(source, connStr)
	if err != nil {
		return err
	}
	defer mg.Close()

	version, dirty, err := mg.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return err
	}
	if dirty {
		if err := mg.Force(int(version) - 1); err != nil {
			return err
		}
	}

	if err := mg.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	zap.S().Info("migration done")
	return nil
}

// ConnectAndMigrate waits for the database with exponential backoff, then
// runs the migrations. Used by tests and by fresh environments.
func ConnectAndMigrate(cfg *postgres_wrapper.PostgresConfig, source string) (*gorm.DB, error) {
	var db *gorm.DB
	boff := backoff.NewExponentialBackOff()
	err := backoff.Retry(func() error {
		var err error
		db, err = postgres_wrapper.InitPostgres(cfg)
		if err != nil {
			zap.S().Warnf("connect postgres fail: %v", err)
		}
		return err
	}, boff)
	if err != nil {
		return nil, err
	}

	if err := Migrate(source, cfg.MigrationConnURL); err != nil {
		return nil, err
	}
	return db, nil
}
