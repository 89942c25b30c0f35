package testutil

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/ory/dockertest/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Postgres is a throwaway database container shared by the tests of one package.
type Postgres struct {
	DB       *gorm.DB
	DSN      string
	pool     *dockertest.Pool
	resource *dockertest.Resource
}

// StartPostgres starts a postgres container and migrates the given models.
// TEST_DATABASE_DSN points the tests at an existing database instead.
func StartPostgres(models ...any) (*Postgres, error) {
	if dsn := os.Getenv("TEST_DATABASE_DSN"); dsn != "" {
		db, err := open(dsn, models)
		if err != nil {
			return nil, err
		}
		return &Postgres{DB: db, DSN: dsn}, nil
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not construct pool: %w", err)
	}
	// uses pool to try to connect to Docker
	if err := pool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("could not connect to docker: %w", err)
	}

	resource, err := pool.Run("postgres", "17.2-alpine", []string{"POSTGRES_USER=postgres", "POSTGRES_PASSWORD=postgres", "POSTGRES_DB=eventmi"})
	if err != nil {
		return nil, fmt.Errorf("could not start resource: %w", err)
	}
	_ = resource.Expire(600) // Tell docker to hard kill the container in 10 minutes
	dsn := fmt.Sprintf(
		"host=localhost port=%s user=postgres password=postgres dbname=eventmi sslmode=disable",
		resource.GetPort("5432/tcp"))

	var db *gorm.DB
	// exponential backoff-retry, because the application in the container might not be ready to accept connections yet
	if err := pool.Retry(func() error {
		var err error
		db, err = open(dsn, models)
		return err
	}); err != nil {
		_ = pool.Purge(resource)
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	return &Postgres{DB: db, DSN: dsn, pool: pool, resource: resource}, nil
}

func open(dsn string, models []any) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(models...); err != nil {
		return nil, err
	}
	return db, nil
}

// Close purges the container, if one was started.
func (p *Postgres) Close() {
	if p == nil || p.pool == nil {
		return
	}
	if err := p.pool.Purge(p.resource); err != nil {
		log.Printf("Could not purge resource: %s", err)
	}
}

// Require skips the test when no database could be started.
func (p *Postgres) Require(t *testing.T) *gorm.DB {
	t.Helper()
	if p == nil {
		t.Skip("skipping postgres integration test: no database available")
	}
	return p.DB
}
