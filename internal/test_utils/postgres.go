package test_utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/occasions/internal/config"
	"github.com/klokku/occasions/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	dbName     = "occasions"
	dbUser     = "test_occasions"
	dbPassword = "test_occasions"
)

func preparePostgresContainer() (*postgres.PostgresContainer, error) {
	ctx := context.Background()

	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %v", err)
	}

	pgContainer, err := startContainer(func() (*postgres.PostgresContainer, error) {
		return postgres.Run(
			ctx, "postgres:18.1-alpine",
			postgres.WithInitScripts(filepath.Join(projectRoot, "dev", "init.sql")),
			postgres.WithDatabase(dbName),
			postgres.WithUsername(dbUser),
			postgres.WithPassword(dbPassword),
			postgres.BasicWaitStrategies(),
		)
	})
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return nil, err
	}
	return pgContainer, nil
}

// startContainer reports a panicking container runtime as an error. testcontainers panics when
// it cannot find a Docker host at all.
func startContainer(start func() (*postgres.PostgresContainer, error)) (container *postgres.PostgresContainer, err error) {
	defer func() {
		if r := recover(); r != nil {
			container = nil
			err = fmt.Errorf("container runtime is not available: %v", r)
		}
	}()
	return start()
}

// TestWithDB sets up a Postgres instance, applies all migrations and returns an open pool
// together with a cleanup function closing the pool and terminating the container.
// An error is returned when no container runtime is available.
func TestWithDB() (*pgxpool.Pool, func(), error) {
	ctx := context.Background()

	container, err := preparePostgresContainer()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5432/tcp")

	log.Infof("Postgres container started at %s:%d", host, port.Int())

	cfg := config.Database{
		Host:   host,
		Port:   port.Int(),
		User:   dbUser,
		Pass:   dbPassword,
		Name:   dbName,
		Schema: dbName,
	}

	terminate := func() {
		if err := container.Terminate(ctx); err != nil {
			log.Errorf("Failed to terminate postgres container: %v", err)
		}
	}

	err = database.Migrate(cfg)
	if err != nil {
		terminate()
		return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		terminate()
		return nil, nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	return db, func() {
		db.Close()
		terminate()
	}, nil
}

// findProjectRoot attempts to locate the project root directory
// It looks for .git directory or go.mod file
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if fileExists(filepath.Join(dir, ".git")) || fileExists(filepath.Join(dir, "go.mod")) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root")
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
