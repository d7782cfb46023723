// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tomtom215/postpulse/internal/config"
)

const (
	// DefaultPostgresImage is the PostgreSQL image used for gateway tests.
	DefaultPostgresImage = "postgres:16-alpine"

	// DefaultMySQLImage is the MySQL image used for gateway tests.
	DefaultMySQLImage = "mysql:8.4"

	testDatabaseName = "postpulse"
	testUser         = "postpulse"
	testPassword     = "postpulse-test"
)

// DatabaseContainer is a running database server for integration tests.
type DatabaseContainer struct {
	testcontainers.Container
	Dialect    string
	ServerName string // host:port
}

// Config returns a gateway config pointing at the container, with table
// creation enabled.
func (c *DatabaseContainer) Config() *config.DatabaseConfig {
	return &config.DatabaseConfig{
		Dialect:        c.Dialect,
		User:           testUser,
		Password:       testPassword,
		ServerName:     c.ServerName,
		DatabaseName:   testDatabaseName,
		PostsTable:     "posts",
		SentimentTable: "sentiment",
		LogsTable:      "logs",
		CreateTables:   true,
		MaxOpenConns:   4,
		QueryTimeout:   30 * time.Second,
	}
}

// NewPostgresContainer starts a PostgreSQL server.
func NewPostgresContainer(ctx context.Context) (*DatabaseContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        DefaultPostgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       testDatabaseName,
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
			"TZ":                "UTC",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithStartupTimeout(90 * time.Second),
	}
	return startDatabase(ctx, config.DialectPostgres, req)
}

// NewMySQLContainer starts a MySQL server.
func NewMySQLContainer(ctx context.Context) (*DatabaseContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        DefaultMySQLImage,
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_DATABASE":      testDatabaseName,
			"MYSQL_USER":          testUser,
			"MYSQL_PASSWORD":      testPassword,
			"MYSQL_ROOT_PASSWORD": testPassword,
			"TZ":                  "UTC",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("3306/tcp"),
			wait.ForLog("port: 3306  MySQL Community Server"),
		).WithStartupTimeout(2 * time.Minute),
	}
	return startDatabase(ctx, config.DialectMySQL, req)
}

func startDatabase(ctx context.Context, dialect string, req testcontainers.ContainerRequest) (*DatabaseContainer, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s container: %w", dialect, err)
	}

	// Endpoint with an empty protocol yields host:port of the first exposed port
	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container endpoint: %w", err)
	}

	return &DatabaseContainer{
		Container:  container,
		Dialect:    dialect,
		ServerName: endpoint,
	}, nil
}
