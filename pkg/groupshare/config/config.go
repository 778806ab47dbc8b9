// Package config builds a groupshare.Service from declarative server
// configuration. Reading the environment stays in the executables.
package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/groupshare/groupshare/pkg/groupshare"
	repomemory "github.com/groupshare/groupshare/pkg/groupshare/repo/memory"
	repopg "github.com/groupshare/groupshare/pkg/groupshare/repo/postgres"
	fsstorage "github.com/groupshare/groupshare/pkg/groupshare/storage/fs"
	memorystorage "github.com/groupshare/groupshare/pkg/groupshare/storage/memory"
	s3storage "github.com/groupshare/groupshare/pkg/groupshare/storage/s3"
)

// ServerConfig represents server configuration for the groupshare service.
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseType string // "memory", "postgres"
	DatabaseURL  string

	// Storage configuration
	StorageType string // "memory", "fs", "s3"
	FSBaseDir   string // base directory for the fs backend

	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3UsePathStyle    bool
}

// Default returns the zero-infrastructure configuration: in-memory
// metadata store and blob store on port 8080.
func Default() ServerConfig {
	return ServerConfig{
		Port:         "8080",
		Environment:  "development",
		DatabaseType: "memory",
		StorageType:  "memory",
	}
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}
	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}
	switch c.StorageType {
	case "memory":
	case "fs":
		if c.FSBaseDir == "" {
			return errors.New("fs_base_dir is required when using fs storage")
		}
	case "s3":
	default:
		return errors.New("storage_type must be 'memory', 'fs' or 's3'")
	}
	return nil
}

// BuildService creates a Service instance from the server configuration.
func (c *ServerConfig) BuildService() (groupshare.Service, error) {
	repo, err := c.buildRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}

	store, err := c.buildBlobStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build blob store: %w", err)
	}

	return groupshare.New(
		groupshare.WithRepository(repo),
		groupshare.WithBlobStore(store),
	)
}

func (c *ServerConfig) buildRepository() (groupshare.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return repomemory.New(), nil
	case "postgres":
		pool, err := pgxpool.New(context.Background(), c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		if err := pool.Ping(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return repopg.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unknown database type: %s", c.DatabaseType)
	}
}

func (c *ServerConfig) buildBlobStore() (groupshare.BlobStore, error) {
	switch c.StorageType {
	case "memory":
		return memorystorage.New(), nil
	case "fs":
		return fsstorage.New(fsstorage.Config{BaseDir: c.FSBaseDir})
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:          c.S3Region,
			Endpoint:        c.S3Endpoint,
			AccessKeyID:     c.S3AccessKeyID,
			SecretAccessKey: c.S3SecretAccessKey,
			UsePathStyle:    c.S3UsePathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown storage type: %s", c.StorageType)
	}
}
