package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/groupshare/groupshare/pkg/groupshare/api"
	"github.com/groupshare/groupshare/pkg/groupshare/config"
)

type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	DatabaseType string `env:"DATABASE_TYPE" env-default:"memory"`
	DB           DbConfig

	StorageType string `env:"STORAGE_TYPE" env-default:"memory"`
	FSBaseDir   string `env:"FS_BASE_DIR" env-default:""`
	S3          S3Config
}

type DbConfig struct {
	Port     uint16 `env:"GROUPSHARE_PG_PORT" env-default:"5432"`
	Host     string `env:"GROUPSHARE_PG_HOST" env-default:"localhost"`
	Name     string `env:"GROUPSHARE_PG_NAME" env-default:"groupshare"`
	User     string `env:"GROUPSHARE_PG_USER" env-default:"groupshare"`
	Password string `env:"GROUPSHARE_PG_PASSWORD" env-default:"pwd"`
}

type S3Config struct {
	Endpoint        string `env:"AWS_S3_ENDPOINT" env-default:"http://localhost:9000"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:"minioadmin"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:"minioadmin"`
	Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	UsePathStyle    bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"true"`
}

func (c DbConfig) toDatabaseUrl() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Name,
	}
	return u.String()
}

func (c Config) toServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Port:              c.Port,
		Environment:       c.Environment,
		DatabaseType:      c.DatabaseType,
		DatabaseURL:       c.DB.toDatabaseUrl(),
		StorageType:       c.StorageType,
		FSBaseDir:         c.FSBaseDir,
		S3Region:          c.S3.Region,
		S3Endpoint:        c.S3.Endpoint,
		S3AccessKeyID:     c.S3.AccessKeyID,
		S3SecretAccessKey: c.S3.SecretAccessKey,
		S3UsePathStyle:    c.S3.UsePathStyle,
	}
}

func main() {
	var envCfg Config
	if err := cleanenv.ReadEnv(&envCfg); err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	cfg := envCfg.toServerConfig()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "err", err)
		os.Exit(1)
	}

	service, err := cfg.BuildService()
	if err != nil {
		slog.Error("Failed to build service", "err", err)
		os.Exit(1)
	}

	router := api.NewRouter(service)

	addr := ":" + cfg.Port
	slog.Info("HTTP server listening", "addr", addr,
		"database", cfg.DatabaseType, "storage", cfg.StorageType)
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("Server error", "err", err)
		os.Exit(1)
	}
}
