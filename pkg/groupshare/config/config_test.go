package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupshare/groupshare/pkg/groupshare/config"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.ServerConfig)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *config.ServerConfig) {},
			wantErr: false,
		},
		{
			name:    "missing port",
			mutate:  func(c *config.ServerConfig) { c.Port = "" },
			wantErr: true,
		},
		{
			name:    "unknown database type",
			mutate:  func(c *config.ServerConfig) { c.DatabaseType = "sqlite" },
			wantErr: true,
		},
		{
			name:    "postgres requires url",
			mutate:  func(c *config.ServerConfig) { c.DatabaseType = "postgres" },
			wantErr: true,
		},
		{
			name:    "unknown storage type",
			mutate:  func(c *config.ServerConfig) { c.StorageType = "tape" },
			wantErr: true,
		},
		{
			name:    "fs requires base dir",
			mutate:  func(c *config.ServerConfig) { c.StorageType = "fs" },
			wantErr: true,
		},
		{
			name: "fs with base dir",
			mutate: func(c *config.ServerConfig) {
				c.StorageType = "fs"
				c.FSBaseDir = "/tmp/groupshare"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildServiceMemory(t *testing.T) {
	cfg := config.Default()

	svc, err := cfg.BuildService()
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestBuildServiceFS(t *testing.T) {
	cfg := config.Default()
	cfg.StorageType = "fs"
	cfg.FSBaseDir = t.TempDir()

	svc, err := cfg.BuildService()
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
