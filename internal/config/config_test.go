package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults_LocalDerivesSqlite(t *testing.T) {
	cfg := &Config{BuildTarget: "local", DBDriver: "auto"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "sqlite", cfg.DBDriver)
}

func TestResolveDefaults_CloudRequiresDSN(t *testing.T) {
	cfg := &Config{BuildTarget: "cloud", DBDriver: "auto"}
	require.Error(t, cfg.ResolveDefaults())

	cfg = &Config{BuildTarget: "cloud", DBDriver: "auto", PostgresDSN: "postgres://x"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "postgres", cfg.DBDriver)
}

func TestResolveDefaults_RejectsUnknownTarget(t *testing.T) {
	cfg := &Config{BuildTarget: "mainframe"}
	assert.Error(t, cfg.ResolveDefaults())
}

func TestResolveDefaults_RejectsUnknownDriver(t *testing.T) {
	cfg := &Config{BuildTarget: "local", DBDriver: "oracle"}
	assert.Error(t, cfg.ResolveDefaults())
}

func TestResolveDefaults_ExplicitDriverOverride(t *testing.T) {
	cfg := &Config{BuildTarget: "local", DBDriver: "memory"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "memory", cfg.DBDriver)
}

func TestNewForTesting(t *testing.T) {
	cfg := NewForTesting()
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "memory", cfg.DBDriver)
	assert.True(t, cfg.IsTesting())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, ":8080", cfg.GetHTTPAddr())
}
