package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.Equal(t, DefaultFlag, cfg.FlagValue)
	assert.NotEmpty(t, cfg.FlagDir)
	assert.Equal(t, 10000, cfg.ReadLimit)
	assert.Equal(t, 100*time.Millisecond, cfg.RateLimitInterval)
	assert.Zero(t, cfg.RateLimitBurst, "rate limiting is opt-in")
	assert.False(t, cfg.TrustProxyHeaders)
	assert.True(t, cfg.AuditLog)
	assert.Empty(t, cfg.GRPCAddr)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, filepath.Join(cfg.FlagDir, "flag.txt"), cfg.FlagPath())
}

func TestLoadFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HTTP_ADDR", "127.0.0.1:5050")
	t.Setenv("FLAG_VALUE", "picoCTF{env}")
	t.Setenv("FLAG_DIR", dir)
	t.Setenv("VIEW_READ_LIMIT", "42")
	t.Setenv("RATE_LIMIT_INTERVAL", "1s")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("TRUST_PROXY_HEADERS", "true")
	t.Setenv("AUDIT_LOG", "false")
	t.Setenv("GRPC_ADDR", ":50051")

	cfg, err := Load(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:5050", cfg.HTTPAddr)
	assert.Equal(t, "picoCTF{env}", cfg.FlagValue)
	assert.Equal(t, filepath.Join(dir, "flag.txt"), cfg.FlagPath())
	assert.Equal(t, 42, cfg.ReadLimit)
	assert.Equal(t, time.Second, cfg.RateLimitInterval)
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.True(t, cfg.TrustProxyHeaders)
	assert.False(t, cfg.AuditLog)
	assert.Equal(t, ":50051", cfg.GRPCAddr)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("METRICS_ADDR=:9105\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("METRICS_ADDR") })

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, ":9105", cfg.MetricsAddr)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("VIEW_READ_LIMIT", "lots")
	t.Setenv("SHUTDOWN_GRACE", "soon")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VIEW_READ_LIMIT invalid")
	assert.Contains(t, err.Error(), "SHUTDOWN_GRACE invalid")
}

func TestLoadValidates(t *testing.T) {
	t.Setenv("VIEW_READ_LIMIT", "-1")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ReadLimit")
}

func TestLoadRequiresTLSPair(t *testing.T) {
	t.Setenv("TLS_CERT_FILE", "/etc/ssl/cert.pem")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TLSKeyFile")
}
