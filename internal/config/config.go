// Package config loads process settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"flagviewer/internal/inputvalidation"

	"github.com/joho/godotenv"
)

// DefaultFlag is the secret served through the intended bypass.
const DefaultFlag = "picoCTF{so_easy_this_is_4c004rcjj}"

// Config holds everything main needs to start the challenge.
type Config struct {
	HTTPAddr    string `validate:"required"`
	TLSCertFile string `validate:"required_with=TLSKeyFile"`
	TLSKeyFile  string `validate:"required_with=TLSCertFile"`

	FlagValue string `validate:"required"`
	FlagDir   string `validate:"required"`
	ReadLimit int    `validate:"gt=0"`

	RateLimitInterval time.Duration `validate:"gt=0"`
	RateLimitBurst    int           `validate:"gte=0"`
	TrustProxyHeaders bool
	CorazaDirectives  string

	GRPCAddr    string
	MetricsAddr string
	AuditLog    bool

	ShutdownGrace time.Duration `validate:"gt=0"`
}

// FlagPath is where bootstrap writes the flag.
func (c Config) FlagPath() string {
	return filepath.Join(c.FlagDir, "flag.txt")
}

// Default returns the challenge's stock settings: port 5000 on all interfaces,
// flag beside the executable. Rate limiting stays off until RATE_LIMIT_BURST is set.
func Default() Config {
	return Config{
		HTTPAddr:          ":5000",
		FlagValue:         DefaultFlag,
		FlagDir:           executableDir(),
		ReadLimit:         10000,
		RateLimitInterval: 100 * time.Millisecond,
		AuditLog:          true,
		ShutdownGrace:     10 * time.Second,
	}
}

// Load reads envFiles (default ".env") when present, then overlays environment
// variables on Default and validates the result.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	cfg := Default()
	env := loader{}
	cfg.HTTPAddr = env.String("HTTP_ADDR", cfg.HTTPAddr)
	cfg.TLSCertFile = env.String("TLS_CERT_FILE", cfg.TLSCertFile)
	cfg.TLSKeyFile = env.String("TLS_KEY_FILE", cfg.TLSKeyFile)
	cfg.FlagValue = env.String("FLAG_VALUE", cfg.FlagValue)
	cfg.FlagDir = env.String("FLAG_DIR", cfg.FlagDir)
	cfg.ReadLimit = env.Int("VIEW_READ_LIMIT", cfg.ReadLimit)
	cfg.RateLimitInterval = env.Duration("RATE_LIMIT_INTERVAL", cfg.RateLimitInterval)
	cfg.RateLimitBurst = env.Int("RATE_LIMIT_BURST", cfg.RateLimitBurst)
	cfg.TrustProxyHeaders = env.Bool("TRUST_PROXY_HEADERS", cfg.TrustProxyHeaders)
	cfg.CorazaDirectives = env.String("CORAZA_DIRECTIVES", cfg.CorazaDirectives)
	cfg.GRPCAddr = env.String("GRPC_ADDR", cfg.GRPCAddr)
	cfg.MetricsAddr = env.String("METRICS_ADDR", cfg.MetricsAddr)
	cfg.AuditLog = env.Bool("AUDIT_LOG", cfg.AuditLog)
	cfg.ShutdownGrace = env.Duration("SHUTDOWN_GRACE", cfg.ShutdownGrace)
	if err := env.Err(); err != nil {
		return Config{}, err
	}
	if err := inputvalidation.NewValidator().ValidateStruct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// loader reads typed values and collects parse failures.
type loader struct {
	errs []error
}

func (l *loader) String(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func (l *loader) Int(key string, def int) int {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("%s invalid: %w", key, err))
		return def
	}
	return n
}

func (l *loader) Duration(key string, def time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("%s invalid: %w", key, err))
		return def
	}
	return d
}

func (l *loader) Bool(key string, def bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("%s invalid: %w", key, err))
		return def
	}
	return b
}

func (l *loader) Err() error {
	return errors.Join(l.errs...)
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
