// Command file-viewer runs the path traversal challenge: a file viewer whose
// flag.txt filter can be bypassed.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"flagviewer/internal/audit"
	"flagviewer/internal/bootstrap"
	"flagviewer/internal/config"
	"flagviewer/internal/grpcapi"
	"flagviewer/internal/httpapi"
	"flagviewer/internal/metrics"
	"flagviewer/internal/middleware"
	"flagviewer/internal/server"
	"flagviewer/internal/telemetry"
	"flagviewer/internal/viewer"
)

func main() {
	logger := telemetry.NewLogger()
	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config failed", "err", err)
		os.Exit(1)
	}

	fingerprint, err := bootstrap.WriteFlag(cfg.FlagPath(), cfg.FlagValue)
	if err != nil {
		logger.Error("write flag failed", "path", cfg.FlagPath(), "err", err)
		os.Exit(1)
	}
	cfg.FlagValue = ""
	logger.Info("flag written", "path", cfg.FlagPath(), "fingerprint", fingerprint)

	v := viewer.New(viewer.Config{
		FlagPath:  cfg.FlagPath(),
		BaseDir:   cfg.FlagDir,
		ReadLimit: cfg.ReadLimit,
	})
	m := metrics.New()

	opts := httpapi.Options{
		Viewer:  v,
		Logger:  logger,
		Metrics: m,
		WAF:     mustWAF(logger, cfg.CorazaDirectives),
	}
	if cfg.AuditLog {
		opts.Audit = audit.NewLogger(os.Stdout)
	}
	if cfg.RateLimitBurst > 0 {
		opts.RateLimiter = middleware.NewIPRateLimit(cfg.RateLimitInterval, cfg.RateLimitBurst)
		if cfg.TrustProxyHeaders {
			opts.RateLimiter.TrustForwardedFor()
		}
	}

	srvCfg := server.DefaultConfig()
	srvCfg.Addr = cfg.HTTPAddr
	srvCfg.TLSCertFile = cfg.TLSCertFile
	srvCfg.TLSKeyFile = cfg.TLSKeyFile
	srvCfg.ShutdownGrace = cfg.ShutdownGrace
	srv := server.New(httpapi.NewHandler(opts), srvCfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lis, err := net.Listen("tcp", srvCfg.Addr)
	if err != nil {
		logger.Error("http listener failed", "addr", srvCfg.Addr, "err", err)
		os.Exit(1)
	}

	startGRPC(ctx, logger, cfg.GRPCAddr, grpcapi.NewViewService(v, m))
	startMetrics(ctx, logger, cfg.MetricsAddr, m)

	logger.Info("http server starting", "addr", lis.Addr().String(), "tls", srvCfg.TLSEnabled())
	if err := server.Serve(ctx, srv, lis, srvCfg); err != nil {
		logger.Error("http server error", "err", err)
		os.Exit(1)
	}
	logger.Info("shut down")
}

func mustWAF(logger telemetry.Logger, directives string) *middleware.WAF {
	if directives == "" {
		return nil
	}
	w, err := middleware.NewWAF(directives)
	if err != nil {
		logger.Error("init WAF failed", "err", err)
		os.Exit(1)
	}
	logger.Info("coraza WAF enabled")
	return w
}

func startGRPC(ctx context.Context, logger telemetry.Logger, addr string, svc grpcapi.FileViewerServer) {
	if addr == "" {
		return
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("grpc listener failed", "addr", addr, "err", err)
		return
	}
	s := grpcapi.NewServer(logger, grpcapi.DefaultConfig(), svc)
	go func() {
		logger.Info("grpc server starting", "addr", addr)
		if err := s.Serve(lis); err != nil {
			logger.Error("grpc server error", "err", err)
		}
	}()
	go func() {
		<-ctx.Done()
		s.GracefulStop()
	}()
}

func startMetrics(ctx context.Context, logger telemetry.Logger, addr string, m *metrics.Metrics) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", m.Handler())
	cfg := server.DefaultConfig()
	cfg.Addr = addr
	srv := server.New(mux, cfg)
	go func() {
		logger.Info("metrics server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "err", err)
		}
	}()
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
}
