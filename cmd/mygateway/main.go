// Package main is the entry point for MyGateway, the edge router. It loads configuration (env + YAML), builds the
// registry client (registryhttp.Client) shared by the service cache, the instance resolver and self-registration,
// the authentication chain (AuthManager over SecurityServiceBridge and TokenBridge) and the HTTP API (Echo).
// A gRPC health server reports NOT_SERVING until the security service has been resolved once.
// On SIGINT/SIGTERM it unregisters itself, shuts HTTP down, then performs GracefulStop with a 5s timeout, then Stop if needed.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mymesh/adapters/registryhttp"
	"mymesh/domain"
	"mymesh/handlers"
	"mymesh/helpers"
	"mymesh/service"

	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	logger, err := helpers.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to create logger:", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", cfg.HTTPPort,
		"service_port_grpc", cfg.GRPCPort,
		"instance_id", cfg.Instance.InstanceID,
		"registry_url", cfg.RegistryURL,
		"security_service_id", cfg.Security.ServiceID,
	)

	tracerProvider, err := helpers.NewTracerProvider(cfg.Tracing, os.Stdout, "mygateway")
	if err != nil {
		level.Error(logger).Log("msg", "Failed to create tracer provider", "err", err)
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	registerer := prometheus.NewRegistry()
	registerer.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := service.NewMetrics(registerer)

	registryClient := registryhttp.NewClient(cfg.RegistryURL, &http.Client{})
	clock := service.NewTimeProvider(func() time.Time { return time.Now().UTC() })

	resolver := service.NewInstanceResolver(
		service.NewRegistryHolder(registryClient),
		logger,
		service.WithResolverMetrics(metrics),
		service.WithResolverTracer(tracerProvider.Tracer("mymesh/resolver")),
	)

	issuer := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenIssuer, cfg.TokenTTL, clock)
	auth := service.NewAuthManager(
		logger,
		metrics,
		service.NewSecurityServiceBridge(cfg.Security, resolver, &http.Client{Timeout: cfg.SecurityRequestTimeout}, logger),
		service.NewTokenBridge(issuer),
	)
	catalog := service.NewServiceCache(registryClient, cfg.CacheTTL, logger)

	// Health turns SERVING once the security service has a viable instance.
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	if cfg.Security.ServiceID == "" {
		level.Warn(logger).Log("msg", "security service id is not configured, logins will fail")
	} else {
		resolver.Resolve(ctx, cfg.Security.ServiceID,
			func(instance domain.Instance) {
				level.Info(logger).Log("msg", "security service resolved", "service_id", cfg.Security.ServiceID, "instance_id", instance.InstanceID)
				healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
			},
			func(err error, fatal bool) {
				if fatal {
					level.Error(logger).Log("msg", "security service cannot be resolved", "service_id", cfg.Security.ServiceID, "err", err)
					return
				}
				level.Debug(logger).Log("msg", "security service not resolved yet", "service_id", cfg.Security.ServiceID, "err", err)
			},
			cfg.SecurityResolve,
		)
	}

	var e *echo.Echo
	{
		e = echo.New()
		e.HideBanner = true
		service.RegisterErrorHandler(e, logger)
		e.Use(handlers.RequestID())
		handlers.RegisterGatewayHandlers(e, handlers.NewGatewayServer(catalog, auth, issuer, logger))
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registerer, promhttp.HandlerOpts{})))
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(service.MyErrorToGRPCUnaryInterceptor(logger)))
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		level.Error(logger).Log("msg", "failed to listen", "port", cfg.GRPCPort, "err", err)
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
		}
	}()
	go func() {
		level.Info(logger).Log("msg", "Starting gRPC health server", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			level.Error(logger).Log("msg", "gRPC server error", "err", err)
		}
	}()

	registration := service.NewSelfRegistration(registryClient, cfg.Instance, cfg.HeartbeatInterval, logger)
	registration.Start(ctx)

	<-quit
	level.Info(logger).Log("msg", "Shutting down server...")
	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := registration.Stop(shutdownCtx); err != nil {
		level.Warn(logger).Log("msg", "failed to unregister", "instance_id", cfg.Instance.InstanceID, "err", err)
	}
	stop()
	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		grpcServer.Stop()
	}

	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during tracer shutdown", "err", err)
	}
	level.Info(logger).Log("msg", "Server stopped")
}
