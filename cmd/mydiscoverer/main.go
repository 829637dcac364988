package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mymesh/adapters/dnsrouters"
	"mymesh/adapters/etcdregistry"
	"mymesh/adapters/httpdelete"
	"mymesh/adapters/myredis"
	"mymesh/api"
	"mymesh/domain"
	"mymesh/handlers"
	"mymesh/helpers"
	"mymesh/interfaces"
	"mymesh/service"

	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const instancePrefix = "instance"

func main() {
	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := helpers.NewLogger(os.Stderr, config.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to create logger:", err)
		os.Exit(1)
	}
	level.Info(logger).Log("msg", "Starting MyDiscoverer service")
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"store", config.Store,
		"sweep_interval", config.SweepInterval,
		"broadcast_timeout", config.BroadcastTimeout,
		"gateway_app_id", config.GatewayAppID,
	)

	tracerProvider, err := helpers.NewTracerProvider(config.Tracing, os.Stdout, "mydiscoverer")
	if err != nil {
		level.Error(logger).Log("msg", "Failed to create tracer provider", "err", err)
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	marshal := func(i domain.Instance) ([]byte, error) { return json.Marshal(i) }
	unmarshal := func(b []byte) (domain.Instance, error) {
		var i domain.Instance
		err := json.Unmarshal(b, &i)
		return i, err
	}

	// watchDeletes is set for stores that push removals; the registry sweeps on every push.
	var cache interfaces.Cache[domain.Instance]
	var watchDeletes func(ctx context.Context, onDelete func(key string))
	switch config.Store {
	case storeEtcd:
		etcdClient, err := etcdregistry.NewClient(config.EtcdEndpoints)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create etcd client", "err", err)
			os.Exit(1)
		}
		defer etcdClient.Close()
		etcdCache := etcdregistry.NewCache[domain.Instance](etcdClient, "/mymesh/"+instancePrefix, marshal, unmarshal)
		cache = etcdCache
		watchDeletes = etcdCache.WatchDeletes
		level.Info(logger).Log("msg", "Using etcd", "endpoints", fmt.Sprint(config.EtcdEndpoints))
	default:
		redisClient, err := myredis.NewRedisUniversalClient(config.Redis.Addr)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
			os.Exit(1)
		}
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to connect to Redis", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "Connected to Redis")
		cache = myredis.NewCache[domain.Instance](redisClient, instancePrefix, marshal, unmarshal)
	}

	registerer := prometheus.NewRegistry()
	registerer.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := service.NewMetrics(registerer)

	// Create registry and the invalidation broadcaster listening to it
	var registry *service.Registry
	{
		clock := service.NewTimeProvider(func() time.Time { return time.Now().UTC() })
		registry = service.NewRegistry(cache, clock, logger, metrics)

		var routers interfaces.RouterSource = service.NewRegistryRouterSource(registry, config.GatewayAppID)
		if config.RoutersDNSSRV != "" {
			routers = dnsrouters.NewSource(config.RoutersDNSSRV, config.DNSServer)
			level.Info(logger).Log("msg", "Routers listed from DNS", "srv", config.RoutersDNSSRV, "server", config.DNSServer)
		}
		broadcaster := service.NewBroadcaster(
			routers,
			httpdelete.NewDeleter(&http.Client{}),
			logger,
			service.WithNotificationTimeout(config.BroadcastTimeout),
			service.WithBroadcasterMetrics(metrics),
			service.WithBroadcasterTracer(tracerProvider.Tracer("mymesh/broadcaster")),
		)
		registry.AddListener(broadcaster)
	}

	go registry.RunExpirySweeper(ctx, config.SweepInterval)
	if watchDeletes != nil {
		go watchDeletes(ctx, func(key string) {
			level.Debug(logger).Log("msg", "store removed instance", "instance_id", key)
			if err := registry.Sweep(ctx); err != nil {
				level.Warn(logger).Log("msg", "sweep after store removal failed", "err", err)
			}
		})
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		validator, err := handlers.NewRequestValidator(api.DiscoveryOpenAPI)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to load OpenAPI document", "err", err)
			os.Exit(1)
		}

		e = echo.New()
		e.HideBanner = true
		service.RegisterErrorHandler(e, logger)
		e.Use(handlers.RequestID())
		e.Use(validator)
		handlers.RegisterDiscoveryHandlers(e, handlers.NewDiscoveryServer(registry, logger))
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registerer, promhttp.HandlerOpts{})))
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	level.Info(logger).Log("msg", "Shutting down server...")
	stop()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during tracer shutdown", "err", err)
	}

	level.Info(logger).Log("msg", "Server stopped")
}
