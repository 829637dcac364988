package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"mymesh/adapters/myredis"
	"mymesh/domain"
)

// Env variable names.
const (
	envRegistryStore       = "REGISTRY_STORE"
	envRedisAddr           = "REDIS_ADDR"
	envEtcdEndpoints       = "ETCD_ENDPOINTS"
	envHTTPPort            = "SERVICE_PORT_HTTP"
	envSweepIntervalMs     = "EXPIRY_SWEEP_INTERVAL_MS"
	envBroadcastTimeoutMs  = "BROADCAST_TIMEOUT_MS"
	envGatewayAppID        = "GATEWAY_APP_ID"
	envRoutersDNSSRV       = "ROUTERS_DNS_SRV"
	envDNSServer           = "DNS_SERVER"
	envLogLevel            = "LOG_LEVEL"
	envTracingExporter     = "TRACING_EXPORTER"
	defaultSweepInterval   = time.Second
	defaultBroadcastTimeout = 5 * time.Second
	defaultDNSServer       = "127.0.0.53:53"
)

// Registry store backends.
const (
	storeRedis = "redis"
	storeEtcd  = "etcd"
)

type MyDiscovererConfig struct {
	Store            string
	Redis            myredis.RedisConfig
	EtcdEndpoints    []string
	HTTPPort         int
	SweepInterval    time.Duration
	BroadcastTimeout time.Duration
	GatewayAppID     string
	// RoutersDNSSRV, when set, lists routers from DNS SRV records instead of the registry.
	RoutersDNSSRV string
	DNSServer     string
	LogLevel      string
	Tracing       string
}

// LoadConfig loads configuration from environment variables.
// SERVICE_PORT_HTTP is required; REDIS_ADDR is required for the redis store (default) and ETCD_ENDPOINTS for etcd.
func LoadConfig() (*MyDiscovererConfig, error) {
	cfg := &MyDiscovererConfig{
		Store:         strings.ToLower(strings.TrimSpace(os.Getenv(envRegistryStore))),
		GatewayAppID:  strings.TrimSpace(os.Getenv(envGatewayAppID)),
		RoutersDNSSRV: strings.TrimSpace(os.Getenv(envRoutersDNSSRV)),
		DNSServer:     strings.TrimSpace(os.Getenv(envDNSServer)),
		LogLevel:      os.Getenv(envLogLevel),
		Tracing:       os.Getenv(envTracingExporter),
	}
	if cfg.Store == "" {
		cfg.Store = storeRedis
	}
	if cfg.GatewayAppID == "" {
		cfg.GatewayAppID = domain.GatewayApp
	}
	if cfg.DNSServer == "" {
		cfg.DNSServer = defaultDNSServer
	}

	switch cfg.Store {
	case storeRedis:
		redisAddr := os.Getenv(envRedisAddr)
		if redisAddr == "" {
			return nil, fmt.Errorf("%s is required", envRedisAddr)
		}
		cfg.Redis = myredis.RedisConfig{Addr: redisAddr}
	case storeEtcd:
		for _, ep := range strings.Split(os.Getenv(envEtcdEndpoints), ",") {
			if ep = strings.TrimSpace(ep); ep != "" {
				cfg.EtcdEndpoints = append(cfg.EtcdEndpoints, ep)
			}
		}
		if len(cfg.EtcdEndpoints) == 0 {
			return nil, fmt.Errorf("%s is required", envEtcdEndpoints)
		}
	default:
		return nil, fmt.Errorf("%s must be %s or %s, got %q", envRegistryStore, storeRedis, storeEtcd, cfg.Store)
	}

	httpPortStr := os.Getenv(envHTTPPort)
	if httpPortStr == "" {
		return nil, fmt.Errorf("%s is required", envHTTPPort)
	}
	httpPort, err := strconv.Atoi(httpPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", envHTTPPort, err)
	}
	cfg.HTTPPort = httpPort

	if cfg.SweepInterval, err = durationMs(envSweepIntervalMs, defaultSweepInterval); err != nil {
		return nil, err
	}
	if cfg.BroadcastTimeout, err = durationMs(envBroadcastTimeoutMs, defaultBroadcastTimeout); err != nil {
		return nil, err
	}
	return cfg, nil
}

// durationMs reads a positive millisecond count from env name, def when unset.
func durationMs(name string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	ms, err := strconv.Atoi(s)
	if err != nil || ms <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
