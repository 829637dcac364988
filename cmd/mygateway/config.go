package main

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"mymesh/domain"
	"mymesh/service"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envHTTPPort        = "SERVICE_PORT_HTTP"
	envGRPCPort        = "SERVICE_PORT_GRPC"
	envConfigPath      = "CONFIG_PATH"
	envJWTSecret       = "JWT_SECRET"
	envLogLevel        = "LOG_LEVEL"
	envTracingExporter = "TRACING_EXPORTER"
)

const (
	defaultInstanceTTL           = 90 * time.Second
	defaultSecurityRequestTimeout = 10 * time.Second
	defaultTokenIssuer           = "mymesh"
)

// Config holds the gateway configuration loaded by LoadConfig from environment variables and the YAML file.
type Config struct {
	HTTPPort  int
	GRPCPort  int
	JWTSecret []byte

	// Instance is what the gateway registers as domain.GatewayApp.
	Instance          domain.Instance
	HeartbeatInterval time.Duration
	RegistryURL       string

	Security               service.SecurityServiceConfig
	SecurityRequestTimeout time.Duration
	SecurityResolve        domain.RetryPolicy

	CacheTTL    time.Duration
	TokenIssuer string
	TokenTTL    time.Duration

	LogLevel string
	Tracing  string
}

// yamlConfig is the root struct for YAML unmarshalling.
type yamlConfig struct {
	Instance        yamlInstance        `yaml:"instance"`
	Registry        yamlRegistry        `yaml:"registry"`
	SecurityService yamlSecurityService `yaml:"security_service"`
	Cache           yamlCache           `yaml:"cache"`
	Token           yamlToken           `yaml:"token"`
}

type yamlInstance struct {
	ID                  string            `yaml:"id"`
	Host                string            `yaml:"host"`
	BaseURL             string            `yaml:"base_url"`
	Metadata            map[string]string `yaml:"metadata"`
	TTLMs               int               `yaml:"ttl_ms"`
	HeartbeatIntervalMs int               `yaml:"heartbeat_interval_ms"`
}

type yamlRegistry struct {
	URL string `yaml:"url"`
}

type yamlSecurityService struct {
	ServiceID        string            `yaml:"service_id"`
	ExchangePath     string            `yaml:"exchange_path"`
	RealmField       string            `yaml:"realm_field"`
	PrimaryToken     string            `yaml:"primary_token"`
	SecondaryToken   string            `yaml:"secondary_token"`
	Headers          map[string]string `yaml:"headers"`
	BreakerThreshold uint32            `yaml:"breaker_threshold"`
	BreakerTimeoutMs int               `yaml:"breaker_timeout_ms"`
	RequestTimeoutMs int               `yaml:"request_timeout_ms"`
	Resolve          yamlResolve       `yaml:"resolve"`
}

type yamlResolve struct {
	InitialDelayMs *int `yaml:"initial_delay_ms"`
	PeriodMs       int  `yaml:"period_ms"`
}

type yamlCache struct {
	TTLMs int `yaml:"ttl_ms"`
}

type yamlToken struct {
	Issuer string `yaml:"issuer"`
	TTLMs  int    `yaml:"ttl_ms"`
}

// loadYAMLConfig reads the YAML file at path and unmarshals it into yamlConfig.
func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig builds gateway config from environment variables and YAML at CONFIG_PATH.
// SERVICE_PORT_HTTP, SERVICE_PORT_GRPC, CONFIG_PATH and JWT_SECRET are required; registry.url is required in YAML.
// The security service id may be empty: the gateway then starts and answers every login with configuration_error.
func LoadConfig() (*Config, error) {
	httpPort, err := portFromEnv(envHTTPPort)
	if err != nil {
		return nil, err
	}
	grpcPort, err := portFromEnv(envGRPCPort)
	if err != nil {
		return nil, err
	}
	secret := os.Getenv(envJWTSecret)
	if secret == "" {
		return nil, fmt.Errorf("%s is required", envJWTSecret)
	}
	configPath := strings.TrimSpace(os.Getenv(envConfigPath))
	if configPath == "" {
		return nil, fmt.Errorf("%s is required", envConfigPath)
	}
	if !filepath.IsAbs(configPath) {
		abs, absErr := filepath.Abs(configPath)
		if absErr != nil {
			return nil, absErr
		}
		configPath = abs
	}
	raw, err := loadYAMLConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}

	if strings.TrimSpace(raw.Registry.URL) == "" {
		return nil, fmt.Errorf("registry.url is required")
	}

	cfg := &Config{
		HTTPPort:          httpPort,
		GRPCPort:          grpcPort,
		JWTSecret:         []byte(secret),
		RegistryURL:       strings.TrimSpace(raw.Registry.URL),
		HeartbeatInterval: msOr(raw.Instance.HeartbeatIntervalMs, service.DefaultHeartbeatInterval),
		CacheTTL:          msOr(raw.Cache.TTLMs, service.DefaultServiceCacheTTL),
		TokenIssuer:       raw.Token.Issuer,
		TokenTTL:          msOr(raw.Token.TTLMs, service.DefaultTokenTTL),
		LogLevel:          os.Getenv(envLogLevel),
		Tracing:           os.Getenv(envTracingExporter),
	}
	if cfg.TokenIssuer == "" {
		cfg.TokenIssuer = defaultTokenIssuer
	}

	cfg.Instance, err = gatewayInstance(raw.Instance, httpPort)
	if err != nil {
		return nil, err
	}
	cfg.Security, cfg.SecurityRequestTimeout, cfg.SecurityResolve = securityService(raw.SecurityService)
	return cfg, nil
}

// gatewayInstance builds the registration of this gateway. Host defaults to the machine hostname,
// id to host:port and base_url to http://host:port.
func gatewayInstance(raw yamlInstance, httpPort int) (domain.Instance, error) {
	host := strings.TrimSpace(raw.Host)
	if host == "" {
		h, err := os.Hostname()
		if err != nil {
			return domain.Instance{}, fmt.Errorf("instance.host is not set and hostname is unavailable: %w", err)
		}
		host = h
	}
	id := strings.TrimSpace(raw.ID)
	if id == "" {
		id = net.JoinHostPort(host, strconv.Itoa(httpPort))
	}

	metadata := make(map[string]string, len(raw.Metadata)+1)
	for k, v := range raw.Metadata {
		metadata[k] = v
	}
	if raw.BaseURL != "" {
		metadata[domain.MetadataBaseURL] = strings.TrimRight(raw.BaseURL, "/")
	}

	return domain.Instance{
		InstanceID: id,
		App:        domain.GatewayApp,
		Host:       host,
		Port:       httpPort,
		Status:     domain.StatusUp,
		Metadata:   metadata,
		TTLMs:      int(msOr(raw.TTLMs, defaultInstanceTTL) / time.Millisecond),
	}, nil
}

func securityService(raw yamlSecurityService) (service.SecurityServiceConfig, time.Duration, domain.RetryPolicy) {
	cfg := service.DefaultSecurityServiceConfig(strings.TrimSpace(raw.ServiceID))
	if raw.ExchangePath != "" {
		cfg.ExchangePath = raw.ExchangePath
	}
	if raw.RealmField != "" {
		cfg.RealmField = raw.RealmField
	}
	if raw.PrimaryToken != "" {
		cfg.PrimaryToken = raw.PrimaryToken
	}
	if raw.SecondaryToken != "" {
		cfg.SecondaryToken = raw.SecondaryToken
	}
	if raw.Headers != nil {
		cfg.Headers = raw.Headers
	}
	if raw.BreakerThreshold > 0 {
		cfg.BreakerThreshold = raw.BreakerThreshold
	}
	cfg.BreakerTimeout = msOr(raw.BreakerTimeoutMs, cfg.BreakerTimeout)

	policy := domain.DefaultRetryPolicy()
	if raw.Resolve.InitialDelayMs != nil {
		policy.InitialDelay = time.Duration(*raw.Resolve.InitialDelayMs) * time.Millisecond
	}
	policy.Period = msOr(raw.Resolve.PeriodMs, policy.Period)

	return cfg, msOr(raw.RequestTimeoutMs, defaultSecurityRequestTimeout), policy.Normalized()
}

func portFromEnv(name string) (int, error) {
	s := os.Getenv(name)
	port, err := strconv.Atoi(s)
	if err != nil || s == "" {
		return 0, fmt.Errorf("%s must be a valid port (1-65535)", name)
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%s must be 1-65535, got %d", name, port)
	}
	return port, nil
}

// msOr converts a positive millisecond count to a duration, def otherwise.
func msOr(ms int, def time.Duration) time.Duration {
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}
