package app

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/envutil"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/logger"
)

type Config struct {
	ServiceName string
	Environment string
	Version     string

	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	DispatcherWorkers       int
	DispatcherSweepInterval time.Duration

	MailEnabled      bool
	FileStoreEnabled bool
}

// fileConfig is the optional YAML overlay. Environment variables provide the
// base values; anything set in the file wins.
type fileConfig struct {
	ServiceName             string `yaml:"service_name"`
	Environment             string `yaml:"environment"`
	Version                 string `yaml:"version"`
	JWTSecretKey            string `yaml:"jwt_secret_key"`
	AccessTokenTTLSeconds   int    `yaml:"access_token_ttl_seconds"`
	RefreshTokenTTLSeconds  int    `yaml:"refresh_token_ttl_seconds"`
	DispatcherWorkers       int    `yaml:"dispatcher_workers"`
	DispatcherSweepSeconds  int    `yaml:"dispatcher_sweep_seconds"`
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		ServiceName:             envutil.Str("SERVICE_NAME", "conference-portal"),
		Environment:             envutil.Str("APP_ENV", "development"),
		Version:                 envutil.Str("APP_VERSION", "dev"),
		JWTSecretKey:            envutil.Str("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL:          time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 3600)) * time.Second,
		RefreshTokenTTL:         time.Duration(envutil.Int("REFRESH_TOKEN_TTL", 86400)) * time.Second,
		DispatcherWorkers:       envutil.Int("DISPATCHER_WORKERS", 4),
		DispatcherSweepInterval: time.Duration(envutil.Int("DISPATCHER_SWEEP_SECONDS", 60)) * time.Second,
		MailEnabled:             os.Getenv("SENDGRID_API_KEY") != "",
		FileStoreEnabled:        os.Getenv("GCS_BUCKET") != "",
	}

	path := envutil.Str("CONFIG_FILE", "config.yaml")
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) && log != nil {
			log.Warn("config file unreadable, using env only", "path", path, "error", err)
		}
		return cfg
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		if log != nil {
			log.Warn("config file malformed, using env only", "path", path, "error", err)
		}
		return cfg
	}

	if fc.ServiceName != "" {
		cfg.ServiceName = fc.ServiceName
	}
	if fc.Environment != "" {
		cfg.Environment = fc.Environment
	}
	if fc.Version != "" {
		cfg.Version = fc.Version
	}
	if fc.JWTSecretKey != "" {
		cfg.JWTSecretKey = fc.JWTSecretKey
	}
	if fc.AccessTokenTTLSeconds > 0 {
		cfg.AccessTokenTTL = time.Duration(fc.AccessTokenTTLSeconds) * time.Second
	}
	if fc.RefreshTokenTTLSeconds > 0 {
		cfg.RefreshTokenTTL = time.Duration(fc.RefreshTokenTTLSeconds) * time.Second
	}
	if fc.DispatcherWorkers > 0 {
		cfg.DispatcherWorkers = fc.DispatcherWorkers
	}
	if fc.DispatcherSweepSeconds > 0 {
		cfg.DispatcherSweepInterval = time.Duration(fc.DispatcherSweepSeconds) * time.Second
	}
	if log != nil {
		log.Info("config file applied", "path", path)
	}
	return cfg
}
