package configs

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Server struct {
		DebugRoutes  bool     `yaml:"debug_routes"`
		AllowOrigins string   `yaml:"allow_origins"`
		TrustedProxy []string `yaml:"trusted_proxies"`
	} `yaml:"server"`

	DB struct {
		Driver       string        `yaml:"driver"`
		URI          string        `yaml:"uri"`
		Name         string        `yaml:"dbname"`
		Transactions bool          `yaml:"transactions"`
		Timeout      time.Duration `yaml:"timeout"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"redis_addr"`
		Password string `yaml:"redis_password"`
		DB       int    `yaml:"redis_db"`
	} `yaml:"redis"`

	JWT struct {
		TokenTTL time.Duration `yaml:"token_ttl"`
	} `yaml:"jwt"`

	RateLimit struct {
		Requests int           `yaml:"requests"`
		Window   time.Duration `yaml:"window"`
	} `yaml:"rate_limit"`
}

func Load(env string) (*Config, error) {
	configFile := "dev.yml"
	if env == "production" {
		configFile = "prod.yml"
	}

	configPath := filepath.Join("internal", "configs", configFile)
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		configPath = filepath.Join(dir, configFile)
	}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	log.Printf("Loading config from: %s", configPath)

	return Parse(file)
}

// Parse decodes a YAML config, expands ${VAR} references and fills defaults.
func Parse(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	expandConfig(&cfg)
	applyDefaults(&cfg)

	if cfg.DB.Driver != DriverMongo && cfg.DB.Driver != DriverMemory {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}

	return &cfg, nil
}

func expandConfig(cfg *Config) {
	cfg.Server.AllowOrigins = os.ExpandEnv(cfg.Server.AllowOrigins)
	cfg.DB.URI = os.ExpandEnv(cfg.DB.URI)
	cfg.DB.Name = os.ExpandEnv(cfg.DB.Name)
	cfg.Redis.Addr = os.ExpandEnv(cfg.Redis.Addr)
	cfg.Redis.Password = os.ExpandEnv(cfg.Redis.Password)
}

func applyDefaults(cfg *Config) {
	if cfg.DB.Driver == "" {
		cfg.DB.Driver = DriverMongo
	}
	if cfg.DB.Name == "" {
		cfg.DB.Name = "flo_db"
	}
	if cfg.DB.Timeout == 0 {
		cfg.DB.Timeout = 5 * time.Second
	}
	if cfg.RateLimit.Requests == 0 {
		cfg.RateLimit.Requests = 10
	}
	if cfg.RateLimit.Window == 0 {
		cfg.RateLimit.Window = time.Minute
	}
	if cfg.Server.AllowOrigins == "" {
		cfg.Server.AllowOrigins = "*"
	}
}
