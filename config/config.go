package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	App       AppConfig       `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	AMQP      AMQPConfig      `yaml:"amqp"`
	Stream    StreamConfig    `yaml:"stream"`
	Auth      AuthConfig      `yaml:"auth"`
	Prices    PricesConfig    `yaml:"prices"`
	TokenSale TokenSaleConfig `yaml:"token_sale"`
	Log       LogConfig       `yaml:"log"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	// DemoMode forces every facade call onto the mock backend.
	DemoMode bool `yaml:"demo_mode"`
	// Fallback lets read handlers degrade to mock data on transient backend errors.
	Fallback bool `yaml:"fallback"`
	// SandboxTTL is how long an idle mock sandbox survives. Defaults to auth.session_ttl.
	SandboxTTL           time.Duration `yaml:"sandbox_ttl"`
	SandboxSweepInterval time.Duration `yaml:"sandbox_sweep_interval"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
}

type DatabaseConfig struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	User    string `yaml:"user"`
	Pass    string `yaml:"pass"`
	Name    string `yaml:"name"`
	SSLMode string `yaml:"sslmode"`
}

func (c DatabaseConfig) Enabled() bool {
	return len(c.Host) > 0
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (c RedisConfig) Enabled() bool {
	return len(c.Host) > 0
}

type InfluxDBConfig struct {
	URL      string `yaml:"url"`
	Database string `yaml:"database"`
}

type AMQPConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

type StreamConfig struct {
	URL     string   `yaml:"url"`
	Symbols []string `yaml:"symbols"`
}

type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type PricesConfig struct {
	Interval time.Duration `yaml:"interval"`
	Jitter   float64       `yaml:"jitter"`
	// SnapshotInterval is how often the daemon refreshes the cached asset snapshot.
	SnapshotInterval time.Duration `yaml:"snapshot_interval"`
}

type TokenSaleConfig struct {
	Delay time.Duration `yaml:"delay"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads .env, then the YAML file at path (optional), then environment overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	if len(path) > 0 {
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.loadEnvOverrides()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadEnvOverrides() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); len(v) > 0 {
			*dst = v
		}
	}
	setBool := func(dst *bool, key string) {
		if v := os.Getenv(key); len(v) > 0 {
			*dst = v == "true" || v == "1"
		}
	}

	setString(&c.App.Environment, "APP_ENVIRONMENT")
	setBool(&c.App.DemoMode, "DEMO_MODE")
	setBool(&c.App.Fallback, "FALLBACK_TO_MOCK")
	setString(&c.Server.Listen, "LISTEN_ADDR")

	setString(&c.Database.Host, "DATABASE_HOST")
	setString(&c.Database.Port, "DATABASE_PORT")
	setString(&c.Database.User, "DATABASE_USER")
	setString(&c.Database.Pass, "DATABASE_PASS")
	setString(&c.Database.Name, "DATABASE_NAME")
	setString(&c.Database.SSLMode, "DATABASE_SSLMODE")

	setString(&c.Redis.Host, "REDIS_HOST")
	setString(&c.Redis.Port, "REDIS_PORT")
	setString(&c.Redis.Username, "REDIS_USERNAME")
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	setString(&c.InfluxDB.URL, "INFLUXDB_URL")
	setString(&c.InfluxDB.Database, "INFLUXDB_DATABASE")

	setString(&c.AMQP.URL, "AMQP_URL")
	setString(&c.Stream.URL, "STREAM_URL")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Log.Level, "LOG_LEVEL")

	if v := os.Getenv("PRICE_JITTER"); len(v) > 0 {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Prices.Jitter = f
		}
	}
}

func (c *Config) validate() error {
	if len(c.App.Name) == 0 {
		c.App.Name = "tradedesk"
	}
	if len(c.Server.Listen) == 0 {
		c.Server.Listen = ":3000"
	}
	if len(c.Database.Port) == 0 {
		c.Database.Port = "5432"
	}
	if len(c.Redis.Port) == 0 {
		c.Redis.Port = "6379"
	}
	if len(c.AMQP.Exchange) == 0 {
		c.AMQP.Exchange = "tradedesk.events"
	}
	if c.Auth.SessionTTL <= 0 {
		c.Auth.SessionTTL = 24 * time.Hour
	}
	if c.App.SandboxTTL <= 0 {
		c.App.SandboxTTL = c.Auth.SessionTTL
	}
	if c.App.SandboxSweepInterval < time.Second {
		c.App.SandboxSweepInterval = 10 * time.Minute
	}
	if c.Prices.Interval <= 0 {
		c.Prices.Interval = 5 * time.Second
	}
	if c.Prices.SnapshotInterval < time.Second {
		c.Prices.SnapshotInterval = time.Minute
	}
	if c.Prices.Jitter == 0 {
		c.Prices.Jitter = 0.01
	}
	if c.Prices.Jitter < 0 || c.Prices.Jitter >= 1 {
		return fmt.Errorf("prices.jitter must be in [0, 1), got %v", c.Prices.Jitter)
	}
	if c.TokenSale.Delay < 0 {
		return fmt.Errorf("token_sale.delay must not be negative")
	}
	if len(c.Auth.JWTSecret) == 0 {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if !c.Database.Enabled() && !c.App.DemoMode {
		return fmt.Errorf("database.host is required unless app.demo_mode is set")
	}

	return nil
}
