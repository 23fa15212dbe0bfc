package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Booking  BookingConfig  `yaml:"booking"`
	Worker   WorkerConfig   `yaml:"worker"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Address             string   `yaml:"address"`
	SwaggerDir          string   `yaml:"swagger_dir"`
	ReadTimeoutSeconds  int      `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `yaml:"write_timeout_seconds"`
	AllowedOrigins      []string `yaml:"allowed_origins"`
}

type GRPCConfig struct {
	Address               string `yaml:"address"`
	HealthIntervalSeconds int    `yaml:"health_interval_seconds"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int32  `yaml:"max_conns"`
	Migrate  bool   `yaml:"migrate"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingEventsTopic string   `yaml:"booking_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type BookingConfig struct {
	FlightsCacheTTL   int `yaml:"flights_cache_ttl_seconds"`
	ReferenceAttempts int `yaml:"reference_attempts"`
	MaxPageSize       int `yaml:"max_page_size"`
}

type WorkerConfig struct {
	InventoryAuditMinutes int `yaml:"inventory_audit_minutes"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// LoadConfig reads the YAML file at path, then applies .env and environment
// overrides and fills in defaults for anything left unset.
func LoadConfig(path string) (*Config, error) {
	// .env is optional; containers pass real environment variables instead.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.HTTP.Address, "HTTP_ADDRESS")
	setString(&c.GRPC.Address, "GRPC_ADDRESS")
	setString(&c.Database.Host, "DATABASE_HOST")
	setString(&c.Database.User, "DATABASE_USER")
	setString(&c.Database.Password, "DATABASE_PASSWORD")
	setString(&c.Database.Name, "DATABASE_NAME")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Log.Level, "LOG_LEVEL")

	if v := os.Getenv("DATABASE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DATABASE_PORT %q: %w", v, err)
		}
		c.Database.Port = port
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.ReadTimeoutSeconds <= 0 {
		c.HTTP.ReadTimeoutSeconds = 15
	}
	if c.HTTP.WriteTimeoutSeconds <= 0 {
		c.HTTP.WriteTimeoutSeconds = 15
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = ":9090"
	}
	if c.GRPC.HealthIntervalSeconds <= 0 {
		c.GRPC.HealthIntervalSeconds = 10
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Booking.FlightsCacheTTL <= 0 {
		c.Booking.FlightsCacheTTL = 30
	}
	if c.Booking.ReferenceAttempts <= 0 {
		c.Booking.ReferenceAttempts = 10
	}
	if c.Booking.MaxPageSize <= 0 {
		c.Booking.MaxPageSize = 100
	}
	if c.Worker.InventoryAuditMinutes <= 0 {
		c.Worker.InventoryAuditMinutes = 10
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "flightbooking-notifier"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
