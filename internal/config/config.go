package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Redis     RedisConfig     `toml:"redis"`
	Booking   BookingConfig   `toml:"booking"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	QueryTimeout    int    `toml:"query_timeout"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL строка подключения для golang-migrate
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	// TTLSeconds время жизни закешированных настроек бизнеса
	TTLSeconds int `toml:"ttl_seconds"`
}

// TTL время жизни кеша настроек
func (c RedisConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type BookingConfig struct {
	// MaxWriteRetries сколько раз повторять бронирование при конфликте записи
	MaxWriteRetries int `toml:"max_write_retries"`
	// SlotStepMinutes шаг перебора свободных слотов, 0 - шаг равен длительности
	SlotStepMinutes int `toml:"slot_step_minutes"`
	// DefaultRules правила для бизнеса, который ещё не сохранил свои
	DefaultRules DefaultRulesConfig `toml:"default_rules"`
}

type DefaultRulesConfig struct {
	BufferMinutes           int    `toml:"buffer_minutes"`
	BookingWindowDays       int    `toml:"booking_window_days"`
	MaxDailyAppointments    int    `toml:"max_daily_appointments"`
	CancellationWindowHours int    `toml:"cancellation_window_hours"`
	DepositRequired         bool   `toml:"deposit_required"`
	DepositAmountCents      int64  `toml:"deposit_amount_cents"`
	NoShowPolicyText        string `toml:"no_show_policy_text"`
	TimezoneOffsetMinutes   int    `toml:"timezone_offset_minutes"`
}

// BookingRules правила по умолчанию для бизнеса businessID
func (c DefaultRulesConfig) BookingRules(businessID int64) domain.BookingRules {
	return domain.BookingRules{
		BusinessID:              businessID,
		BufferMinutes:           c.BufferMinutes,
		BookingWindowDays:       c.BookingWindowDays,
		MaxDailyAppointments:    c.MaxDailyAppointments,
		CancellationWindowHours: c.CancellationWindowHours,
		DepositRequired:         c.DepositRequired,
		DepositAmountCents:      c.DepositAmountCents,
		NoShowPolicyText:        c.NoShowPolicyText,
		TimezoneOffsetMinutes:   c.TimezoneOffsetMinutes,
	}
}

type RateLimitConfig struct {
	Enabled bool `toml:"enabled"`
	// RequestsPerMinute лимит создания бронирований на один бизнес
	RequestsPerMinute int `toml:"requests_per_minute"`
	Burst             int `toml:"burst"`
}

// Load читает конфигурацию из TOML файла, затем применяет .env и переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	// .env необязателен, переменные окружения процесса имеют приоритет
	_ = godotenv.Load()
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			QueryTimeout:    5,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "scheduling-service",
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			TTLSeconds: 5,
		},
		Booking: BookingConfig{
			MaxWriteRetries: 3,
			DefaultRules: DefaultRulesConfig{
				BufferMinutes:     0,
				BookingWindowDays: 30,
			},
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 60,
			Burst:             10,
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v, ok := envInt("DB_PORT"); ok {
		cfg.Database.Port = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.DBName = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logs.Level = v
	}
	if v, ok := envInt("HTTP_PORT"); ok {
		cfg.Server.HTTPPort = v
	}
}

func envInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Booking.MaxWriteRetries < 0 {
		return fmt.Errorf("%w: booking.max_write_retries must be >= 0", ErrInvalidConfig)
	}
	if c.Booking.SlotStepMinutes < 0 {
		return fmt.Errorf("%w: booking.slot_step_minutes must be >= 0", ErrInvalidConfig)
	}
	if err := c.Booking.DefaultRules.BookingRules(0).Validate(); err != nil {
		return fmt.Errorf("%w: booking.default_rules: %v", ErrInvalidConfig, err)
	}
	if c.Redis.Enabled && c.Redis.TTLSeconds <= 0 {
		return fmt.Errorf("%w: redis.ttl_seconds must be > 0", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit requires positive requests_per_minute and burst", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}
	return nil
}
