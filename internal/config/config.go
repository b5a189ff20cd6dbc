package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/scheduling"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/types"
)

var (
	ErrLoadConfig    = errors.New("config: failed to load")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Redis      RedisConfig      `toml:"redis"`
	Kafka      KafkaConfig      `toml:"kafka"`
	Scheduling SchedulingConfig `toml:"scheduling"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	IdleTimeout     int      `toml:"idle_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	AllowedOrigins  []string `toml:"allowed_origins"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
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

// RedisConfig канал уведомлений для календаря
type RedisConfig struct {
	Enabled       bool   `toml:"enabled"`
	Addr          string `toml:"addr"`
	Password      string `toml:"password"`
	DB            int    `toml:"db"`
	ChannelPrefix string `toml:"channel_prefix"`
}

// KafkaConfig публикация событий изменения записей
type KafkaConfig struct {
	Enabled      bool     `toml:"enabled"`
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic"`
	WriteTimeout int      `toml:"write_timeout"`
}

// SchedulingConfig политика расписания по умолчанию
// Используется, если для салона нет сохраненной политики
type SchedulingConfig struct {
	Timezone           string `toml:"timezone"`
	CalendarDomain     string `toml:"calendar_domain"` // Домен в UID событий .ics
	BusinessOpen       string `toml:"business_open"`
	BusinessClose      string `toml:"business_close"`
	MinDurationMinutes int    `toml:"min_duration_minutes"`
	MaxDurationMinutes int    `toml:"max_duration_minutes"`
	PickerDayStart     string `toml:"picker_day_start"`
	PickerDayEnd       string `toml:"picker_day_end"`
	PickerStepMinutes  int    `toml:"picker_step_minutes"`
	DurationOptions    []int  `toml:"duration_options"`
	IgnoreCancelled    bool   `toml:"ignore_cancelled"`
}

// Location возвращает часовой пояс салонов
func (s SchedulingConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(s.Timezone)
}

// Policy возвращает политику расписания по умолчанию
func (s SchedulingConfig) Policy() domain.SchedulingPolicy {
	p := domain.DefaultSchedulingPolicy()
	if s.BusinessOpen != "" {
		p.BusinessHours.Open = types.TimeString(s.BusinessOpen)
	}
	if s.BusinessClose != "" {
		p.BusinessHours.Close = types.TimeString(s.BusinessClose)
	}
	if s.MinDurationMinutes > 0 {
		p.DurationBounds.Min = time.Duration(s.MinDurationMinutes) * time.Minute
	}
	if s.MaxDurationMinutes > 0 {
		p.DurationBounds.Max = time.Duration(s.MaxDurationMinutes) * time.Minute
	}
	if s.PickerDayStart != "" {
		p.Picker.DayStart = types.TimeString(s.PickerDayStart)
	}
	if s.PickerDayEnd != "" {
		p.Picker.DayEnd = types.TimeString(s.PickerDayEnd)
	}
	if s.PickerStepMinutes > 0 {
		p.Picker.StepMinutes = s.PickerStepMinutes
	}
	if len(s.DurationOptions) > 0 {
		p.DurationOptions = append([]int(nil), s.DurationOptions...)
	}
	p.IgnoreCancelled = s.IgnoreCancelled
	return p
}

// Load читает конфигурацию из TOML файла и применяет переменные окружения
// Перед этим подгружается .env, если он есть
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
			AllowedOrigins:  []string{"*"},
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "appointment-service"},
		Redis:   RedisConfig{Addr: "localhost:6379", ChannelPrefix: "salon"},
		Kafka:   KafkaConfig{Topic: "appointments.events", WriteTimeout: 5},
		Scheduling: SchedulingConfig{
			CalendarDomain: "gurfa.app",
		},
	}
}

// applyEnv переопределяет значения из переменных окружения
func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT=%q: %v", ErrInvalidConfig, v, err)
		}
		c.Server.HTTPPort = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logs.Level = v
	}
	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		return fmt.Errorf("%w: kafka.brokers and kafka.topic are required when kafka is enabled", ErrInvalidConfig)
	}
	if _, err := c.Scheduling.Location(); err != nil {
		return fmt.Errorf("%w: scheduling.timezone: %v", ErrInvalidConfig, err)
	}
	if err := scheduling.ValidatePolicy(c.Scheduling.Policy()); err != nil {
		return fmt.Errorf("%w: scheduling: %v", ErrInvalidConfig, err)
	}
	return nil
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
