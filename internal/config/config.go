package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

const (
	// SourcePostgres расписание читается из собственной БД
	SourcePostgres = "postgres"
	// SourceRemote расписание/покрытие запрашиваются у сервиса расписаний
	SourceRemote = "remote"
	// SourceRoster покрытие считается по списку команд из БД (через Redis кэш)
	SourceRoster = "roster"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Database        DatabaseConfig        `toml:"database"`
	Redis           RedisConfig           `toml:"redis"`
	ScheduleService ScheduleServiceConfig `toml:"schedule_service"`
	Calendar        CalendarConfig        `toml:"calendar"`
	Sources         SourcesConfig         `toml:"sources"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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

type DatabaseConfig struct {
	Host            string  `toml:"host"`
	Port            int     `toml:"port"`
	User            string  `toml:"user"`
	Password        string  `toml:"password"`
	DBName          string  `toml:"dbname"`
	SSLMode         string  `toml:"sslmode"`
	MaxOpenConns    int     `toml:"max_open_conns"`
	MaxIdleConns    int     `toml:"max_idle_conns"`
	ConnMaxLifetime int     `toml:"conn_max_lifetime"` // секунды
	LocationTolDeg  float64 `toml:"location_tolerance_deg"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Enabled   bool   `toml:"enabled"`
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	RosterTTL int    `toml:"roster_ttl"` // секунды
	RosterKey string `toml:"roster_key"`
}

type ScheduleServiceConfig struct {
	URL            string  `toml:"url"`
	Timeout        int     `toml:"timeout"`          // секунды
	RateLimitRPS   float64 `toml:"rate_limit_rps"`   // 0 = без ограничения
	RateLimitBurst int     `toml:"rate_limit_burst"`
}

type CalendarConfig struct {
	OpenTime                string `toml:"open_time"`
	CloseTime               string `toml:"close_time"`
	SalonGranularityMinutes int    `toml:"salon_granularity_minutes"`
	HorizonDays             int    `toml:"horizon_days"`
	AdvanceBookingDays      int    `toml:"advance_booking_days"` // 0 = без ограничений
	Timezone                string `toml:"timezone"`
	FetchConcurrency        int    `toml:"fetch_concurrency"`
}

type SourcesConfig struct {
	Schedule string `toml:"schedule"` // postgres | remote
	Coverage string `toml:"coverage"` // roster | remote
}

// Load читает .env (если есть), затем TOML файл, применяет переменные окружения и значения по умолчанию
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8083,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
			File:  "logs/app.log",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "availability-service",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			LocationTolDeg:  0.0005,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			RosterTTL: 300,
			RosterKey: "availability:roster:operational",
		},
		ScheduleService: ScheduleServiceConfig{
			Timeout:        5,
			RateLimitBurst: 1,
		},
		Calendar: CalendarConfig{
			OpenTime:                domain.DefaultOpenTime,
			CloseTime:               domain.DefaultCloseTime,
			SalonGranularityMinutes: domain.DefaultSalonGranularityMinutes,
			HorizonDays:             domain.DefaultHorizonDays,
			AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
			Timezone:                "UTC",
			FetchConcurrency:        1,
		},
		Sources: SourcesConfig{
			Schedule: SourcePostgres,
			Coverage: SourceRoster,
		},
	}
}

// applyEnv переопределяет секреты и адреса из окружения
func applyEnv(cfg *Config) {
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.DBName, "DB_NAME")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.ScheduleService.URL, "SCHEDULE_SERVICE_URL")
	setString(&cfg.Logs.Level, "LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}

	switch c.Sources.Schedule {
	case SourcePostgres, SourceRemote:
	default:
		return fmt.Errorf("%w: sources.schedule must be %q or %q", ErrInvalidConfig, SourcePostgres, SourceRemote)
	}

	switch c.Sources.Coverage {
	case SourceRoster, SourceRemote:
	default:
		return fmt.Errorf("%w: sources.coverage must be %q or %q", ErrInvalidConfig, SourceRoster, SourceRemote)
	}

	if c.NeedsScheduleService() && c.ScheduleService.URL == "" {
		return fmt.Errorf("%w: schedule_service.url is required for remote sources", ErrInvalidConfig)
	}

	if c.Calendar.FetchConcurrency < 1 {
		return fmt.Errorf("%w: calendar.fetch_concurrency must be at least 1", ErrInvalidConfig)
	}

	if _, err := c.WorkingCalendar(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// NeedsDatabase true, если хотя бы один источник читает из Postgres
func (c *Config) NeedsDatabase() bool {
	return c.Sources.Schedule == SourcePostgres || c.Sources.Coverage == SourceRoster
}

// NeedsScheduleService true, если хотя бы один источник удалённый
func (c *Config) NeedsScheduleService() bool {
	return c.Sources.Schedule == SourceRemote || c.Sources.Coverage == SourceRemote
}

// RosterTTL время жизни кэша списка команд
func (c *Config) RosterTTL() time.Duration {
	return time.Duration(c.Redis.RosterTTL) * time.Second
}

// WorkingCalendar собирает и проверяет рабочий календарь
func (c *Config) WorkingCalendar() (domain.WorkingCalendar, error) {
	open, err := types.NewTimeStringFromString(c.Calendar.OpenTime)
	if err != nil {
		return domain.WorkingCalendar{}, fmt.Errorf("calendar.open_time: %w", err)
	}
	closeTime, err := types.NewTimeStringFromString(c.Calendar.CloseTime)
	if err != nil {
		return domain.WorkingCalendar{}, fmt.Errorf("calendar.close_time: %w", err)
	}
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return domain.WorkingCalendar{}, fmt.Errorf("calendar.timezone: %w", err)
	}

	calendar := domain.WorkingCalendar{
		OpenTime:                open,
		CloseTime:               closeTime,
		SalonGranularityMinutes: c.Calendar.SalonGranularityMinutes,
		HorizonDays:             c.Calendar.HorizonDays,
		AdvanceBookingDays:      c.Calendar.AdvanceBookingDays,
		Location:                loc,
	}
	if err := calendar.Validate(); err != nil {
		return domain.WorkingCalendar{}, err
	}

	return calendar, nil
}
