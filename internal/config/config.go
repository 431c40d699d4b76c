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

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	ErrLoadConfig    = errors.New("config: failed to load configuration")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config is the full service configuration
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Scheduling     SchedulingConfig     `toml:"scheduling"`
	Catalog        CatalogConfig        `toml:"catalog"`
	GoogleCalendar GoogleCalendarConfig `toml:"google_calendar"`
	Events         EventsConfig         `toml:"events"`
	RateLimit      RateLimitConfig      `toml:"rate_limit"`
	Redis          RedisConfig          `toml:"redis"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // seconds
	WriteTimeout    int `toml:"write_timeout"`    // seconds
	IdleTimeout     int `toml:"idle_timeout"`     // seconds
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN returns the lib/pq connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the connection string in URL form, used by the migrate tool
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type SchedulingConfig struct {
	TimeZone               string        `toml:"time_zone"`
	SlotGranularityMinutes int           `toml:"slot_granularity_minutes"`
	MaxCreateAttempts      int           `toml:"max_create_attempts"`
	Shifts                 []ShiftConfig `toml:"shifts"`
}

type ShiftConfig struct {
	Start types.TimeString `toml:"start"`
	End   types.TimeString `toml:"end"`
}

type CatalogConfig struct {
	Services  []ServiceConfig  `toml:"services"`
	Employees []EmployeeConfig `toml:"employees"`
}

type ServiceConfig struct {
	ID              string  `toml:"id"`
	Name            string  `toml:"name"`
	DurationMinutes int     `toml:"duration_minutes"`
	Price           float64 `toml:"price"`
}

type EmployeeConfig struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// GoogleCalendarConfig enables event sync when a calendar id and credentials are present
type GoogleCalendarConfig struct {
	CalendarID      string `toml:"calendar_id"`
	CredentialsJSON string `toml:"credentials_json"`
	CredentialsFile string `toml:"credentials_file"`
	AttendeeDomain  string `toml:"attendee_domain"`
	Timeout         int    `toml:"timeout"` // seconds
}

// Enabled reports whether enough settings are present to talk to Google
func (c GoogleCalendarConfig) Enabled() bool {
	return c.CalendarID != "" && (c.CredentialsJSON != "" || c.CredentialsFile != "")
}

// EventsConfig enables booking event publishing when brokers are listed
type EventsConfig struct {
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic"`
	WriteTimeout int      `toml:"write_timeout"` // seconds
}

func (c EventsConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

type RateLimitConfig struct {
	Enabled       bool `toml:"enabled"`
	Requests      int  `toml:"requests"`
	WindowSeconds int  `toml:"window_seconds"`
	Burst         int  `toml:"burst"`
	// Peers whose X-Forwarded-For header is honoured; addresses or CIDR networks
	TrustedProxies []string `toml:"trusted_proxies"`
}

// Window returns the counting window as a duration
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// RedisConfig is used by the rate limiter; an empty address selects the in-process limiter
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Load reads .env (if present), the TOML file (if present) on top of the defaults,
// then applies environment overrides and validates the result
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("%w: decode %s: %v", ErrLoadConfig, path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: stat %s: %v", ErrLoadConfig, path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
		}
		*dst = n
		return nil
	}

	setString("DB_HOST", &c.Database.Host)
	setString("DB_USER", &c.Database.User)
	setString("DB_PASSWORD", &c.Database.Password)
	setString("DB_NAME", &c.Database.DBName)
	setString("GOOGLE_CAL_ID", &c.GoogleCalendar.CalendarID)
	setString("GOOGLE_KEY_JSON", &c.GoogleCalendar.CredentialsJSON)
	setString("REDIS_ADDR", &c.Redis.Addr)
	setString("LOG_LEVEL", &c.Logs.Level)

	if err := setInt("DB_PORT", &c.Database.Port); err != nil {
		return err
	}
	if err := setInt("HTTP_PORT", &c.Server.HTTPPort); err != nil {
		return err
	}

	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok && v != "" {
		brokers := make([]string, 0)
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		c.Events.Brokers = brokers
	}

	return nil
}

// Validate checks values that would otherwise fail at startup in a less obvious way
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("%w: database.port %d out of range", ErrInvalidConfig, c.Database.Port)
	}
	if c.Scheduling.SlotGranularityMinutes <= 0 {
		return fmt.Errorf("%w: scheduling.slot_granularity_minutes must be positive", ErrInvalidConfig)
	}
	if c.Scheduling.MaxCreateAttempts <= 0 {
		return fmt.Errorf("%w: scheduling.max_create_attempts must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.WindowSeconds <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit requires positive requests, window_seconds and burst", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.BuildCatalog(); err != nil {
		return err
	}
	if _, err := c.ShiftCalendar(); err != nil {
		return err
	}
	return nil
}

// Location loads the operating time zone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Scheduling.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown time zone %q: %v", ErrInvalidConfig, c.Scheduling.TimeZone, err)
	}
	return loc, nil
}

// SlotGranularity returns the step between candidate slot starts
func (c *Config) SlotGranularity() time.Duration {
	return time.Duration(c.Scheduling.SlotGranularityMinutes) * time.Minute
}

// BuildCatalog builds the immutable service/employee catalog
func (c *Config) BuildCatalog() (*domain.Catalog, error) {
	services := make([]domain.Service, 0, len(c.Catalog.Services))
	for _, s := range c.Catalog.Services {
		services = append(services, domain.Service{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}

	employees := make([]domain.Employee, 0, len(c.Catalog.Employees))
	for _, e := range c.Catalog.Employees {
		employees = append(employees, domain.Employee{ID: e.ID, Name: e.Name})
	}

	catalog, err := domain.NewCatalog(services, employees)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return catalog, nil
}

// ShiftCalendar builds the shift calendar in the operating zone
func (c *Config) ShiftCalendar() (*scheduling.ShiftCalendar, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	windows := make([]domain.ShiftWindow, 0, len(c.Scheduling.Shifts))
	for _, s := range c.Scheduling.Shifts {
		windows = append(windows, domain.ShiftWindow{Start: s.Start, End: s.End})
	}

	calendar, err := scheduling.NewShiftCalendar(windows, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return calendar, nil
}
