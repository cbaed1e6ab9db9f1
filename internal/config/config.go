package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Redis    RedisConfig    `toml:"redis"`
	Hacomono HacomonoConfig `toml:"hacomono"`
	Booking  BookingConfig  `toml:"booking"`
	Snapshot SnapshotConfig `toml:"snapshot"`
	Webhook  WebhookConfig  `toml:"webhook"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig PostgreSQL журнала попыток бронирования
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения lib/pq
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

// RedisConfig кэш снапшотов
type RedisConfig struct {
	Addr        string `toml:"addr"`
	Password    string `toml:"password"`
	DB          int    `toml:"db"`
	DialTimeout int    `toml:"dial_timeout"` // секунды
}

// HacomonoConfig клиент внешней платформы бронирования
type HacomonoConfig struct {
	Brand        string `toml:"brand"`
	BaseURL      string `toml:"base_url"` // пустой = https://{brand}.admin.egw.hacomono.app/api/v2
	AdminDomain  string `toml:"admin_domain"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	AccessToken  string `toml:"access_token"`
	RefreshToken string `toml:"refresh_token"`
	Timeout      int    `toml:"timeout"` // секунды
	Location     string `toml:"location"`

	// TicketID チケット, которой оплачиваются гостевые бронирования
	TicketID int64 `toml:"ticket_id"`

	ReadRPS  float64 `toml:"read_rps"`
	WriteRPS float64 `toml:"write_rps"`

	// RejectionKinds код ошибки платформы -> вид ошибки бронирования
	RejectionKinds map[string]string `toml:"rejection_kinds"`
}

// APIBaseURL base url of the Admin API
func (c HacomonoConfig) APIBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return fmt.Sprintf("https://%s.admin.egw.hacomono.app/api/v2", c.Brand)
}

// TokenURL OAuth endpoint used to refresh the access token
func (c HacomonoConfig) TokenURL() string {
	domain := c.AdminDomain
	if domain == "" {
		domain = fmt.Sprintf("%s-admin.hacomono.jp", c.Brand)
	}
	if strings.HasPrefix(domain, "http://") || strings.HasPrefix(domain, "https://") {
		return strings.TrimRight(domain, "/") + "/api/oauth/token"
	}
	return fmt.Sprintf("https://%s/api/oauth/token", domain)
}

// BookingConfig правила оценки доступности
type BookingConfig struct {
	MinLeadMinutes int `toml:"min_lead_minutes"`
	MaxHorizonDays int `toml:"max_horizon_days"`

	// SkipResourceCheck отключает проверку оборудования при создании бронирования
	SkipResourceCheck bool `toml:"skip_resource_check"`
	// FreshSnapshot перечитывает данные платформы перед созданием бронирования
	FreshSnapshot bool `toml:"fresh_snapshot"`
	// SendMail платформа отправляет гостю письмо о бронировании
	SendMail bool `toml:"send_mail"`

	MaxPreviewDays int    `toml:"max_preview_days"`
	DisplayOpen    string `toml:"display_open"`  // "09:00", окно календаря по умолчанию
	DisplayClose   string `toml:"display_close"` // "21:00"
}

// SnapshotConfig кэш снапшотов
type SnapshotConfig struct {
	TTLMinutes int    `toml:"ttl_minutes"`
	KeyPrefix  string `toml:"key_prefix"`
}

type WebhookConfig struct {
	Secret string `toml:"secret"`
}

// Load загружает конфигурацию из TOML файла, затем применяет .env и переменные окружения
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv секреты из окружения перекрывают файл
func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	override(&c.Hacomono.AccessToken, "HACOMONO_ACCESS_TOKEN")
	override(&c.Hacomono.RefreshToken, "HACOMONO_REFRESH_TOKEN")
	override(&c.Hacomono.ClientSecret, "HACOMONO_CLIENT_SECRET")
	override(&c.Webhook.Secret, "WEBHOOK_SECRET")
	override(&c.Database.Password, "DB_PASSWORD")
}

func (c *Config) applyDefaults() {
	setInt := func(dst *int, def int) {
		if *dst == 0 {
			*dst = def
		}
	}
	setString := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}

	setInt(&c.Server.HTTPPort, 8080)
	setInt(&c.Server.ReadTimeout, 15)
	setInt(&c.Server.WriteTimeout, 15)
	setInt(&c.Server.IdleTimeout, 60)
	setInt(&c.Server.ShutdownTimeout, 10)

	setInt(&c.Database.Port, 5432)
	setString(&c.Database.SSLMode, "disable")
	setInt(&c.Database.MaxOpenConns, 10)
	setInt(&c.Database.MaxIdleConns, 5)
	setInt(&c.Database.ConnMaxLifetime, 300)

	setString(&c.Logs.Level, "info")

	setString(&c.Metrics.Path, "/metrics")
	setString(&c.Metrics.ServiceName, "reservation-service")

	setString(&c.Redis.Addr, "localhost:6379")
	setInt(&c.Redis.DialTimeout, 5)

	setInt(&c.Hacomono.Timeout, 10)
	setString(&c.Hacomono.Location, "Asia/Tokyo")
	if c.Hacomono.ReadRPS == 0 {
		c.Hacomono.ReadRPS = 10
	}
	if c.Hacomono.WriteRPS == 0 {
		c.Hacomono.WriteRPS = 2
	}

	setInt(&c.Booking.MinLeadMinutes, domain.DefaultMinLeadMinutes)
	setInt(&c.Booking.MaxHorizonDays, domain.DefaultMaxHorizonDays)
	setInt(&c.Booking.MaxPreviewDays, domain.MaxPreviewDays)
	setString(&c.Booking.DisplayOpen, "09:00")
	setString(&c.Booking.DisplayClose, "21:00")

	setInt(&c.Snapshot.TTLMinutes, 15)
	setString(&c.Snapshot.KeyPrefix, "snapshot")
}

// Validate проверяет невозможные значения
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Hacomono.Brand == "" && c.Hacomono.BaseURL == "" {
		return fmt.Errorf("%w: hacomono.brand or hacomono.base_url is required", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(c.Hacomono.Location); err != nil {
		return fmt.Errorf("%w: hacomono.location: %v", ErrInvalidConfig, err)
	}
	if c.Hacomono.ReadRPS < 0 || c.Hacomono.WriteRPS < 0 {
		return fmt.Errorf("%w: hacomono rate limits must be positive", ErrInvalidConfig)
	}
	if c.Booking.MinLeadMinutes < 0 || c.Booking.MaxHorizonDays < 0 {
		return fmt.Errorf("%w: booking lead/horizon must not be negative", ErrInvalidConfig)
	}
	if c.Booking.MaxPreviewDays > domain.MaxPreviewDays {
		return fmt.Errorf("%w: booking.max_preview_days=%d exceeds %d",
			ErrInvalidConfig, c.Booking.MaxPreviewDays, domain.MaxPreviewDays)
	}
	if _, _, err := c.Booking.DisplayWindow(); err != nil {
		return err
	}
	if c.Snapshot.TTLMinutes < 0 {
		return fmt.Errorf("%w: snapshot.ttl_minutes=%d", ErrInvalidConfig, c.Snapshot.TTLMinutes)
	}
	for code, kind := range c.Hacomono.RejectionKinds {
		if !validKind(kind) {
			return fmt.Errorf("%w: hacomono.rejection_kinds[%s]=%q", ErrInvalidConfig, code, kind)
		}
	}
	return nil
}

// DisplayWindow окно календаря по умолчанию в минутах от полуночи
func (c BookingConfig) DisplayWindow() (int, int, error) {
	open, err := types.NewTimeStringFromString(c.DisplayOpen)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: booking.display_open: %v", ErrInvalidConfig, err)
	}
	closeAt, err := types.NewTimeStringFromString(c.DisplayClose)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: booking.display_close: %v", ErrInvalidConfig, err)
	}
	if !open.IsBefore(closeAt) {
		return 0, 0, fmt.Errorf("%w: booking.display_open %s is not before display_close %s",
			ErrInvalidConfig, open, closeAt)
	}
	return open.Minutes(), closeAt.Minutes(), nil
}

// MinLead минимальное время до начала слота
func (c BookingConfig) MinLead() time.Duration {
	return time.Duration(c.MinLeadMinutes) * time.Minute
}

// MaxHorizon максимальная дальность бронирования
func (c BookingConfig) MaxHorizon() time.Duration {
	return time.Duration(c.MaxHorizonDays) * 24 * time.Hour
}

// TTL время жизни снапшота в кэше
func (c SnapshotConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

func validKind(kind string) bool {
	switch kind {
	case "out_of_range_datetime", "no_staff_available", "no_resource_available", "upstream_validation":
		return true
	default:
		return false
	}
}
