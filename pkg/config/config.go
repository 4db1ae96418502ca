package config

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env).
type Config struct {
	App      AppConfig
	DB       DBConfig
	HTTP     HTTPConfig
	Platform PlatformConfig
	Sync     SyncConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// HTTPConfig dirección de escucha del servidor.
type HTTPConfig struct {
	Host string
	Port int
}

// PlatformConfig acceso a la plataforma de comercio externa.
type PlatformConfig struct {
	BaseURL     string
	AccessToken string
	BatchSize   int           // inventory item ids por llamada de niveles
	BatchDelay  time.Duration // pausa entre lotes (límites de tasa)
	CallTimeout time.Duration // timeout por llamada
}

// SyncConfig sincronización automática de inventario.
type SyncConfig struct {
	AutoSync bool
	Interval time.Duration
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN construye el connection string con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// Addr dirección host:puerto para escuchar.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno con valores por defecto.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "pos-retail"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "pos_retail"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Platform: PlatformConfig{
			BaseURL:     getString(v, "PLATFORM_BASE_URL", ""),
			AccessToken: getString(v, "PLATFORM_ACCESS_TOKEN", ""),
			BatchSize:   getInt(v, "PLATFORM_BATCH_SIZE", 50),
			BatchDelay:  time.Duration(getInt(v, "PLATFORM_BATCH_DELAY_MS", 500)) * time.Millisecond,
			CallTimeout: time.Duration(getInt(v, "PLATFORM_CALL_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Sync: SyncConfig{
			AutoSync: getBool(v, "SYNC_AUTO", false),
			Interval: time.Duration(getInt(v, "SYNC_INTERVAL_MINUTES", 30)) * time.Minute,
		},
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
