package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	HTTP    HTTPConfig
	Session SessionConfig
	Csrf    CsrfConfig
	Rate    RateConfig
	Storage StorageConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env       string // development, staging, production
	Name      string
	LogLevel  string
	PublicURL string // base pública usada para QR de mesas (ej. https://menu.ejemplo.com)
	VenueSlug string // local administrado por este despliegue (una instancia, un local)
}

// Production indica si corremos en producción (cookies Secure, mensajes genéricos, sin bypass CSRF).
func (c AppConfig) Production() bool {
	return c.Env == "production"
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SessionConfig configuración de la cookie de sesión firmada.
type SessionConfig struct {
	Secret     string
	CookieName string
	ExpHours   int
	Issuer     string
}

// CsrfConfig configuración del doble-submit cookie.
type CsrfConfig struct {
	CookieName    string
	MaxAge        time.Duration
	DevPermissive bool // bypass de desarrollo; jamás activo en producción
}

// RateConfig configuración del rate limiter.
// Si RedisURL está vacío se usa el backend en memoria (límites por proceso).
type RateConfig struct {
	RedisURL string
}

// StorageConfig selección del proveedor de almacenamiento de imágenes.
// Provider: r2 | supabase | local | auto (auto sondea en ese orden y cae a local).
type StorageConfig struct {
	Provider string

	LocalDir       string
	LocalPublicURL string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo .env).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DATABASE_URL, SESSION_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:       getString(v, "APP_ENV", "development"),
			Name:      getString(v, "APP_NAME", "qrmenu-api"),
			LogLevel:  getString(v, "LOG_LEVEL", "info"),
			PublicURL: getString(v, "PUBLIC_BASE_URL", "http://localhost:8080"),
			VenueSlug: getString(v, "VENUE_SLUG", "default"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "qrmenu"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Session: SessionConfig{
			Secret:     getString(v, "SESSION_SECRET", ""),
			CookieName: getString(v, "SESSION_COOKIE_NAME", "qrmenu_session"),
			ExpHours:   getInt(v, "SESSION_EXP_HOURS", 8),
			Issuer:     getString(v, "SESSION_ISSUER", "qrmenu-api"),
		},
		Csrf: CsrfConfig{
			CookieName:    getString(v, "CSRF_COOKIE_NAME", "XSRF-TOKEN"),
			MaxAge:        time.Duration(getInt(v, "CSRF_MAX_AGE_MINUTES", 60)) * time.Minute,
			DevPermissive: getString(v, "CSRF_DEV_PERMISSIVE", "") == "1",
		},
		Rate: RateConfig{
			RedisURL: getString(v, "REDIS_URL", ""),
		},
		Storage: StorageConfig{
			Provider:       getString(v, "STORAGE_PROVIDER", "auto"),
			LocalDir:       getString(v, "STORAGE_LOCAL_DIR", "./uploads"),
			LocalPublicURL: getString(v, "STORAGE_LOCAL_PUBLIC_URL", "/uploads"),
			S3Endpoint:     getString(v, "S3_ENDPOINT", ""),
			S3AccessKey:    getString(v, "S3_ACCESS_KEY", ""),
			S3SecretKey:    getString(v, "S3_SECRET_KEY", ""),
			S3Bucket:       getString(v, "S3_BUCKET", ""),
			S3PublicURL:    getString(v, "S3_PUBLIC_URL", ""),
			SupabaseURL:    getString(v, "SUPABASE_URL", ""),
			SupabaseKey:    getString(v, "SUPABASE_SERVICE_KEY", ""),
			SupabaseBucket: getString(v, "SUPABASE_BUCKET", "uploads"),
		},
	}

	if cfg.App.Production() && len(cfg.Session.Secret) < 32 {
		return nil, fmt.Errorf("SESSION_SECRET debe tener al menos 32 caracteres")
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
		return v.GetInt(key)
	}
	return def
}
