package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Store backends selectable at startup.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	LDAP     LDAPConfig
	CORS     CORSConfig
	Log      LogConfig
}

// StoreConfig selects the entity-store backend.
type StoreConfig struct {
	Backend string
	Seed    bool
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig governs the bearer-token session store.
type SessionConfig struct {
	Backend  string
	Lifetime time.Duration
}

// LDAPConfig describes the directory authenticator. When Enabled is false the
// server falls back to the built-in test users.
type LDAPConfig struct {
	Enabled        bool
	Host           string
	Port           int
	UseTLS         bool
	SkipTLSVerify  bool
	BindDomain     string
	BaseDN         string
	ConnectTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Store = StoreConfig{
		Backend: strings.ToLower(v.GetString("STORE_BACKEND")),
		Seed:    v.GetBool("STORE_SEED"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		Backend:  strings.ToLower(v.GetString("SESSION_BACKEND")),
		Lifetime: parseDuration(v.GetString("SESSION_LIFETIME"), 4320*time.Hour),
	}

	cfg.LDAP = LDAPConfig{
		Enabled:        v.GetBool("LDAP_ENABLED"),
		Host:           v.GetString("LDAP_HOST"),
		Port:           v.GetInt("LDAP_PORT"),
		UseTLS:         v.GetBool("LDAP_USE_TLS"),
		SkipTLSVerify:  v.GetBool("LDAP_SKIP_TLS_VERIFY"),
		BindDomain:     v.GetString("LDAP_BIND_DOMAIN"),
		BaseDN:         v.GetString("LDAP_BASE_DN"),
		ConnectTimeout: parseDuration(v.GetString("LDAP_CONNECT_TIMEOUT"), 10*time.Second),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("STORE_BACKEND", StoreMemory)
	v.SetDefault("STORE_SEED", true)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "timetable")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_BACKEND", "memory")
	// 180 days, matching the legacy deployment.
	v.SetDefault("SESSION_LIFETIME", "4320h")

	v.SetDefault("LDAP_ENABLED", false)
	v.SetDefault("LDAP_HOST", "localhost")
	v.SetDefault("LDAP_PORT", 636)
	v.SetDefault("LDAP_USE_TLS", true)
	v.SetDefault("LDAP_SKIP_TLS_VERIFY", false)
	v.SetDefault("LDAP_BIND_DOMAIN", "school.local")
	v.SetDefault("LDAP_BASE_DN", "dc=school,dc=local")
	v.SetDefault("LDAP_CONNECT_TIMEOUT", "10s")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
