package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Chaves de ambiente reconhecidas
const (
	KeyEnv            = "app_env"
	KeyPort           = "port"
	KeyLogDebug       = "log_debug"
	KeyDatabaseURL    = "database_url"
	KeyDBMaxOpenConns = "db_max_open_conns"
	KeyDBMaxIdleConns = "db_max_idle_conns"
	KeyCORSOrigins    = "cors_origins"
	KeySessionSecret  = "session_secret"
	KeySessionTTL     = "session_ttl"
	KeyCookieSecure   = "cookie_secure"
	KeyRedisAddr      = "redis_addr"
	KeyRedisPassword  = "redis_password"
	KeyRedisDB        = "redis_db"
	KeyAuthProvider   = "auth_provider"
	KeySupabaseURL    = "supabase_url"
	KeySupabaseKey    = "supabase_key"
	KeyCacheTTL       = "cache_ttl"
	KeyImportMaxRows  = "import_max_rows"
)

const (
	AuthProviderLocal    = "local"
	AuthProviderSupabase = "supabase"
)

// Config agrupa toda a configuração lida do ambiente
type Config struct {
	Env      string
	Port     string
	LogDebug bool

	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int

	CORSOrigins string

	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuthProvider string
	SupabaseURL  string
	SupabaseKey  string

	CacheTTL      time.Duration
	ImportMaxRows int
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault(KeyEnv, "development")
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyLogDebug, false)
	v.SetDefault(KeyDatabaseURL, "")
	v.SetDefault(KeyDBMaxOpenConns, 50)
	v.SetDefault(KeyDBMaxIdleConns, 10)
	v.SetDefault(KeyCORSOrigins, "http://localhost:3000")
	v.SetDefault(KeySessionSecret, "")
	v.SetDefault(KeySessionTTL, 8*time.Hour)
	v.SetDefault(KeyCookieSecure, false)
	v.SetDefault(KeyRedisAddr, "")
	v.SetDefault(KeyRedisPassword, "")
	v.SetDefault(KeyRedisDB, 0)
	v.SetDefault(KeyAuthProvider, AuthProviderLocal)
	v.SetDefault(KeySupabaseURL, "")
	v.SetDefault(KeySupabaseKey, "")
	v.SetDefault(KeyCacheTTL, 10*time.Minute)
	v.SetDefault(KeyImportMaxRows, 20000)

	v.AutomaticEnv()
	return v
}

// LoadDotEnv carrega o .env se existir; a ausência do arquivo não é erro
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("config: stat %s: %w", p, err)
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("config: godotenv %s: %w", p, err)
		}
	}
	return nil
}

// Load lê a configuração do ambiente e falha listando as chaves obrigatórias ausentes
func Load(required ...string) (*Config, error) {
	v := newViper()

	cfg := &Config{
		Env:            v.GetString(KeyEnv),
		Port:           v.GetString(KeyPort),
		LogDebug:       v.GetBool(KeyLogDebug),
		DatabaseURL:    v.GetString(KeyDatabaseURL),
		DBMaxOpenConns: v.GetInt(KeyDBMaxOpenConns),
		DBMaxIdleConns: v.GetInt(KeyDBMaxIdleConns),
		CORSOrigins:    v.GetString(KeyCORSOrigins),
		SessionSecret:  v.GetString(KeySessionSecret),
		SessionTTL:     v.GetDuration(KeySessionTTL),
		CookieSecure:   v.GetBool(KeyCookieSecure),
		RedisAddr:      v.GetString(KeyRedisAddr),
		RedisPassword:  v.GetString(KeyRedisPassword),
		RedisDB:        v.GetInt(KeyRedisDB),
		AuthProvider:   strings.ToLower(v.GetString(KeyAuthProvider)),
		SupabaseURL:    v.GetString(KeySupabaseURL),
		SupabaseKey:    v.GetString(KeySupabaseKey),
		CacheTTL:       v.GetDuration(KeyCacheTTL),
		ImportMaxRows:  v.GetInt(KeyImportMaxRows),
	}

	var missing []string
	for _, key := range required {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, strings.ToUpper(key))
		}
	}
	if cfg.AuthProvider == AuthProviderSupabase {
		if cfg.SupabaseURL == "" {
			missing = append(missing, strings.ToUpper(KeySupabaseURL))
		}
		if cfg.SupabaseKey == "" {
			missing = append(missing, strings.ToUpper(KeySupabaseKey))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("config: variáveis obrigatórias ausentes: %s", strings.Join(missing, ", "))
	}

	if cfg.AuthProvider != AuthProviderLocal && cfg.AuthProvider != AuthProviderSupabase {
		return nil, fmt.Errorf("config: AUTH_PROVIDER inválido: %q", cfg.AuthProvider)
	}

	return cfg, nil
}

// IsProduction indica se a API roda em produção
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// AllowedOrigins devolve a lista de origens CORS no formato esperado pelo fiber
func (c *Config) AllowedOrigins() string {
	parts := strings.Split(c.CORSOrigins, ",")
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, ", ")
}
