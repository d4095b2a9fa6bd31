package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort string `mapstructure:"APP_PORT"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     int    `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBScheme   string `mapstructure:"DB_SCHEME"`

	// --- Redis (пусто — in-memory кэш) ---
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// --- S3 ---
	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3Region    string `mapstructure:"S3_REGION"`
	S3Bucket    string `mapstructure:"S3_BUCKET"`
	S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey string `mapstructure:"S3_SECRET_KEY"`
	S3UseSSL    bool   `mapstructure:"S3_USE_SSL"`
	S3PathStyle bool   `mapstructure:"S3_PATH_STYLE"`
	S3PublicURL string `mapstructure:"S3_PUBLIC_URL"`

	// --- Auth ---
	AuthJWTSecret   string        `mapstructure:"AUTH_JWT_SECRET"`
	AuthIssuer      string        `mapstructure:"AUTH_ISSUER"`
	AuthTokenTTL    time.Duration `mapstructure:"AUTH_TOKEN_TTL"`

	// --- TTL кэша по путям чтения (секунды; дефолта «на всё» нет) ---
	CacheListTTL   int `mapstructure:"CACHE_LIST_TTL"`
	CacheDetailTTL int `mapstructure:"CACHE_DETAIL_TTL"`
	CacheStatsTTL  int `mapstructure:"CACHE_STATS_TTL"`
	CacheSocialTTL int `mapstructure:"CACHE_SOCIAL_TTL"`
	CacheAdminsTTL int `mapstructure:"CACHE_ADMINS_TTL"`

	// окно обхода кэша после мутаций админов (секунды)
	CacheBypassWindow int `mapstructure:"CACHE_BYPASS_WINDOW"`

	// --- Авто-приоритет ---
	PriorityWindowDays   int     `mapstructure:"PRIORITY_WINDOW_DAYS"`
	PriorityRadiusMeters float64 `mapstructure:"PRIORITY_RADIUS_METERS"`
}

// String реализует интерфейс Stringer
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  AppPort: %s\n", c.AppPort))
	sb.WriteString(fmt.Sprintf("  DBHost: %s\n", c.DBHost))
	sb.WriteString(fmt.Sprintf("  DBPort: %d\n", c.DBPort))
	sb.WriteString(fmt.Sprintf("  DBUser: %s\n", c.DBUser))
	sb.WriteString(fmt.Sprintf("  DBName: %s\n", c.DBName))
	sb.WriteString(fmt.Sprintf("  DBScheme: %s\n", c.DBScheme))

	// пароли/секреты маскируем
	if c.DBPassword != "" {
		sb.WriteString("  DBPassword: ********\n")
	} else {
		sb.WriteString("  DBPassword: (empty)\n")
	}
	sb.WriteString(fmt.Sprintf("  RedisAddr: %s\n", c.RedisAddr))
	sb.WriteString(fmt.Sprintf("  RedisDB: %d\n", c.RedisDB))
	if c.RedisPassword != "" {
		sb.WriteString("  RedisPassword: ********\n")
	}
	sb.WriteString(fmt.Sprintf("  S3Endpoint: %s\n", c.S3Endpoint))
	sb.WriteString(fmt.Sprintf("  S3Region: %s\n", c.S3Region))
	sb.WriteString(fmt.Sprintf("  S3Bucket: %s\n", c.S3Bucket))
	if c.S3AccessKey != "" {
		sb.WriteString("  S3AccessKey: ********\n")
	}
	if c.S3SecretKey != "" {
		sb.WriteString("  S3SecretKey: ********\n")
	}
	sb.WriteString(fmt.Sprintf("  S3UseSSL: %v\n", c.S3UseSSL))
	sb.WriteString(fmt.Sprintf("  S3PathStyle: %v\n", c.S3PathStyle))
	if c.AuthJWTSecret != "" {
		sb.WriteString("  AuthJWTSecret: ********\n")
	}
	sb.WriteString(fmt.Sprintf("  AuthIssuer: %s\n", c.AuthIssuer))
	sb.WriteString(fmt.Sprintf("  AuthTokenTTL: %s\n", c.AuthTokenTTL))
	sb.WriteString(fmt.Sprintf("  CacheTTL list/detail/stats/social/admins: %d/%d/%d/%d/%d\n",
		c.CacheListTTL, c.CacheDetailTTL, c.CacheStatsTTL, c.CacheSocialTTL, c.CacheAdminsTTL))
	sb.WriteString(fmt.Sprintf("  CacheBypassWindow: %ds\n", c.CacheBypassWindow))
	sb.WriteString(fmt.Sprintf("  Priority window/radius: %dd/%.0fm\n",
		c.PriorityWindowDays, c.PriorityRadiusMeters))

	return sb.String()
}

// LoadFromEnv загружает конфигурацию из переменных окружения
func LoadFromEnv() (*Config, error) {
	// .env только для локальной разработки
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.New("failed to load .env")
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	// Регистрируем интересующие ключи окружения
	keys := []string{
		"APP_ENV", "APP_PORT",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SCHEME",
		"REDIS_ADDR", "REDIS_DB", "REDIS_PASSWORD",
		"S3_ENDPOINT", "S3_REGION", "S3_BUCKET", "S3_ACCESS_KEY", "S3_SECRET_KEY",
		"S3_USE_SSL", "S3_PATH_STYLE", "S3_PUBLIC_URL",
		"AUTH_JWT_SECRET", "AUTH_ISSUER", "AUTH_TOKEN_TTL",
		"CACHE_LIST_TTL", "CACHE_DETAIL_TTL", "CACHE_STATS_TTL",
		"CACHE_SOCIAL_TTL", "CACHE_ADMINS_TTL", "CACHE_BYPASS_WINDOW",
		"PRIORITY_WINDOW_DAYS", "PRIORITY_RADIUS_METERS",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	setTTLDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// setTTLDefaults: TTL задаются per use case — списки минуты, агрегаты
// подольше; bypass-окно — десятки секунд.
func setTTLDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_SCHEME", "public")
	v.SetDefault("AUTH_ISSUER", "jansetu")
	v.SetDefault("AUTH_TOKEN_TTL", "24h")
	v.SetDefault("CACHE_LIST_TTL", 300)     // 5 мин
	v.SetDefault("CACHE_DETAIL_TTL", 600)   // 10 мин
	v.SetDefault("CACHE_STATS_TTL", 900)    // 15 мин
	v.SetDefault("CACHE_SOCIAL_TTL", 180)   // 3 мин
	v.SetDefault("CACHE_ADMINS_TTL", 300)   // 5 мин
	v.SetDefault("CACHE_BYPASS_WINDOW", 30) // 30 с
	v.SetDefault("PRIORITY_WINDOW_DAYS", 30)
	v.SetDefault("PRIORITY_RADIUS_METERS", 500)
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
