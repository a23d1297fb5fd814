package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/places-microservice/internal/domain"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Places   PlacesConfig
	Overpass OverpassConfig
	Google   GooglePlacesConfig
	Wikidata WikidataConfig
	Auth     AuthConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

const (
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

type StorageConfig struct {
	Backend    string
	SQLitePath string
}

type RedisConfig struct {
	Host           string
	Port           int
	Password       string
	DB             int
	ConnectTimeout time.Duration
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type CacheConfig struct {
	SnapshotTTL      time.Duration
	KeyIncludeCenter bool
	// BrandImageTTL == 0 - хранить без срока
	BrandImageTTL time.Duration
}

type PlacesConfig struct {
	Provider        domain.ProviderID
	FetchCategories domain.CategorySet
	DefaultRadius   int
	FetchTimeout    time.Duration
	MaxResults      int
}

type OverpassConfig struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout time.Duration
}

type GooglePlacesConfig struct {
	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration
	RateLimit      int
}

type WikidataConfig struct {
	BaseURL        string
	CommonsBaseURL string
	RequestTimeout time.Duration
}

type AuthConfig struct {
	JWTSecret string
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

// Load читает .env из рабочей директории (если файл есть) и окружение
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile читает конфигурацию из указанного env файла и окружения.
// Переменные окружения имеют приоритет над файлом.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	setDefaults(v)

	provider := domain.ProviderID(strings.ToLower(v.GetString("PLACES_PROVIDER")))
	if !provider.Valid() {
		return nil, fmt.Errorf("invalid PLACES_PROVIDER %q", provider)
	}

	fetchCategories, err := domain.ParseCategories(v.GetString("PLACES_FETCH_CATEGORIES"))
	if err != nil {
		return nil, fmt.Errorf("invalid PLACES_FETCH_CATEGORIES: %w", err)
	}

	backend := strings.ToLower(v.GetString("STORAGE_BACKEND"))
	if backend != StorageRedis && backend != StorageSQLite {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q", backend)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Storage: StorageConfig{
			Backend:    backend,
			SQLitePath: v.GetString("SQLITE_PATH"),
		},
		Redis: RedisConfig{
			Host:           v.GetString("REDIS_HOST"),
			Port:           v.GetInt("REDIS_PORT"),
			Password:       v.GetString("REDIS_PASSWORD"),
			DB:             v.GetInt("REDIS_DB"),
			ConnectTimeout: seconds(v, "REDIS_CONNECT_TIMEOUT"),
		},
		Cache: CacheConfig{
			SnapshotTTL:      seconds(v, "SNAPSHOT_CACHE_TTL"),
			KeyIncludeCenter: v.GetBool("CACHE_KEY_INCLUDE_CENTER"),
			BrandImageTTL:    seconds(v, "BRAND_IMAGE_CACHE_TTL"),
		},
		Places: PlacesConfig{
			Provider:        provider,
			FetchCategories: fetchCategories.Without(domain.CategoryOther),
			DefaultRadius:   v.GetInt("PLACES_DEFAULT_RADIUS"),
			FetchTimeout:    seconds(v, "PLACES_FETCH_TIMEOUT"),
			MaxResults:      v.GetInt("PLACES_MAX_RESULTS"),
		},
		Overpass: OverpassConfig{
			BaseURL:        strings.TrimRight(v.GetString("OVERPASS_BASE_URL"), "/"),
			UserAgent:      v.GetString("OVERPASS_USER_AGENT"),
			RequestTimeout: seconds(v, "OVERPASS_REQUEST_TIMEOUT"),
		},
		Google: GooglePlacesConfig{
			APIKey:         v.GetString("GOOGLE_PLACES_API_KEY"),
			BaseURL:        strings.TrimRight(v.GetString("GOOGLE_PLACES_BASE_URL"), "/"),
			RequestTimeout: seconds(v, "GOOGLE_PLACES_REQUEST_TIMEOUT"),
			RateLimit:      v.GetInt("GOOGLE_PLACES_RATE_LIMIT"),
		},
		Wikidata: WikidataConfig{
			BaseURL:        strings.TrimRight(v.GetString("WIKIDATA_BASE_URL"), "/"),
			CommonsBaseURL: strings.TrimRight(v.GetString("COMMONS_BASE_URL"), "/"),
			RequestTimeout: seconds(v, "WIKIDATA_REQUEST_TIMEOUT"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("AUTH_JWT_SECRET"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        v.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	if provider == domain.ProviderGoogle && cfg.Google.APIKey == "" {
		return nil, fmt.Errorf("GOOGLE_PLACES_API_KEY is required for provider %q", provider)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("STORAGE_BACKEND", StorageRedis)
	v.SetDefault("SQLITE_PATH", "places.db")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_CONNECT_TIMEOUT", 5)

	v.SetDefault("SNAPSHOT_CACHE_TTL", 3600)
	v.SetDefault("CACHE_KEY_INCLUDE_CENTER", false)
	v.SetDefault("BRAND_IMAGE_CACHE_TTL", 0)

	v.SetDefault("PLACES_PROVIDER", string(domain.ProviderOSM))
	v.SetDefault("PLACES_FETCH_CATEGORIES", domain.FetchableCategories().String())
	v.SetDefault("PLACES_DEFAULT_RADIUS", 1000)
	v.SetDefault("PLACES_FETCH_TIMEOUT", 30)
	v.SetDefault("PLACES_MAX_RESULTS", 200)

	v.SetDefault("OVERPASS_BASE_URL", "https://overpass-api.de")
	v.SetDefault("OVERPASS_USER_AGENT", "places-microservice/1.0")
	v.SetDefault("OVERPASS_REQUEST_TIMEOUT", 25)

	v.SetDefault("GOOGLE_PLACES_REQUEST_TIMEOUT", 10)
	v.SetDefault("GOOGLE_PLACES_RATE_LIMIT", 10)

	v.SetDefault("WIKIDATA_BASE_URL", "https://www.wikidata.org")
	v.SetDefault("COMMONS_BASE_URL", "https://commons.wikimedia.org")
	v.SetDefault("WIKIDATA_REQUEST_TIMEOUT", 10)

	v.SetDefault("WORKER_ENABLED", true)
	v.SetDefault("WORKER_CONSUMER_GROUP", "places-warm-workers")
	v.SetDefault("WORKER_STREAM_READ_TIMEOUT", 5000)
	v.SetDefault("WORKER_MAX_RETRIES", 3)
}

func seconds(v *viper.Viper, key string) time.Duration {
	return time.Duration(v.GetInt(key)) * time.Second
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return c.Redis.Addr()
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
