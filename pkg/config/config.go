package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External APIs
	KRX   KRXConfig
	DART  DARTConfig
	Naver NaverConfig

	// Screening defaults
	Screening ScreeningConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL     string
	Enabled bool

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// KRXConfig holds KRX (한국거래소) market data API configuration
type KRXConfig struct {
	BaseURL string
	APIKey  string
}

// DARTConfig holds OpenDART (전자공시) API configuration
type DARTConfig struct {
	APIKey  string
	BaseURL string
}

// NaverConfig holds Naver Finance fallback configuration
type NaverConfig struct {
	BaseURL string
}

// ScreeningConfig holds default screening parameters
// 값 범위는 contracts.ScreeningRequest와 동일
type ScreeningConfig struct {
	MarketSegment  string
	MinScore       float64
	MaxResults     int
	CacheTTL       time.Duration
	FetchWorkers   int           // 종목별 데이터 조회 동시성
	BatchTimeout   time.Duration // 스크리닝 배치 전체 제한시간
	StrategyFile   string        // 가중치 YAML 경로 (빈 값이면 내장 기본값)
	UseRealData    bool
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			Enabled:         getEnvAsBool("DB_ENABLED", false),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		KRX: KRXConfig{
			BaseURL: getEnv("KRX_BASE_URL", "https://data.krx.co.kr/api"),
			APIKey:  getEnv("KRX_API_KEY", ""),
		},

		DART: DARTConfig{
			APIKey:  getEnv("DART_API_KEY", ""),
			BaseURL: getEnv("DART_BASE_URL", "https://opendart.fss.or.kr/api"),
		},

		Naver: NaverConfig{
			BaseURL: getEnv("NAVER_BASE_URL", "https://finance.naver.com"),
		},

		Screening: ScreeningConfig{
			MarketSegment: getEnv("SCREEN_MARKET_SEGMENT", "KOSPI"),
			MinScore:      getEnvAsFloat("SCREEN_MIN_SCORE", 60),
			MaxResults:    getEnvAsInt("SCREEN_MAX_RESULTS", 10),
			CacheTTL:      getEnvAsDuration("SCREEN_CACHE_TTL", "1h"),
			FetchWorkers:  getEnvAsInt("SCREEN_FETCH_WORKERS", 8),
			BatchTimeout:  getEnvAsDuration("SCREEN_BATCH_TIMEOUT", "2m"),
			StrategyFile:  getEnv("SCREEN_STRATEGY_FILE", ""),
			UseRealData:   getEnvAsBool("SCREEN_USE_REAL_DATA", false),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Database.Enabled && c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required when DB_ENABLED=true")
	}

	if c.Screening.MinScore < 0 || c.Screening.MinScore > 100 {
		return fmt.Errorf("SCREEN_MIN_SCORE must be in [0,100]")
	}

	if c.Screening.MaxResults <= 0 {
		return fmt.Errorf("SCREEN_MAX_RESULTS must be > 0")
	}

	if c.Screening.FetchWorkers <= 0 {
		return fmt.Errorf("SCREEN_FETCH_WORKERS must be > 0")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
		"backend/.env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
