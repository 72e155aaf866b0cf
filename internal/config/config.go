package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	// MariaDB接続設定 (DB_NAME が空ならインメモリストア)
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"3306"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`

	// サーバー設定
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`
	Env        string `envconfig:"ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`

	// CORS設定
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000"`

	// ハブ設定
	SendBuffer    int           `envconfig:"SEND_BUFFER" default:"256"`
	StoreTimeout  time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`
	TypingTimeout time.Duration `envconfig:"TYPING_TIMEOUT" default:"2s"`
}

// UseDatabase reports whether messages are kept in MySQL instead of memory.
func (c Config) UseDatabase() bool {
	return c.DBName != ""
}

// Load reads an optional .env file at path (empty means ".env") and then
// loads configuration from environment variables.
func Load(path string) (Config, error) {
	if path == "" {
		path = ".env"
	}
	// .env は任意。既存の環境変数は上書きしない
	_ = godotenv.Load(path)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}

	origins := cfg.AllowedOrigins[:0]
	for _, origin := range cfg.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	cfg.AllowedOrigins = origins

	if cfg.SendBuffer <= 0 {
		return Config{}, fmt.Errorf("config error: SEND_BUFFER must be positive, got %d", cfg.SendBuffer)
	}

	return cfg, nil
}
