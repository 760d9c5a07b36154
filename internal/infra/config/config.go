package config

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DefaultCORSOrigins адреса фронтенда для разработки
var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"http://localhost:8080",
	"http://127.0.0.1:8080",
}

type Config struct {
	Server struct {
		Host        string   `yaml:"host"`
		Port        string   `yaml:"port"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Database struct {
		URL      string `yaml:"url"`
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"dbname"`
	} `yaml:"database"`
	Auth struct {
		SecretKey       string `yaml:"secret_key"`
		TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
		CookieSecure    bool   `yaml:"cookie_secure"`
	} `yaml:"auth"`
	Definitions struct {
		Dir   string `yaml:"dir"`
		Watch bool   `yaml:"watch"`
	} `yaml:"definitions"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	TelegramBot struct {
		Token        string  `yaml:"token"`
		AdminChatIDs []int64 `yaml:"admin_chat_ids"`
	} `yaml:"telegram_bot"`
	RateLimit struct {
		LoginPerMinute int `yaml:"login_per_minute"`
	} `yaml:"rate_limit"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Debug bool `yaml:"debug"`
}

// LoadConfig читает YAML-файл (если путь задан) и накладывает переменные окружения.
// Файл .env подгружается, если существует.
func LoadConfig(filename string) (*Config, error) {
	_ = godotenv.Load()

	config := Default()
	if filename != "" {
		f, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer func(f *os.File) {
			_ = f.Close()
		}(f)

		if err := yaml.NewDecoder(f).Decode(config); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", filename, err)
		}
	}

	config.applyEnv()

	if config.Auth.SecretKey == "" {
		key, err := randomKey()
		if err != nil {
			return nil, fmt.Errorf("generate secret key: %w", err)
		}
		config.Auth.SecretKey = key
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Default конфигурация со значениями по умолчанию
func Default() *Config {
	c := &Config{}
	c.Server.Host = "0.0.0.0"
	c.Server.Port = "8000"
	c.Server.CORSOrigins = append([]string(nil), DefaultCORSOrigins...)
	c.Database.Host = "localhost"
	c.Database.Port = "5432"
	c.Auth.TokenTTLMinutes = 30
	c.Definitions.Dir = "data/tests"
	c.RateLimit.LoginPerMinute = 20
	c.Log.Level = "info"
	return c
}

func (c *Config) applyEnv() {
	if v := os.Getenv("HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		// Некорректный JSON - остаемся на значениях по умолчанию
		if err := json.Unmarshal([]byte(v), &origins); err == nil && len(origins) > 0 {
			c.Server.CORSOrigins = origins
		} else {
			c.Server.CORSOrigins = append([]string(nil), DefaultCORSOrigins...)
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.Auth.SecretKey = v
	}
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Auth.TokenTTLMinutes = n
		}
	}
	if v := os.Getenv("TESTS_DIR"); v != "" {
		c.Definitions.Dir = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramBot.Token = v
	}
	if v := os.Getenv("ADMIN_CHAT_IDS"); v != "" {
		var ids []int64
		for _, s := range strings.Split(v, ",") {
			if id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
				ids = append(ids, id)
			}
		}
		c.TelegramBot.AdminChatIDs = ids
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		c.Debug = strings.EqualFold(v, "true") || v == "1"
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("config: server.port is empty")
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("config: auth.token_ttl_minutes must be positive, got %d", c.Auth.TokenTTLMinutes)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	if c.RateLimit.LoginPerMinute <= 0 {
		return fmt.Errorf("config: rate_limit.login_per_minute must be positive, got %d", c.RateLimit.LoginPerMinute)
	}
	return nil
}

// Addr адрес HTTP-сервера
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// TokenTTL время жизни токена
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}

// DatabaseURL строка подключения к PostgreSQL
func (c *Config) DatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Database.User, c.Database.Password),
		Host:   c.Database.Host + ":" + c.Database.Port,
		Path:   "/" + c.Database.Name,
	}
	return u.String()
}

func randomKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
