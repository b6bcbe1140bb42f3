package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	infraconfig "pricebot/internal/infrastructure/config"
)

// ErrConfigMissing is returned by Validate when a required variable is unset.
var ErrConfigMissing = errors.New("required configuration missing")

type Config struct {
	// Common
	Env      string
	LogLevel string
	HTTPAddr string
	// Telegram
	BotToken         string
	ChatID           string
	TelegramEndpoint string
	PinMessage       bool
	// Price provider
	PriceProvider  string
	CoinGeckoBase  string
	CoinID         string
	CoinSymbol     string
	CoinName       string
	RequestTimeout time.Duration
	// Loop
	PollInterval  time.Duration
	MessageMaxAge time.Duration
	RunOnce       bool
	// State
	StateBackend  string
	StateKey      string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func boolDef(s string, def bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

func durMS(key string, def time.Duration) time.Duration {
	ms := atoiDef(os.Getenv(key), int(def/time.Millisecond))
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:              getEnv("ENV", "local"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		HTTPAddr:         getEnv("HTTP_ADDR", infraconfig.DefaultHTTPAddr),
		BotToken:         os.Getenv("TG_BOT_TOKEN"),
		ChatID:           os.Getenv("TG_CHAT_ID"),
		TelegramEndpoint: getEnv("TG_API_ENDPOINT", infraconfig.DefaultTelegramEndpoint),
		PinMessage:       boolDef(os.Getenv("PIN_MESSAGE"), false),
		PriceProvider:    getEnv("PRICE_PROVIDER", "coingecko"),
		CoinGeckoBase:    getEnv("COINGECKO_BASE", infraconfig.DefaultCoinGeckoBase),
		CoinID:           getEnv("COIN_ID", "ripple"),
		CoinSymbol:       getEnv("COIN_SYMBOL", "XRP"),
		CoinName:         getEnv("COIN_NAME", "Ripple"),
		RequestTimeout:   durMS("REQUEST_TIMEOUT_MS", infraconfig.DefaultRequestTimeout),
		PollInterval:     durMS("POLL_INTERVAL_MS", infraconfig.DefaultPollInterval),
		MessageMaxAge:    durMS("MESSAGE_MAX_AGE_MS", infraconfig.DefaultMessageMaxAge),
		RunOnce:          boolDef(os.Getenv("RUN_ONCE"), false),
		StateBackend:     getEnv("STATE_BACKEND", "memory"),
		StateKey:         getEnv("STATE_KEY", infraconfig.DefaultStateKey),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          atoiDef(getEnv("REDIS_DB", "0"), 0),
	}
}

// HTTPEnabled is false when HTTP_ADDR=off.
func (c Config) HTTPEnabled() bool {
	return c.HTTPAddr != "" && c.HTTPAddr != "off"
}

// LoadValidated is Load followed by Validate.
func LoadValidated() (Config, error) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the variables the bot cannot start without.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.BotToken) == "" {
		missing = append(missing, "TG_BOT_TOKEN")
	}
	if strings.TrimSpace(c.ChatID) == "" {
		missing = append(missing, "TG_CHAT_ID")
	}
	if c.StateBackend == "pg" && c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigMissing, strings.Join(missing, ", "))
	}
	return nil
}
