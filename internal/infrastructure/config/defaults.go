package config

import "time"

const (
	DefaultHTTPAddr         = ":8080"
	DefaultShutdownTimeout  = 10 * time.Second
	DefaultPollInterval     = 60 * time.Second
	DefaultMessageMaxAge    = 24 * time.Hour
	DefaultRequestTimeout   = 10 * time.Second
	DefaultPGMaxConns       = 2
	DefaultPGMinConns       = 1
	DefaultStoreReadyWithin = 15 * time.Second
	DefaultStateKey         = "pricebot:live_message"
	DefaultTelegramEndpoint = "https://api.telegram.org/bot%s/%s"
	DefaultCoinGeckoBase    = "https://api.coingecko.com"
)
