package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pricebot/internal/application"
	"pricebot/internal/config"
	"pricebot/internal/domain"
	infraconfig "pricebot/internal/infrastructure/config"
	httpserver "pricebot/internal/infrastructure/http"
	"pricebot/internal/infrastructure/httpx"
	"pricebot/internal/infrastructure/logx"
	"pricebot/internal/infrastructure/metrics"
	"pricebot/internal/infrastructure/pg"
	"pricebot/internal/infrastructure/provider"
	redisstore "pricebot/internal/infrastructure/redis"
	"pricebot/internal/infrastructure/telegram"
	"pricebot/internal/infrastructure/worker"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StateBackend is the configured live-message store plus its readiness probe.
type StateBackend struct {
	Name  string
	Store application.StateStore
	Ready func(ctx context.Context) error
}

// App is everything cmd/pricebot needs to run.
type App struct {
	Config config.Config
	Log    *zap.Logger
	Worker *worker.PollWorker
	// HTTP is nil when HTTP_ADDR=off.
	HTTP *http.Server
}

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() (config.Config, error) { return config.LoadValidated() }

func ProvideHTTPClient(cfg config.Config) *httpx.Client {
	c := httpx.New(cfg.RequestTimeout)
	c.UserAgent = "pricebot/1.0"
	return c
}

func ProvidePriceFetcher(cfg config.Config, c *httpx.Client) (application.PriceFetcher, error) {
	asset := domain.Asset{ID: cfg.CoinID, Symbol: cfg.CoinSymbol, Name: cfg.CoinName}
	switch cfg.PriceProvider {
	case "", "coingecko":
		return &provider.CoinGeckoProvider{BaseURL: cfg.CoinGeckoBase, Asset: asset, Client: c}, nil
	case "fake":
		return provider.NewFake(asset, 0.5234, 0.4811, 1.25), nil
	default:
		return nil, fmt.Errorf("unsupported PRICE_PROVIDER=%q", cfg.PriceProvider)
	}
}

func ProvideMessenger(cfg config.Config, c *httpx.Client) (application.Messenger, error) {
	chat, err := telegram.ParseChat(cfg.ChatID)
	if err != nil {
		return nil, fmt.Errorf("parse TG_CHAT_ID: %w", err)
	}
	return telegram.New(cfg.BotToken, cfg.TelegramEndpoint, chat, c.HTTP), nil
}

func ProvideStateBackend(ctx context.Context, cfg config.Config, log *zap.Logger) (StateBackend, func(), error) {
	switch cfg.StateBackend {
	case "", "memory":
		return StateBackend{Name: "memory", Store: &application.MemoryStateStore{}}, func() {}, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store := redisstore.New(client, cfg.StateKey)
		if err := waitReady(ctx, store.Ping); err != nil {
			_ = client.Close()
			return StateBackend{}, func() {}, fmt.Errorf("redis not ready: %w", err)
		}
		cleanup := func() {
			log.Info("closing redis")
			_ = client.Close()
		}
		return StateBackend{Name: "redis", Store: store, Ready: store.Ping}, cleanup, nil

	case "pg":
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return StateBackend{}, func() {}, err
		}
		if err := pg.RunMigrations(ctx, db); err != nil {
			db.Close()
			return StateBackend{}, func() {}, err
		}
		repo := pg.NewStateRepo(db, cfg.ChatID)
		cleanup := func() {
			log.Info("closing pg")
			db.Close()
		}
		return StateBackend{Name: "pg", Store: repo, Ready: repo.Ping}, cleanup, nil

	default:
		return StateBackend{}, func() {}, fmt.Errorf("unsupported STATE_BACKEND=%q", cfg.StateBackend)
	}
}

// waitReady retries ping with exponential backoff until it succeeds or the
// startup window closes.
func waitReady(ctx context.Context, ping func(context.Context) error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 250 * time.Millisecond
	exp.MaxInterval = 2 * time.Second
	exp.MaxElapsedTime = infraconfig.DefaultStoreReadyWithin
	return backoff.Retry(func() error { return ping(ctx) }, backoff.WithContext(exp, ctx))
}

func ProvideMetrics() *metrics.Recorder { return metrics.New() }

func ProvideService(cfg config.Config, f application.PriceFetcher, m application.Messenger, rec *metrics.Recorder, log *zap.Logger) *application.Service {
	clock := application.SystemClock()
	pub := application.NewPublisher(m, application.PublisherConfig{MaxAge: cfg.MessageMaxAge, Pin: cfg.PinMessage}, clock, log)
	return application.NewService(f, application.NewRenderer(clock), pub,
		application.WithClock(clock),
		application.WithObserver(rec),
		application.WithLogger(log),
	)
}

func ProvideWorker(cfg config.Config, svc *application.Service, sb StateBackend, log *zap.Logger) *worker.PollWorker {
	return &worker.PollWorker{
		Cycles:    svc,
		Store:     sb.Store,
		PollEvery: cfg.PollInterval,
		Log:       log,
	}
}

func ProvideHTTPServer(cfg config.Config, sb StateBackend, rec *metrics.Recorder) *http.Server {
	if !cfg.HTTPEnabled() {
		return nil
	}
	srv := httpserver.NewServer(sb.Store, application.SystemClock(), cfg.MessageMaxAge)
	srv.SetReadyCheck(sb.Ready)
	srv.SetMetricsHandler(rec.Handler())
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpserver.NewRouter(srv),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func ProvideApp(cfg config.Config, log *zap.Logger, w *worker.PollWorker, srv *http.Server) *App {
	return &App{Config: cfg, Log: log, Worker: w, HTTP: srv}
}
