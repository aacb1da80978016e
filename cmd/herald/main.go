// Command herald posts a Telegram message for every new eCash block and a
// daily summary of the last 24 hours.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/classify"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/ecash"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/price"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/service"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/telegram"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/tokencache"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/metrics"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type config struct {
	RPCURL        string `long:"rpc-url" env:"HERALD_RPC_URL" description:"Bitcoin ABC RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser       string `long:"rpc-user" env:"HERALD_RPC_USER" description:"Bitcoin ABC RPC username"`
	RPCPassword   string `long:"rpc-password" env:"HERALD_RPC_PASSWORD" description:"Bitcoin ABC RPC password"`
	Network       string `long:"network" env:"HERALD_NETWORK" description:"network name" default:"mainnet"`
	ZMQAddr       string `long:"zmq-addr" env:"HERALD_ZMQ_ADDR" description:"zmqpubhashblock address, polls the node when empty"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"HERALD_CLICKHOUSE_DSN" description:"blockinsight7000 ClickHouse DSN used for previous outputs"`

	TelegramToken     string `long:"telegram-token" env:"HERALD_TELEGRAM_TOKEN" description:"Telegram bot token"`
	TelegramAPI       string `long:"telegram-api" env:"HERALD_TELEGRAM_API" description:"Telegram Bot API root" default:"https://api.telegram.org"`
	ChatID            string `long:"chat-id" env:"HERALD_CHAT_ID" description:"chat receiving block messages"`
	DailyChatID       string `long:"daily-chat-id" env:"HERALD_DAILY_CHAT_ID" description:"chat receiving daily summaries, defaults to chat-id"`
	MessagesPerMinute int    `long:"messages-per-minute" env:"HERALD_MESSAGES_PER_MINUTE" description:"telegram send rate" default:"20"`

	PriceURL string   `long:"price-url" env:"HERALD_PRICE_URL" description:"CoinGecko simple price endpoint" default:"https://api.coingecko.com/api/v3/simple/price"`
	Fiat     string   `long:"fiat" env:"HERALD_FIAT" description:"fiat currency of quotes" default:"usd"`
	Cryptos  []string `long:"crypto" env:"HERALD_CRYPTOS" env-delim:"," description:"TICKER:coingecko-id pairs to quote" default:"XEC:ecash" default:"BTC:bitcoin" default:"ETH:ethereum"`
	NoPrices bool     `long:"no-prices" env:"HERALD_NO_PRICES" description:"do not fetch prices"`

	DailyHour int  `long:"daily-hour" env:"HERALD_DAILY_HOUR" description:"UTC hour of the daily summary" default:"0"`
	NoDaily   bool `long:"no-daily" env:"HERALD_NO_DAILY" description:"do not post daily summaries"`
	DailyOnce bool `long:"daily-once" description:"post the summary of the last 24 hours and exit"`

	TopTokens   int    `long:"top-tokens" env:"HERALD_TOP_TOKENS" description:"tokens listed per summary" default:"5"`
	Notable     int    `long:"notable" env:"HERALD_NOTABLE" description:"largest transfers listed per summary" default:"3"`
	Workers     int    `long:"workers" env:"HERALD_WORKERS" description:"concurrent classification and RPC workers" default:"8"`
	StartHeight uint64 `long:"start-height" env:"HERALD_START_HEIGHT" description:"first block to herald, the next block when 0"`

	KnownMiners      []string `long:"known-miner" env:"HERALD_KNOWN_MINERS" env-delim:"," description:"script:name pairs naming mining pools"`
	TrackedAddresses []string `long:"tracked-address" env:"HERALD_TRACKED_ADDRESSES" env-delim:"," description:"addresses whose incoming transfers count as received"`

	MetricsAddr string `long:"metrics-addr" env:"HERALD_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	LogJSON     bool   `long:"log-json" env:"HERALD_LOG_JSON" description:"log JSON lines"`
	DryRun      bool   `long:"dry-run" env:"HERALD_DRY_RUN" description:"log messages instead of sending them"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to load .env", zap.Error(err))
	}
	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if cfg.LogJSON {
		if logger, err = zap.NewProduction(); err != nil {
			panic("can't initialize zap logger: " + err.Error())
		}
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("herald failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	if !cfg.DryRun && (cfg.TelegramToken == "" || cfg.ChatID == "") {
		return errors.New("telegram token and chat id are required unless --dry-run is set")
	}
	miners, err := parseKnownMiners(cfg.KnownMiners)
	if err != nil {
		return err
	}
	tracked, err := trackedScripts(cfg.TrackedAddresses)
	if err != nil {
		return err
	}

	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	rpc, err := ecash.NewRPCClient(rpcClient, metrics.NewRPCClient(cfg.Network))
	if err != nil {
		return err
	}

	indexerOpts := []ecash.Option{ecash.WithWorkers(cfg.Workers)}
	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, clickhouse.DefaultCoin, cfg.Network, metrics.NewClickhouseRepository())
		if err != nil {
			return fmt.Errorf("init repository: %w", err)
		}
		defer func() {
			_ = repo.Close()
		}()
		indexerOpts = append(indexerOpts, ecash.WithPrevOutputSource(repo))
	}
	indexer, err := ecash.NewIndexer(rpc, logger, indexerOpts...)
	if err != nil {
		return err
	}

	newCache, err := tokencache.NewFactory(metrics.NewTokenCache())
	if err != nil {
		return err
	}
	classifier, err := classify.New(func() classify.MetadataCache { return newCache() }, indexer, metrics.NewClassifier(), logger,
		classify.WithKnownMiners(miners...),
		classify.WithTrackedScripts(tracked...),
	)
	if err != nil {
		return err
	}

	priceCfg := price.Config{
		BaseURL:   cfg.PriceURL,
		Fiat:      cfg.Fiat,
		Precision: price.DefaultConfig().Precision,
	}
	if priceCfg.Cryptos, err = price.ParseCryptos(cfg.Cryptos); err != nil {
		return err
	}
	var prices service.PriceSource
	if !cfg.NoPrices {
		client, err := price.NewClient(metrics.NewPrice(), logger)
		if err != nil {
			return err
		}
		prices = client
	}

	var delivery service.Delivery
	if cfg.DryRun {
		logger.Info("dry run, messages are logged instead of sent")
	} else {
		sender, err := telegram.NewSender(cfg.TelegramToken, cfg.MessagesPerMinute, metrics.NewDelivery(), logger,
			telegram.WithBaseURL(cfg.TelegramAPI),
		)
		if err != nil {
			return err
		}
		delivery = sender
	}

	blockCfg := service.Config{
		ChatID:    cfg.ChatID,
		Workers:   cfg.Workers,
		TopTokens: cfg.TopTokens,
		Notable:   cfg.Notable,
		Price:     priceCfg,
	}
	dailyCfg := blockCfg
	if cfg.DailyChatID != "" {
		dailyCfg.ChatID = cfg.DailyChatID
	}

	daily, err := service.NewDailySummaryService(indexer, classifier, prices, delivery, metrics.NewDailySummary(), dailyCfg, cfg.DailyHour, logger)
	if err != nil {
		return err
	}
	if cfg.DailyOnce {
		return daily.RunOnce(ctx, time.Now())
	}

	blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
	if err != nil {
		return err
	}
	herald, err := service.NewBlockHeraldService(indexer, classifier, prices, delivery, metrics.NewBlockHerald(), blockCfg, cfg.StartHeight, logger, blockSignal)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return herald.Run(ctx)
	})
	if !cfg.NoDaily {
		g.Go(func() error {
			return daily.Run(ctx)
		})
	}
	return g.Wait()
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
