// Command bot runs the Telegram token mention bot: it long-polls a single
// bot account, detects contract addresses in whitelisted chats and replies
// with token summaries.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"token-mention-bot/internal/config"
	"token-mention-bot/internal/domain"
	"token-mention-bot/internal/extract"
	"token-mention-bot/internal/observability"
	"token-mention-bot/internal/pipeline"
	"token-mention-bot/internal/provider"
	"token-mention-bot/internal/storage"
	chstore "token-mention-bot/internal/storage/clickhouse"
	"token-mention-bot/internal/storage/memory"
	"token-mention-bot/internal/storage/migrations"
	pgstore "token-mention-bot/internal/storage/postgres"
	"token-mention-bot/internal/telegram"
	"token-mention-bot/internal/throttle"
)

var configPath = flag.String("config", "config.yaml", "path to the YAML config file")

func main() {
	flag.Parse()

	boot, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	cfg := config.Load(*configPath, boot)

	logger, err := newLogger(cfg.Log)
	if err != nil {
		boot.Fatal("failed to build logger", zap.Error(err))
	}
	defer logger.Sync()

	token := config.BotToken()
	if token == "" {
		logger.Fatal("BOT_TOKEN environment variable is not set")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Storage is optional: without DSNs the bot keeps everything in memory
	// and loses history on restart, which is fine for small deployments.
	var mentionLog storage.MentionLogStore = memory.NewMentionLogStore()
	if cfg.PostgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer pool.Close()

		if err := migrations.RunPostgres(ctx, pool); err != nil {
			logger.Fatal("failed to apply postgres migrations", zap.Error(err))
		}
		mentionLog = pgstore.NewMentionLogStore(pool)
		logger.Info("mention log backed by postgres")
	}

	var lookupEvents storage.LookupEventStore = memory.NewLookupEventStore()
	if cfg.ClickhouseDSN != "" {
		conn, err := chstore.NewConn(ctx, cfg.ClickhouseDSN)
		if err != nil {
			logger.Fatal("failed to connect to clickhouse", zap.Error(err))
		}
		defer conn.Close()

		if err := migrations.RunClickhouse(ctx, conn); err != nil {
			logger.Fatal("failed to apply clickhouse migrations", zap.Error(err))
		}
		lookupEvents = chstore.NewLookupEventStore(conn)
		logger.Info("lookup events backed by clickhouse")
	}

	translator := provider.NewTranslator(
		provider.WithTranslatorBaseURL(cfg.Providers.TranslateBaseURL))

	jupiter := provider.NewJupiterClient(logger,
		provider.WithJupiterBaseURL(cfg.Providers.JupiterBaseURL),
		provider.WithJupiterTranslator(translator))

	evmClients := make([]provider.Client, 0, len(cfg.EVMChains))
	for _, chain := range cfg.EVMChains {
		evmClients = append(evmClients, provider.NewGeckoClient(chain, logger,
			provider.WithGeckoBaseURL(cfg.Providers.GeckoBaseURL),
			provider.WithGeckoTranslator(translator)))
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, logger)
	}

	api, err := bot.New(token)
	if err != nil {
		logger.Fatal("failed to create telegram client", zap.Error(err))
	}

	me, err := api.GetMe(ctx)
	if err != nil {
		logger.Fatal("failed to identify bot account", zap.Error(err))
	}
	logger.Info("authorized", zap.String("username", me.Username), zap.Int64("id", me.ID))

	pipe := pipeline.New(pipeline.Options{
		Extractor: extract.New(),
		Resolvers: map[domain.ChainFamily]provider.Resolver{
			domain.FamilySolana: provider.Single(jupiter),
			domain.FamilyEVM:    provider.NewFallbackResolver(logger, evmClients...),
		},
		Cache:            throttle.NewCache(),
		Sender:           telegram.NewSender(api),
		Formatter:        telegram.NewFormatter(),
		MentionLog:       mentionLog,
		LookupEvents:     lookupEvents,
		WhitelistedChats: cfg.WhitelistedChats,
		SelfID:           me.ID,
		Log:              logger,
	})

	handler := telegram.NewHandler(api, pipe, logger)

	logger.Info("bot started",
		zap.Int("whitelisted_chats", len(cfg.WhitelistedChats)),
		zap.Int("evm_chains", len(cfg.EVMChains)))
	handler.Run(ctx)
	logger.Info("shutdown complete")
}

// serveMetrics exposes the Prometheus endpoint. Failures are logged, not
// fatal: the bot keeps working without metrics.
func serveMetrics(addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	logger.Info("serving metrics", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn("metrics server stopped", zap.Error(err))
	}
}

// newLogger builds the runtime logger from config. The console format uses
// the development encoder, json the production one.
func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
