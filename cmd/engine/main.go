package main

import (
	"context"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/joripage/lob-engine/config"
	"github.com/joripage/lob-engine/pkg/cache"
	"github.com/joripage/lob-engine/pkg/engine"
	"github.com/joripage/lob-engine/pkg/engine/riskrule"
	"github.com/joripage/lob-engine/pkg/feed"
	redis_wrapper "github.com/joripage/lob-engine/pkg/infra/redis"
	"github.com/joripage/lob-engine/pkg/logging"
	"github.com/joripage/lob-engine/pkg/stream"
)

func main() {
	var configFile string
	var logLevel string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.StringVar(&logLevel, "log-level", "info", "Specify log level")
	flag.Parse()

	logger, err := logging.Init(logLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // nolint

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	go func() {
		_ = http.ListenAndServe("localhost:6060", nil)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	eng := engine.NewEngine()
	if cfg.Risk != nil {
		if cfg.Risk.MaxOrderQuantity > 0 {
			eng.Use(riskrule.NewMaxQuantityRule(cfg.Risk.MaxOrderQuantity))
		}
		if len(cfg.Risk.TickSizes) > 0 {
			eng.Use(riskrule.NewTickSizeRule(cfg.Risk.TickSizes))
		}
	}

	if cfg.Kafka != nil {
		producer := stream.NewProducer(stream.ProducerConfig{Brokers: cfg.Kafka.Brokers})
		defer producer.Close() // nolint
		publisher := stream.NewMarketDataPublisher(producer, cfg.Kafka.Publisher())
		publisher.Attach(eng.Books())
	}

	if cfg.Redis != nil {
		redisClient, err := redis_wrapper.InitRedis(cfg.Redis)
		if err != nil {
			zap.S().Errorf("init redis fail: %v", err)
			panic(err)
		}
		cache.NewTopOfBookCache(redisClient, cfg.Redis.SnapshotTTL()).Attach(eng.Books())
	}

	if cfg.Nats != nil {
		jsPub, err := engine.NewJetStreamPublisher(*cfg.Nats)
		if err != nil {
			zap.S().Errorf("init jetstream fail: %v", err)
			panic(err)
		}
		defer jsPub.Close()
		eng.SetEventPublisher(jsPub)
	}

	mdFeed := feed.NewFeed()
	scale := int32(2)
	if cfg.Feed != nil {
		if cfg.Feed.PriceScale != 0 {
			scale = cfg.Feed.PriceScale
		}
		for _, symbol := range cfg.Feed.Symbols {
			mdFeed.Subscribe(symbol)
		}
	}
	mdFeed.RegisterHandler(feed.NewBookHandler(eng.Books(), scale))
	mdFeed.Start(ctx)

	zap.S().Infof("%s started, press ctrl+c to exit", cfg.ServiceName)

	<-sigs
	zap.S().Info("shutting down...")

	mdFeed.Stop()
	cancel()

	zap.S().Info("exited cleanly")
}
