package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/joripage/lob-engine/config"
	"github.com/joripage/lob-engine/pkg/engine/repo"
	"github.com/joripage/lob-engine/pkg/engine/worker"
	postgres_wrapper "github.com/joripage/lob-engine/pkg/infra/postgres"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	db, err := postgres_wrapper.InitPostgresWithBackoff(cfg.EngineDB)
	if err != nil {
		zap.S().Errorf("init db fail: %v", err)
		panic(err)
	}

	w := worker.NewWorker(repo.NewRepo(db))

	nc, err := nats.Connect(cfg.Nats.URL)
	if err != nil {
		zap.S().Errorf("connect nats fail: %v", err)
		panic(err)
	}
	defer nc.Close()

	js, err := nc.JetStream()
	if err != nil {
		panic(err)
	}
	if _, err := js.AddStream(&nats.StreamConfig{
		Name:     cfg.Nats.Stream,
		Subjects: []string{cfg.Nats.Stream + ".*"},
	}); err != nil {
		zap.S().Warnf("add stream: %v", err)
	}

	go func() {
		if err := w.StartEventConsumer(ctx, js, cfg.Nats.Subject, "lob_event_worker"); err != nil {
			zap.S().Errorf("event consumer stopped: %v", err)
		}
	}()

	if cfg.Kafka != nil {
		consumer := stream.NewConsumer(stream.ConsumerConfig{
			Brokers: cfg.Kafka.Brokers,
			GroupID: cfg.Kafka.GroupID,
			Topic:   cfg.Kafka.TradeTopic,
		})
		defer consumer.Close() // nolint
		go func() {
			if err := consumer.Run(ctx, w.HandleTradeMessage); err != nil {
				zap.S().Errorf("trade consumer stopped: %v", err)
			}
		}()
	}

	zap.S().Info("worker started, press ctrl+c to exit")

	<-sigs
	zap.S().Info("shutting down...")
	cancel()
}
