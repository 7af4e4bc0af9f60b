package config

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/joripage/lob-engine/pkg/engine"
	postgres_wrapper "github.com/joripage/lob-engine/pkg/infra/postgres"
	redis_wrapper "github.com/joripage/lob-engine/pkg/infra/redis"
	"github.com/joripage/lob-engine/pkg/stream"
)

type KafkaConfig struct {
	Brokers        []string `yaml:"brokers"`
	TradeTopic     string   `yaml:"trade_topic"`
	TopOfBookTopic string   `yaml:"top_of_book_topic"`
	GroupID        string   `yaml:"group_id"`
}

func (c *KafkaConfig) Publisher() stream.PublisherConfig {
	return stream.PublisherConfig{
		TradeTopic:     c.TradeTopic,
		TopOfBookTopic: c.TopOfBookTopic,
	}
}

type RiskConfig struct {
	MaxOrderQuantity int64            `yaml:"max_order_quantity"`
	TickSizes        map[string]int64 `yaml:"tick_sizes"`
}

type FeedConfig struct {
	PriceScale int32    `yaml:"price_scale"`
	Symbols    []string `yaml:"symbols"`
}

type AppConfig struct {
	ServiceName string                           `yaml:"service_name"`
	EngineDB    *postgres_wrapper.PostgresConfig `yaml:"engine_db"`
	Redis       *redis_wrapper.RedisConfig       `yaml:"redis"`
	Kafka       *KafkaConfig                     `yaml:"kafka"`
	Nats        *engine.JetStreamConfig          `yaml:"nats"`
	Risk        *RiskConfig                      `yaml:"risk"`
	Feed        *FeedConfig                      `yaml:"feed"`
}

// Load reads the config file and expands ${VAR} references from the
// environment before parsing.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	sugar := zap.S().With("func", "config.Load", "filePath", filePath)
	sugar.Debug("load config...")

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}
	if err := yaml.Unmarshal(configBytes, cfg); err != nil {
		sugar.Error("failed to parse config file")
		return nil, err
	}

	return cfg, nil
}
