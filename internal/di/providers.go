package di

import (
	"fmt"

	"VitalPull/internal/domain/repository"
	"VitalPull/internal/domain/service"
	"VitalPull/internal/handler/api"
	mid "VitalPull/internal/middleware"
	internalrepo "VitalPull/internal/repository"
	icache "VitalPull/internal/service/cache"
	"VitalPull/internal/service/wearable"
	"VitalPull/internal/services/analytics"
	"VitalPull/internal/usecase"
	pkgch "VitalPull/pkg/clickhouse"
	"VitalPull/pkg/config"
	xhttp "VitalPull/pkg/http"
	pkgkafka "VitalPull/pkg/kafka"
	applogger "VitalPull/pkg/logger"
	"VitalPull/pkg/metrics"
	"VitalPull/pkg/server"

	"github.com/labstack/echo/v4"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Logging.Level
	if level == "" {
		level = "info"
	}
	format := "json"
	if cfg.Logging.Pretty {
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRecordStore creates the configured storage backend. Schema
// initialization is deferred to App.Run so startup failures surface through
// the app lifecycle.
func ProvideRecordStore(cfg *config.Config) (repository.RecordStore, error) {
	switch cfg.Storage.Type {
	case "sqlite":
		return internalrepo.NewSQLiteStore(cfg.Storage.SQLite.Path)
	case "clickhouse":
		ch := cfg.Storage.ClickHouse
		client, err := pkgch.NewClient(
			pkgch.WithHost(ch.Host),
			pkgch.WithPort(ch.Port),
			pkgch.WithDatabase(ch.Database),
			pkgch.WithCredentials(ch.User, ch.Password),
			pkgch.WithMaxConnections(10, 5),
			pkgch.WithHTTP(ch.UseHTTP),
			pkgch.WithAsyncInsert(ch.AsyncInsert, ch.WaitForAsync),
			pkgch.WithTimeouts(ch.DialTimeout, ch.ReadTimeout, ch.WriteTimeout),
			pkgch.WithMaxExecutionTime(ch.MaxExecutionTime),
		)
		if err != nil {
			return nil, fmt.Errorf("clickhouse client: %w", err)
		}
		return internalrepo.NewClickHouseStore(client, ch.Database), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Storage.Type)
	}
}

// ProvideKafkaProducer creates a Kafka producer when the ingest path needs
// one; a nil producer means records are upserted directly.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Ingest.Backend != "kafka" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideRecordPublisher creates the Kafka publisher repository.
func ProvideRecordPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML. When
// ingestion bypasses Kafka there is nothing to consume.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if cfg.Ingest.Backend != "kafka" {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaRecordsHandler registers the handler for the records topic.
func ProvideKafkaRecordsHandler(store repository.RecordStore, m repository.Metrics, cfg *config.Config) *usecase.KafkaRecordsHandler {
	return usecase.NewKafkaRecordsHandler(cfg.Kafka.Topic, store, m)
}

// ProvideWearableStream creates the vendor WebSocket stream when enabled.
func ProvideWearableStream(cfg *config.Config) repository.TelemetryStream {
	if !cfg.Stream.Enabled {
		return nil
	}
	return wearable.New(
		cfg.Stream.Token,
		cfg.Stream.WebSocketURL,
		cfg.Stream.Users,
		cfg.Stream.ReconnectDelay,
		cfg.Stream.PingInterval,
	)
}

// ProvideRecordProcessor creates the record routing use case.
func ProvideRecordProcessor(
	pub repository.Publisher,
	store repository.RecordStore,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.RecordProcessor {
	return usecase.NewRecordProcessor(pub, store, m, cfg.Ingest.Backend)
}

// ProvideRecordCollector creates the stream collector use case.
func ProvideRecordCollector(
	stream repository.TelemetryStream,
	processor *usecase.RecordProcessor,
	m repository.Metrics,
) *usecase.RecordCollector {
	if stream == nil {
		return nil
	}
	// Throttle and buffer between WebSocket and the backend
	pipe := mid.NewRealtimePipeline(processor, m,
		mid.WithMaxRPS(50),
		mid.WithBufferSize(2000),
	)
	return usecase.NewRecordCollector(stream, processor, m, pipe)
}

// ProvideEngine creates the scoring engine.
func ProvideEngine(cfg *config.Config) *analytics.Engine {
	return analytics.NewEngine(analytics.WithWindow(cfg.Engine.BaselineWindow))
}

// ProvideTrustEngine exposes the engine as the trust-scoring interface.
func ProvideTrustEngine(e *analytics.Engine) service.TrustEngine { return e }

// ProvideAnomalyDetector exposes the engine as the anomaly-detection interface.
func ProvideAnomalyDetector(e *analytics.Engine) service.AnomalyDetector { return e }

// ProvideInsights creates the insights orchestration use case.
func ProvideInsights(
	store repository.RecordStore,
	trust service.TrustEngine,
	anomaly service.AnomalyDetector,
	m repository.Metrics,
) *usecase.Insights {
	return usecase.NewInsights(store, trust, anomaly, m)
}

// ProvideInsightsCache picks the response cache backend.
func ProvideInsightsCache(cfg *config.Config) icache.BytesCache {
	if cfg.Engine.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Engine.Redis.Addr,
			Password: cfg.Engine.Redis.Password,
			DB:       cfg.Engine.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// compositeHandler registers several route groups on one Echo instance.
type compositeHandler struct {
	handlers []xhttp.Handler
}

func (c compositeHandler) RegisterRoutes(e *echo.Echo) {
	for _, h := range c.handlers {
		h.RegisterRoutes(e)
	}
}

// ProvideHTTPHandler builds the record and insights route handlers sharing
// one response cache.
func ProvideHTTPHandler(
	l *applogger.Logger,
	proc *usecase.RecordProcessor,
	store repository.RecordStore,
	insights *usecase.Insights,
	cache icache.BytesCache,
	cfg *config.Config,
) xhttp.Handler {
	rh := api.NewRecordsEchoHandler(l, proc, store)
	rh.SetCache(cache)

	ih := api.NewInsightsEchoHandler(l, insights)
	ih.SetCache(cache)
	if ttl := cfg.Engine.CacheTTL.Trust; ttl > 0 {
		ih.SetCacheTTL(ttl)
	}

	return compositeHandler{handlers: []xhttp.Handler{rh, ih}}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	collector *usecase.RecordCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaRecordsHandler,
	store repository.RecordStore,
	processor *usecase.RecordProcessor,
	httpHandler xhttp.Handler,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	app := server.New(cfg, collector, consumer, kh, store)
	app.SetHTTPHandler(httpHandler)
	app.RecordProc = processor
	return app
}
