//go:build wireinject
// +build wireinject

package di

import (
	"VitalPull/pkg/config"
	"VitalPull/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient services
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideRecordStore,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvideRecordPublisher,
		ProvideWearableStream,

		// Engine
		ProvideEngine,
		ProvideTrustEngine,
		ProvideAnomalyDetector,

		// Use cases
		ProvideRecordProcessor,
		ProvideRecordCollector,
		ProvideKafkaRecordsHandler,
		ProvideInsights,

		// HTTP surface
		ProvideInsightsCache,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
