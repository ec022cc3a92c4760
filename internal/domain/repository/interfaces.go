package repository

import (
	"context"

	"VitalPull/internal/domain/models"
)

// TelemetryStream is a push source of daily records (wearable vendor feed).
type TelemetryStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Record, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// Publisher forwards records to the ingestion topic.
type Publisher interface {
	Publish(ctx context.Context, rec *models.Record) error
	PublishBatch(ctx context.Context, recs []*models.Record) error
	Close() error
}

// RecordStore persists daily records and serves them back ordered ascending
// by date per user, the invariant every engine operation assumes.
type RecordStore interface {
	Init(ctx context.Context) error // ensure schema, health checks
	Upsert(ctx context.Context, rec *models.Record) error
	UpsertBatch(ctx context.Context, recs []*models.Record) error
	FetchUser(ctx context.Context, userID string) ([]models.Record, error)
	// FetchCohort returns every record except the excluded user's,
	// ascending by (user, date). Only aggregate embeddings are ever
	// derived from it.
	FetchCohort(ctx context.Context, excludeUser string) ([]models.Record, error)
	Health(ctx context.Context) error
	Close() error
}

// Metrics records operational counters for ingestion and scoring.
type Metrics interface {
	RecordIngest(backend, userID string)
	RecordError(kind string)
	RecordAnomalyScore(userID string, score float64)
	RecordLatency(op string, seconds float64)
}
