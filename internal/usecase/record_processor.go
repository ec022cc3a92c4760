package usecase

import (
	"context"
	"fmt"
	"time"

	"VitalPull/internal/domain/models"
	drepo "VitalPull/internal/domain/repository"
)

// RecordProcessor routes ingested records to the configured backend: "kafka"
// publishes to the records topic for asynchronous storage, "store" upserts
// directly.
type RecordProcessor struct {
	pub     drepo.Publisher
	store   drepo.RecordStore
	metrics drepo.Metrics
	backend string
}

func NewRecordProcessor(pub drepo.Publisher, store drepo.RecordStore, metrics drepo.Metrics, backend string) *RecordProcessor {
	return &RecordProcessor{pub: pub, store: store, metrics: metrics, backend: backend}
}

// Process routes a single record.
func (p *RecordProcessor) Process(ctx context.Context, rec *models.Record) error {
	if rec == nil {
		return fmt.Errorf("record is nil")
	}

	start := time.Now()
	var err error
	switch p.backend {
	case "kafka":
		err = p.pub.Publish(ctx, rec)
	case "store":
		err = p.store.Upsert(ctx, rec)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}
	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process record: %w", err)
	}

	p.metrics.RecordIngest(p.backend, rec.UserID)
	p.metrics.RecordLatency("process", time.Since(start).Seconds())
	return nil
}

// ProcessBatch routes multiple records in one backend call.
func (p *RecordProcessor) ProcessBatch(ctx context.Context, recs []*models.Record) error {
	if len(recs) == 0 {
		return nil
	}

	start := time.Now()
	var err error
	switch p.backend {
	case "kafka":
		err = p.pub.PublishBatch(ctx, recs)
	case "store":
		err = p.store.UpsertBatch(ctx, recs)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}
	if err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process batch: %w", err)
	}

	for _, rec := range recs {
		p.metrics.RecordIngest(p.backend, rec.UserID)
	}
	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())
	return nil
}

// Close closes underlying resources if available.
func (p *RecordProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}
