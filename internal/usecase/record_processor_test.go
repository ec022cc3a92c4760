package usecase

import (
	"context"
	"testing"

	"VitalPull/internal/domain/models"
)

func TestRecordProcessorStoreBackend(t *testing.T) {
	store := newMemStore()
	proc := NewRecordProcessor(nil, store, nopMetrics{}, "store")

	rec := models.Record{UserID: "u1", Date: "2025-01-01"}
	rec.Set(models.MetricSleepHours, 7.5)
	if err := proc.Process(context.Background(), &rec); err != nil {
		t.Fatalf("process: %v", err)
	}

	got, err := store.FetchUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if v, ok := got[0].Value(models.MetricSleepHours); !ok || v != 7.5 {
		t.Fatalf("sleep_hours = %v (%v), want 7.5", v, ok)
	}
}

func TestRecordProcessorUnknownBackend(t *testing.T) {
	proc := NewRecordProcessor(nil, newMemStore(), nopMetrics{}, "carrier-pigeon")
	rec := models.Record{UserID: "u1", Date: "2025-01-01"}
	if err := proc.Process(context.Background(), &rec); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestRecordProcessorNilRecord(t *testing.T) {
	proc := NewRecordProcessor(nil, newMemStore(), nopMetrics{}, "store")
	if err := proc.Process(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil record")
	}
}

func TestRecordProcessorBatch(t *testing.T) {
	store := newMemStore()
	proc := NewRecordProcessor(nil, store, nopMetrics{}, "store")

	recs := make([]*models.Record, 3)
	for i := range recs {
		r := models.Record{UserID: "u1", Date: "2025-01-0" + string(rune('1'+i))}
		r.Set(models.MetricSteps, float64(1000*i))
		recs[i] = &r
	}
	if err := proc.ProcessBatch(context.Background(), recs); err != nil {
		t.Fatalf("batch: %v", err)
	}
	got, _ := store.FetchUser(context.Background(), "u1")
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
}
