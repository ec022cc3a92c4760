package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"VitalPull/internal/domain/models"
	domrepo "VitalPull/internal/domain/repository"
	pkgkafka "VitalPull/pkg/kafka"
)

// KafkaRecordsHandler consumes record messages from the ingestion topic and
// upserts them into storage.
type KafkaRecordsHandler struct {
	topic   string
	store   domrepo.RecordStore
	metrics domrepo.Metrics
}

func NewKafkaRecordsHandler(topic string, store domrepo.RecordStore, metrics domrepo.Metrics) *KafkaRecordsHandler {
	return &KafkaRecordsHandler{topic: topic, store: store, metrics: metrics}
}

func (h *KafkaRecordsHandler) Topic() string { return h.topic }

// Handle decodes one wire record and stores it. Null metric fields stay
// missing; they are never collapsed to zero.
func (h *KafkaRecordsHandler) Handle(ctx context.Context, b []byte) error {
	var m models.HealthRecordAPI
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if m.UserID == "" || m.Date == "" {
		h.metrics.RecordError("consumer_invalid")
		return fmt.Errorf("record missing user_id or date")
	}

	rec := models.FromAPI(m)
	start := time.Now()
	if err := h.store.Upsert(ctx, &rec); err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordLatency("store_upsert", time.Since(start).Seconds())
	h.metrics.RecordIngest("store", rec.UserID)
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaRecordsHandler)(nil)
