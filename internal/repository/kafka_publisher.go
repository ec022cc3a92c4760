package repository

import (
	"context"

	"VitalPull/internal/domain/models"
	"VitalPull/internal/domain/repository"
	pkgkafka "VitalPull/pkg/kafka"
)

// KafkaPublisher publishes health records to the ingestion topic. Messages
// are keyed by user so a user's series stays ordered within a partition.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, rec *models.Record) error {
	return p.producer.Publish(ctx, p.topic, []byte(rec.UserID), models.ToAPI(*rec))
}

func (p *KafkaPublisher) PublishBatch(ctx context.Context, recs []*models.Record) error {
	msgs := make([]pkgkafka.Message, 0, len(recs))
	for _, rec := range recs {
		if rec == nil {
			continue
		}
		msgs = append(msgs, pkgkafka.Message{
			Key:   []byte(rec.UserID),
			Value: models.ToAPI(*rec),
		})
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

var _ repository.Publisher = (*KafkaPublisher)(nil)
