package telemetry

import (
	"context"
	"fmt"
	"strings"

	"github.com/iwtcode/mechanismAdapter/models"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher отправляет снимки в топик Kafka. Ключом сообщения служит
// идентификатор запуска, поэтому снимки одного запуска попадают в одну партицию.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher создает новый экземпляр продюсера Kafka
func NewKafkaPublisher(broker, topic string) (*KafkaPublisher, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, ErrMissingTopic
	}
	if strings.TrimSpace(broker) == "" {
		return nil, fmt.Errorf("kafka broker must not be empty")
	}
	writer := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(broker, ",")...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}
	return &KafkaPublisher{writer: writer}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, snapshot *models.Snapshot) error {
	payload, err := encode(snapshot)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(snapshot.RunID),
		Value: payload,
		Time:  snapshot.Timestamp,
	}); err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}

// Close закрывает соединение с Kafka
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
