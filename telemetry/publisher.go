// Package telemetry публикует снимки периодического прохода во внешние приемники.
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/iwtcode/mechanismAdapter/models"
	"github.com/sirupsen/logrus"
)

// Publisher отправляет снимки механизмов в приемник телеметрии.
type Publisher interface {
	Publish(ctx context.Context, snapshot *models.Snapshot) error
	Close() error
}

const (
	SinkLog   = "log"
	SinkKafka = "kafka"
	SinkMQTT  = "mqtt"
	SinkNone  = "none"
)

var (
	ErrUnknownSink  = errors.New("unknown telemetry sink")
	ErrNilSnapshot  = errors.New("nil snapshot")
	ErrMissingTopic = errors.New("telemetry topic must not be empty")
)

// Config описывает выбранный приемник и параметры подключения к нему.
type Config struct {
	Sink         string
	KafkaBroker  string
	KafkaTopic   string
	MQTTBroker   string
	MQTTTopic    string
	MQTTClientID string
}

// New создает публикатор по имени приемника. Пустое имя означает журнал.
func New(cfg Config, logger logrus.FieldLogger) (Publisher, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Sink)) {
	case "", SinkLog:
		return NewLogPublisher(logger), nil
	case SinkNone:
		return Discard{}, nil
	case SinkKafka:
		p, err := NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
		if err != nil {
			return nil, err
		}
		return p, nil
	case SinkMQTT:
		p, err := NewMQTTPublisher(cfg.MQTTBroker, cfg.MQTTTopic, cfg.MQTTClientID)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSink, cfg.Sink)
	}
}

// Discard молча отбрасывает снимки.
type Discard struct{}

func (Discard) Publish(context.Context, *models.Snapshot) error { return nil }
func (Discard) Close() error                                    { return nil }

func encode(snapshot *models.Snapshot) ([]byte, error) {
	if snapshot == nil {
		return nil, ErrNilSnapshot
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return payload, nil
}
