package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/iwtcode/mechanismAdapter/models"
)

const (
	mqttConnectTimeout = 10 * time.Second
	mqttQuiesceMs      = 250
)

type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTTPublisher публикует снимки в топик MQTT с QoS 0.
type MQTTPublisher struct {
	client mqttClient
	topic  string
}

// NewMQTTPublisher подключается к брокеру. Пустой clientID заменяется случайным.
func NewMQTTPublisher(broker, topic, clientID string) (*MQTTPublisher, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, ErrMissingTopic
	}
	if clientID == "" {
		clientID = "mechanism-" + uuid.NewString()
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(mqttConnectTimeout)
	client := mqtt.NewClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, fmt.Errorf("mqtt connect to %s: timeout", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", broker, err)
	}
	return &MQTTPublisher{client: client, topic: topic}, nil
}

func (p *MQTTPublisher) Publish(ctx context.Context, snapshot *models.Snapshot) error {
	payload, err := encode(snapshot)
	if err != nil {
		return err
	}

	token := p.client.Publish(p.topic, 0, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish: %w", err)
	}
	return nil
}

func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(mqttQuiesceMs)
	return nil
}
