package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannynguyen3011/draft-ztp/internal/domain/event"
	"github.com/dannynguyen3011/draft-ztp/pkg/kafka"
)

type capturingProducer struct {
	topic    string
	messages []kafka.Message
	err      error
}

func (p *capturingProducer) Publish(_ context.Context, topic string, messages ...kafka.Message) error {
	if p.err != nil {
		return p.err
	}
	p.topic = topic
	p.messages = append(p.messages, messages...)
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := &capturingProducer{}
	publisher := NewKafkaPublisher(producer, "risk.predictions", slog.Default())

	predictionID := uuid.New()
	evt := event.NewHighRiskDetected(event.HighRiskDetectedPayload{
		PredictionID: predictionID,
		RiskScore:    0.91,
		UserRole:     "guest",
	})

	err := publisher.Publish(context.Background(), evt)

	require.NoError(t, err)
	assert.Equal(t, "risk.predictions", producer.topic)
	require.Len(t, producer.messages, 1)

	msg := producer.messages[0]
	assert.Equal(t, predictionID.String(), string(msg.Key))
	assert.Equal(t, event.TypeHighRiskDetected, msg.Headers["event_type"])
	assert.Equal(t, event.AggregateTypePrediction, msg.Headers["aggregate_type"])

	var env envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, event.TypeHighRiskDetected, env.EventType)
	assert.Equal(t, predictionID.String(), env.AggregateID)
	assert.NotEmpty(t, env.Payload)
}

func TestKafkaPublisher_PropagatesProducerErrors(t *testing.T) {
	producer := &capturingProducer{err: fmt.Errorf("broker unreachable")}
	publisher := NewKafkaPublisher(producer, "risk.predictions", slog.Default())

	evt := event.NewPredictionCompleted(event.PredictionCompletedPayload{
		PredictionID: uuid.New(),
		RiskScore:    0.2,
		RiskLevel:    "low",
		MLPredicted:  true,
	})

	err := publisher.Publish(context.Background(), evt)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unreachable")
}
