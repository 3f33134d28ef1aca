package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()
	payload := []byte(`{"risk_score":0.82}`)

	evt := NewBaseEvent("risk.prediction.completed", aggregateID, "risk_prediction", payload)

	assert.NotEqual(t, uuid.Nil, evt.EventID())
	assert.Equal(t, "risk.prediction.completed", evt.EventType())
	assert.Equal(t, aggregateID, evt.AggregateID())
	assert.Equal(t, "risk_prediction", evt.AggregateType())
	assert.Equal(t, payload, evt.Payload())
	assert.WithinDuration(t, time.Now().UTC(), evt.OccurredAt(), time.Second)
}

func TestNewBaseEvent_UniqueIDs(t *testing.T) {
	aggregateID := uuid.New()

	a := NewBaseEvent("risk.prediction.completed", aggregateID, "risk_prediction", nil)
	b := NewBaseEvent("risk.prediction.completed", aggregateID, "risk_prediction", nil)

	assert.NotEqual(t, a.EventID(), b.EventID())
}

func TestEventCollector_Record(t *testing.T) {
	var collector EventCollector

	evt := NewBaseEvent("risk.high_risk.detected", uuid.New(), "risk_prediction", nil)
	collector.Record(evt)

	assert.Len(t, collector.Events(), 1)
	assert.Equal(t, evt.EventID(), collector.Events()[0].EventID())
}

func TestEventCollector_ClearEvents(t *testing.T) {
	var collector EventCollector

	collector.Record(NewBaseEvent("risk.prediction.completed", uuid.New(), "risk_prediction", nil))
	collector.Record(NewBaseEvent("risk.high_risk.detected", uuid.New(), "risk_prediction", nil))

	cleared := collector.ClearEvents()

	assert.Len(t, cleared, 2)
	assert.Empty(t, collector.Events())
}

func TestEventCollector_EventsDoesNotClear(t *testing.T) {
	var collector EventCollector

	collector.Record(NewBaseEvent("risk.prediction.completed", uuid.New(), "risk_prediction", nil))

	_ = collector.Events()
	assert.Len(t, collector.Events(), 1)
}
