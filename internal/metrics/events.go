package metrics

import (
	"context"

	"github.com/gracepath/gracepath-api/internal/event"
	"github.com/gracepath/gracepath-api/internal/logger"
)

// EventMetricsCollector subscribes to progression events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.XPAwarded,
		event.LevelUp,
		event.RewardUnlocked,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.XPAwarded:
		payload, err := event.DecodePayload[event.XPAwardedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecodeErr, "type", evt.Type, "error", err)
			return nil
		}
		XPAwards.WithLabelValues(string(payload.ActionType)).Inc()
		XPAwarded.WithLabelValues(string(payload.ActionType)).Add(float64(payload.Amount))

	case event.LevelUp:
		LevelUps.Inc()

	case event.RewardUnlocked:
		payload, err := event.DecodePayload[event.RewardUnlockedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecodeErr, "type", evt.Type, "error", err)
			return nil
		}
		RewardUnlocks.Add(float64(len(payload.RewardIDs)))
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
