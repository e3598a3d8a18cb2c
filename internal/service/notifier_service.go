package service

import (
	"context"
	"fmt"
	"strings"

	"pc-estimate-be/internal/pkg/logger"
	"pc-estimate-be/internal/websocket"
	"pc-estimate-be/pkg/events"
	pktNats "pc-estimate-be/pkg/nats"
)

// ProgressDelivery defines how session-scoped updates reach clients.
// Implemented by the websocket hub.
type ProgressDelivery interface {
	SendProgress(progress websocket.ProgressMessage)
}

// NotifierService bridges the NATS event bus to the websocket hub, so
// estimate outcomes published by other instances (or other services)
// still reach clients watching the session here.
type NotifierService struct {
	subscriber *pktNats.Subscriber
	delivery   ProgressDelivery
	logger     logger.ILogger
}

func NewNotifierService(sub *pktNats.Subscriber, delivery ProgressDelivery, log logger.ILogger) *NotifierService {
	return &NotifierService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotifierService) Start() {
	err := s.subscriber.Subscribe("events.>", "estimate-notifier-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotifierService", "Failed to start event subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotifierService", "Notifier started, listening to events.>", nil)
}

func (s *NotifierService) handleEvent(_ context.Context, event events.Event) error {
	// NATS subjects arrive as "events.<TYPE>".
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	payload := event.Payload()
	sessionID, _ := payload["session_id"].(string)
	if sessionID == "" {
		return nil // not a session-scoped event
	}

	switch typeCode {
	case events.TypeEstimateCreated:
		total, _ := payload["total_price"].(float64)
		s.delivery.SendProgress(websocket.ProgressMessage{
			SessionId: sessionID,
			Stage:     "ready",
			Detail:    fmt.Sprintf("total %d", int(total)),
		})
	case events.TypeEstimateFailed:
		reason, _ := payload["reason"].(string)
		s.delivery.SendProgress(websocket.ProgressMessage{
			SessionId: sessionID,
			Stage:     "failed",
			Detail:    reason,
		})
	}
	return nil
}
