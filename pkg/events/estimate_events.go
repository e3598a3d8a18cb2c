package events

import "time"

const (
	TypeEstimateCreated = "ESTIMATE_CREATED"
	TypeEstimateFailed  = "ESTIMATE_FAILED"
	TypeProductIngested = "PRODUCT_INGESTED"
)

// NewEstimateCreatedEvent fires after a session receives a completed
// estimate.
func NewEstimateCreatedEvent(sessionID string, budget, totalPrice int) Event {
	return BaseEvent{
		Type: TypeEstimateCreated,
		Data: map[string]interface{}{
			"session_id":  sessionID,
			"budget":      budget,
			"total_price": totalPrice,
		},
		OccurredAt: time.Now(),
	}
}

// NewEstimateFailedEvent fires when the pipeline could not produce a
// structured estimate for a session.
func NewEstimateFailedEvent(sessionID, reason string) Event {
	return BaseEvent{
		Type: TypeEstimateFailed,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}

// NewProductIngestedEvent fires after a catalog row is created or
// updated, so downstream indexing can refresh its embedding.
func NewProductIngestedEvent(productID, category string) Event {
	return BaseEvent{
		Type: TypeProductIngested,
		Data: map[string]interface{}{
			"product_id": productID,
			"category":   category,
		},
		OccurredAt: time.Now(),
	}
}
