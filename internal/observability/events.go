package observability

import "time"

const wsEventType = "ws_events"

// EventEnvelope frames every event this service publishes to the bus.
type EventEnvelope struct {
	EventType  string `json:"event_type"`
	EventName  string `json:"event_name"`
	OccurredAt string `json:"occurred_at"`
	Service    string `json:"service"`
	Payload    any    `json:"payload"`
}

// WSEvent builds the envelope for a relay lifecycle event (connect,
// disconnect, write error), stamped with the emission time.
func WSEvent(name string, payload any) EventEnvelope {
	return EventEnvelope{
		EventType:  wsEventType,
		EventName:  name,
		OccurredAt: time.Now().UTC().Format(time.RFC3339Nano),
		Service:    ServiceName,
		Payload:    payload,
	}
}

// BuildHeaders assembles correlation headers for a published event.
func BuildHeaders(requestID, traceID string) map[string]string {
	headers := map[string]string{}
	if requestID != "" {
		headers["x-request-id"] = requestID
	}
	if traceID != "" {
		headers["trace_id"] = traceID
	}
	return headers
}
