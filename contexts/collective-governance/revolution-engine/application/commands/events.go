package commands

import (
	"time"

	"revolution/internal/shared/events"
)

const (
	sourceService = "revolution"
	entityType    = "revolution"
)

func newRevolutionEnvelope(
	eventID string,
	eventType string,
	revolutionID string,
	occurredAt time.Time,
	payload map[string]any,
) events.Envelope {
	return events.Envelope{
		EventID:        eventID,
		EventType:      eventType,
		SourceService:  sourceService,
		OccurredAtUTC:  occurredAt.UTC(),
		EntityType:     entityType,
		EntityID:       revolutionID,
		PayloadVersion: 1,
		Payload:        payload,
	}
}
