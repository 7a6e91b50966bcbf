package commands

import (
	"context"
	"time"

	"revolution/contexts/collective-governance/revolution-engine/ports"
)

func resolveNow(clock ports.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now().UTC()
}

// appendEvent writes one envelope to the outbox. A nil writer is a no-op so
// pure read/test wiring stays light.
func appendEvent(
	ctx context.Context,
	writer ports.OutboxWriter,
	idGen ports.IDGenerator,
	eventType string,
	revolutionID string,
	occurredAt time.Time,
	payload map[string]any,
) error {
	if writer == nil {
		return nil
	}
	eventID, err := idGen.NewID(ctx)
	if err != nil {
		return err
	}
	return writer.AppendOutbox(ctx, newRevolutionEnvelope(eventID, eventType, revolutionID, occurredAt, payload))
}
