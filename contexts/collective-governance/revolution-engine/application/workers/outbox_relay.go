package workers

import (
	"context"
	"encoding/json"
	"log/slog"

	application "revolution/contexts/collective-governance/revolution-engine/application"
	"revolution/contexts/collective-governance/revolution-engine/ports"
	"revolution/internal/shared/events"
)

// OutboxRelay publishes persisted outbox rows to the event bus.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	BatchSize int
	Logger    *slog.Logger
}

// RunOnce publishes a bounded batch of pending rows, marking each row
// published only after the publish succeeds. It stops on the first failure so
// the next pass can safely reprocess the remainder.
func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("outbox list failed",
			"event", "revolution_outbox_list_failed",
			"module", "collective-governance/revolution-engine",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(pending) == 0 {
		logger.Debug("outbox relay found no pending rows",
			"event", "revolution_outbox_relay_noop",
			"module", "collective-governance/revolution-engine",
			"layer", "worker",
			"batch_size", limit,
		)
		return nil
	}

	for _, row := range pending {
		var event events.Envelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("outbox decode failed",
				"event", "revolution_outbox_decode_failed",
				"module", "collective-governance/revolution-engine",
				"layer", "worker",
				"outbox_id", row.ID,
				"error", err.Error(),
			)
			return err
		}
		topic := event.EventType
		if topic == "" {
			topic = row.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("outbox publish failed",
				"event", "revolution_outbox_publish_failed",
				"module", "collective-governance/revolution-engine",
				"layer", "worker",
				"outbox_id", row.ID,
				"topic", topic,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.ID); err != nil {
			logger.Error("outbox mark published failed",
				"event", "revolution_outbox_mark_failed",
				"module", "collective-governance/revolution-engine",
				"layer", "worker",
				"outbox_id", row.ID,
				"error", err.Error(),
			)
			return err
		}
	}

	logger.Info("outbox relay cycle finished",
		"event", "revolution_outbox_relay_finished",
		"module", "collective-governance/revolution-engine",
		"layer", "worker",
		"published", len(pending),
	)
	return nil
}
