package ports

import (
	"context"
	"time"

	"revolution/contexts/collective-governance/revolution-engine/domain/entities"
	"revolution/internal/shared/events"
	"revolution/internal/shared/outbox"
)

// RevolutionRepository persists whole aggregates. Save applies optimistic
// concurrency: it commits only when the stored version is exactly one behind
// the aggregate being saved (or the aggregate is new at version 1) and
// returns ErrConflict otherwise. That makes every graduation step visible
// atomically and serializes writers per revolution.
type RevolutionRepository interface {
	Save(ctx context.Context, revolution entities.Revolution) error
	Get(ctx context.Context, revolutionID string) (entities.Revolution, error)
	List(ctx context.Context) ([]entities.Revolution, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, event events.Envelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkOutboxPublished(ctx context.Context, outboxID string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

// VotingPowerStrategy resolves a caller's vote weight. Duplicate-vote
// prevention and sybil resistance live behind this boundary; the engine only
// guarantees additive accumulation of whatever weight comes back.
type VotingPowerStrategy interface {
	ResolvePower(ctx context.Context, address string) (float64, error)
}

// SubmissionGate decides whether an address may submit given the period's
// existing submissions. Wired only when a deployment needs gating beyond the
// built-in one-submission-per-address snapshot flag.
type SubmissionGate interface {
	IsEligible(ctx context.Context, address string, existing []entities.Submission) (bool, error)
}

// SettlementOrder is handed to the custody collaborator at settlement. The
// engine computes the split; minting, share issuance, and cash transfer all
// happen on the other side of this port.
type SettlementOrder struct {
	RevolutionID    string
	AuctionPeriodID int
	AuctionID       int
	Winner          entities.Bid
	Authors         []string
	EntropyRate     float64
	CreatorRate     float64
	TreasuryCash    float64
	CreatorCash     float64
	SettledAt       time.Time
}

type SettlementGateway interface {
	ExecuteSettlement(ctx context.Context, order SettlementOrder) error
}
