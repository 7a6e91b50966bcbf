package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"revolution/contexts/collective-governance/revolution-engine/adapters/memory"
	"revolution/contexts/collective-governance/revolution-engine/application/commands"
	"revolution/contexts/collective-governance/revolution-engine/domain/entities"
	"revolution/internal/shared/events"
)

type capturePublisher struct {
	published []events.Envelope
	fail      bool
}

func (p *capturePublisher) Publish(_ context.Context, _ string, event events.Envelope) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.published = append(p.published, event)
	return nil
}

func seedInitiatedRevolution(t *testing.T, store *memory.Store, lifecycle commands.LifecycleUseCase) string {
	t.Helper()
	revolution, err := lifecycle.CreateRevolution(context.Background(), commands.CreateRevolutionCommand{
		Mission:            "fund cultural artifacts",
		SubmissionConfig:   entities.SubmissionConfig{DurationDays: 1},
		VotingConfig:       entities.VotingConfig{DurationDays: 1, NumWinners: 1},
		AuctionConfig:      entities.AuctionConfig{DurationDays: 1, AuctionsPerDay: 1},
		MinCreatorRate:     0.1,
		DefaultEntropyRate: 0.2,
		EnergyWeight:       0.75,
	})
	if err != nil {
		t.Fatalf("create revolution failed: %v", err)
	}
	store.AdvanceNow(time.Minute)
	if _, err := lifecycle.Initiate(context.Background(), revolution.ID); err != nil {
		t.Fatalf("initiate failed: %v", err)
	}
	return revolution.ID
}

func TestCycleSchedulerAdvancesClosedPeriods(t *testing.T) {
	store := memory.NewStore()
	store.SetNow(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	lifecycle := commands.LifecycleUseCase{Revolutions: store, Clock: store, IDGen: store, Outbox: store}
	scheduler := CycleScheduler{Revolutions: store, Lifecycle: lifecycle}

	id := seedInitiatedRevolution(t, store, lifecycle)

	// Nothing has closed yet; the sweep must leave the aggregate alone.
	if err := scheduler.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	revolution, err := store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(revolution.VotingPeriods) != 0 {
		t.Fatalf("sweep graduated an open period")
	}

	store.AdvanceNow(24 * time.Hour)
	if err := scheduler.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	revolution, err = store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(revolution.VotingPeriods) != 1 || len(revolution.SubmissionPeriods) != 2 {
		t.Fatalf("expected the sweep to graduate the closed period, got %d voting %d submission",
			len(revolution.VotingPeriods), len(revolution.SubmissionPeriods))
	}
}

func TestOutboxRelayPublishesOldestFirst(t *testing.T) {
	store := memory.NewStore()
	store.SetNow(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	lifecycle := commands.LifecycleUseCase{Revolutions: store, Clock: store, IDGen: store, Outbox: store}
	seedInitiatedRevolution(t, store, lifecycle)

	publisher := &capturePublisher{}
	relay := OutboxRelay{Outbox: store, Publisher: publisher, BatchSize: 10}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay failed: %v", err)
	}

	// Create + initiate leave two rows behind.
	if len(publisher.published) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.published))
	}
	if publisher.published[0].EventType != "revolution.created" || publisher.published[1].EventType != "revolution.initiated" {
		t.Fatalf("unexpected publish order: %s then %s", publisher.published[0].EventType, publisher.published[1].EventType)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("published rows must be marked, %d still pending", len(pending))
	}

	// An empty pass is a no-op.
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay failed: %v", err)
	}
	if len(publisher.published) != 2 {
		t.Fatalf("relay republished marked rows")
	}
}

func TestOutboxRelayKeepsRowsOnPublishFailure(t *testing.T) {
	store := memory.NewStore()
	store.SetNow(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	lifecycle := commands.LifecycleUseCase{Revolutions: store, Clock: store, IDGen: store, Outbox: store}
	seedInitiatedRevolution(t, store, lifecycle)

	relay := OutboxRelay{Outbox: store, Publisher: &capturePublisher{fail: true}, BatchSize: 10}
	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected relay to surface the publish failure")
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("failed rows must stay pending, got %d", len(pending))
	}
}
