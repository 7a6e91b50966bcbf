package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"revolution/contexts/collective-governance/revolution-engine/domain/entities"
	domainerrors "revolution/contexts/collective-governance/revolution-engine/domain/errors"
	"revolution/internal/shared/events"
)

func storedRevolution(t *testing.T, store *Store) entities.Revolution {
	t.Helper()
	revolution, err := entities.NewRevolution(
		"rev-1",
		"fund cultural artifacts",
		entities.SubmissionConfig{DurationDays: 1},
		entities.VotingConfig{DurationDays: 1, NumWinners: 1},
		entities.AuctionConfig{DurationDays: 1, AuctionsPerDay: 1},
		0.1, 0.2, 0.75,
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("new revolution failed: %v", err)
	}
	if err := store.Save(context.Background(), revolution); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	return revolution
}

func TestSaveEnforcesVersionSequence(t *testing.T) {
	store := NewStore()
	revolution := storedRevolution(t, store)

	// Replaying version 1 loses to the stored copy.
	if err := store.Save(context.Background(), revolution); !errors.Is(err, domainerrors.ErrConflict) {
		t.Fatalf("expected ErrConflict on version replay, got %v", err)
	}

	revolution.Version = 2
	if err := store.Save(context.Background(), revolution); err != nil {
		t.Fatalf("save v2 failed: %v", err)
	}

	revolution.Version = 4
	if err := store.Save(context.Background(), revolution); !errors.Is(err, domainerrors.ErrConflict) {
		t.Fatalf("expected ErrConflict on version skip, got %v", err)
	}

	fresh := revolution
	fresh.ID = "rev-2"
	fresh.Version = 3
	if err := store.Save(context.Background(), fresh); !errors.Is(err, domainerrors.ErrConflict) {
		t.Fatalf("expected ErrConflict for insert above version 1, got %v", err)
	}
}

func TestGetReturnsIsolatedCopy(t *testing.T) {
	store := NewStore()
	revolution := storedRevolution(t, store)
	if err := revolution.Initiate(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("initiate failed: %v", err)
	}
	revolution.Version = 2
	if err := store.Save(context.Background(), revolution); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Get(context.Background(), "rev-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	loaded.SubmissionPeriods[0].Submissions = append(loaded.SubmissionPeriods[0].Submissions, entities.Submission{ID: 0, Authors: []string{"x"}, CulturalArtifact: "y"})

	again, err := store.Get(context.Background(), "rev-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(again.SubmissionPeriods[0].Submissions) != 0 {
		t.Fatalf("stored aggregate shares state with a returned copy")
	}

	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, domainerrors.ErrRevolutionNotFound) {
		t.Fatalf("expected ErrRevolutionNotFound, got %v", err)
	}
}

func TestOutboxOrderingAndPublish(t *testing.T) {
	store := NewStore()
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	second := events.Envelope{EventID: "e2", EventType: "revolution.advanced", OccurredAtUTC: base.Add(time.Minute)}
	first := events.Envelope{EventID: "e1", EventType: "revolution.created", OccurredAtUTC: base}
	if err := store.AppendOutbox(context.Background(), second); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := store.AppendOutbox(context.Background(), first); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(pending) != 2 || pending[0].ID != "e1" || pending[1].ID != "e2" {
		t.Fatalf("expected oldest-first ordering, got %+v", pending)
	}

	if err := store.MarkOutboxPublished(context.Background(), "e1"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	pending, err = store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "e2" {
		t.Fatalf("published rows must drop out of the pending list, got %+v", pending)
	}
}

func TestResolvePowerDefaultsToOne(t *testing.T) {
	store := NewStore()
	power, err := store.ResolvePower(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if power != 1 {
		t.Fatalf("expected default weight 1, got %f", power)
	}

	store.SetVotingPower("alice", 4.5)
	power, err = store.ResolvePower(context.Background(), "alice")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if power != 4.5 {
		t.Fatalf("expected seeded weight, got %f", power)
	}
}
