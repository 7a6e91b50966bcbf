package entities

import (
	"errors"
	"testing"
	"time"

	domainerrors "revolution/contexts/collective-governance/revolution-engine/domain/errors"
)

func newTestRevolution(t *testing.T, now time.Time) Revolution {
	t.Helper()
	revolution, err := NewRevolution(
		"rev-1",
		"fund cultural artifacts",
		SubmissionConfig{DurationDays: 1, MandateDescription: "music only", OneSubmissionPerAddress: true},
		VotingConfig{DurationDays: 1, NumWinners: 1},
		AuctionConfig{DurationDays: 1, AuctionsPerDay: 24},
		0.1,
		0.2,
		0.75,
		now,
	)
	if err != nil {
		t.Fatalf("new revolution failed: %v", err)
	}
	return revolution
}

func TestNewRevolutionValidation(t *testing.T) {
	now := auctionEpoch
	if _, err := NewRevolution("", "m", SubmissionConfig{DurationDays: 1}, VotingConfig{DurationDays: 1}, AuctionConfig{DurationDays: 1, AuctionsPerDay: 1}, 0, 0, 0, now); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank id, got %v", err)
	}
	if _, err := NewRevolution("rev", "m", SubmissionConfig{DurationDays: 0}, VotingConfig{DurationDays: 1}, AuctionConfig{DurationDays: 1, AuctionsPerDay: 1}, 0, 0, 0, now); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero duration, got %v", err)
	}
	if _, err := NewRevolution("rev", "m", SubmissionConfig{DurationDays: 1}, VotingConfig{DurationDays: 1}, AuctionConfig{DurationDays: 1, AuctionsPerDay: 1}, 1.2, 0, 0, now); !errors.Is(err, domainerrors.ErrRateOutOfRange) {
		t.Fatalf("expected ErrRateOutOfRange, got %v", err)
	}
}

func TestAdvanceRequiresInitiation(t *testing.T) {
	revolution := newTestRevolution(t, auctionEpoch)
	if _, err := revolution.Advance(auctionEpoch); !errors.Is(err, domainerrors.ErrNotInitiated) {
		t.Fatalf("expected ErrNotInitiated, got %v", err)
	}
	if err := revolution.Initiate(auctionEpoch); err != nil {
		t.Fatalf("initiate failed: %v", err)
	}
	if err := revolution.Initiate(auctionEpoch); !errors.Is(err, domainerrors.ErrAlreadyInitiated) {
		t.Fatalf("expected ErrAlreadyInitiated, got %v", err)
	}
}

func TestCycleGraduations(t *testing.T) {
	revolution := newTestRevolution(t, auctionEpoch)
	if err := revolution.Initiate(auctionEpoch); err != nil {
		t.Fatalf("initiate failed: %v", err)
	}

	period, err := revolution.CurrentSubmissionPeriod()
	if err != nil {
		t.Fatalf("current submission period failed: %v", err)
	}
	if _, err := period.AddSubmission(auctionEpoch, []string{"alice"}, "ipfs://a", "first", ""); err != nil {
		t.Fatalf("add submission failed: %v", err)
	}
	if _, err := period.AddSubmission(auctionEpoch, []string{"bob"}, "ipfs://b", "second", ""); err != nil {
		t.Fatalf("add submission failed: %v", err)
	}
	if _, err := period.AddSubmission(auctionEpoch, []string{"alice"}, "ipfs://c", "dup", ""); !errors.Is(err, domainerrors.ErrDuplicateSubmission) {
		t.Fatalf("expected ErrDuplicateSubmission, got %v", err)
	}

	// Same-instant advance is a no-op while the period is still open.
	report, err := revolution.Advance(auctionEpoch)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if !report.Empty() {
		t.Fatalf("expected no-op advance, got %+v", report)
	}

	dayOne := auctionEpoch.Add(24 * time.Hour)
	report, err = revolution.Advance(dayOne)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if report.VotingPeriodID == nil || report.SubmissionPeriodID == nil || report.AuctionPeriodID != nil {
		t.Fatalf("expected submission graduation only, got %+v", report)
	}
	if len(revolution.VotingPeriods) != 1 || len(revolution.SubmissionPeriods) != 2 {
		t.Fatalf("unexpected period counts: %d voting, %d submission", len(revolution.VotingPeriods), len(revolution.SubmissionPeriods))
	}
	ballot := revolution.VotingPeriods[0]
	if len(ballot.Choices) != 2 || ballot.Choices[0].Votes != 0 {
		t.Fatalf("ballot must copy submissions with zeroed votes")
	}

	if err := revolution.VotingPeriods[0].CastVote(1, 2.5, dayOne); err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}
	if err := revolution.VotingPeriods[0].CastVote(7, 1, dayOne); !errors.Is(err, domainerrors.ErrUnknownChoice) {
		t.Fatalf("expected ErrUnknownChoice, got %v", err)
	}

	dayTwo := auctionEpoch.Add(48 * time.Hour)
	report, err = revolution.Advance(dayTwo)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if report.AuctionPeriodID == nil {
		t.Fatalf("expected vote graduation, got %+v", report)
	}
	if !revolution.VotingPeriods[0].Graduated {
		t.Fatalf("graduated ballot must be flagged")
	}

	auctionPeriod := revolution.AuctionPeriods[0]
	if len(auctionPeriod.Auctions) != 1 {
		t.Fatalf("expected one auction per winner, got %d", len(auctionPeriod.Auctions))
	}
	won := auctionPeriod.Auctions[0]
	if won.Item.ID != 1 {
		t.Fatalf("expected choice 1 to win, got submission %d", won.Item.ID)
	}
	if won.Duration != time.Hour {
		t.Fatalf("expected 1h auction slots at 24 per day, got %v", won.Duration)
	}
	if won.EntropyRate != 0.2 || won.MinCreatorRate != 0.1 || won.EnergyWeight != 0.75 {
		t.Fatalf("auction must snapshot governance rates, got %+v", won)
	}

	// Re-advancing at the same instant must not graduate the ballot twice.
	report, err = revolution.Advance(dayTwo)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if report.AuctionPeriodID != nil {
		t.Fatalf("ballot graduated twice")
	}
}

func TestClosedPeriodsRejectMutation(t *testing.T) {
	revolution := newTestRevolution(t, auctionEpoch)
	if err := revolution.Initiate(auctionEpoch); err != nil {
		t.Fatalf("initiate failed: %v", err)
	}
	period, err := revolution.CurrentSubmissionPeriod()
	if err != nil {
		t.Fatalf("current submission period failed: %v", err)
	}
	if _, err := period.AddSubmission(auctionEpoch, []string{"alice"}, "ipfs://a", "first", ""); err != nil {
		t.Fatalf("add submission failed: %v", err)
	}

	dayOne := auctionEpoch.Add(24 * time.Hour)
	if _, err := period.AddSubmission(dayOne, []string{"bob"}, "ipfs://b", "late", ""); !errors.Is(err, domainerrors.ErrPeriodClosed) {
		t.Fatalf("expected ErrPeriodClosed, got %v", err)
	}
	if len(period.Submissions) != 1 {
		t.Fatalf("rejected submission must not be recorded, got %d", len(period.Submissions))
	}

	if _, err := revolution.Advance(dayOne); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	ballot, err := revolution.CurrentVotingPeriod()
	if err != nil {
		t.Fatalf("current voting period failed: %v", err)
	}

	dayTwo := auctionEpoch.Add(48 * time.Hour)
	if err := ballot.CastVote(0, 1, dayTwo); !errors.Is(err, domainerrors.ErrPeriodClosed) {
		t.Fatalf("expected ErrPeriodClosed, got %v", err)
	}
	if ballot.Choices[0].Votes != 0 {
		t.Fatalf("rejected vote must not accumulate, got %f", ballot.Choices[0].Votes)
	}
}

func TestRankChoicesDeterministic(t *testing.T) {
	choices := []VotingChoice{
		{Submission: Submission{ID: 0}, Votes: 3},
		{Submission: Submission{ID: 1}, Votes: 5},
		{Submission: Submission{ID: 2}, Votes: 5},
	}
	ranked := RankChoices(choices)
	if ranked[0].ID != 1 || ranked[1].ID != 2 || ranked[2].ID != 0 {
		t.Fatalf("unexpected order: %d %d %d", ranked[0].ID, ranked[1].ID, ranked[2].ID)
	}
	if choices[0].ID != 0 {
		t.Fatalf("input slice must not be reordered")
	}

	top := TopN(choices, 5)
	if len(top) != 3 {
		t.Fatalf("TopN must clamp to available choices, got %d", len(top))
	}
	if len(TopN(choices, 0)) != 0 {
		t.Fatalf("TopN(0) must be empty")
	}
}

func TestGovernanceSnapshotIsolation(t *testing.T) {
	revolution := newTestRevolution(t, auctionEpoch)
	if err := revolution.Initiate(auctionEpoch); err != nil {
		t.Fatalf("initiate failed: %v", err)
	}

	if err := revolution.SetSubmissionConfig(SubmissionConfig{DurationDays: 3, MandateDescription: "films only"}); err != nil {
		t.Fatalf("set submission config failed: %v", err)
	}
	if revolution.SubmissionPeriods[0].Config.MandateDescription != "music only" {
		t.Fatalf("in-flight period must keep its snapshot")
	}

	if _, err := revolution.Advance(auctionEpoch.Add(24 * time.Hour)); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	next := revolution.SubmissionPeriods[1]
	if next.Config.MandateDescription != "films only" {
		t.Fatalf("successor period must use the queued config")
	}
	if !next.EndDate.Equal(auctionEpoch.Add(24 * time.Hour).Add(72 * time.Hour)) {
		t.Fatalf("successor period must use the queued duration, got %v", next.EndDate)
	}

	if err := revolution.SetEnergyWeight(1.5); !errors.Is(err, domainerrors.ErrRateOutOfRange) {
		t.Fatalf("expected ErrRateOutOfRange, got %v", err)
	}
	if revolution.EnergyWeight != 0.75 {
		t.Fatalf("rejected update must leave the rate unchanged")
	}
}
